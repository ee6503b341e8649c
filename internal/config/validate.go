package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/heartmarshall/coursereview-backend/internal/domain"
)

const maxConcurrency = 32

// Validate performs range validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
// Values required only by one command are checked by RequireStore and
// RequireLecturerAPI instead.
func (c *Config) Validate() error {
	if c.Store.Driver != "" && c.Store.ResolveDriver() == "" {
		return fmt.Errorf("store.driver %q is not supported (want %s or %s)", c.Store.Driver, DriverMongo, DriverPostgres)
	}
	if c.Store.ConnectTimeout <= 0 {
		return fmt.Errorf("store.connect_timeout must be > 0 (got %v)", c.Store.ConnectTimeout)
	}
	if c.Store.MaxConns <= 0 {
		return fmt.Errorf("store.max_conns must be > 0 (got %d)", c.Store.MaxConns)
	}

	if c.LecturerAPI.Timeout <= 0 {
		return fmt.Errorf("lecturer_api.timeout must be > 0 (got %v)", c.LecturerAPI.Timeout)
	}
	if c.LecturerAPI.MaxRetries < 0 || c.LecturerAPI.MaxRetries > 10 {
		return fmt.Errorf("lecturer_api.max_retries must be between 0 and 10 (got %d)", c.LecturerAPI.MaxRetries)
	}
	if c.LecturerAPI.RetryBaseDelay < 0 {
		return fmt.Errorf("lecturer_api.retry_base_delay must be >= 0 (got %v)", c.LecturerAPI.RetryBaseDelay)
	}

	if c.Seeder.Concurrency < 1 || c.Seeder.Concurrency > maxConcurrency {
		return fmt.Errorf("seeder.concurrency must be between 1 and %d (got %d)", maxConcurrency, c.Seeder.Concurrency)
	}
	if c.Seeder.Timeout <= 0 {
		return fmt.Errorf("seeder.timeout must be > 0 (got %v)", c.Seeder.Timeout)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

// RequireStore checks the values the department seeder cannot run without.
// Returned errors wrap domain.ErrConfiguration.
func (c *Config) RequireStore() error {
	if strings.TrimSpace(c.Store.URI) == "" {
		return domain.NewConfigError("MONGO_URI", "is required")
	}
	if c.Store.ResolveDriver() == "" {
		return domain.NewConfigError("MONGO_URI", "has an unsupported scheme (want mongodb://, mongodb+srv://, postgres://)")
	}
	return nil
}

// RequireLecturerAPI checks the values the lecturer seeder cannot run without.
// Returned errors wrap domain.ErrConfiguration.
func (c *Config) RequireLecturerAPI() error {
	if strings.TrimSpace(c.LecturerAPI.Token) == "" {
		return domain.NewConfigError("ADMIN_TOKEN", "is required")
	}
	u, err := url.ParseRequestURI(c.LecturerAPI.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.NewConfigError("LECTURER_API_URL", fmt.Sprintf("must be an absolute http(s) URL (got %q)", c.LecturerAPI.URL))
	}
	if strings.TrimSpace(c.Seeder.LecturersFile) == "" {
		return domain.NewConfigError("LECTURERS_FILE", "is required")
	}
	return nil
}

// Overrides holds command-line values that take precedence over loaded config.
// Zero values leave the loaded setting untouched.
type Overrides struct {
	LecturersFile   string
	Concurrency     int
	DryRun          bool
	ContinueOnError bool
}

// Apply merges o into c and re-runs Validate, so flag values obey the same
// bounds as ENV and YAML values.
func (c *Config) Apply(o Overrides) error {
	if o.LecturersFile != "" {
		c.Seeder.LecturersFile = o.LecturersFile
	}
	if o.Concurrency != 0 {
		c.Seeder.Concurrency = o.Concurrency
	}
	if o.DryRun {
		c.Seeder.DryRun = true
	}
	if o.ContinueOnError {
		c.Seeder.ContinueOnError = true
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	return nil
}
