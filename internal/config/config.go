package config

import (
	"strings"
	"time"
)

// Store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Config is the root configuration shared by the seeding commands.
type Config struct {
	Store       StoreConfig       `yaml:"store"`
	LecturerAPI LecturerAPIConfig `yaml:"lecturer_api"`
	Seeder      SeederConfig      `yaml:"seeder"`
	Log         LogConfig         `yaml:"log"`
}

// StoreConfig holds department store connection settings.
// The driver is inferred from the URI scheme unless set explicitly.
type StoreConfig struct {
	URI            string        `yaml:"uri"             env:"MONGO_URI"`
	Driver         string        `yaml:"driver"          env:"STORE_DRIVER"`
	Database       string        `yaml:"database"        env:"MONGO_DB_NAME"`
	Collection     string        `yaml:"collection"      env:"STORE_COLLECTION"      env-default:"departments"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"STORE_CONNECT_TIMEOUT" env-default:"10s"`
	MaxConns       int32         `yaml:"max_conns"       env:"STORE_MAX_CONNS"       env-default:"4"`
}

// LecturerAPIConfig holds settings for the remote lecturer create endpoint.
type LecturerAPIConfig struct {
	URL            string        `yaml:"url"              env:"LECTURER_API_URL"              env-default:"http://localhost:5000/api/lecturers"`
	Token          string        `yaml:"token"            env:"ADMIN_TOKEN"`
	Timeout        time.Duration `yaml:"timeout"          env:"LECTURER_API_TIMEOUT"          env-default:"10s"`
	MaxRetries     int           `yaml:"max_retries"      env:"LECTURER_API_MAX_RETRIES"      env-default:"0"`
	RetryBaseDelay time.Duration `yaml:"retry_base_delay" env:"LECTURER_API_RETRY_BASE_DELAY" env-default:"500ms"`
}

// SeederConfig holds run-level settings for both seeders.
type SeederConfig struct {
	LecturersFile   string        `yaml:"lecturers_file"    env:"LECTURERS_FILE"           env-default:"data/lecturers.json"`
	Concurrency     int           `yaml:"concurrency"       env:"SEEDER_CONCURRENCY"       env-default:"1"`
	ContinueOnError bool          `yaml:"continue_on_error" env:"SEEDER_CONTINUE_ON_ERROR" env-default:"false"`
	DryRun          bool          `yaml:"dry_run"           env:"SEEDER_DRY_RUN"           env-default:"false"`
	Timeout         time.Duration `yaml:"timeout"           env:"SEEDER_TIMEOUT"           env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// ResolveDriver returns the explicit driver if set, otherwise infers it from the URI scheme.
// Returns an empty string when neither yields a known driver.
func (c StoreConfig) ResolveDriver() string {
	switch strings.ToLower(strings.TrimSpace(c.Driver)) {
	case DriverMongo, "mongodb":
		return DriverMongo
	case DriverPostgres, "postgresql", "pg":
		return DriverPostgres
	case "":
	default:
		return ""
	}

	uri := strings.ToLower(strings.TrimSpace(c.URI))
	switch {
	case strings.HasPrefix(uri, "mongodb://"), strings.HasPrefix(uri, "mongodb+srv://"):
		return DriverMongo
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		return DriverPostgres
	}
	return ""
}
