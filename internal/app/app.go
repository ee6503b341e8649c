package app

import (
	"log/slog"

	"github.com/heartmarshall/coursereview-backend/internal/config"
)

// Bootstrap is the shared entry point of the seeding commands. It loads
// configuration, initializes the logger, and logs startup information.
// The returned logger is tagged with the command name.
func Bootstrap(command string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger := NewLogger(cfg.Log).With(slog.String("cmd", command))

	logger.Info("starting",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Bool("dry_run", cfg.Seeder.DryRun),
	)

	return cfg, logger, nil
}
