// Command seed-departments inserts the built-in department catalog into the
// department store, skipping departments that already exist (matched
// case-insensitively by name or code). Running it twice is a no-op.
//
// The store is selected from MONGO_URI: mongodb:// and mongodb+srv:// use the
// MongoDB collection, postgres:// applies embedded migrations and uses the
// departments table.
//
// Flags:
//
//	--dry-run            report what would be inserted without writing
//	--continue-on-error  count failed inserts instead of aborting
//
// Exit codes: 0 = success, 1 = configuration, connection or insert error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/heartmarshall/coursereview-backend/internal/adapter/mongodb"
	mongodept "github.com/heartmarshall/coursereview-backend/internal/adapter/mongodb/department"
	"github.com/heartmarshall/coursereview-backend/internal/adapter/postgres"
	pgdept "github.com/heartmarshall/coursereview-backend/internal/adapter/postgres/department"
	"github.com/heartmarshall/coursereview-backend/internal/app"
	"github.com/heartmarshall/coursereview-backend/internal/app/seeder"
	"github.com/heartmarshall/coursereview-backend/internal/config"
)

func main() {
	dryRunFlag := flag.Bool("dry-run", false, "report inserts without writing to the store")
	continueFlag := flag.Bool("continue-on-error", false, "count failed inserts instead of aborting")
	flag.Parse()

	cfg, logger, err := app.Bootstrap("seed-departments")
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	// CLI flags override config.
	if err := cfg.Apply(config.Overrides{
		DryRun:          *dryRunFlag,
		ContinueOnError: *continueFlag,
	}); err != nil {
		logger.Error("invalid flags", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := cfg.RequireStore(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Seeder.Timeout)
	defer cancel()

	repo, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		logger.Error("connect to store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	s := seeder.NewDepartmentSeeder(logger, repo, seeder.DepartmentCatalog(), seeder.DepartmentOptions{
		ContinueOnError: cfg.Seeder.ContinueOnError,
		DryRun:          cfg.Seeder.DryRun,
	})

	result, err := s.Run(ctx)
	if err != nil {
		logger.Error("department seeding failed",
			slog.String("error", err.Error()),
			slog.Int("added", result.Added),
			slog.Int("skipped", result.Skipped),
		)
		closeStore()
		os.Exit(1)
	}

	if result.HasErrors() {
		logger.Warn("department seeding completed with errors", slog.Int("failed", result.Failed))
		closeStore()
		os.Exit(1)
	}
}

// openStore connects to the store selected by cfg and returns a department
// repository with a function releasing the connection.
func openStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (seeder.DepartmentRepo, func(), error) {
	driver := cfg.ResolveDriver()
	logger.Info("connecting to store", slog.String("driver", driver))

	switch driver {
	case config.DriverPostgres:
		if err := postgres.Migrate(ctx, cfg.URI, logger); err != nil {
			return nil, nil, err
		}
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return pgdept.New(pool), pool.Close, nil

	default:
		client, db, err := mongodb.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using collection",
			slog.String("database", db.Name()),
			slog.String("collection", cfg.Collection),
		)
		closeFn := func() {
			_ = client.Disconnect(context.Background())
		}
		return mongodept.New(db.Collection(cfg.Collection)), closeFn, nil
	}
}
