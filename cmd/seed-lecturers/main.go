// Command seed-lecturers reads lecturer records from a JSON file and creates
// each one through the course-review API using the admin bearer token.
// A rejected or unanswered request is logged and the batch continues.
//
// Flags:
//
//	--file         path to the lecturers JSON array (default: LECTURERS_FILE)
//	--dry-run      read and validate records without sending them
//	--concurrency  number of in-flight requests (default: SEEDER_CONCURRENCY)
//	--strict       exit 1 if any record failed
//
// Exit codes: 0 = run completed, 1 = configuration error, unreadable file,
// or (with --strict) any record failure.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/coursereview-backend/internal/adapter/lecturerapi"
	"github.com/heartmarshall/coursereview-backend/internal/app"
	"github.com/heartmarshall/coursereview-backend/internal/app/seeder"
	"github.com/heartmarshall/coursereview-backend/internal/auth"
	"github.com/heartmarshall/coursereview-backend/internal/config"
)

func main() {
	fileFlag := flag.String("file", "", "path to the lecturers JSON file")
	dryRunFlag := flag.Bool("dry-run", false, "validate records without sending them")
	concurrencyFlag := flag.Int("concurrency", 0, "number of in-flight requests")
	strictFlag := flag.Bool("strict", false, "exit non-zero if any record failed")
	flag.Parse()

	cfg, logger, err := app.Bootstrap("seed-lecturers")
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	// CLI flags override config.
	if err := cfg.Apply(config.Overrides{
		LecturersFile: *fileFlag,
		Concurrency:   *concurrencyFlag,
		DryRun:        *dryRunFlag,
	}); err != nil {
		logger.Error("invalid flags", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := cfg.RequireLecturerAPI(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	info, err := auth.Inspect(cfg.LecturerAPI.Token, time.Now())
	if err != nil {
		logger.Error("admin token rejected", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if info.IsJWT {
		logger.Info("admin token inspected",
			slog.String("subject", info.Subject),
			slog.String("role", info.Role),
			slog.Time("expires_at", info.ExpiresAt),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Seeder.Timeout)
	defer cancel()

	client := lecturerapi.NewClient(cfg.LecturerAPI.URL, cfg.LecturerAPI.Token, lecturerapi.Options{
		Timeout:        cfg.LecturerAPI.Timeout,
		MaxRetries:     cfg.LecturerAPI.MaxRetries,
		RetryBaseDelay: cfg.LecturerAPI.RetryBaseDelay,
	}, logger)

	s := seeder.NewLecturerSeeder(logger, client, seeder.LecturerOptions{
		Concurrency: cfg.Seeder.Concurrency,
		DryRun:      cfg.Seeder.DryRun,
	})

	result, err := s.Run(ctx, cfg.Seeder.LecturersFile)
	if err != nil {
		logger.Error("lecturer seeding failed", slog.String("error", err.Error()))
		cancel()
		os.Exit(1)
	}

	if result.HasErrors() {
		logger.Warn("lecturer seeding completed with failures",
			slog.Int("failed", result.Failed),
			slog.Int("total", result.Total),
		)
		if *strictFlag {
			cancel()
			os.Exit(1)
		}
	}
}
