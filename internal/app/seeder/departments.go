package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/coursereview-backend/internal/domain"
	"github.com/heartmarshall/coursereview-backend/pkg/ctxutil"
)

// DepartmentOptions controls a department seeding run.
type DepartmentOptions struct {
	// ContinueOnError counts failed inserts instead of aborting the run.
	ContinueOnError bool
	// DryRun reports would-be inserts without writing to the store.
	DryRun bool
}

// DepartmentResult holds the counts of a department seeding run.
type DepartmentResult struct {
	Added    int
	Skipped  int
	Failed   int
	Total    int
	Duration time.Duration
}

// HasErrors reports whether any candidate failed to insert.
func (r DepartmentResult) HasErrors() bool {
	return r.Failed > 0
}

// DepartmentSeeder inserts catalog departments missing from the store.
type DepartmentSeeder struct {
	log     *slog.Logger
	repo    DepartmentRepo
	catalog []domain.Department
	opts    DepartmentOptions
}

// NewDepartmentSeeder creates a DepartmentSeeder over the given catalog.
func NewDepartmentSeeder(log *slog.Logger, repo DepartmentRepo, catalog []domain.Department, opts DepartmentOptions) *DepartmentSeeder {
	return &DepartmentSeeder{
		log:     log,
		repo:    repo,
		catalog: catalog,
		opts:    opts,
	}
}

// Run fetches the existing departments once, then inserts each catalog
// candidate that matches none of them (nor any candidate inserted earlier
// in the run). Listing errors and, unless ContinueOnError is set, insert
// errors abort the run; the partial result is returned with the error.
func (s *DepartmentSeeder) Run(ctx context.Context) (DepartmentResult, error) {
	start := time.Now()
	ctx, runID := ctxutil.EnsureRunID(ctx)
	log := s.log.With(slog.String("run_id", runID.String()), slog.String("seeder", "departments"))

	result := DepartmentResult{Total: len(s.catalog)}

	existing, err := s.repo.List(ctx)
	if err != nil {
		return result, fmt.Errorf("list departments: %w", err)
	}
	log.Info("existing departments loaded", slog.Int("count", len(existing)))

	idx := domain.NewDepartmentIndex(existing)

	for i, cand := range s.catalog {
		if err := ctx.Err(); err != nil {
			result.Duration = time.Since(start)
			return result, err
		}

		clog := log.With(slog.Int("index", i), slog.String("name", cand.Name), slog.String("code", cand.Code))

		if err := cand.Validate(); err != nil {
			if ferr := s.fail(clog, &result, err); ferr != nil {
				result.Duration = time.Since(start)
				return result, ferr
			}
			continue
		}

		if match, ok := idx.Find(cand); ok {
			clog.Info("department exists, skipping",
				slog.String("existing_name", match.Name),
				slog.String("existing_code", match.Code),
			)
			result.Skipped++
			continue
		}

		if s.opts.DryRun {
			clog.Info("dry run: department would be inserted")
			idx.Add(cand)
			result.Added++
			continue
		}

		created, err := s.repo.Insert(ctx, cand)
		switch {
		case err == nil:
			clog.Info("department inserted", slog.String("id", created.ID))
			idx.Add(created)
			result.Added++
		case errors.Is(err, domain.ErrAlreadyExists):
			clog.Info("department rejected as duplicate by store, skipping")
			idx.Add(cand)
			result.Skipped++
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			result.Duration = time.Since(start)
			return result, err
		default:
			if ferr := s.fail(clog, &result, err); ferr != nil {
				result.Duration = time.Since(start)
				return result, ferr
			}
		}
	}

	result.Duration = time.Since(start)
	log.Info("department seeding completed",
		slog.Int("added", result.Added),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed),
		slog.Int("total", result.Total),
		slog.Bool("dry_run", s.opts.DryRun),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

// fail records a candidate failure. It returns a non-nil error when the run must abort.
func (s *DepartmentSeeder) fail(log *slog.Logger, result *DepartmentResult, err error) error {
	result.Failed++
	if !s.opts.ContinueOnError {
		log.Error("department insert failed, aborting", slog.String("error", err.Error()))
		return fmt.Errorf("insert department: %w", err)
	}
	log.Error("department insert failed", slog.String("error", err.Error()))
	return nil
}
