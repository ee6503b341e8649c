package seeder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/coursereview-backend/internal/adapter/lecturerapi"
	"github.com/heartmarshall/coursereview-backend/internal/domain"
	"github.com/heartmarshall/coursereview-backend/pkg/ctxutil"
)

// LecturerOptions controls a lecturer seeding run.
type LecturerOptions struct {
	// Concurrency bounds in-flight create requests. Values below 1 mean 1.
	Concurrency int
	// DryRun reads and validates records without sending them.
	DryRun bool
}

// LecturerOutcome is the result of submitting one record. Err is nil on success.
type LecturerOutcome struct {
	Index    int
	Lecturer domain.Lecturer
	Err      error
}

// LecturerResult holds the per-record outcomes of a lecturer seeding run, in file order.
type LecturerResult struct {
	Total     int
	Succeeded int
	Failed    int
	Outcomes  []LecturerOutcome
	Duration  time.Duration
}

// HasErrors reports whether any record failed.
func (r LecturerResult) HasErrors() bool {
	return r.Failed > 0
}

// ReadLecturers reads a JSON array of lecturer records from path.
func ReadLecturers(path string) ([]domain.Lecturer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lecturers file: %w", err)
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("parse lecturers file %s: expected a JSON array", path)
	}

	var records []domain.Lecturer
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse lecturers file %s: %w", path, err)
	}
	return records, nil
}

// LecturerSeeder submits lecturer records to the remote API.
type LecturerSeeder struct {
	log    *slog.Logger
	client LecturerCreator
	opts   LecturerOptions
}

// NewLecturerSeeder creates a LecturerSeeder.
func NewLecturerSeeder(log *slog.Logger, client LecturerCreator, opts LecturerOptions) *LecturerSeeder {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &LecturerSeeder{log: log, client: client, opts: opts}
}

// Run reads filePath and submits every record. A record failure never stops
// the batch; Run returns an error only when the file cannot be read or parsed
// (nothing is sent) or when ctx is cancelled mid-run.
func (s *LecturerSeeder) Run(ctx context.Context, filePath string) (LecturerResult, error) {
	start := time.Now()
	ctx, runID := ctxutil.EnsureRunID(ctx)
	log := s.log.With(slog.String("run_id", runID.String()), slog.String("seeder", "lecturers"))

	records, err := ReadLecturers(filePath)
	if err != nil {
		return LecturerResult{}, err
	}
	log.Info("lecturer records loaded",
		slog.String("file", filePath),
		slog.Int("count", len(records)),
		slog.Int("concurrency", s.opts.Concurrency),
	)

	outcomes := make([]LecturerOutcome, len(records))
	done := make([]bool, len(records))

	g := new(errgroup.Group)
	g.SetLimit(s.opts.Concurrency)

	for i, rec := range records {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			err := s.submit(ctx, log, i, rec)
			if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return err
			}
			outcomes[i] = LecturerOutcome{Index: i, Lecturer: rec, Err: err}
			done[i] = true
			return nil
		})
	}
	waitErr := g.Wait()

	result := LecturerResult{Total: len(records), Outcomes: make([]LecturerOutcome, 0, len(records))}
	for i, o := range outcomes {
		if !done[i] {
			continue
		}
		result.Outcomes = append(result.Outcomes, o)
		if o.Err != nil {
			result.Failed++
		} else {
			result.Succeeded++
		}
	}
	result.Duration = time.Since(start)

	if waitErr == nil {
		waitErr = ctx.Err()
	}
	if waitErr != nil {
		log.Warn("lecturer seeding interrupted",
			slog.Int("processed", len(result.Outcomes)),
			slog.Int("total", result.Total),
			slog.String("error", waitErr.Error()),
		)
		return result, fmt.Errorf("lecturer seeding interrupted: %w", waitErr)
	}

	log.Info("lecturer seeding completed",
		slog.Int("total", result.Total),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("failed", result.Failed),
		slog.Bool("dry_run", s.opts.DryRun),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

// submit validates and sends one record, logging exactly one line for its outcome
// unless the context was cancelled.
func (s *LecturerSeeder) submit(ctx context.Context, log *slog.Logger, index int, l domain.Lecturer) error {
	rlog := log.With(slog.Int("index", index), slog.String("name", l.Name), slog.String("department", l.Department))

	if err := l.Validate(); err != nil {
		rlog.Warn("invalid lecturer record, not sent", slog.String("error", err.Error()))
		return err
	}

	if s.opts.DryRun {
		rlog.Info("dry run: lecturer would be created")
		return nil
	}

	err := s.client.Create(ctx, l)
	if err == nil {
		rlog.Info("lecturer created")
		return nil
	}
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return err
	}

	var apiErr *lecturerapi.APIError
	switch {
	case errors.As(err, &apiErr):
		rlog.Error("lecturer rejected by api",
			slog.Int("status", apiErr.StatusCode),
			slog.String("body", apiErr.Body),
		)
	case errors.Is(err, lecturerapi.ErrNoResponse):
		rlog.Error("no response from lecturer api", slog.String("error", err.Error()))
	default:
		rlog.Error("lecturer create failed", slog.String("error", err.Error()))
	}
	return err
}
