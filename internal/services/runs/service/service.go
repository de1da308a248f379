// Package service implements the run telemetry recorder
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"brewprints/internal/platform/logger"
	"brewprints/internal/services/runs/domain"
	"brewprints/internal/services/runs/repo"
)

// Options tune the recorder
type Options struct {
	// Timeout bounds each telemetry write so a slow sink cannot hold a
	// request open
	Timeout time.Duration
}

// Service implements domain.RecorderPort against the clickhouse storage
type Service struct {
	storage repo.Storage
	timeout time.Duration
}

// New constructs a recorder. A nil storage is rejected here; callers that
// run without clickhouse use Nop instead
func New(storage repo.Storage, opts Options) *Service {
	if storage == nil {
		panic("runs.Service requires a non nil Storage")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Second
	}
	return &Service{storage: storage, timeout: opts.Timeout}
}

// Record writes one run row. Failures are logged and swallowed; telemetry
// never fails the calculation that produced it
func (s *Service) Record(ctx context.Context, run domain.Run) {
	if s == nil || s.storage == nil {
		return
	}
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	if run.At.IsZero() {
		run.At = time.Now().UTC()
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.storage.WriteRuns(cctx, []domain.Run{run}); err != nil {
		logger.C(ctx).Warn().
			Err(err).
			Str("run_id", run.RunID).
			Str("content_hash", run.ContentHash).
			Msg("run telemetry dropped")
	}
}

// Nop is the recorder used when clickhouse is not configured
type Nop struct{}

// Record discards the run
func (Nop) Record(context.Context, domain.Run) {}
