// Package service contains stats workflows
package service

import (
	"context"
	"time"

	perr "brewprints/internal/platform/errors"
	"brewprints/internal/services/api/stats/domain"
	"brewprints/internal/services/api/stats/repo"
)

// Service defines the stats service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the stats service
type Svc struct {
	Repo repo.Repo
}

// New constructs a stats service
func New(r repo.Repo) *Svc {
	if r == nil {
		panic("stats.Service requires a non nil Repo")
	}
	return &Svc{Repo: r}
}

// Flags returns the most frequent diagnostic flags in the window
func (s *Svc) Flags(ctx context.Context, in domain.FlagsInput) ([]domain.FlagRow, error) {
	start, end, err := window(in.Range)
	if err != nil {
		return nil, err
	}
	rows, err := s.Repo.Flags(ctx, start, end, in.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.FlagRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.FlagRow{Flag: r.Flag, Runs: int64(r.Runs)})
	}
	return out, nil
}

// SpargeMethods returns how sparge classification resolved across runs
func (s *Svc) SpargeMethods(ctx context.Context, in domain.SpargeMethodsInput) ([]domain.SpargeMethodRow, error) {
	start, end, err := window(in.Range)
	if err != nil {
		return nil, err
	}
	rows, err := s.Repo.SpargeMethods(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SpargeMethodRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.SpargeMethodRow{
			Method:     r.Method,
			Confidence: r.Confidence,
			Runs:       int64(r.Runs),
			Sparging:   int64(r.Sparging),
		})
	}
	return out, nil
}

// Adjustments returns per-day reconciliation activity
func (s *Svc) Adjustments(ctx context.Context, in domain.AdjustmentsInput) ([]domain.AdjustmentRow, error) {
	start, end, err := window(in.Range)
	if err != nil {
		return nil, err
	}
	rows, err := s.Repo.Adjustments(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]domain.AdjustmentRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.AdjustmentRow{
			Day:            r.Day,
			Runs:           int64(r.Runs),
			Adjusted:       int64(r.Adjusted),
			AvgAdjustmentL: r.AvgAdjustmentL,
		})
	}
	return out, nil
}

// EvapMethods returns how evaporation resolution distributed across runs
func (s *Svc) EvapMethods(ctx context.Context, in domain.EvapMethodsInput) ([]domain.EvapMethodRow, error) {
	start, end, err := window(in.Range)
	if err != nil {
		return nil, err
	}
	rows, err := s.Repo.EvapMethods(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]domain.EvapMethodRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.EvapMethodRow{
			Method:        r.Method,
			Runs:          int64(r.Runs),
			AvgBoilOffLHr: r.AvgBoilOffLHr,
		})
	}
	return out, nil
}

// window turns an inclusive date range into a half-open UTC window
func window(r domain.TimeRange) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", r.Start)
	if err != nil {
		return time.Time{}, time.Time{}, perr.Newf(perr.ErrorCodeValidation, "bad start date %q", r.Start)
	}
	end, err := time.Parse("2006-01-02", r.End)
	if err != nil {
		return time.Time{}, time.Time{}, perr.Newf(perr.ErrorCodeValidation, "bad end date %q", r.End)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, perr.New(perr.ErrorCodeInconsistent, "range ends before it starts")
	}
	return start.UTC(), end.AddDate(0, 0, 1).UTC(), nil
}
