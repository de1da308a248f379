package module

import (
	"context"

	"brewprints/internal/services/api/stats/domain"
	statssvc "brewprints/internal/services/api/stats/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptStatsPort struct{ svc statssvc.Service }

// Flags returns the most frequent diagnostic flags in the window
func (a adaptStatsPort) Flags(ctx context.Context, in domain.FlagsInput) ([]domain.FlagRow, error) {
	return a.svc.Flags(ctx, in)
}

// SpargeMethods returns sparge classification buckets
func (a adaptStatsPort) SpargeMethods(ctx context.Context, in domain.SpargeMethodsInput) ([]domain.SpargeMethodRow, error) {
	return a.svc.SpargeMethods(ctx, in)
}

// Adjustments returns per-day reconciliation activity
func (a adaptStatsPort) Adjustments(ctx context.Context, in domain.AdjustmentsInput) ([]domain.AdjustmentRow, error) {
	return a.svc.Adjustments(ctx, in)
}

// EvapMethods returns evaporation resolution buckets
func (a adaptStatsPort) EvapMethods(ctx context.Context, in domain.EvapMethodsInput) ([]domain.EvapMethodRow, error) {
	return a.svc.EvapMethods(ctx, in)
}
