package module

import (
	"context"

	"brewprints/internal/core/carbonation"
	"brewprints/internal/core/color"
	"brewprints/internal/core/gravity"
	"brewprints/internal/core/ibu"
	"brewprints/internal/services/api/calc/domain"
	calcsvc "brewprints/internal/services/api/calc/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptCalcPort struct{ svc calcsvc.Service }

// Water runs the water pipeline
func (a adaptCalcPort) Water(ctx context.Context, in domain.WaterInput) (domain.WaterReport, error) {
	return a.svc.Water(ctx, in)
}

// Gravity estimates OG/FG/ABV
func (a adaptCalcPort) Gravity(ctx context.Context, in domain.GravityInput) (gravity.Result, error) {
	return a.svc.Gravity(ctx, in)
}

// IBU estimates total bitterness
func (a adaptCalcPort) IBU(ctx context.Context, in domain.IBUInput) (ibu.Result, error) {
	return a.svc.IBU(ctx, in)
}

// Color estimates MCU/SRM/EBC
func (a adaptCalcPort) Color(ctx context.Context, in domain.ColorInput) (color.Result, error) {
	return a.svc.Color(ctx, in)
}

// Carbonation sizes a priming addition
func (a adaptCalcPort) Carbonation(ctx context.Context, in domain.CarbonationInput) (carbonation.Result, error) {
	return a.svc.Carbonation(ctx, in)
}
