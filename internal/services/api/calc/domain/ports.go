package domain

import (
	"context"

	"brewprints/internal/core/carbonation"
	"brewprints/internal/core/color"
	"brewprints/internal/core/gravity"
	"brewprints/internal/core/ibu"
)

// ServicePort is consumed by handlers and by modules that run calculations
// on stored recipes
type ServicePort interface {
	Water(ctx context.Context, in WaterInput) (WaterReport, error)
	Gravity(ctx context.Context, in GravityInput) (gravity.Result, error)
	IBU(ctx context.Context, in IBUInput) (ibu.Result, error)
	Color(ctx context.Context, in ColorInput) (color.Result, error)
	Carbonation(ctx context.Context, in CarbonationInput) (carbonation.Result, error)
}
