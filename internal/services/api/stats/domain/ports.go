package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Flags(ctx context.Context, in FlagsInput) ([]FlagRow, error)
	SpargeMethods(ctx context.Context, in SpargeMethodsInput) ([]SpargeMethodRow, error)
	Adjustments(ctx context.Context, in AdjustmentsInput) ([]AdjustmentRow, error)
	EvapMethods(ctx context.Context, in EvapMethodsInput) ([]EvapMethodRow, error)
}
