// Package domain holds DTOs for calc http and service contracts
package domain

import (
	"brewprints/internal/core/recipe"
	"brewprints/internal/core/water"
)

// WaterInput runs the water pipeline on an inline recipe payload
type WaterInput struct {
	Recipe      recipe.Recipe `json:"recipe" validate:"required"`
	DisplayUnit string        `json:"display_unit,omitempty" validate:"omitempty,oneof=l gal" example:"l"`

	// SourceRecipeID is set by internal callers running a stored recipe;
	// it is never accepted from the wire
	SourceRecipeID string `json:"-"`
}

// WaterReport is the aggregate pipeline output plus the assumptions made
// getting there
type WaterReport struct {
	DisplayUnit   string       `json:"display_unit" example:"l"`
	ContentHash   string       `json:"content_hash" example:"9f86d081884c7d65"`
	Result        water.Result `json:"result"`
	Flags         []string     `json:"flags"`
	ClampWarnings []string     `json:"clamp_warnings,omitempty"`
}

// GravityInput estimates OG/FG/ABV for an inline recipe
type GravityInput struct {
	Recipe recipe.Recipe `json:"recipe" validate:"required"`
}

// IBUInput estimates bitterness. OG is optional; when absent the gravity
// calculator supplies it
type IBUInput struct {
	Recipe recipe.Recipe `json:"recipe" validate:"required"`
	OG     float64       `json:"og,omitempty" validate:"omitempty,gt=1" example:"1.052"`
}

// ColorInput estimates MCU/SRM/EBC for an inline recipe
type ColorInput struct {
	Recipe recipe.Recipe `json:"recipe" validate:"required"`
}

// CarbonationInput sizes a priming addition
type CarbonationInput struct {
	VolumeL    float64 `json:"volume_l" validate:"required,gt=0" example:"19"`
	TempC      float64 `json:"temp_c" example:"20"`
	TargetVols float64 `json:"target_vols,omitempty" validate:"omitempty,gt=0" example:"2.4"`
	Sugar      string  `json:"sugar,omitempty" example:"corn sugar"`
}
