// Package domain defines the run telemetry record and ports
package domain

import "time"

// Run source values
const (
	SourceCalc    = "calc"
	SourceRecipes = "recipes"
)

// Run is one recorded water calculation. One row per pipeline run plus one
// row per flag in the flags table
type Run struct {
	RunID       string
	At          time.Time
	Source      string // calc for inline payloads, recipes for stored ones
	RecipeID    string // uuid when the run came from a stored recipe
	ContentHash string // sha256 hex of the normalized inputs
	RecipeName  string

	BatchSizeL  float64
	DisplayUnit string

	UsesSparge       bool
	SpargeMethod     string
	SpargeConfidence string

	EvapMethod     string
	BoilOffRateLHr float64

	WasAdjusted bool
	AdjustmentL float64

	Flags      []string
	ErrorCount int
	ElapsedMS  int64
}
