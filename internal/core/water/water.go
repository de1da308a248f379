// Package water implements the volume, evaporation and sparge reconciliation
// engine. It turns partial, sometimes conflicting process measurements into
// one internally consistent volume flow from mash water through packaging
// Pipeline order
// 1 Normalize raw recipe into canonical physical quantities
// 2 Classify sparge usage from ranked evidence
// 3 Solve evaporation and boil losses by trust order
// 4 Fill in missing strike/sparge requirements
// 5 Propagate the seven-stage volume flow and reconcile to the batch size
// 6 Estimate and validate the implied sparge volume
// Each stage consumes only the outputs of earlier stages. The whole pipeline
// is pure: identical inputs always produce identical results
package water

import (
	"fmt"

	"brewprints/internal/core/recipe"
	"brewprints/internal/core/units"
)

// Engine runs the pipeline. Safe for concurrent use; it holds only the
// compiled term pack and the display rounder
type Engine struct {
	terms *Terms
	round units.Rounder
}

// Option tweaks engine construction
type Option func(*Engine)

// WithRounder sets the display unit stage volumes are rounded in
func WithRounder(r units.Rounder) Option {
	return func(e *Engine) { e.round = r }
}

// New builds an engine around a compiled term pack
func New(terms *Terms, opts ...Option) *Engine {
	e := &Engine{
		terms: terms,
		round: units.NewRounder(units.Liters),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the aggregate output of one pipeline run
type Result struct {
	Inputs         NormalizedInputs  `json:"inputs"`
	Sparge         SpargeDecision    `json:"sparge"`
	Evaporation    EvaporationResult `json:"evaporation"`
	Requirements   Requirements      `json:"requirements"`
	Flow           FlowResult        `json:"flow"`
	SpargeEstimate SpargeEstimate    `json:"sparge_estimate"`
	Validation     Validation        `json:"validation"`
}

// Resolve runs the full pipeline on a raw recipe
func (e *Engine) Resolve(rec recipe.Recipe) (Result, error) {
	in, err := e.Normalize(rec)
	if err != nil {
		return Result{}, err
	}
	return e.ResolveInputs(in), nil
}

// ResolveInputs runs the pipeline stages in their mandatory order on
// already-normalized inputs
func (e *Engine) ResolveInputs(in NormalizedInputs) Result {
	dec := e.Classify(in)
	evap := e.SolveEvaporation(in)
	req := e.CalcRequirements(in, dec, evap)
	flow := e.SolveFlow(in, evap, req)
	est := e.EstimateSparge(in, evap, flow)
	val := e.Validate(in, dec, evap, flow, est)

	return Result{
		Inputs:         in,
		Sparge:         dec,
		Evaporation:    evap,
		Requirements:   req,
		Flow:           flow,
		SpargeEstimate: est,
		Validation:     val,
	}
}

// Flags collects every assumption and correction note across the result, in
// pipeline order, for callers that surface a single list
func (r Result) Flags() []string {
	var flags []string
	flags = append(flags, r.Sparge.Conflicts...)
	for _, f := range []string{r.Evaporation.EvapRateFlag, r.Evaporation.TrubLossFlag, r.Evaporation.PreBoilFlag} {
		if f != "" {
			flags = append(flags, f)
		}
	}
	flags = append(flags, r.Requirements.Notes...)
	if r.Flow.WasAdjusted {
		flags = append(flags, adjustmentNote(r.Flow))
	}
	if r.SpargeEstimate.Clamped {
		flags = append(flags, r.SpargeEstimate.Note)
	}
	return flags
}

func adjustmentNote(f FlowResult) string {
	return fmt.Sprintf("Adjusted trub/chiller loss to %.2f L to land the into-fermenter volume on the batch size (moved %.2f L)",
		f.AdjustedTrubChillerLossL, f.AdjustmentL)
}
