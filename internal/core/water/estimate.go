package water

import (
	"fmt"
	"math"

	"brewprints/internal/core/units"
)

// SpargeEstimate is the sparge volume implied by the solved flow. A negative
// implied volume is clamped to zero and noted, never passed downstream
type SpargeEstimate struct {
	RequiredSpargeL float64 `json:"required_sparge_l"`
	Clamped         bool    `json:"clamped"`
	Note            string  `json:"note,omitempty"`
}

// Validation is the non-fatal outcome of the consistency checks. Warnings
// flag unusual but workable numbers; errors mean the volume model itself is
// internally inconsistent. Computation never halts on either
type Validation struct {
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

// EstimateSparge computes the sparge volume the flow implies
func (e *Engine) EstimateSparge(in NormalizedInputs, evap EvaporationResult, flow FlowResult) SpargeEstimate {
	targetCold := coldTarget(in, evap)
	required := targetCold - (flow.StrikeL - in.Grain.AbsorptionL - in.Equipment.LauterDeadspaceL) - in.Equipment.TopUpKettleL
	if required < 0 {
		return SpargeEstimate{
			Clamped: true,
			Note:    fmt.Sprintf("Calculated sparge volume %.2f L was negative; clamped to zero", required),
		}
	}
	return SpargeEstimate{RequiredSpargeL: e.round.Round(required)}
}

// Validate runs the water sanity checks over the finished flow
func (e *Engine) Validate(in NormalizedInputs, dec SpargeDecision, evap EvaporationResult, flow FlowResult, est SpargeEstimate) Validation {
	v := Validation{Warnings: []string{}, Errors: []string{}}
	r := e.round.Round

	if est.Clamped {
		v.Warnings = append(v.Warnings, est.Note)
	}

	// ratio checks only make sense when water is actually split
	if dec.UsesSparge && flow.TotalMashL > 0 {
		ratio := flow.StrikeL / flow.TotalMashL
		if ratio < units.StrikeRatioMin {
			v.Warnings = append(v.Warnings, fmt.Sprintf(
				"Strike water is only %.0f%% of total water; expected at least %.0f%%",
				ratio*100, units.StrikeRatioMin*100))
		} else if ratio > units.StrikeRatioMax {
			v.Warnings = append(v.Warnings, fmt.Sprintf(
				"Strike water is %.0f%% of total water; expected at most %.0f%%",
				ratio*100, units.StrikeRatioMax*100))
		}
	}

	if sparge := flow.TotalMashL - flow.StrikeL; sparge > units.SpargeFractionWarn*in.BatchSizeL {
		v.Warnings = append(v.Warnings, fmt.Sprintf(
			"Sparge volume %.2f L exceeds %.0f%% of the %.2f L batch size",
			sparge, units.SpargeFractionWarn*100, in.BatchSizeL))
	}

	// Water balance across the whole flow, measured against the solver's
	// trub/chiller loss. Reconciliation hides drift by moving trub, so the
	// pre-adjustment value is what exposes a genuinely inconsistent model.
	// Lauter deadspace is water the plan budgets but the kettle never sees,
	// so it counts as consumed. Tolerance is relative to the batch size,
	// not an absolute volume
	totalIn := flow.TotalMashL + r(in.Equipment.TopUpKettleL) + r(in.Equipment.TopUpWaterL)
	accounted := r(in.Grain.AbsorptionL) + r(in.Equipment.LauterDeadspaceL) + r(evap.EvapLossL) +
		flow.ThermalContractionL - flow.ThermalExpansionL +
		r(evap.TrubChillerLossL) + r(in.BatchSizeL)
	if drift := math.Abs(totalIn - accounted); drift > units.WaterBalanceTolerancePct*in.BatchSizeL {
		v.Errors = append(v.Errors, fmt.Sprintf(
			"Water balance is off by %.2f L, more than %.0f%% of the batch size; the volume model is inconsistent",
			drift, units.WaterBalanceTolerancePct*100))
	}

	return v
}
