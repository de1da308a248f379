package water

import (
	"math"

	"brewprints/internal/core/units"
)

// FlowResult is the seven-stage volume chain. Every stage holds the value the
// user would see at display precision, because later stages are computed from
// the displayed numbers, not full-precision floats
type FlowResult struct {
	StrikeL      float64 `json:"strike_l"`
	TotalMashL   float64 `json:"total_mash_l"`
	IntoKettleL  float64 `json:"into_kettle_l"`
	PreBoilL     float64 `json:"pre_boil_l"`
	PostBoilL    float64 `json:"post_boil_l"`
	ToFermenterL float64 `json:"to_fermenter_l"`
	PackagingL   float64 `json:"packaging_l"`

	ThermalExpansionL   float64 `json:"thermal_expansion_l"`
	ThermalContractionL float64 `json:"thermal_contraction_l"`

	// AdjustedTrubChillerLossL is the trub/chiller loss actually applied.
	// When reconciliation had to move it away from the solver's value,
	// WasAdjusted is set and AdjustmentL records how far it moved
	AdjustedTrubChillerLossL float64 `json:"adjusted_trub_chiller_loss_l"`
	WasAdjusted              bool    `json:"was_adjusted"`
	AdjustmentL              float64 `json:"adjustment_l"`
}

// SolveFlow propagates volume through the process chain and forces the
// into-fermenter volume onto the rounded batch size. Trub/chiller loss is the
// least physically fixed input, so it is the adjustment variable of last
// resort: drift beyond the tolerance is never accepted, it is solved away
func (e *Engine) SolveFlow(in NormalizedInputs, evap EvaporationResult, req Requirements) FlowResult {
	r := e.round.Round

	var f FlowResult
	f.StrikeL = r(req.MashWaterL) + r(in.Equipment.MashTunDeadspaceL)
	f.TotalMashL = f.StrikeL + r(req.SpargeL)
	f.IntoKettleL = nonNeg(f.TotalMashL - r(in.Grain.AbsorptionL) + r(in.Equipment.TopUpKettleL))

	if in.IsNoBoil {
		f.PreBoilL = f.IntoKettleL
		f.PostBoilL = r(evap.PostBoilVolumeL)
	} else {
		f.ThermalExpansionL = r(f.IntoKettleL * units.ThermalFactor)
		f.PreBoilL = f.IntoKettleL + f.ThermalExpansionL
		f.PostBoilL = nonNeg(f.PreBoilL - r(evap.EvapLossL))
		f.ThermalContractionL = r(f.PostBoilL * units.ThermalFactor)
	}

	base := f.PostBoilL - f.ThermalContractionL
	trub := r(evap.TrubChillerLossL)
	topUp := r(in.Equipment.TopUpWaterL)
	target := r(in.BatchSizeL)

	f.AdjustedTrubChillerLossL = trub
	f.ToFermenterL = nonNeg(base - trub + topUp)

	if math.Abs(f.ToFermenterL-target) > units.ReconcileToleranceL {
		adjusted := base + topUp - target
		f.AdjustmentL = units.Round2(math.Abs(adjusted - trub))
		f.AdjustedTrubChillerLossL = adjusted
		f.WasAdjusted = true
		f.ToFermenterL = nonNeg(base - adjusted + topUp)
	}

	f.PackagingL = nonNeg(f.ToFermenterL - r(in.Equipment.FermenterLossL))
	return f
}
