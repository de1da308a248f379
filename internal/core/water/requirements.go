package water

import (
	"fmt"

	"brewprints/internal/core/units"
)

// Requirement methods, named for how the plan was produced
const (
	PlanExplicit   = "explicit"
	PlanRatio      = "ratio"
	PlanBackSolved = "back_solved"
)

// Requirements is the filled-in water plan the flow solver consumes.
// MashWaterL excludes the mash tun deadspace; StrikeL includes it
type Requirements struct {
	MashWaterL float64  `json:"mash_water_l"`
	SpargeL    float64  `json:"sparge_l"`
	StrikeL    float64  `json:"strike_l"`
	TotalL     float64  `json:"total_l"`
	Method     string   `json:"method"`
	Notes      []string `json:"notes,omitempty"`
}

// CalcRequirements fills in missing strike/sparge volumes. Declared step
// water wins; a water/grain ratio is the next best plan; otherwise the total
// is back-solved from the target volume and split. No-sparge systems route
// everything into the strike
func (e *Engine) CalcRequirements(in NormalizedInputs, dec SpargeDecision, evap EvaporationResult) Requirements {
	deadspace := in.Equipment.MashTunDeadspaceL
	targetCold := coldTarget(in, evap)

	req := Requirements{}
	mashKnown := in.MashWater.StrikeWaterL > 0
	spargeKnown := in.MashWater.SpargeWaterL > 0

	switch {
	case mashKnown:
		req.Method = PlanExplicit
		req.MashWaterL = in.MashWater.StrikeWaterL
		switch {
		case spargeKnown && dec.UsesSparge:
			req.SpargeL = in.MashWater.SpargeWaterL
		case spargeKnown:
			// declared sparge water on a no-sparge system lands in the mash
			req.MashWaterL += in.MashWater.SpargeWaterL
			req.Notes = append(req.Notes, fmt.Sprintf(
				"Routed %.2f L of declared sparge water into the mash (no-sparge system)", in.MashWater.SpargeWaterL))
		case dec.UsesSparge:
			req.SpargeL = requiredSparge(in, targetCold, req.MashWaterL+deadspace)
			req.Notes = append(req.Notes, "Derived sparge volume from the target pre-boil volume")
		}

	case in.MashWater.HasRatio && in.Grain.TotalWeightKg > 0:
		req.Method = PlanRatio
		req.MashWaterL = units.RatioQtLbToLKg(in.MashWater.RatioQtLb) * in.Grain.TotalWeightKg
		req.Notes = append(req.Notes, fmt.Sprintf(
			"Computed mash water from the %.2f qt/lb water/grain ratio", in.MashWater.RatioQtLb))
		switch {
		case spargeKnown && dec.UsesSparge:
			req.SpargeL = in.MashWater.SpargeWaterL
		case dec.UsesSparge:
			if short := requiredSparge(in, targetCold, req.MashWaterL+deadspace); short > 0 {
				req.SpargeL = short
				req.Notes = append(req.Notes, "Routed the pre-boil shortfall into the sparge")
			}
		}

	default:
		req.Method = PlanBackSolved
		total := nonNeg(targetCold + in.Grain.AbsorptionL + in.Equipment.LauterDeadspaceL - in.Equipment.TopUpKettleL)
		switch {
		case spargeKnown && dec.UsesSparge:
			req.SpargeL = in.MashWater.SpargeWaterL
			req.MashWaterL = nonNeg(total - req.SpargeL - deadspace)
		case dec.UsesSparge:
			strike := total * units.DefaultStrikeFraction
			req.SpargeL = total - strike
			req.MashWaterL = nonNeg(strike - deadspace)
			req.Notes = append(req.Notes, fmt.Sprintf(
				"Split required water %.0f/%.0f between strike and sparge",
				units.DefaultStrikeFraction*100, (1-units.DefaultStrikeFraction)*100))
		default:
			req.MashWaterL = nonNeg(total - deadspace)
			req.Notes = append(req.Notes, "Routed all required water into the strike (no-sparge system)")
		}
	}

	req.StrikeL = req.MashWaterL + deadspace
	req.TotalL = req.StrikeL + req.SpargeL
	return req
}

// coldTarget is the room-temperature volume the kettle must reach. The hot
// pre-boil volume is reconstructed from the solved post-boil volume plus
// evaporation so it stays meaningful even when the declared boil size was
// absent or repaired
func coldTarget(in NormalizedInputs, evap EvaporationResult) float64 {
	if in.IsNoBoil {
		return evap.PostBoilVolumeL
	}
	hot := evap.PostBoilVolumeL + evap.EvapLossL
	return hot / (1 + units.ThermalFactor)
}

// requiredSparge is the sparge volume implied by the target cold volume and
// the strike water that survives the grain bed, clamped at zero
func requiredSparge(in NormalizedInputs, targetCold, strike float64) float64 {
	return nonNeg(targetCold - (strike - in.Grain.AbsorptionL - in.Equipment.LauterDeadspaceL) - in.Equipment.TopUpKettleL)
}
