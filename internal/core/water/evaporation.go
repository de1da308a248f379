package water

import (
	"fmt"
	"math"

	"brewprints/internal/core/units"
)

// Evaporation methods, named for the data source that won the trust order
const (
	MethodNoBoil      = "no_boil"
	MethodBoilOffRate = "boil_off_rate"
	MethodTrubLoss    = "trub_loss"
	MethodEvapRate    = "evap_rate"
	MethodAssumedRate = "assumed_rate"
)

// EvaporationResult carries the solved boil losses. Empty flag fields mean
// nothing was assumed or corrected for that quantity
type EvaporationResult struct {
	EvapLossL        float64 `json:"evap_loss_l"`
	PostBoilVolumeL  float64 `json:"post_boil_volume_l"`
	BoilOffRateLHr   float64 `json:"boil_off_rate_l_hr"`
	EvapRatePctHr    float64 `json:"evap_rate_pct_hr"`
	TrubChillerLossL float64 `json:"trub_chiller_loss_l"`
	Method           string  `json:"method"`

	EvapRateFlag string `json:"evap_rate_flag,omitempty"`
	TrubLossFlag string `json:"trub_loss_flag,omitempty"`
	PreBoilFlag  string `json:"pre_boil_flag,omitempty"`
}

// SolveEvaporation derives the boil losses from whichever measurement is most
// trusted. Trust order for boiling recipes: absolute boil-off rate, then
// trub/chiller loss, then percentage evaporation rate, then an assumed
// typical rate with a bounded repair search
func (e *Engine) SolveEvaporation(in NormalizedInputs) EvaporationResult {
	if in.IsNoBoil {
		return solveNoBoil(in)
	}
	return solveBoil(in)
}

// solveNoBoil handles recipes that never boil: evaporation and boil-off are
// zero by definition and only the post-boil/trub pair needs solving
func solveNoBoil(in NormalizedInputs) EvaporationResult {
	res := EvaporationResult{Method: MethodNoBoil}
	topUp := in.Equipment.TopUpWaterL

	if trub, ok := in.Equipment.TrubChillerLossL.Get(); ok {
		res.TrubChillerLossL = trub
		res.PostBoilVolumeL = in.BatchSizeL + trub - topUp
		if res.PostBoilVolumeL < 0 {
			res.PostBoilVolumeL = 0
			res.PreBoilFlag = "Top-up water exceeds the no-boil volume requirement"
		}
		return res
	}

	res.PostBoilVolumeL = in.BoilSizeL
	res.TrubChillerLossL = nonNeg(res.PostBoilVolumeL - in.BatchSizeL - topUp)
	res.TrubLossFlag = "Calculated trub/chiller loss for no-boil recipe"
	return res
}

// solveBoil walks the four-tier trust order for boiling recipes
func solveBoil(in NormalizedInputs) EvaporationResult {
	hours := in.BoilTimeMin / 60
	boil := in.BoilSizeL
	batch := in.BatchSizeL
	topUp := in.Equipment.TopUpWaterL

	if rate, ok := in.Equipment.BoilOffRateLHr.Get(); ok && rate > 0 {
		res := EvaporationResult{Method: MethodBoilOffRate, BoilOffRateLHr: rate}
		res.EvapLossL = rate * hours
		res.PostBoilVolumeL = nonNeg(boil - res.EvapLossL)
		res.TrubChillerLossL, res.PreBoilFlag = backSolveTrub(res.PostBoilVolumeL, topUp, batch)
		if supplied, ok := in.Equipment.TrubChillerLossL.Get(); ok &&
			math.Abs(supplied-res.TrubChillerLossL) > units.TrubAgreementToleranceL {
			res.TrubLossFlag = fmt.Sprintf(
				"Adjusted from %.2f to ensure target volume based on absolute boil-off rate", supplied)
		}
		res.EvapRatePctHr = derivePct(res.EvapLossL, boil, hours)
		if pct, ok := in.Equipment.EvapRatePctHr.Get(); ok && pct > 0 {
			if alt := boil * (pct / 100) * hours; math.Abs(alt-res.EvapLossL) > units.TrubAgreementToleranceL {
				res.EvapRateFlag = fmt.Sprintf(
					"Evaporation rate %.1f%%/hr ignored in favor of absolute boil-off rate", pct)
			}
		}
		return checkRate(res)
	}

	if trub, ok := in.Equipment.TrubChillerLossL.Get(); ok {
		res := EvaporationResult{Method: MethodTrubLoss, TrubChillerLossL: trub}
		res.PostBoilVolumeL = (batch + trub - topUp) / (1 - units.ThermalFactor)
		if res.PostBoilVolumeL < 0 {
			res.PostBoilVolumeL = 0
		}
		res.EvapLossL = boil - res.PostBoilVolumeL
		if res.EvapLossL < 0 {
			res.EvapLossL = 0
			res.PreBoilFlag = "Pre-boil volume may be too low for target batch size"
		}
		if hours > 0 {
			res.BoilOffRateLHr = res.EvapLossL / hours
		}
		res.EvapRatePctHr = derivePct(res.EvapLossL, boil, hours)
		res.EvapRateFlag = "Boil-off rate derived from trub/chiller loss"
		return checkRate(res)
	}

	if pct, ok := in.Equipment.EvapRatePctHr.Get(); ok && pct > 0 {
		res := EvaporationResult{Method: MethodEvapRate, EvapRatePctHr: pct}
		res.EvapLossL = boil * (pct / 100) * hours
		res.PostBoilVolumeL = nonNeg(boil - res.EvapLossL)
		if hours > 0 {
			res.BoilOffRateLHr = res.EvapLossL / hours
		}
		res.TrubChillerLossL, res.PreBoilFlag = backSolveTrub(res.PostBoilVolumeL, topUp, batch)
		return checkRate(res)
	}

	return checkRate(solveAssumed(in, hours))
}

// solveAssumed is the tier of last resort: assume the typical boil-off rate,
// and when that lands the back-solved trub loss outside the acceptable range,
// walk the rate down toward the minimum in fixed steps until it fits. The
// search runs at most (Typical-Min)/Step trials and always terminates. When
// it exhausts, trub is pinned to the default and the post-boil volume is
// back-solved from it instead
func solveAssumed(in NormalizedInputs, hours float64) EvaporationResult {
	boil := in.BoilSizeL
	batch := in.BatchSizeL
	topUp := in.Equipment.TopUpWaterL

	res := EvaporationResult{Method: MethodAssumedRate}

	rate := units.BoilOffTypicalLPerHr
	trub := trubForRate(rate, hours, boil, topUp, batch)
	if trubInRange(trub) {
		res.EvapRateFlag = fmt.Sprintf("Assumed typical boil-off rate of %.1f L/hr", rate)
	} else {
		found := false
		for r := rate - units.BoilOffSearchStep; r >= units.BoilOffMinLPerHr-1e-9; r -= units.BoilOffSearchStep {
			if t := trubForRate(r, hours, boil, topUp, batch); trubInRange(t) {
				rate, trub, found = r, t, true
				break
			}
		}
		if !found {
			res.TrubChillerLossL = units.TrubLossDefaultL
			res.PostBoilVolumeL = (batch + res.TrubChillerLossL - topUp) / (1 - units.ThermalFactor)
			res.EvapLossL = nonNeg(boil - res.PostBoilVolumeL)
			if hours > 0 {
				res.BoilOffRateLHr = res.EvapLossL / hours
			}
			res.EvapRatePctHr = derivePct(res.EvapLossL, boil, hours)
			if trub > units.TrubLossMaxL {
				res.PreBoilFlag = "Pre-boil volume may be too high for target batch size"
			} else {
				res.PreBoilFlag = "Pre-boil volume may be too low for target batch size"
			}
			res.TrubLossFlag = fmt.Sprintf("Pinned trub/chiller loss to the %.1f L default", units.TrubLossDefaultL)
			return res
		}
		res.EvapRateFlag = fmt.Sprintf("Assumed boil-off rate lowered to %.2f L/hr to keep trub/chiller loss plausible", rate)
	}

	res.BoilOffRateLHr = rate
	res.EvapLossL = rate * hours
	res.PostBoilVolumeL = nonNeg(boil - res.EvapLossL)
	res.TrubChillerLossL = nonNeg(trub)
	res.EvapRatePctHr = derivePct(res.EvapLossL, boil, hours)
	return res
}

// backSolveTrub solves the trub/chiller loss that makes the cold post-boil
// volume plus top-up land exactly on the batch size, clamped at zero with a
// flag when the pre-boil volume cannot reach the target
func backSolveTrub(postBoil, topUp, batch float64) (float64, string) {
	trub := postBoil*(1-units.ThermalFactor) + topUp - batch
	if trub < 0 {
		return 0, "Pre-boil volume may be too low for target batch size"
	}
	return trub, ""
}

// trubForRate back-solves trub for a trial boil-off rate
func trubForRate(rate, hours, boil, topUp, batch float64) float64 {
	post := nonNeg(boil - rate*hours)
	return post*(1-units.ThermalFactor) + topUp - batch
}

// trubInRange checks the fixed physical acceptance range
func trubInRange(trub float64) bool {
	return trub >= units.TrubLossMinL && trub <= units.TrubLossMaxL
}

// derivePct converts an evaporation loss back to a percent-per-hour rate
func derivePct(evap, boil, hours float64) float64 {
	if boil <= 0 || hours <= 0 {
		return 0
	}
	return evap / boil * 100 / hours
}

// checkRate applies the soft warn bounds to the resulting boil-off rate. At
// most one rate-related flag survives; an earlier assumption or derivation
// note wins over the bounds warning
func checkRate(res EvaporationResult) EvaporationResult {
	if res.EvapRateFlag != "" {
		return res
	}
	if res.BoilOffRateLHr > 0 && res.BoilOffRateLHr < units.BoilOffMinLPerHr {
		res.EvapRateFlag = fmt.Sprintf("Boil-off rate %.2f L/hr is below the typical %.1f-%.1f L/hr range",
			res.BoilOffRateLHr, units.BoilOffMinLPerHr, units.BoilOffMaxLPerHr)
	} else if res.BoilOffRateLHr > units.BoilOffMaxLPerHr {
		res.EvapRateFlag = fmt.Sprintf("Boil-off rate %.2f L/hr is above the typical %.1f-%.1f L/hr range",
			res.BoilOffRateLHr, units.BoilOffMinLPerHr, units.BoilOffMaxLPerHr)
	}
	return res
}
