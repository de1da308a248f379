package recipe

import (
	"errors"
	"fmt"
	"strings"
)

// Structural failures. Everything else the validator can repair is a warning
var (
	ErrBatchSize       = errors.New("recipe: batch size must be positive")
	ErrNilFermentables = errors.New("recipe: fermentables collection missing")
	ErrNilMash         = errors.New("recipe: mash steps collection missing")
)

// Validate checks the structural invariants every calculator assumes. It
// returns the first hard failure; repairable issues belong to Clamp
func Validate(r Recipe) error {
	if r.BatchSizeL <= 0 {
		return fmt.Errorf("%w (got %g)", ErrBatchSize, r.BatchSizeL)
	}
	if r.Fermentables == nil {
		return ErrNilFermentables
	}
	if r.Mash.Steps == nil {
		return ErrNilMash
	}
	return nil
}

// Clamp range-clamps the numeric fields in place and returns a warning per
// repaired value. Calculators downstream assume clamped inputs and never
// re-validate
func Clamp(r *Recipe) []string {
	var warns []string
	note := func(format string, args ...any) {
		warns = append(warns, fmt.Sprintf(format, args...))
	}

	clampMin := func(field string, v *float64, min float64) {
		if *v < min {
			note("%s %g clamped to %g", field, *v, min)
			*v = min
		}
	}
	clampOpt := func(field string, o *Opt, min, max float64) {
		v, ok := o.Get()
		if !ok {
			return
		}
		switch {
		case v < min:
			note("%s %g clamped to %g", field, v, min)
			*o = Some(min)
		case max > min && v > max:
			note("%s %g clamped to %g", field, v, max)
			*o = Some(max)
		}
	}

	clampOpt("boil size", &r.BoilSizeL, 0, 0)
	clampOpt("boil time", &r.BoilTimeMin, 0, 0)
	clampOpt("efficiency", &r.EfficiencyPct, 0, 100)
	clampOpt("measured OG", &r.MeasuredOG, 0, 0)
	clampOpt("measured FG", &r.MeasuredFG, 0, 0)

	for i := range r.Fermentables {
		f := &r.Fermentables[i]
		clampMin(fmt.Sprintf("fermentable %q amount", f.Name), &f.AmountKg, 0)
		clampOpt(fmt.Sprintf("fermentable %q yield", f.Name), &f.YieldPct, 0, 100)
		clampOpt(fmt.Sprintf("fermentable %q color", f.Name), &f.ColorLovibond, 0, 0)
	}
	for i := range r.Hops {
		h := &r.Hops[i]
		clampMin(fmt.Sprintf("hop %q amount", h.Name), &h.AmountKg, 0)
		clampMin(fmt.Sprintf("hop %q time", h.Name), &h.TimeMin, 0)
		if h.AlphaAcidPct < 0 || h.AlphaAcidPct > 100 {
			note("hop %q alpha acid %g clamped", h.Name, h.AlphaAcidPct)
			if h.AlphaAcidPct < 0 {
				h.AlphaAcidPct = 0
			} else {
				h.AlphaAcidPct = 100
			}
		}
	}
	for i := range r.Yeasts {
		clampOpt(fmt.Sprintf("yeast %q attenuation", r.Yeasts[i].Name), &r.Yeasts[i].AttenuationPct, 0, 100)
	}
	for i := range r.Mash.Steps {
		s := &r.Mash.Steps[i]
		clampOpt(fmt.Sprintf("mash step %q infusion", s.Name), &s.InfuseAmountL, 0, 0)
		clampOpt(fmt.Sprintf("mash step %q time", s.Name), &s.StepTimeMin, 0, 0)
	}
	clampOpt("sparge temperature", &r.Mash.SpargeTempC, 0, 0)
	clampOpt("water/grain ratio", &r.Mash.WaterGrainRatioQtLb, 0, 0)

	if e := r.Equipment; e != nil {
		clampOpt("mash tun deadspace", &e.MashTunDeadspaceL, 0, 0)
		clampOpt("lauter deadspace", &e.LauterDeadspaceL, 0, 0)
		clampOpt("top up kettle", &e.TopUpKettleL, 0, 0)
		clampOpt("top up water", &e.TopUpWaterL, 0, 0)
		clampOpt("trub/chiller loss", &e.TrubChillerLossL, 0, 0)
		clampOpt("fermenter loss", &e.FermenterLossL, 0, 0)
		clampOpt("boil-off rate", &e.BoilOffRateLHr, 0, 0)
		clampOpt("evaporation rate", &e.EvapRatePctHr, 0, 100)
		clampOpt("equipment batch size", &e.BatchSizeL, 0, 0)
		clampOpt("equipment boil size", &e.BoilSizeL, 0, 0)
	}

	return warns
}

// foldType lowercases and trims a type string for substring matching
func foldType(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
