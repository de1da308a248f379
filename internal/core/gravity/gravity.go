// Package gravity estimates original gravity, final gravity and ABV from the
// grain bill. Like the water engine it never fails on questionable numbers:
// it assumes, computes and flags
package gravity

import (
	"fmt"
	"strings"

	"brewprints/internal/core/recipe"
	"brewprints/internal/core/units"
)

// Empirical extraction values. Sucrose defines 100% yield
const (
	SucrosePPG = 46.214

	DefaultEfficiencyPct  = 70.0
	DefaultAttenuationPct = 75.0

	// Default yields by fermentable class when the recipe omits one
	DefaultYieldSolidPct      = 75.0
	DefaultYieldSugarPct      = 100.0
	DefaultYieldDryExtractPct = 95.0
	DefaultYieldExtractPct    = 78.0

	// ABV per gravity-point drop
	abvFactor = 131.25
)

// Result is the solved gravity triple plus the assumptions made on the way
type Result struct {
	OG             float64  `json:"og"`
	FG             float64  `json:"fg"`
	ABVPct         float64  `json:"abv_pct"`
	GravityPoints  float64  `json:"gravity_points"`
	EfficiencyPct  float64  `json:"efficiency_pct"`
	AttenuationPct float64  `json:"attenuation_pct"`
	Flags          []string `json:"flags,omitempty"`
}

// Calc estimates OG/FG/ABV for a validated recipe
func Calc(rec recipe.Recipe) (Result, error) {
	if err := recipe.Validate(rec); err != nil {
		return Result{}, err
	}

	res := Result{EfficiencyPct: rec.EfficiencyPct.Or(DefaultEfficiencyPct)}
	if !rec.EfficiencyPct.Present() {
		res.Flags = append(res.Flags, fmt.Sprintf("Assumed %.0f%% mash efficiency", DefaultEfficiencyPct))
	}
	if res.EfficiencyPct <= 0 || res.EfficiencyPct > 100 {
		res.Flags = append(res.Flags, fmt.Sprintf(
			"Mash efficiency %.1f%% out of range; using %.0f%%", res.EfficiencyPct, DefaultEfficiencyPct))
		res.EfficiencyPct = DefaultEfficiencyPct
	}

	batchGal := units.LToGal(rec.BatchSizeL)
	assumedYields := 0
	for _, f := range rec.Fermentables {
		if f.AmountKg <= 0 {
			continue
		}
		yield, assumed := yieldPct(f)
		if assumed {
			assumedYields++
		}
		ppg := SucrosePPG * yield / 100
		points := units.KgToLb(f.AmountKg) * ppg / batchGal
		if f.IsSolid() {
			points *= res.EfficiencyPct / 100
		}
		res.GravityPoints += points
	}
	if assumedYields > 0 {
		res.Flags = append(res.Flags, fmt.Sprintf("Assumed extraction yield for %d fermentable(s)", assumedYields))
	}

	res.AttenuationPct = attenuation(rec.Yeasts)
	if res.AttenuationPct == 0 {
		res.AttenuationPct = DefaultAttenuationPct
		res.Flags = append(res.Flags, fmt.Sprintf("Assumed %.0f%% apparent attenuation", DefaultAttenuationPct))
	}

	res.OG = 1 + res.GravityPoints/1000
	res.FG = res.OG - (res.OG-1)*res.AttenuationPct/100
	res.ABVPct = (res.OG - res.FG) * abvFactor

	if og, ok := rec.MeasuredOG.Get(); ok && abs(og-res.OG) > 0.010 {
		res.Flags = append(res.Flags, fmt.Sprintf(
			"Measured OG %.3f differs from the %.3f estimate by more than 10 points", og, res.OG))
	}
	return res, nil
}

// yieldPct resolves a fermentable's extraction yield, assuming a class
// default when the recipe omits it
func yieldPct(f recipe.Fermentable) (float64, bool) {
	if y, ok := f.YieldPct.Get(); ok && y > 0 {
		return y, false
	}
	t := strings.ToLower(f.Type)
	switch {
	case strings.Contains(t, "sugar"):
		return DefaultYieldSugarPct, true
	case strings.Contains(t, "dry extract"):
		return DefaultYieldDryExtractPct, true
	case strings.Contains(t, "extract"):
		return DefaultYieldExtractPct, true
	}
	return DefaultYieldSolidPct, true
}

// attenuation picks the strongest declared yeast attenuation, zero when none
func attenuation(yeasts []recipe.Yeast) float64 {
	var best float64
	for _, y := range yeasts {
		if a, ok := y.AttenuationPct.Get(); ok && a > best {
			best = a
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
