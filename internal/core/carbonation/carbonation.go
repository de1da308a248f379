// Package carbonation sizes priming sugar additions for bottle conditioning
package carbonation

import (
	"errors"
	"fmt"
	"strings"
)

// Physical constants. Yields are grams of CO2 produced per gram of sugar;
// residual CO2 follows the ASBC solubility polynomial in degrees Fahrenheit
const (
	DefaultTargetVols = 2.4
	co2GramsPerLVol   = 1.96

	YieldSucrose  = 0.5146
	YieldDextrose = 0.4683
	YieldDME      = 0.3499

	residA = 3.0378
	residB = 0.050062
	residC = 0.00026555
)

// Soft sanity bounds for the requested carbonation level
const (
	targetVolsMin = 1.0
	targetVolsMax = 4.5
)

// ErrVolume rejects non-positive beer volumes
var ErrVolume = errors.New("carbonation: volume must be positive")

// Inputs describes one priming calculation
type Inputs struct {
	VolumeL    float64 `json:"volume_l"`
	TempC      float64 `json:"temp_c"`
	TargetVols float64 `json:"target_vols"`
	Sugar      string  `json:"sugar"`
}

// Result is the solved priming addition
type Result struct {
	TargetVols   float64  `json:"target_vols"`
	ResidualVols float64  `json:"residual_vols"`
	Sugar        string   `json:"sugar"`
	SugarG       float64  `json:"sugar_g"`
	SugarGPerL   float64  `json:"sugar_g_per_l"`
	Flags        []string `json:"flags,omitempty"`
}

// Calc sizes the priming addition. The beer temperature sets how much CO2 is
// already in solution; the sugar ferments out the difference
func Calc(in Inputs) (Result, error) {
	if in.VolumeL <= 0 {
		return Result{}, ErrVolume
	}

	res := Result{TargetVols: in.TargetVols}
	if res.TargetVols <= 0 {
		res.TargetVols = DefaultTargetVols
		res.Flags = append(res.Flags, fmt.Sprintf("Assumed %.1f volumes of CO2", DefaultTargetVols))
	}
	if res.TargetVols < targetVolsMin || res.TargetVols > targetVolsMax {
		res.Flags = append(res.Flags, fmt.Sprintf(
			"Target %.1f volumes is outside the usual %.1f-%.1f range", res.TargetVols, targetVolsMin, targetVolsMax))
	}

	res.ResidualVols = residualVols(in.TempC)

	sugar, yield, known := sugarYield(in.Sugar)
	res.Sugar = sugar
	if !known {
		res.Flags = append(res.Flags, fmt.Sprintf("Unknown priming sugar %q; assumed sucrose", in.Sugar))
	}

	needed := res.TargetVols - res.ResidualVols
	if needed <= 0 {
		res.Flags = append(res.Flags, fmt.Sprintf(
			"Residual %.2f volumes already meets the %.2f target; no priming sugar needed",
			res.ResidualVols, res.TargetVols))
		return res, nil
	}

	res.SugarGPerL = needed * co2GramsPerLVol / yield
	res.SugarG = res.SugarGPerL * in.VolumeL
	return res, nil
}

// residualVols is the CO2 already dissolved at the given beer temperature
func residualVols(tempC float64) float64 {
	tf := tempC*9/5 + 32
	return residA - residB*tf + residC*tf*tf
}

// sugarYield resolves the sugar name to its canonical form and CO2 yield.
// Unrecognized names fall back to sucrose
func sugarYield(name string) (sugar string, yield float64, known bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch {
	case n == "" || strings.Contains(n, "sucrose") || strings.Contains(n, "table"):
		return "sucrose", YieldSucrose, true
	case strings.Contains(n, "dextrose") || strings.Contains(n, "corn"):
		return "dextrose", YieldDextrose, true
	case strings.Contains(n, "dme") || strings.Contains(n, "malt"):
		return "dme", YieldDME, true
	}
	return "sucrose", YieldSucrose, false
}
