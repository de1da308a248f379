// Package color estimates beer color with the Morey SRM correlation
package color

import (
	"fmt"
	"math"

	"brewprints/internal/core/recipe"
	"brewprints/internal/core/units"
)

// Morey correlation constants: SRM = 1.4922 * MCU^0.6859, fitted up to ~50 SRM
const (
	moreyScale    = 1.4922
	moreyExponent = 0.6859
	moreyFitMax   = 50.0

	ebcPerSRM = 1.97
)

// Result is the solved color triple
type Result struct {
	MCU   float64  `json:"mcu"`
	SRM   float64  `json:"srm"`
	EBC   float64  `json:"ebc"`
	Flags []string `json:"flags,omitempty"`
}

// Calc estimates MCU/SRM/EBC for a validated recipe. Fermentables without a
// declared color contribute nothing and are flagged
func Calc(rec recipe.Recipe) (Result, error) {
	if err := recipe.Validate(rec); err != nil {
		return Result{}, err
	}

	res := Result{}
	batchGal := units.LToGal(rec.BatchSizeL)

	uncolored := 0
	for _, f := range rec.Fermentables {
		if f.AmountKg <= 0 {
			continue
		}
		lov, ok := f.ColorLovibond.Get()
		if !ok {
			uncolored++
			continue
		}
		res.MCU += units.KgToLb(f.AmountKg) * lov / batchGal
	}
	if uncolored > 0 {
		res.Flags = append(res.Flags, fmt.Sprintf("%d fermentable(s) without a declared color were skipped", uncolored))
	}

	res.SRM = moreyScale * math.Pow(res.MCU, moreyExponent)
	res.EBC = res.SRM * ebcPerSRM
	if res.SRM > moreyFitMax {
		res.Flags = append(res.Flags, fmt.Sprintf(
			"SRM %.0f is beyond the ~%.0f SRM range the Morey correlation was fitted on", res.SRM, moreyFitMax))
	}
	return res, nil
}
