// Package ibu estimates bitterness with the Tinseth utilization model
package ibu

import (
	"fmt"
	"math"
	"strings"

	"brewprints/internal/core/recipe"
)

// Tinseth model constants
const (
	bignessBase  = 1.65
	bignessRoot  = 0.000125
	timeShape    = 0.04
	maxUtilScale = 4.15

	// AssumedBoilGravity stands in when the caller has no gravity estimate
	AssumedBoilGravity = 1.050
)

// Addition is the solved contribution of one hop addition
type Addition struct {
	Name           string  `json:"name"`
	IBU            float64 `json:"ibu"`
	UtilizationPct float64 `json:"utilization_pct"`
}

// Result is the summed bitterness plus the per-addition breakdown
type Result struct {
	IBU         float64    `json:"ibu"`
	BoilGravity float64    `json:"boil_gravity"`
	PerHop      []Addition `json:"per_hop"`
	Flags       []string   `json:"flags,omitempty"`
}

// Calc estimates total IBU for a validated recipe. og is the estimated or
// measured original gravity; utilization runs against the boil gravity
// derived from it
func Calc(rec recipe.Recipe, og float64) (Result, error) {
	if err := recipe.Validate(rec); err != nil {
		return Result{}, err
	}

	res := Result{PerHop: []Addition{}}
	if og <= 1 {
		og = AssumedBoilGravity
		res.Flags = append(res.Flags, fmt.Sprintf("Assumed %.3f boil gravity", AssumedBoilGravity))
	}
	res.BoilGravity = boilGravity(rec, og)

	bigness := bignessBase * math.Pow(bignessRoot, res.BoilGravity-1)
	for _, h := range rec.Hops {
		if h.AmountKg <= 0 || h.AlphaAcidPct <= 0 || isDryHop(h) {
			continue
		}
		util := bigness * (1 - math.Exp(-timeShape*h.TimeMin)) / maxUtilScale
		mgPerL := h.AlphaAcidPct / 100 * h.AmountKg * 1e6 / rec.BatchSizeL
		add := Addition{Name: h.Name, IBU: util * mgPerL, UtilizationPct: util * 100}
		res.IBU += add.IBU
		res.PerHop = append(res.PerHop, add)
	}

	if res.IBU > 100 {
		res.Flags = append(res.Flags, fmt.Sprintf("Estimated %.0f IBU exceeds the ~100 IBU perceptual ceiling", res.IBU))
	}
	return res, nil
}

// boilGravity dilutes the original gravity back to the boil volume. Without a
// usable boil size the OG itself is the best available stand-in
func boilGravity(rec recipe.Recipe, og float64) float64 {
	boil := rec.BoilSizeL.Or(0)
	if boil <= 0 && rec.Equipment != nil {
		boil = rec.Equipment.BoilSizeL.Or(0)
	}
	if boil < rec.BatchSizeL {
		return og
	}
	return 1 + (og-1)*rec.BatchSizeL/boil
}

// isDryHop reports whether the addition never sees hot wort
func isDryHop(h recipe.Hop) bool {
	return strings.Contains(strings.ToLower(h.Use), "dry")
}
