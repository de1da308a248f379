// Package units holds the fixed brewing constants and unit conversions the
// calculators depend on. The numeric values are load-bearing: changing any of
// them changes calculated output for real recipes, so they stay centralized
// here and are never redeclared at call sites
package units

import "math"

// Thermal expansion/contraction factor between room-temperature and boiling
// wort. Hot volume = cold x (1 + ThermalFactor); cold = hot x (1 - ThermalFactor)
const ThermalFactor = 0.04

// Quarts-per-pound to liters-per-kilogram, for water/grain ratios
const QtPerLbToLPerKg = 2.08635

// Grain absorption rates in qt/lb. Traditional lautered systems hold more
// water in the grain bed than squeezed all-in-one / no-sparge systems
const (
	AbsorptionTraditionalQtPerLb = 0.5
	AbsorptionNoSpargeQtPerLb    = 0.32
)

// GrainDisplacementLPerKg is the mash volume taken up per kilogram of dry grain
const GrainDisplacementLPerKg = 0.67

// Boil-off rate bounds in L/hr. Typical is the assumption of last resort;
// Min/Max are soft warn bounds, and the repair search walks Typical down to
// Min in SearchStep increments
const (
	BoilOffTypicalLPerHr = 4.0
	BoilOffMinLPerHr     = 2.0
	BoilOffMaxLPerHr     = 6.0
	BoilOffSearchStep    = 0.25
)

// Trub/chiller loss acceptance range and the pinned default used when the
// repair search exhausts
const (
	TrubLossMinL     = 0.0
	TrubLossMaxL     = 4.0
	TrubLossDefaultL = 1.0
)

// TrubAgreementToleranceL is how far a supplied trub/chiller loss may disagree
// with a back-solved one before the override is surfaced as a flag
const TrubAgreementToleranceL = 0.1

// Volume-balance classification thresholds in liters of pre-boil shortfall
// or excess
const (
	SpargeShortfallThresholdL = 2.0
	SpargeExcessThresholdL    = 1.0
)

// DefaultStrikeFraction splits total required water 65/35 strike/sparge when
// nothing better is known
const DefaultStrikeFraction = 0.65

// ConservativeLauterLossL stands in for lauter deadspace when no equipment
// profile is supplied
const ConservativeLauterLossL = 0.5

// ReconcileToleranceL is the maximum drift between the into-fermenter volume
// and the rounded batch size before the flow solver forces agreement
const ReconcileToleranceL = 0.01

// Sparge/strike sanity bounds used by the water validator
const (
	StrikeRatioMin     = 0.30
	StrikeRatioMax     = 0.90
	SpargeFractionWarn = 0.60
)

// WaterBalanceTolerancePct is the batch-size-relative tolerance on the total
// water balance. Exceeding it means the volume model itself is inconsistent
const WaterBalanceTolerancePct = 0.02

// LitersPerGallon converts US gallons to liters
const LitersPerGallon = 3.78541

// GalToL converts US gallons to liters
func GalToL(gal float64) float64 { return gal * LitersPerGallon }

// LToGal converts liters to US gallons
func LToGal(l float64) float64 { return l / LitersPerGallon }

// KgToLb converts kilograms to pounds
func KgToLb(kg float64) float64 { return kg * 2.20462 }

// LbToKg converts pounds to kilograms
func LbToKg(lb float64) float64 { return lb / 2.20462 }

// RatioQtLbToLKg converts a water/grain ratio from qt/lb to L/kg
func RatioQtLbToLKg(qtlb float64) float64 { return qtlb * QtPerLbToLPerKg }

// Round2 rounds to two decimals, half away from zero
func Round2(v float64) float64 { return math.Round(v*100) / 100 }

// Unit is a display volume unit
type Unit string

// Display units the callers may round in
const (
	Liters  Unit = "l"
	Gallons Unit = "gal"
)

// Valid reports whether u names a known display unit
func (u Unit) Valid() bool { return u == Liters || u == Gallons }

// Rounder rounds liter quantities to two decimals in a display unit. Stage
// volumes must carry the value the user would see, so rounding converts to
// the display unit, rounds there, and converts back
type Rounder struct {
	unit Unit
}

// NewRounder builds a Rounder for the given display unit; unknown units fall
// back to liters
func NewRounder(u Unit) Rounder {
	if !u.Valid() {
		u = Liters
	}
	return Rounder{unit: u}
}

// Unit returns the display unit the rounder operates in
func (r Rounder) Unit() Unit {
	if r.unit == "" {
		return Liters
	}
	return r.unit
}

// Round rounds a liter value to display precision in the rounder's unit
func (r Rounder) Round(liters float64) float64 {
	if r.Unit() == Gallons {
		return GalToL(Round2(LToGal(liters)))
	}
	return Round2(liters)
}
