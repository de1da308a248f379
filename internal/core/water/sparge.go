package water

import (
	"fmt"

	"brewprints/internal/core/units"
)

// Confidence grades a sparge verdict
type Confidence string

// Confidence levels, strongest first
const (
	ConfidenceHigh    Confidence = "high"
	ConfidenceMedium  Confidence = "medium"
	ConfidenceLow     Confidence = "low"
	ConfidenceUnknown Confidence = "unknown"
)

// Indicator sources in fixed priority order. The first present indicator is
// authoritative; later ones can only add conflict notes
const (
	SourceExplicit      = "explicit"
	SourceEquipment     = "equipment"
	SourceVolumeBalance = "volume_balance"
	SourceTemperature   = "temperature"
	SourceRecipeType    = "recipe_type"
	SourceDefault       = "default"
)

// Indicator is one piece of sparge evidence
type Indicator struct {
	Source     string     `json:"source"`
	UsesSparge bool       `json:"uses_sparge"`
	Confidence Confidence `json:"confidence"`
	Note       string     `json:"note,omitempty"`
}

// SpargeDecision is the resolved classification plus full diagnostics
type SpargeDecision struct {
	UsesSparge bool        `json:"uses_sparge"`
	Confidence Confidence  `json:"confidence"`
	Method     string      `json:"method"`
	Conflicts  []string    `json:"conflicts,omitempty"`
	Evidence   []Indicator `json:"evidence"`
}

// Classify folds the ranked indicators into a single decision. Indicators are
// gathered in priority order; the first one wins and every later disagreeing
// indicator is recorded as a non-fatal conflict
func (e *Engine) Classify(in NormalizedInputs) SpargeDecision {
	dec := SpargeDecision{
		UsesSparge: false,
		Confidence: ConfidenceUnknown,
		Method:     SourceDefault,
	}

	decided := false
	for _, ind := range e.indicators(in) {
		dec.Evidence = append(dec.Evidence, ind)
		if !decided {
			dec.UsesSparge = ind.UsesSparge
			dec.Confidence = ind.Confidence
			dec.Method = ind.Source
			decided = true
			continue
		}
		if ind.UsesSparge != dec.UsesSparge {
			dec.Conflicts = append(dec.Conflicts, fmt.Sprintf(
				"%s indicator contradicts %s decision: %s", ind.Source, dec.Method, ind.Note))
		}
	}

	if !decided {
		dec.Evidence = append(dec.Evidence, Indicator{
			Source:     SourceDefault,
			UsesSparge: false,
			Confidence: ConfidenceUnknown,
			Note:       "no sparge indicators present; assuming no sparge",
		})
	}
	return dec
}

// indicators computes the five optional indicators in priority order:
// explicit, equipment, volumeBalance, temperature, recipeType
func (e *Engine) indicators(in NormalizedInputs) []Indicator {
	inds := make([]Indicator, 0, 5)
	if ind, ok := explicitIndicator(in); ok {
		inds = append(inds, ind)
	}
	if ind, ok := e.equipmentIndicator(in); ok {
		inds = append(inds, ind)
	}
	if ind, ok := volumeBalanceIndicator(in, e.terms); ok {
		inds = append(inds, ind)
	}
	if ind, ok := temperatureIndicator(in); ok {
		inds = append(inds, ind)
	}
	if ind, ok := e.recipeTypeIndicator(in); ok {
		inds = append(inds, ind)
	}
	return inds
}

// explicitIndicator fires when the mash schedule declares a sparge step
func explicitIndicator(in NormalizedInputs) (Indicator, bool) {
	for _, s := range in.MashWater.Steps {
		if s.Kind == StepSparge {
			return Indicator{
				Source:     SourceExplicit,
				UsesSparge: true,
				Confidence: ConfidenceHigh,
				Note:       fmt.Sprintf("explicit sparge step %q in mash schedule", s.Name),
			}, true
		}
	}
	return Indicator{}, false
}

// equipmentIndicator fires on no-sparge markers or known all-in-one systems
// in the equipment name
func (e *Engine) equipmentIndicator(in NormalizedInputs) (Indicator, bool) {
	name := in.Equipment.Name
	if name == "" {
		return Indicator{}, false
	}
	if e.terms.NoSparge(name) {
		return Indicator{
			Source:     SourceEquipment,
			UsesSparge: false,
			Confidence: ConfidenceHigh,
			Note:       fmt.Sprintf("equipment %q carries a no-sparge marker", name),
		}, true
	}
	if e.terms.AllInOne(name) {
		return Indicator{
			Source:     SourceEquipment,
			UsesSparge: false,
			Confidence: ConfidenceMedium,
			Note:       fmt.Sprintf("equipment %q is a known all-in-one system", name),
		}, true
	}
	return Indicator{}, false
}

// volumeBalanceIndicator estimates whether the strike water alone can reach
// the declared pre-boil volume. Skipped for extract and partial mash recipes
// and when there is no positive strike step or boil-size target to compare
// against
func volumeBalanceIndicator(in NormalizedInputs, terms *Terms) (Indicator, bool) {
	if terms.Extract(in.RecipeType) || terms.PartialMash(in.RecipeType) {
		return Indicator{}, false
	}
	if in.BoilSizeL <= 0 {
		return Indicator{}, false
	}
	var strike float64
	for _, s := range in.MashWater.Steps {
		if s.Kind == StepStrike && s.AmountL > 0 {
			strike = s.AmountL
			break
		}
	}
	if strike <= 0 {
		return Indicator{}, false
	}

	absorption := in.Grain.TotalWeightKg * units.RatioQtLbToLKg(units.AbsorptionTraditionalQtPerLb)
	lauterLoss := units.ConservativeLauterLossL
	if in.Equipment.Present {
		lauterLoss = in.Equipment.LauterDeadspaceL
	}
	recoverable := (strike - absorption - lauterLoss) * (1 + units.ThermalFactor)
	shortfall := in.BoilSizeL - recoverable

	ind := Indicator{Source: SourceVolumeBalance}
	switch {
	case shortfall > units.SpargeShortfallThresholdL:
		ind.UsesSparge = true
		ind.Confidence = ConfidenceHigh
		ind.Note = fmt.Sprintf("strike water recovers %.1f L, %.1f L short of the %.1f L boil target", recoverable, shortfall, in.BoilSizeL)
	case shortfall < -units.SpargeExcessThresholdL:
		ind.UsesSparge = false
		ind.Confidence = ConfidenceHigh
		ind.Note = fmt.Sprintf("strike water recovers %.1f L, %.1f L beyond the %.1f L boil target", recoverable, -shortfall, in.BoilSizeL)
	case shortfall > 0:
		ind.UsesSparge = true
		ind.Confidence = ConfidenceMedium
		ind.Note = fmt.Sprintf("strike water recovers %.1f L, slightly short of the %.1f L boil target", recoverable, in.BoilSizeL)
	default:
		ind.UsesSparge = false
		ind.Confidence = ConfidenceMedium
		ind.Note = fmt.Sprintf("strike water recovers %.1f L, covering the %.1f L boil target", recoverable, in.BoilSizeL)
	}
	return ind, true
}

// temperatureIndicator fires on a declared non-zero sparge temperature
func temperatureIndicator(in NormalizedInputs) (Indicator, bool) {
	if t, ok := in.MashWater.SpargeTempC.Get(); ok && t > 0 {
		return Indicator{
			Source:     SourceTemperature,
			UsesSparge: true,
			Confidence: ConfidenceMedium,
			Note:       fmt.Sprintf("sparge temperature %.1f C declared", t),
		}, true
	}
	return Indicator{}, false
}

// recipeTypeIndicator maps the declared recipe type to a weak verdict
func (e *Engine) recipeTypeIndicator(in NormalizedInputs) (Indicator, bool) {
	switch {
	case e.terms.Extract(in.RecipeType):
		return Indicator{
			Source:     SourceRecipeType,
			UsesSparge: false,
			Confidence: ConfidenceMedium,
			Note:       "extract recipes do not sparge",
		}, true
	case e.terms.PartialMash(in.RecipeType):
		return Indicator{
			Source:     SourceRecipeType,
			UsesSparge: false,
			Confidence: ConfidenceLow,
			Note:       "partial mash recipes rarely sparge",
		}, true
	case e.terms.AllGrain(in.RecipeType):
		return Indicator{
			Source:     SourceRecipeType,
			UsesSparge: true,
			Confidence: ConfidenceLow,
			Note:       "all grain recipes traditionally sparge",
		}, true
	}
	return Indicator{}, false
}
