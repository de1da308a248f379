package water

import (
	"brewprints/internal/core/namenorm"
	"brewprints/internal/core/recipe"
	"brewprints/internal/core/units"
)

// StepKind classifies a mash step by its role in the water flow
type StepKind string

// Step kinds. Ramp covers temperature and decoction steps that add no water
const (
	StepStrike   StepKind = "strike"
	StepInfusion StepKind = "infusion"
	StepSparge   StepKind = "sparge"
	StepRamp     StepKind = "ramp"
)

// StepClass is one classified mash step
type StepClass struct {
	Name    string   `json:"name"`
	Kind    StepKind `json:"kind"`
	AmountL float64  `json:"amount_l"`
	TempC   float64  `json:"temp_c"`
}

// GrainData carries the grain-derived physical quantities
type GrainData struct {
	TotalWeightKg  float64 `json:"total_weight_kg"`
	AbsorptionL    float64 `json:"absorption_l"`
	DisplacementL  float64 `json:"displacement_l"`
	AbsorptionQtLb float64 `json:"absorption_qt_lb"`
}

// EquipmentData is the merged equipment view the solvers consume. Losses
// default to zero; the three rate/loss fields stay optional because the
// evaporation solver's trust order depends on which were actually supplied
type EquipmentData struct {
	Present           bool       `json:"present"`
	Name              string     `json:"name"`
	MashTunDeadspaceL float64    `json:"mash_tun_deadspace_l"`
	LauterDeadspaceL  float64    `json:"lauter_deadspace_l"`
	TopUpKettleL      float64    `json:"top_up_kettle_l"`
	TopUpWaterL       float64    `json:"top_up_water_l"`
	FermenterLossL    float64    `json:"fermenter_loss_l"`
	BoilOffRateLHr    recipe.Opt `json:"boil_off_rate_l_hr"`
	EvapRatePctHr     recipe.Opt `json:"evap_rate_pct_hr"`
	TrubChillerLossL  recipe.Opt `json:"trub_chiller_loss_l"`
	Source            string     `json:"source"`
}

// MashWaterData carries the mash-step water totals. Zero means no step of
// that kind declared an amount
type MashWaterData struct {
	StrikeWaterL    float64     `json:"strike_water_l"`
	SpargeWaterL    float64     `json:"sparge_water_l"`
	TotalMashWaterL float64     `json:"total_mash_water_l"`
	HasRatio        bool        `json:"has_ratio"`
	RatioQtLb       float64     `json:"ratio_qt_lb"`
	SpargeTempC     recipe.Opt  `json:"sparge_temp_c"`
	Steps           []StepClass `json:"steps"`
}

// NormalizedInputs is the canonical physical view of a recipe. Every solver
// stage consumes this, never the raw recipe
type NormalizedInputs struct {
	BatchSizeL  float64 `json:"batch_size_l"`
	BoilSizeL   float64 `json:"boil_size_l"`
	BoilTimeMin float64 `json:"boil_time_min"`
	IsNoBoil    bool    `json:"is_no_boil"`
	RecipeType  string  `json:"recipe_type"`

	Grain     GrainData     `json:"grain"`
	Equipment EquipmentData `json:"equipment"`
	MashWater MashWaterData `json:"mash_water"`
}

// Normalize converts a validated recipe into canonical physical quantities.
// It guards the structural invariants itself so the engine stays safe when
// called directly
func (e *Engine) Normalize(rec recipe.Recipe) (NormalizedInputs, error) {
	if err := recipe.Validate(rec); err != nil {
		return NormalizedInputs{}, err
	}

	in := NormalizedInputs{
		BatchSizeL: rec.BatchSizeL,
		RecipeType: namenorm.Normalize(rec.Type),
	}

	in.Equipment = normalizeEquipment(rec)

	boilSize := rec.BoilSizeL
	if !boilSize.Present() && rec.Equipment != nil {
		boilSize = rec.Equipment.BoilSizeL
	}
	in.BoilSizeL = nonNeg(boilSize.Or(0))
	in.BoilTimeMin = nonNeg(rec.BoilTimeMin.Or(0))
	in.IsNoBoil = in.BoilTimeMin <= 0

	in.Grain = e.normalizeGrain(rec, in.Equipment.Name)
	in.MashWater = normalizeMashWater(rec.Mash)

	return in, nil
}

// normalizeEquipment merges the optional equipment profile into a flat view
func normalizeEquipment(rec recipe.Recipe) EquipmentData {
	eq := EquipmentData{Source: "default"}
	p := rec.Equipment
	if p == nil {
		return eq
	}
	eq.Present = true
	eq.Source = "equipment"
	eq.Name = p.Name
	eq.MashTunDeadspaceL = nonNeg(p.MashTunDeadspaceL.Or(0))
	eq.LauterDeadspaceL = nonNeg(p.LauterDeadspaceL.Or(0))
	eq.TopUpKettleL = nonNeg(p.TopUpKettleL.Or(0))
	eq.TopUpWaterL = nonNeg(p.TopUpWaterL.Or(0))
	eq.FermenterLossL = nonNeg(p.FermenterLossL.Or(0))
	eq.BoilOffRateLHr = clampOptMin(p.BoilOffRateLHr)
	eq.EvapRatePctHr = clampOptMin(p.EvapRatePctHr)
	eq.TrubChillerLossL = clampOptMin(p.TrubChillerLossL)
	return eq
}

// normalizeGrain derives weight, absorption and displacement. No-sparge and
// all-in-one systems squeeze or drain the bag, so they absorb at the lower
// rate
func (e *Engine) normalizeGrain(rec recipe.Recipe, equipName string) GrainData {
	kg := rec.TotalGrainKg()
	rate := units.AbsorptionTraditionalQtPerLb
	if e.terms.NoSparge(equipName) || e.terms.AllInOne(equipName) {
		rate = units.AbsorptionNoSpargeQtPerLb
	}
	return GrainData{
		TotalWeightKg:  kg,
		AbsorptionL:    kg * units.RatioQtLbToLKg(rate),
		DisplacementL:  kg * units.GrainDisplacementLPerKg,
		AbsorptionQtLb: rate,
	}
}

// normalizeMashWater classifies every mash step and totals the declared
// water. The first water-adding non-sparge step is the strike; later ones
// are additional infusions that still land in the mash
func normalizeMashWater(m recipe.Mash) MashWaterData {
	mw := MashWaterData{
		SpargeTempC: m.SpargeTempC,
		Steps:       make([]StepClass, 0, len(m.Steps)),
	}
	if v, ok := m.WaterGrainRatioQtLb.Get(); ok && v > 0 {
		mw.HasRatio = true
		mw.RatioQtLb = v
	}

	sawStrike := false
	for _, s := range m.Steps {
		amount := nonNeg(s.InfuseAmountL.Or(0))
		sc := StepClass{
			Name:    s.Name,
			AmountL: amount,
			TempC:   s.StepTempC.Or(0),
		}
		switch {
		case isSpargeStep(s):
			sc.Kind = StepSparge
			mw.SpargeWaterL += amount
		case amount > 0 && !sawStrike:
			sc.Kind = StepStrike
			sawStrike = true
			mw.StrikeWaterL += amount
		case amount > 0:
			sc.Kind = StepInfusion
			mw.StrikeWaterL += amount
		default:
			sc.Kind = StepRamp
		}
		mw.Steps = append(mw.Steps, sc)
	}
	mw.TotalMashWaterL = mw.StrikeWaterL + mw.SpargeWaterL
	return mw
}

// isSpargeStep detects explicit sparge steps by type or name
func isSpargeStep(s recipe.MashStep) bool {
	return namenorm.Contains(s.Type, "sparge") || namenorm.Contains(s.Name, "sparge")
}

func nonNeg(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// clampOptMin clamps a present negative value to zero and leaves absence alone
func clampOptMin(o recipe.Opt) recipe.Opt {
	return o.Map(nonNeg)
}
