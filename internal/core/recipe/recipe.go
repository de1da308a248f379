// Package recipe defines the canonical recipe model shared by the ingest
// adapters, the calculators, and the HTTP layer, plus the upstream
// validation/defaulting pass every recipe goes through before any calculator
// sees it
package recipe

import "strings"

// Type is the declared production method of a recipe
type Type string

// Recognized recipe types. Matching elsewhere is case-insensitive on the
// normalized form
const (
	TypeAllGrain    Type = "all grain"
	TypeExtract     Type = "extract"
	TypePartialMash Type = "partial mash"
)

// Recipe is the canonical recipe shape. Numeric fields that may legitimately
// be absent are Opt; collections are non-nil after Validate
type Recipe struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Brewer        string  `json:"brewer,omitempty"`
	StyleName     string  `json:"style_name,omitempty"`
	BatchSizeL    float64 `json:"batch_size_l"`
	BoilSizeL     Opt     `json:"boil_size_l"`
	BoilTimeMin   Opt     `json:"boil_time_min"`
	EfficiencyPct Opt     `json:"efficiency_pct"`

	Fermentables []Fermentable `json:"fermentables"`
	Hops         []Hop         `json:"hops,omitempty"`
	Yeasts       []Yeast       `json:"yeasts,omitempty"`
	Mash         Mash          `json:"mash"`
	Equipment    *Equipment    `json:"equipment,omitempty"`

	// Measured gravities, when the brewer recorded them
	MeasuredOG Opt `json:"measured_og"`
	MeasuredFG Opt `json:"measured_fg"`

	Notes string `json:"notes,omitempty"`
}

// Fermentable is one grain, extract, sugar or adjunct addition
type Fermentable struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	AmountKg      float64 `json:"amount_kg"`
	YieldPct      Opt     `json:"yield_pct"`
	ColorLovibond Opt     `json:"color_lovibond"`
	AddAfterBoil  bool    `json:"add_after_boil,omitempty"`
}

// Hop is one hop addition
type Hop struct {
	Name         string  `json:"name"`
	AlphaAcidPct float64 `json:"alpha_acid_pct"`
	AmountKg     float64 `json:"amount_kg"`
	TimeMin      float64 `json:"time_min"`
	Use          string  `json:"use"`
	Form         string  `json:"form,omitempty"`
}

// Yeast is one yeast addition
type Yeast struct {
	Name           string `json:"name"`
	Type           string `json:"type,omitempty"`
	Laboratory     string `json:"laboratory,omitempty"`
	AttenuationPct Opt    `json:"attenuation_pct"`
}

// Mash groups the mash profile and its steps
type Mash struct {
	Name                string     `json:"name,omitempty"`
	Steps               []MashStep `json:"steps"`
	SpargeTempC         Opt        `json:"sparge_temp_c"`
	WaterGrainRatioQtLb Opt        `json:"water_grain_ratio_qt_lb"`
}

// MashStep is one step in the mash schedule. InfuseAmountL is present only
// for steps that add water
type MashStep struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	InfuseAmountL Opt    `json:"infuse_amount_l"`
	StepTempC     Opt    `json:"step_temp_c"`
	StepTimeMin   Opt    `json:"step_time_min"`
}

// Equipment is the optional equipment profile. All loss fields are Opt; the
// normalizer decides defaults, not the model
type Equipment struct {
	Name              string `json:"name"`
	MashTunDeadspaceL Opt    `json:"mash_tun_deadspace_l"`
	LauterDeadspaceL  Opt    `json:"lauter_deadspace_l"`
	TopUpKettleL      Opt    `json:"top_up_kettle_l"`
	TopUpWaterL       Opt    `json:"top_up_water_l"`
	TrubChillerLossL  Opt    `json:"trub_chiller_loss_l"`
	FermenterLossL    Opt    `json:"fermenter_loss_l"`
	BoilOffRateLHr    Opt    `json:"boil_off_rate_l_hr"`
	EvapRatePctHr     Opt    `json:"evap_rate_pct_hr"`
	BatchSizeL        Opt    `json:"batch_size_l"`
	BoilSizeL         Opt    `json:"boil_size_l"`
}

// TotalGrainKg sums the solid fermentables. Extracts and sugars dissolve and
// do not absorb water, so they are excluded
func (r Recipe) TotalGrainKg() float64 {
	var kg float64
	for _, f := range r.Fermentables {
		if f.IsSolid() {
			kg += f.AmountKg
		}
	}
	return kg
}

// IsSolid reports whether the fermentable is a solid that soaks water in the
// mash. Matching is by substring so feed variants like "Base Malt" or
// "Specialty Grain" classify correctly
func (f Fermentable) IsSolid() bool {
	t := foldType(f.Type)
	for _, m := range []string{"grain", "adjunct", "specialty", "base malt"} {
		if strings.Contains(t, m) {
			return true
		}
	}
	return false
}
