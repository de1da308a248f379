// Package beerjson decodes BeerJSON documents into the canonical recipe
// model. BeerJSON measures everything as {unit, value} pairs, so unlike
// BeerXML this adapter normalizes units (mass to kg, volume to liters,
// temperature to Celsius, time to minutes). Unknown fields are ignored
package beerjson

import (
	json "encoding/json/v2"
	"strings"

	"brewprints/internal/core/gravity"
	"brewprints/internal/core/recipe"
	"brewprints/internal/core/units"
	perr "brewprints/internal/platform/errors"
)

// qty is the BeerJSON measured-value pair
type qty struct {
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

type document struct {
	BeerJSON struct {
		Version    float64         `json:"version"`
		Recipes    []jsonRecipe    `json:"recipes"`
		Equipments []jsonEquipment `json:"equipments"`
	} `json:"beerjson"`
}

type jsonRecipe struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Author     string `json:"author"`
	BatchSize  *qty   `json:"batch_size"`
	Efficiency *struct {
		Brewhouse *qty `json:"brewhouse"`
	} `json:"efficiency"`
	Style *struct {
		Name string `json:"name"`
	} `json:"style"`
	Boil *struct {
		PreBoilSize *qty `json:"pre_boil_size"`
		BoilTime    *qty `json:"boil_time"`
	} `json:"boil"`
	Ingredients struct {
		FermentableAdditions []jsonFermentable `json:"fermentable_additions"`
		HopAdditions         []jsonHop         `json:"hop_additions"`
		CultureAdditions     []jsonCulture     `json:"culture_additions"`
	} `json:"ingredients"`
	Mash            *jsonMash `json:"mash"`
	OriginalGravity *qty      `json:"original_gravity"`
	FinalGravity    *qty      `json:"final_gravity"`
	Notes           string    `json:"notes"`
}

type jsonFermentable struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Amount *qty   `json:"amount"`
	Yield  *struct {
		FineGrind *qty `json:"fine_grind"`
		Potential *qty `json:"potential"`
	} `json:"yield"`
	Color *qty `json:"color"`
}

type jsonHop struct {
	Name      string `json:"name"`
	Form      string `json:"form"`
	AlphaAcid *qty   `json:"alpha_acid"`
	Amount    *qty   `json:"amount"`
	Timing    *struct {
		Time     *qty   `json:"time"`
		Duration *qty   `json:"duration"`
		Use      string `json:"use"`
	} `json:"timing"`
}

type jsonCulture struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Producer    string `json:"producer"`
	Attenuation *qty   `json:"attenuation"`
}

type jsonMash struct {
	Name  string `json:"name"`
	Steps []struct {
		Name            string `json:"name"`
		Type            string `json:"type"`
		Amount          *qty   `json:"amount"`
		StepTemperature *qty   `json:"step_temperature"`
		StepTime        *qty   `json:"step_time"`
		WaterGrainRatio *qty   `json:"water_grain_ratio"`
	} `json:"mash_steps"`
}

type jsonEquipment struct {
	Name  string `json:"name"`
	Items []struct {
		Name            string `json:"name"`
		Form            string `json:"form"`
		Loss            *qty   `json:"loss"`
		BoilRatePerHour *qty   `json:"boil_rate_per_hour"`
	} `json:"equipment_items"`
}

// Parse decodes the first recipe in the document
func Parse(data []byte) (recipe.Recipe, error) {
	recs, err := ParseAll(data)
	if err != nil {
		return recipe.Recipe{}, err
	}
	return recs[0], nil
}

// ParseAll decodes every recipe in the document. BeerJSON keeps equipment
// profiles beside the recipes rather than inside them; exports carry at most
// one, so when present the first profile is attached to every recipe
func ParseAll(data []byte) ([]recipe.Recipe, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "beerjson decode failed")
	}
	if len(doc.BeerJSON.Recipes) == 0 {
		return nil, perr.New(perr.ErrorCodeValidation, "beerjson document has no recipes")
	}

	var equip *recipe.Equipment
	if len(doc.BeerJSON.Equipments) > 0 {
		equip = convertEquipment(doc.BeerJSON.Equipments[0])
	}

	out := make([]recipe.Recipe, 0, len(doc.BeerJSON.Recipes))
	for _, jr := range doc.BeerJSON.Recipes {
		rec := convert(jr)
		if equip != nil && rec.Equipment == nil {
			e := *equip
			rec.Equipment = &e
		}
		out = append(out, rec)
	}
	return out, nil
}

func convert(jr jsonRecipe) recipe.Recipe {
	rec := recipe.Recipe{
		Name:         jr.Name,
		Type:         jr.Type,
		Brewer:       jr.Author,
		BatchSizeL:   volumeL(jr.BatchSize).Or(0),
		MeasuredOG:   gravitySG(jr.OriginalGravity),
		MeasuredFG:   gravitySG(jr.FinalGravity),
		Notes:        jr.Notes,
		Fermentables: []recipe.Fermentable{},
		Hops:         []recipe.Hop{},
		Yeasts:       []recipe.Yeast{},
		Mash:         recipe.Mash{Steps: []recipe.MashStep{}},
	}
	if jr.Style != nil {
		rec.StyleName = jr.Style.Name
	}
	if jr.Boil != nil {
		rec.BoilSizeL = volumeL(jr.Boil.PreBoilSize)
		rec.BoilTimeMin = timeMin(jr.Boil.BoilTime)
	}
	if jr.Efficiency != nil {
		rec.EfficiencyPct = pct(jr.Efficiency.Brewhouse)
	}

	for _, f := range jr.Ingredients.FermentableAdditions {
		rec.Fermentables = append(rec.Fermentables, recipe.Fermentable{
			Name:          f.Name,
			Type:          f.Type,
			AmountKg:      fermentableKg(f),
			YieldPct:      yieldPct(f),
			ColorLovibond: colorLovibond(f.Color),
		})
	}
	for _, h := range jr.Ingredients.HopAdditions {
		hop := recipe.Hop{
			Name:         h.Name,
			AlphaAcidPct: pct(h.AlphaAcid).Or(0),
			AmountKg:     massKg(h.Amount).Or(0),
			Form:         h.Form,
		}
		if t := h.Timing; t != nil {
			hop.Use = hopUse(t.Use)
			hop.TimeMin = timeMin(t.Duration).Or(timeMin(t.Time).Or(0))
		}
		rec.Hops = append(rec.Hops, hop)
	}
	for _, c := range jr.Ingredients.CultureAdditions {
		rec.Yeasts = append(rec.Yeasts, recipe.Yeast{
			Name:           c.Name,
			Type:           c.Type,
			Laboratory:     c.Producer,
			AttenuationPct: pct(c.Attenuation),
		})
	}

	if m := jr.Mash; m != nil {
		rec.Mash.Name = m.Name
		for _, s := range m.Steps {
			rec.Mash.Steps = append(rec.Mash.Steps, recipe.MashStep{
				Name:          s.Name,
				Type:          s.Type,
				InfuseAmountL: volumeL(s.Amount),
				StepTempC:     tempC(s.StepTemperature),
				StepTimeMin:   timeMin(s.StepTime),
			})
			if !rec.Mash.WaterGrainRatioQtLb.Present() {
				rec.Mash.WaterGrainRatioQtLb = ratioQtLb(s.WaterGrainRatio)
			}
		}
	}
	return rec
}

// convertEquipment folds the per-vessel equipment items into the flat
// equipment profile the calculators use. Vessel forms come from the BeerJSON
// enum; a vessel the model has no loss slot for is skipped
func convertEquipment(je jsonEquipment) *recipe.Equipment {
	e := &recipe.Equipment{Name: je.Name}
	for _, it := range je.Items {
		switch strings.ToLower(strings.TrimSpace(it.Form)) {
		case "mash tun":
			e.MashTunDeadspaceL = volumeL(it.Loss)
		case "lauter tun":
			e.LauterDeadspaceL = volumeL(it.Loss)
		case "brew kettle":
			e.TrubChillerLossL = volumeL(it.Loss)
			e.BoilOffRateLHr = volumeL(it.BoilRatePerHour)
		case "fermenter":
			e.FermenterLossL = volumeL(it.Loss)
		}
	}
	return e
}

// fermentableKg converts the addition amount to kg. Liquid extracts are
// sometimes measured by volume; those convert at 1.4 kg/L (the density of
// liquid malt extract), other volume-measured additions at water density
func fermentableKg(f jsonFermentable) float64 {
	if kg, ok := massKg(f.Amount).Get(); ok {
		return kg
	}
	l, ok := volumeL(f.Amount).Get()
	if !ok {
		return 0
	}
	if strings.Contains(strings.ToLower(f.Type), "extract") {
		return l * 1.4
	}
	return l
}

func yieldPct(f jsonFermentable) recipe.Opt {
	if f.Yield == nil {
		return recipe.None()
	}
	if p, ok := pct(f.Yield.FineGrind).Get(); ok {
		return recipe.Some(p)
	}
	if sg, ok := gravitySG(f.Yield.Potential).Get(); ok {
		return recipe.Some((sg - 1) * 1000 / gravity.SucrosePPG * 100)
	}
	return recipe.None()
}

func hopUse(use string) string {
	switch strings.ToLower(strings.TrimSpace(use)) {
	case "add_to_boil":
		return "Boil"
	case "add_to_mash":
		return "Mash"
	case "add_to_fermentation", "add_to_package":
		return "Dry Hop"
	default:
		return use
	}
}

func volumeL(q *qty) recipe.Opt {
	if q == nil {
		return recipe.None()
	}
	switch strings.ToLower(q.Unit) {
	case "ml":
		return recipe.Some(q.Value / 1000)
	case "l":
		return recipe.Some(q.Value)
	case "floz":
		return recipe.Some(units.GalToL(q.Value / 128))
	case "pt":
		return recipe.Some(units.GalToL(q.Value / 8))
	case "qt":
		return recipe.Some(units.GalToL(q.Value / 4))
	case "gal":
		return recipe.Some(units.GalToL(q.Value))
	case "bbl":
		return recipe.Some(units.GalToL(q.Value * 31))
	default:
		return recipe.None()
	}
}

func massKg(q *qty) recipe.Opt {
	if q == nil {
		return recipe.None()
	}
	switch strings.ToLower(q.Unit) {
	case "mg":
		return recipe.Some(q.Value / 1e6)
	case "g":
		return recipe.Some(q.Value / 1000)
	case "kg":
		return recipe.Some(q.Value)
	case "lb":
		return recipe.Some(units.LbToKg(q.Value))
	case "oz":
		return recipe.Some(units.LbToKg(q.Value / 16))
	default:
		return recipe.None()
	}
}

func tempC(q *qty) recipe.Opt {
	if q == nil {
		return recipe.None()
	}
	switch strings.ToUpper(q.Unit) {
	case "C":
		return recipe.Some(q.Value)
	case "F":
		return recipe.Some((q.Value - 32) * 5 / 9)
	default:
		return recipe.None()
	}
}

func timeMin(q *qty) recipe.Opt {
	if q == nil {
		return recipe.None()
	}
	switch strings.ToLower(q.Unit) {
	case "sec":
		return recipe.Some(q.Value / 60)
	case "min":
		return recipe.Some(q.Value)
	case "hr":
		return recipe.Some(q.Value * 60)
	case "day":
		return recipe.Some(q.Value * 24 * 60)
	case "week":
		return recipe.Some(q.Value * 7 * 24 * 60)
	default:
		return recipe.None()
	}
}

func pct(q *qty) recipe.Opt {
	if q == nil {
		return recipe.None()
	}
	return recipe.Some(q.Value)
}

// colorLovibond converts BeerJSON color units to degrees Lovibond via the
// linear SRM/Lovibond correlation and the 1.97 EBC/SRM factor
func colorLovibond(q *qty) recipe.Opt {
	if q == nil {
		return recipe.None()
	}
	srmToLovi := func(srm float64) float64 { return (srm + 0.76) / 1.3546 }
	switch strings.ToLower(q.Unit) {
	case "lovi":
		return recipe.Some(q.Value)
	case "srm":
		return recipe.Some(srmToLovi(q.Value))
	case "ebc":
		return recipe.Some(srmToLovi(q.Value / 1.97))
	default:
		return recipe.None()
	}
}

func ratioQtLb(q *qty) recipe.Opt {
	if q == nil {
		return recipe.None()
	}
	switch strings.ToLower(q.Unit) {
	case "qt/lb":
		return recipe.Some(q.Value)
	case "l/kg":
		return recipe.Some(q.Value / units.QtPerLbToLPerKg)
	default:
		return recipe.None()
	}
}

// gravitySG converts BeerJSON gravity units to specific gravity. Plato uses
// the ASBC polynomial inverse; Brix is close enough to Plato at beer
// strengths to share it
func gravitySG(q *qty) recipe.Opt {
	if q == nil {
		return recipe.None()
	}
	switch strings.ToLower(q.Unit) {
	case "sg":
		return recipe.Some(q.Value)
	case "plato", "brix":
		p := q.Value
		return recipe.Some(1 + p/(258.6-p/258.2*227.1))
	default:
		return recipe.None()
	}
}
