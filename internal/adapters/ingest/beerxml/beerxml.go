// Package beerxml decodes BeerXML 1.0 documents into the canonical recipe
// model. Tags the model has no home for are ignored; per the standard all
// amounts arrive metric (kg, liters, minutes, Celsius) so no unit conversion
// happens here
package beerxml

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/ianaindex"

	"brewprints/internal/core/recipe"
	perr "brewprints/internal/platform/errors"
)

// Intermediate decode targets. Optional numerics are pointers so a missing
// tag stays distinguishable from an explicit zero
type xmlRecipe struct {
	Name       string   `xml:"NAME"`
	Type       string   `xml:"TYPE"`
	Brewer     string   `xml:"BREWER"`
	BatchSize  float64  `xml:"BATCH_SIZE"`
	BoilSize   *float64 `xml:"BOIL_SIZE"`
	BoilTime   *float64 `xml:"BOIL_TIME"`
	Efficiency *float64 `xml:"EFFICIENCY"`
	OG         *float64 `xml:"OG"`
	FG         *float64 `xml:"FG"`
	Notes      string   `xml:"NOTES"`

	Style        *xmlStyle        `xml:"STYLE"`
	Fermentables []xmlFermentable `xml:"FERMENTABLES>FERMENTABLE"`
	Hops         []xmlHop         `xml:"HOPS>HOP"`
	Yeasts       []xmlYeast       `xml:"YEASTS>YEAST"`
	Mash         *xmlMash         `xml:"MASH"`
	Equipment    *xmlEquipment    `xml:"EQUIPMENT"`
}

type xmlStyle struct {
	Name string `xml:"NAME"`
}

type xmlFermentable struct {
	Name         string   `xml:"NAME"`
	Type         string   `xml:"TYPE"`
	Amount       float64  `xml:"AMOUNT"`
	Yield        *float64 `xml:"YIELD"`
	Color        *float64 `xml:"COLOR"`
	AddAfterBoil string   `xml:"ADD_AFTER_BOIL"`
}

type xmlHop struct {
	Name   string  `xml:"NAME"`
	Alpha  float64 `xml:"ALPHA"`
	Amount float64 `xml:"AMOUNT"`
	Use    string  `xml:"USE"`
	Time   float64 `xml:"TIME"`
	Form   string  `xml:"FORM"`
}

type xmlYeast struct {
	Name        string   `xml:"NAME"`
	Type        string   `xml:"TYPE"`
	Laboratory  string   `xml:"LABORATORY"`
	Attenuation *float64 `xml:"ATTENUATION"`
}

type xmlMash struct {
	Name       string        `xml:"NAME"`
	SpargeTemp *float64      `xml:"SPARGE_TEMP"`
	Ratio      string        `xml:"WATER_GRAIN_RATIO"`
	Steps      []xmlMashStep `xml:"MASH_STEPS>MASH_STEP"`
}

type xmlMashStep struct {
	Name         string   `xml:"NAME"`
	Type         string   `xml:"TYPE"`
	InfuseAmount *float64 `xml:"INFUSE_AMOUNT"`
	StepTemp     *float64 `xml:"STEP_TEMP"`
	StepTime     *float64 `xml:"STEP_TIME"`
}

type xmlEquipment struct {
	Name            string   `xml:"NAME"`
	BatchSize       *float64 `xml:"BATCH_SIZE"`
	BoilSize        *float64 `xml:"BOIL_SIZE"`
	LauterDeadspace *float64 `xml:"LAUTER_DEADSPACE"`
	TopUpKettle     *float64 `xml:"TOP_UP_KETTLE"`
	TopUpWater      *float64 `xml:"TOP_UP_WATER"`
	TrubChillerLoss *float64 `xml:"TRUB_CHILLER_LOSS"`
	EvapRate        *float64 `xml:"EVAP_RATE"`
}

// Parse decodes the first RECIPE in the document
func Parse(data []byte) (recipe.Recipe, error) {
	recs, err := ParseAll(data)
	if err != nil {
		return recipe.Recipe{}, err
	}
	return recs[0], nil
}

// ParseAll decodes every RECIPE in the document. It accepts both the
// standard <RECIPES> wrapper and a bare <RECIPE> root, and re-decodes
// non-UTF-8 documents (legacy exports are often ISO-8859-1) by their
// declared charset
func ParseAll(data []byte) ([]recipe.Recipe, error) {
	var doc struct {
		XMLName xml.Name
		Recipes []xmlRecipe `xml:"RECIPE"`
	}
	if err := decode(data, &doc); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeValidation, "beerxml decode failed")
	}
	if doc.XMLName.Local == "RECIPE" {
		var one xmlRecipe
		if err := decode(data, &one); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeValidation, "beerxml decode failed")
		}
		doc.Recipes = []xmlRecipe{one}
	}
	if len(doc.Recipes) == 0 {
		return nil, perr.New(perr.ErrorCodeValidation, "beerxml document has no recipes")
	}

	out := make([]recipe.Recipe, 0, len(doc.Recipes))
	for _, xr := range doc.Recipes {
		out = append(out, convert(xr))
	}
	return out, nil
}

func decode(data []byte, v any) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader
	return dec.Decode(v)
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return nil, perr.Newf(perr.ErrorCodeValidation, "beerxml unsupported charset %q", charset)
	}
	return enc.NewDecoder().Reader(input), nil
}

func convert(xr xmlRecipe) recipe.Recipe {
	rec := recipe.Recipe{
		Name:          xr.Name,
		Type:          xr.Type,
		Brewer:        xr.Brewer,
		BatchSizeL:    xr.BatchSize,
		BoilSizeL:     opt(xr.BoilSize),
		BoilTimeMin:   opt(xr.BoilTime),
		EfficiencyPct: opt(xr.Efficiency),
		MeasuredOG:    opt(xr.OG),
		MeasuredFG:    opt(xr.FG),
		Notes:         xr.Notes,
		Fermentables:  []recipe.Fermentable{},
		Hops:          []recipe.Hop{},
		Yeasts:        []recipe.Yeast{},
		Mash:          recipe.Mash{Steps: []recipe.MashStep{}},
	}
	if xr.Style != nil {
		rec.StyleName = xr.Style.Name
	}

	for _, f := range xr.Fermentables {
		rec.Fermentables = append(rec.Fermentables, recipe.Fermentable{
			Name:          f.Name,
			Type:          f.Type,
			AmountKg:      f.Amount,
			YieldPct:      opt(f.Yield),
			ColorLovibond: opt(f.Color),
			AddAfterBoil:  strings.EqualFold(strings.TrimSpace(f.AddAfterBoil), "true"),
		})
	}
	for _, h := range xr.Hops {
		rec.Hops = append(rec.Hops, recipe.Hop{
			Name:         h.Name,
			AlphaAcidPct: h.Alpha,
			AmountKg:     h.Amount,
			TimeMin:      h.Time,
			Use:          h.Use,
			Form:         h.Form,
		})
	}
	for _, y := range xr.Yeasts {
		rec.Yeasts = append(rec.Yeasts, recipe.Yeast{
			Name:           y.Name,
			Type:           y.Type,
			Laboratory:     y.Laboratory,
			AttenuationPct: opt(y.Attenuation),
		})
	}
	if m := xr.Mash; m != nil {
		rec.Mash.Name = m.Name
		rec.Mash.SpargeTempC = opt(m.SpargeTemp)
		rec.Mash.WaterGrainRatioQtLb = leadFloat(m.Ratio)
		for _, s := range m.Steps {
			rec.Mash.Steps = append(rec.Mash.Steps, recipe.MashStep{
				Name:          s.Name,
				Type:          s.Type,
				InfuseAmountL: opt(s.InfuseAmount),
				StepTempC:     opt(s.StepTemp),
				StepTimeMin:   opt(s.StepTime),
			})
		}
	}
	if e := xr.Equipment; e != nil {
		rec.Equipment = &recipe.Equipment{
			Name:             e.Name,
			LauterDeadspaceL: opt(e.LauterDeadspace),
			TopUpKettleL:     opt(e.TopUpKettle),
			TopUpWaterL:      opt(e.TopUpWater),
			TrubChillerLossL: opt(e.TrubChillerLoss),
			EvapRatePctHr:    opt(e.EvapRate),
			BatchSizeL:       opt(e.BatchSize),
			BoilSizeL:        opt(e.BoilSize),
		}
	}
	return rec
}

func opt(p *float64) recipe.Opt {
	if p == nil {
		return recipe.None()
	}
	return recipe.Some(*p)
}

// leadFloat parses the numeric prefix of values like "1.25 qt/lb" that some
// exporters write as display strings
func leadFloat(s string) recipe.Opt {
	s = strings.TrimSpace(s)
	if i := strings.IndexFunc(s, func(r rune) bool {
		return r != '.' && r != '-' && (r < '0' || r > '9')
	}); i >= 0 {
		s = s[:i]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return recipe.None()
	}
	return recipe.Some(v)
}
