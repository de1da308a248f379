package beerjson

import (
	"math"
	"strings"
	"testing"

	"brewprints/internal/core/gravity"
	"brewprints/internal/core/recipe"
	"brewprints/internal/core/units"
	perr "brewprints/internal/platform/errors"
)

const sampleJSON = `{
  "beerjson": {
    "version": 2.0,
    "recipes": [{
      "name": "West Coast IPA",
      "type": "all grain",
      "author": "Test Brewer",
      "batch_size": {"unit": "gal", "value": 5},
      "efficiency": {"brewhouse": {"unit": "%", "value": 72}},
      "style": {"name": "American IPA"},
      "boil": {
        "pre_boil_size": {"unit": "l", "value": 26.2},
        "boil_time": {"unit": "hr", "value": 1}
      },
      "ingredients": {
        "fermentable_additions": [
          {
            "name": "Pale Malt",
            "type": "grain",
            "amount": {"unit": "lb", "value": 10},
            "yield": {"fine_grind": {"unit": "%", "value": 80}},
            "color": {"unit": "Lovi", "value": 3}
          },
          {
            "name": "Light LME",
            "type": "extract",
            "amount": {"unit": "l", "value": 2},
            "yield": {"potential": {"unit": "sg", "value": 1.037}},
            "color": {"unit": "EBC", "value": 20}
          }
        ],
        "hop_additions": [
          {
            "name": "Centennial",
            "alpha_acid": {"unit": "%", "value": 10},
            "amount": {"unit": "oz", "value": 1},
            "form": "pellet",
            "timing": {"use": "add_to_boil", "duration": {"unit": "min", "value": 60}}
          },
          {
            "name": "Citra",
            "alpha_acid": {"unit": "%", "value": 12},
            "amount": {"unit": "g", "value": 56},
            "timing": {"use": "add_to_fermentation", "time": {"unit": "day", "value": 3}}
          }
        ],
        "culture_additions": [
          {
            "name": "SafAle US-05",
            "type": "ale",
            "producer": "Fermentis",
            "attenuation": {"unit": "%", "value": 78}
          }
        ]
      },
      "mash": {
        "name": "Single Infusion",
        "mash_steps": [
          {
            "name": "Mash In",
            "type": "infusion",
            "amount": {"unit": "qt", "value": 16},
            "step_temperature": {"unit": "F", "value": 152},
            "step_time": {"unit": "min", "value": 60},
            "water_grain_ratio": {"unit": "l/kg", "value": 2.6}
          },
          {
            "name": "Batch Sparge",
            "type": "sparge",
            "amount": {"unit": "l", "value": 12},
            "step_temperature": {"unit": "C", "value": 75.6}
          }
        ]
      },
      "original_gravity": {"unit": "sg", "value": 1.062},
      "final_gravity": {"unit": "plato", "value": 3},
      "notes": "hop-forward"
    }],
    "equipments": [{
      "name": "All In One",
      "equipment_items": [
        {"name": "Mash Tun", "form": "mash tun", "loss": {"unit": "l", "value": 1}},
        {"name": "Lauter", "form": "lauter tun", "loss": {"unit": "l", "value": 0.5}},
        {"name": "Kettle", "form": "brew kettle", "loss": {"unit": "l", "value": 0.95}, "boil_rate_per_hour": {"unit": "l", "value": 3.5}},
        {"name": "FV", "form": "fermenter", "loss": {"unit": "gal", "value": 0.25}},
        {"name": "Keg", "form": "packaging vessel", "loss": {"unit": "l", "value": 0.2}}
      ]
    }]
  }
}`

func approx(a, b float64) bool { return math.Abs(a-b) <= 1e-9 }

func mustOpt(t *testing.T, field string, o recipe.Opt) float64 {
	t.Helper()
	v, ok := o.Get()
	if !ok {
		t.Fatalf("%s: expected a value, got absent", field)
	}
	return v
}

func TestParseFullRecipe(t *testing.T) {
	rec, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := recipe.Validate(rec); err != nil {
		t.Fatalf("parsed recipe failed validation: %v", err)
	}

	if rec.Name != "West Coast IPA" || rec.Type != "all grain" || rec.Brewer != "Test Brewer" {
		t.Fatalf("header fields wrong: %+v", rec)
	}
	if rec.StyleName != "American IPA" || rec.Notes != "hop-forward" {
		t.Fatalf("style/notes wrong: %q %q", rec.StyleName, rec.Notes)
	}
	if !approx(rec.BatchSizeL, units.GalToL(5)) {
		t.Fatalf("batch size = %v, want %v", rec.BatchSizeL, units.GalToL(5))
	}
	if v := mustOpt(t, "boil size", rec.BoilSizeL); v != 26.2 {
		t.Fatalf("boil size = %v", v)
	}
	if v := mustOpt(t, "boil time", rec.BoilTimeMin); v != 60 {
		t.Fatalf("boil time = %v, want one hour as minutes", v)
	}
	if v := mustOpt(t, "efficiency", rec.EfficiencyPct); v != 72 {
		t.Fatalf("efficiency = %v", v)
	}
	if v := mustOpt(t, "measured OG", rec.MeasuredOG); v != 1.062 {
		t.Fatalf("measured OG = %v", v)
	}
	wantFG := 1 + 3.0/(258.6-3.0/258.2*227.1)
	if v := mustOpt(t, "measured FG", rec.MeasuredFG); !approx(v, wantFG) {
		t.Fatalf("measured FG = %v, want %v from 3 Plato", v, wantFG)
	}

	if len(rec.Fermentables) != 2 {
		t.Fatalf("fermentables = %d", len(rec.Fermentables))
	}
	pale := rec.Fermentables[0]
	if !approx(pale.AmountKg, units.LbToKg(10)) {
		t.Fatalf("pale amount = %v, want %v", pale.AmountKg, units.LbToKg(10))
	}
	if v := mustOpt(t, "pale yield", pale.YieldPct); v != 80 {
		t.Fatalf("pale yield = %v", v)
	}
	if v := mustOpt(t, "pale color", pale.ColorLovibond); v != 3 {
		t.Fatalf("pale color = %v", v)
	}
	lme := rec.Fermentables[1]
	if !approx(lme.AmountKg, 2*1.4) {
		t.Fatalf("LME by volume should convert at extract density: %v", lme.AmountKg)
	}
	wantYield := (1.037 - 1) * 1000 / gravity.SucrosePPG * 100
	if v := mustOpt(t, "LME yield", lme.YieldPct); !approx(v, wantYield) {
		t.Fatalf("LME yield = %v, want %v from potential", v, wantYield)
	}
	wantColor := (20/1.97 + 0.76) / 1.3546
	if v := mustOpt(t, "LME color", lme.ColorLovibond); !approx(v, wantColor) {
		t.Fatalf("LME color = %v, want %v from 20 EBC", v, wantColor)
	}

	if len(rec.Hops) != 2 {
		t.Fatalf("hops = %d", len(rec.Hops))
	}
	cent := rec.Hops[0]
	if cent.AlphaAcidPct != 10 || cent.Use != "Boil" || cent.TimeMin != 60 || cent.Form != "pellet" {
		t.Fatalf("centennial parsed wrong: %+v", cent)
	}
	if !approx(cent.AmountKg, units.LbToKg(1.0/16)) {
		t.Fatalf("centennial amount = %v, want one ounce", cent.AmountKg)
	}
	citra := rec.Hops[1]
	if citra.Use != "Dry Hop" {
		t.Fatalf("add_to_fermentation should map to dry hop, got %q", citra.Use)
	}
	if !approx(citra.AmountKg, 0.056) {
		t.Fatalf("citra amount = %v", citra.AmountKg)
	}
	if citra.TimeMin != 3*24*60 {
		t.Fatalf("citra time = %v, want 3 days as minutes", citra.TimeMin)
	}

	if len(rec.Yeasts) != 1 {
		t.Fatalf("yeasts = %d", len(rec.Yeasts))
	}
	y := rec.Yeasts[0]
	if y.Laboratory != "Fermentis" || y.Type != "ale" {
		t.Fatalf("culture parsed wrong: %+v", y)
	}
	if v := mustOpt(t, "attenuation", y.AttenuationPct); v != 78 {
		t.Fatalf("attenuation = %v", v)
	}

	if len(rec.Mash.Steps) != 2 {
		t.Fatalf("mash steps = %d", len(rec.Mash.Steps))
	}
	in := rec.Mash.Steps[0]
	if !approx(mustOpt(t, "infuse amount", in.InfuseAmountL), units.GalToL(4)) {
		t.Fatalf("16 qt should be 4 gal in liters, got %v", in.InfuseAmountL)
	}
	wantTemp := (152.0 - 32) * 5 / 9
	if v := mustOpt(t, "step temp", in.StepTempC); !approx(v, wantTemp) {
		t.Fatalf("step temp = %v, want %v from 152 F", v, wantTemp)
	}
	if v := mustOpt(t, "step time", in.StepTimeMin); v != 60 {
		t.Fatalf("step time = %v", v)
	}
	wantRatio := 2.6 / units.QtPerLbToLPerKg
	if v := mustOpt(t, "ratio", rec.Mash.WaterGrainRatioQtLb); !approx(v, wantRatio) {
		t.Fatalf("ratio = %v, want %v from 2.6 l/kg", v, wantRatio)
	}
	sparge := rec.Mash.Steps[1]
	if sparge.Type != "sparge" || mustOpt(t, "sparge amount", sparge.InfuseAmountL) != 12 {
		t.Fatalf("sparge step parsed wrong: %+v", sparge)
	}
	if v := mustOpt(t, "sparge temp", sparge.StepTempC); v != 75.6 {
		t.Fatalf("sparge temp = %v", v)
	}
}

func TestParseEquipmentItems(t *testing.T) {
	rec, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	e := rec.Equipment
	if e == nil {
		t.Fatal("equipment profile not attached")
	}
	if e.Name != "All In One" {
		t.Fatalf("equipment name = %q", e.Name)
	}
	if v := mustOpt(t, "mash tun loss", e.MashTunDeadspaceL); v != 1 {
		t.Fatalf("mash tun loss = %v", v)
	}
	if v := mustOpt(t, "lauter loss", e.LauterDeadspaceL); v != 0.5 {
		t.Fatalf("lauter loss = %v", v)
	}
	if v := mustOpt(t, "kettle loss", e.TrubChillerLossL); v != 0.95 {
		t.Fatalf("kettle loss = %v", v)
	}
	if v := mustOpt(t, "boil rate", e.BoilOffRateLHr); v != 3.5 {
		t.Fatalf("boil rate = %v", v)
	}
	if v := mustOpt(t, "fermenter loss", e.FermenterLossL); !approx(v, units.GalToL(0.25)) {
		t.Fatalf("fermenter loss = %v", v)
	}
	if e.TopUpKettleL.Present() || e.EvapRatePctHr.Present() {
		t.Fatalf("fields with no BeerJSON source should stay absent: %+v", e)
	}
}

func TestParseEquipmentCopiedPerRecipe(t *testing.T) {
	doc := `{"beerjson": {"version": 2.0,
		"recipes": [
			{"name": "A", "batch_size": {"unit": "l", "value": 19}},
			{"name": "B", "batch_size": {"unit": "l", "value": 21}}
		],
		"equipments": [{"name": "Rig", "equipment_items": [
			{"form": "mash tun", "loss": {"unit": "l", "value": 1}}
		]}]}}`
	recs, err := ParseAll([]byte(doc))
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("recipes = %d", len(recs))
	}
	if recs[0].Equipment == nil || recs[1].Equipment == nil {
		t.Fatal("equipment should attach to every recipe")
	}
	if recs[0].Equipment == recs[1].Equipment {
		t.Fatal("recipes must not share one equipment pointer")
	}
}

func TestParseHopUse(t *testing.T) {
	cases := []struct {
		use  string
		want string
	}{
		{"add_to_boil", "Boil"},
		{"add_to_mash", "Mash"},
		{"add_to_fermentation", "Dry Hop"},
		{"add_to_package", "Dry Hop"},
		{"whirlpool", "whirlpool"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.use, func(t *testing.T) {
			if got := hopUse(tc.use); got != tc.want {
				t.Fatalf("hopUse(%q) = %q, want %q", tc.use, got, tc.want)
			}
		})
	}
}

func TestUnitConversions(t *testing.T) {
	check := func(name string, got recipe.Opt, want float64) {
		t.Helper()
		v, ok := got.Get()
		if !ok {
			t.Fatalf("%s: expected a value", name)
		}
		if !approx(v, want) {
			t.Fatalf("%s = %v, want %v", name, v, want)
		}
	}

	check("ml", volumeL(&qty{Unit: "ml", Value: 500}), 0.5)
	check("floz", volumeL(&qty{Unit: "floz", Value: 128}), units.GalToL(1))
	check("pt", volumeL(&qty{Unit: "pt", Value: 8}), units.GalToL(1))
	check("bbl", volumeL(&qty{Unit: "bbl", Value: 1}), units.GalToL(31))
	check("mg", massKg(&qty{Unit: "mg", Value: 5000}), 0.005)
	check("sec", timeMin(&qty{Unit: "sec", Value: 90}), 1.5)
	check("week", timeMin(&qty{Unit: "week", Value: 1}), 7*24*60)
	check("srm", colorLovibond(&qty{Unit: "SRM", Value: 10}), (10+0.76)/1.3546)
	check("qt/lb", ratioQtLb(&qty{Unit: "qt/lb", Value: 1.5}), 1.5)

	// 12.5 Plato is about 1.0505 SG on any published conversion table
	sg := mustOpt(t, "plato", gravitySG(&qty{Unit: "plato", Value: 12.5}))
	if sg < 1.0503 || sg > 1.0507 {
		t.Fatalf("12.5 Plato = %v SG, want about 1.0505", sg)
	}

	if volumeL(&qty{Unit: "hogshead", Value: 1}).Present() {
		t.Fatal("unknown volume unit should map to absent")
	}
	if tempC(&qty{Unit: "K", Value: 300}).Present() {
		t.Fatal("unsupported temperature unit should map to absent")
	}
	if volumeL(nil).Present() || massKg(nil).Present() || pct(nil).Present() {
		t.Fatal("nil quantities should map to absent")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		code perr.ErrorCode
		want string
	}{
		{"malformed", `{"beerjson": `, perr.ErrorCodeJSON, "decode failed"},
		{"empty_object", `{}`, perr.ErrorCodeValidation, "no recipes"},
		{"no_recipes", `{"beerjson": {"version": 2.0, "recipes": []}}`, perr.ErrorCodeValidation, "no recipes"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !perr.IsCode(err, tc.code) {
				t.Fatalf("code = %v, want %v", perr.CodeOf(err), tc.code)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err.Error(), tc.want)
			}
		})
	}
}
