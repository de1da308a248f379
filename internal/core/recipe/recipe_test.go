package recipe

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestOptZeroValueIsAbsent(t *testing.T) {
	var o Opt
	if o.Present() {
		t.Fatalf("zero Opt reports present")
	}
	if _, ok := o.Get(); ok {
		t.Fatalf("zero Opt Get ok = true")
	}
	if got := o.Or(7.5); got != 7.5 {
		t.Fatalf("Or(7.5) = %v, want 7.5", got)
	}
}

func TestOptSomeZeroIsPresent(t *testing.T) {
	o := Some(0)
	if !o.Present() {
		t.Fatalf("Some(0) reports absent")
	}
	if got := o.Or(9); got != 0 {
		t.Fatalf("Some(0).Or(9) = %v, want 0", got)
	}
}

func TestOptJSONRoundTrip(t *testing.T) {
	type wrap struct {
		V Opt `json:"v"`
	}
	tests := []struct {
		name    string
		in      string
		present bool
		value   float64
	}{
		{name: "number", in: `{"v": 3.25}`, present: true, value: 3.25},
		{name: "zero", in: `{"v": 0}`, present: true, value: 0},
		{name: "null", in: `{"v": null}`, present: false},
		{name: "missing", in: `{}`, present: false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var w wrap
			if err := json.Unmarshal([]byte(tc.in), &w); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			v, ok := w.V.Get()
			if ok != tc.present {
				t.Fatalf("present = %v, want %v", ok, tc.present)
			}
			if ok && v != tc.value {
				t.Fatalf("value = %v, want %v", v, tc.value)
			}
			out, err := json.Marshal(w)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var again wrap
			if err := json.Unmarshal(out, &again); err != nil {
				t.Fatalf("re-unmarshal: %v", err)
			}
			if again.V != w.V {
				t.Fatalf("round trip changed value: %v -> %v", w.V, again.V)
			}
		})
	}
}

func TestOptRejectsNonNumber(t *testing.T) {
	var o Opt
	if err := json.Unmarshal([]byte(`"abc"`), &o); err == nil {
		t.Fatalf("expected error for string input")
	}
}

func TestValidate(t *testing.T) {
	valid := Recipe{
		BatchSizeL:   19,
		Fermentables: []Fermentable{},
		Mash:         Mash{Steps: []MashStep{}},
	}
	if err := Validate(valid); err != nil {
		t.Fatalf("Validate(valid) = %v", err)
	}

	tests := []struct {
		name string
		mut  func(*Recipe)
		want error
	}{
		{name: "zero batch", mut: func(r *Recipe) { r.BatchSizeL = 0 }, want: ErrBatchSize},
		{name: "negative batch", mut: func(r *Recipe) { r.BatchSizeL = -1 }, want: ErrBatchSize},
		{name: "nil fermentables", mut: func(r *Recipe) { r.Fermentables = nil }, want: ErrNilFermentables},
		{name: "nil mash steps", mut: func(r *Recipe) { r.Mash.Steps = nil }, want: ErrNilMash},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			r := valid
			tc.mut(&r)
			err := Validate(r)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestClampRepairsAndWarns(t *testing.T) {
	r := Recipe{
		BatchSizeL:    19,
		BoilSizeL:     Some(-2),
		EfficiencyPct: Some(140),
		Fermentables: []Fermentable{
			{Name: "pale", Type: "Grain", AmountKg: -1},
		},
		Hops: []Hop{
			{Name: "cascade", AlphaAcidPct: -3, AmountKg: 0.03, TimeMin: 60},
		},
		Mash: Mash{Steps: []MashStep{
			{Name: "mash in", Type: "infusion", InfuseAmountL: Some(-5)},
		}},
		Equipment: &Equipment{EvapRatePctHr: Some(250)},
	}
	warns := Clamp(&r)
	if len(warns) != 6 {
		t.Fatalf("Clamp warnings = %d (%v), want 6", len(warns), warns)
	}
	if got := r.BoilSizeL.Or(-1); got != 0 {
		t.Fatalf("boil size after clamp = %v, want 0", got)
	}
	if got := r.EfficiencyPct.Or(-1); got != 100 {
		t.Fatalf("efficiency after clamp = %v, want 100", got)
	}
	if r.Fermentables[0].AmountKg != 0 {
		t.Fatalf("fermentable amount after clamp = %v, want 0", r.Fermentables[0].AmountKg)
	}
	if r.Hops[0].AlphaAcidPct != 0 {
		t.Fatalf("alpha acid after clamp = %v, want 0", r.Hops[0].AlphaAcidPct)
	}
	if got := r.Mash.Steps[0].InfuseAmountL.Or(-1); got != 0 {
		t.Fatalf("infusion after clamp = %v, want 0", got)
	}
	if got := r.Equipment.EvapRatePctHr.Or(-1); got != 100 {
		t.Fatalf("evap rate after clamp = %v, want 100", got)
	}
}

func TestClampCleanRecipeNoWarnings(t *testing.T) {
	r := Recipe{
		BatchSizeL:   19,
		BoilSizeL:    Some(23),
		Fermentables: []Fermentable{{Name: "pale", Type: "Grain", AmountKg: 4.5}},
		Mash:         Mash{Steps: []MashStep{}},
	}
	if warns := Clamp(&r); len(warns) != 0 {
		t.Fatalf("Clamp(clean) warnings = %v, want none", warns)
	}
}

func TestTotalGrainKg(t *testing.T) {
	r := Recipe{
		Fermentables: []Fermentable{
			{Name: "pale", Type: "Grain", AmountKg: 4.0},
			{Name: "crystal", Type: "Specialty Grain", AmountKg: 0.5},
			{Name: "flaked oats", Type: "Adjunct", AmountKg: 0.5},
			{Name: "DME", Type: "Dry Extract", AmountKg: 1.0},
			{Name: "sugar", Type: "Sugar", AmountKg: 0.3},
		},
	}
	if got := r.TotalGrainKg(); got != 5.0 {
		t.Fatalf("TotalGrainKg() = %v, want 5.0", got)
	}
}
