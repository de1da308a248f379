package recipe

import (
	"bytes"
	"encoding/json"
)

// Opt is an optional float64. The zero value is absent. It exists so that
// "field not supplied" and "field supplied as zero" stay distinguishable all
// the way through normalization; callers never probe for NaN or sentinel
// negatives
type Opt struct {
	value float64
	ok    bool
}

// Some wraps a present value
func Some(v float64) Opt { return Opt{value: v, ok: true} }

// None is the absent value
func None() Opt { return Opt{} }

// Get returns the value and whether it is present
func (o Opt) Get() (float64, bool) { return o.value, o.ok }

// Present reports whether a value was supplied
func (o Opt) Present() bool { return o.ok }

// Or returns the value when present, def otherwise
func (o Opt) Or(def float64) float64 {
	if o.ok {
		return o.value
	}
	return def
}

// Map applies f to a present value and leaves None unchanged
func (o Opt) Map(f func(float64) float64) Opt {
	if !o.ok {
		return o
	}
	return Some(f(o.value))
}

var jsonNull = []byte("null")

// MarshalJSON encodes a present value as a number and an absent one as null
func (o Opt) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return jsonNull, nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as absent and any number as present
func (o *Opt) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), jsonNull) {
		*o = Opt{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
