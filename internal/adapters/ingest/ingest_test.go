package ingest

import (
	"testing"

	perr "brewprints/internal/platform/errors"
)

const (
	tinyXML  = `<RECIPES><RECIPE><NAME>X</NAME><BATCH_SIZE>19</BATCH_SIZE></RECIPE></RECIPES>`
	tinyJSON = `{"beerjson": {"version": 2.0, "recipes": [{"name": "J", "batch_size": {"unit": "l", "value": 19}}]}}`
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		data string
		want Format
		ok   bool
	}{
		{"xml", tinyXML, FormatBeerXML, true},
		{"xml_with_bom_and_space", "\xEF\xBB\xBF  \n<RECIPES/>", FormatBeerXML, true},
		{"json_object", tinyJSON, FormatBeerJSON, true},
		{"json_array", `[1]`, FormatBeerJSON, true},
		{"garbage", "hello", "", false},
		{"empty", "", "", false},
		{"whitespace_only", " \t\n", "", false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := Detect([]byte(tc.data))
			if tc.ok != (err == nil) {
				t.Fatalf("Detect err = %v, want ok=%v", err, tc.ok)
			}
			if got != tc.want {
				t.Fatalf("Detect = %q, want %q", got, tc.want)
			}
			if err != nil && !perr.IsCode(err, perr.ErrorCodeValidation) {
				t.Fatalf("code = %v, want validation", perr.CodeOf(err))
			}
		})
	}
}

func TestParseDetectsFormat(t *testing.T) {
	rec, format, err := Parse("", []byte(tinyXML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if format != FormatBeerXML || rec.Name != "X" {
		t.Fatalf("got format %q recipe %q", format, rec.Name)
	}

	rec, format, err = Parse("", []byte(tinyJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if format != FormatBeerJSON || rec.Name != "J" {
		t.Fatalf("got format %q recipe %q", format, rec.Name)
	}
}

func TestParseExplicitFormat(t *testing.T) {
	if _, _, err := Parse(FormatBeerJSON, []byte(tinyXML)); err == nil {
		t.Fatal("XML fed to the beerjson parser should fail")
	}
	if _, _, err := Parse("csv", []byte(tinyXML)); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("unsupported format should be a validation error, got %v", err)
	}
}
