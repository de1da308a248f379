package namenorm

import "testing"

func TestNormalize_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "identity ascii",
			in:   "mash tun",
			out:  "mash tun",
		},
		{
			name: "utf8 repair drops invalid bytes",
			in:   string([]byte{0xff, 'b', 'i', 'a', 'b'}),
			out:  "biab",
		},
		{
			name: "case fold",
			in:   "GrainFather G30",
			out:  "grainfather g30",
		},
		{
			name: "remove zero-widths",
			in:   "bi​a‍b",
			out:  "biab",
		},
		{
			name: "remove combining marks",
			in:   "Braumeisteŕ",
			out:  "braumeister",
		},
		{
			name: "width fold fullwidth",
			in:   "ＢＩＡＢ kettle",
			out:  "biab kettle",
		},
		{
			name: "collapse whitespace",
			in:   "  Mash \t&\n Boil  ",
			out:  "mash & boil",
		},
		{
			name: "idempotent",
			in:   Normalize("  Ｎo-Sparge​ SYSTEM "),
			out:  "no-sparge system",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in)
			if got != tc.out {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name string
		s    string
		term string
		want bool
	}{
		{name: "plain substring", s: "Anvil Foundry 10.5", term: "foundry", want: true},
		{name: "case and width folded", s: "ＢrewＺilla 3.1", term: "brewzilla", want: true},
		{name: "not present", s: "three vessel HERMS", term: "biab", want: false},
		{name: "empty term", s: "anything", term: "", want: false},
		{name: "empty subject", s: "", term: "biab", want: false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := Contains(tc.s, tc.term); got != tc.want {
				t.Fatalf("Contains(%q, %q) = %v, want %v", tc.s, tc.term, got, tc.want)
			}
		})
	}
}
