package strings

import "testing"

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	// non-empty slice should be returned as-is
	in := []string{"GET", "POST", "DELETE"}
	def := []string{"GET"}
	got := IfEmpty(in, def)
	if len(got) != 3 || got[0] != "GET" {
		t.Fatalf("IfEmpty returned wrong slice: %#v", got)
	}

	// empty slice should fall back to default
	var empty []string
	def2 := []string{"Content-Type"}
	got2 := IfEmpty(empty, def2)
	if len(got2) != 1 || got2[0] != "Content-Type" {
		t.Fatalf("IfEmpty did not return default: %#v", got2)
	}
}

func TestContains(t *testing.T) {
	t.Parallel()

	cases := []struct {
		s, sub string
		want   bool
	}{
		{"grainfather g40", "grainfather", true}, // prefix
		{"brew in a bag", "bag", true},           // suffix
		{"no sparge kettle", "sparge", true},     // mid substring
		{"anything", "", true},                   // empty always true
		{"all grain", "extract", false},          // not present
		{"biab", "brew in a bag", false},         // sub longer than s
	}

	for _, c := range cases {
		if got := Contains(c.s, c.sub); got != c.want {
			t.Errorf("Contains(%q,%q)=%v want %v", c.s, c.sub, got, c.want)
		}
	}
}

func TestMustString(t *testing.T) {
	if got := MustString("recipes", "module name"); got != "recipes" {
		t.Fatalf("want recipes got %q", got)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("want panic for empty name")
		}
	}()
	_ = MustString("   ", "module name")
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"/recipes/":   "/recipes",
		" calc  ":     "/calc",
		"//recipes//": "/recipes",
		"/":           "", // should panic
		"":            "", // should panic
	}
	for in, want := range cases {
		if want == "" {
			func() {
				defer func() {
					if recover() == nil {
						t.Fatalf("want panic for %q", in)
					}
				}()
				_ = MustPrefix(in)
			}()
			continue
		}
		if got := MustPrefix(in); got != want {
			t.Fatalf("in %q want %q got %q", in, want, got)
		}
	}
}
