package water

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"brewprints/internal/core/namenorm"
)

//go:embed terms.json
var embeddedTerms []byte

type rawTerms struct {
	Version          int            `json:"version"`
	Meta             map[string]any `json:"meta"`
	NoSparge         []string       `json:"no_sparge"`
	AllInOne         []string       `json:"all_in_one"`
	ExtractTypes     []string       `json:"extract_types"`
	PartialMashTypes []string       `json:"partial_mash_types"`
	AllGrainTypes    []string       `json:"all_grain_types"`
}

// Terms is the compiled indicator term pack. All term lists are normalized
// at load so matching is a plain substring test against a normalized name
type Terms struct {
	Version int

	noSparge    []string
	allInOne    []string
	extract     []string
	partialMash []string
	allGrain    []string
}

// LoadTerms compiles the embedded terms.json
func LoadTerms() (*Terms, error) {
	var rt rawTerms
	if err := json.Unmarshal(embeddedTerms, &rt); err != nil {
		return nil, fmt.Errorf("water: parse terms.json: %w", err)
	}
	if rt.Version != 1 {
		return nil, fmt.Errorf("water: unsupported terms.json version %d (want 1)", rt.Version)
	}
	t := &Terms{
		Version:     rt.Version,
		noSparge:    normalizeTerms(rt.NoSparge),
		allInOne:    normalizeTerms(rt.AllInOne),
		extract:     normalizeTerms(rt.ExtractTypes),
		partialMash: normalizeTerms(rt.PartialMashTypes),
		allGrain:    normalizeTerms(rt.AllGrainTypes),
	}
	if len(t.noSparge) == 0 || len(t.allInOne) == 0 {
		return nil, fmt.Errorf("water: terms.json missing equipment indicator terms")
	}
	return t, nil
}

// NoSparge reports whether the name carries an explicit no-sparge marker
func (t *Terms) NoSparge(name string) bool { return matchAny(name, t.noSparge) }

// AllInOne reports whether the name matches a known all-in-one product
func (t *Terms) AllInOne(name string) bool { return matchAny(name, t.allInOne) }

// Extract reports whether the recipe type names an extract recipe
func (t *Terms) Extract(recipeType string) bool { return matchAny(recipeType, t.extract) }

// PartialMash reports whether the recipe type names a partial mash recipe
func (t *Terms) PartialMash(recipeType string) bool { return matchAny(recipeType, t.partialMash) }

// AllGrain reports whether the recipe type names an all grain recipe
func (t *Terms) AllGrain(recipeType string) bool { return matchAny(recipeType, t.allGrain) }

// normalizeTerms folds every term through the name normalizer and drops empties
func normalizeTerms(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := namenorm.Normalize(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func matchAny(name string, terms []string) bool {
	if name == "" {
		return false
	}
	n := namenorm.Normalize(name)
	for _, term := range terms {
		if strings.Contains(n, term) {
			return true
		}
	}
	return false
}
