// Command brewprints-calc runs the brewing calculators against a recipe
// file without the HTTP service. Useful for batch checking exports and for
// eyeballing what the API would answer
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"brewprints/internal/adapters/ingest"
	"brewprints/internal/core/water"
	"brewprints/internal/services/api/calc/domain"
	calcsvc "brewprints/internal/services/api/calc/service"
)

type report struct {
	Source string `json:"source"`
	Format string `json:"format"`
	Name   string `json:"name,omitempty"`

	Water   domain.WaterReport `json:"water"`
	Gravity any                `json:"gravity,omitempty"`
	IBU     any                `json:"ibu,omitempty"`
	Color   any                `json:"color,omitempty"`

	Skipped []string `json:"skipped,omitempty"`
}

func must(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// guessFormat maps a file extension to an ingest format, empty means sniff
func guessFormat(path, flagFormat string) ingest.Format {
	switch strings.ToLower(strings.TrimSpace(flagFormat)) {
	case "beerxml", "xml":
		return ingest.FormatBeerXML
	case "beerjson", "json":
		return ingest.FormatBeerJSON
	case "":
	default:
		must(fmt.Errorf("unknown format %q (want beerxml or beerjson)", flagFormat))
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return ingest.FormatBeerXML
	case ".json":
		return ingest.FormatBeerJSON
	}
	return ""
}

func main() {
	var (
		format = flag.String("format", "", "input format: beerxml or beerjson (default: sniff)")
		unit   = flag.String("unit", "l", "display unit for volumes: l or gal")
		out    = flag.String("out", "-", "output path or '-' for stdout")
		pretty = flag.Bool("pretty", true, "pretty-print JSON")
		all    = flag.Bool("all", true, "also run gravity, ibu, and color")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		_, _ = fmt.Fprintln(os.Stderr, "usage: brewprints-calc [flags] <recipe file>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	must(err)

	rec, got, err := ingest.Parse(guessFormat(path, *format), data)
	must(err)

	terms, err := water.LoadTerms()
	must(err)
	svc := calcsvc.New(terms, calcsvc.Options{})

	ctx := context.Background()
	rep := report{Source: path, Format: string(got), Name: rec.Name}

	wr, err := svc.Water(ctx, domain.WaterInput{Recipe: rec, DisplayUnit: *unit})
	must(err)
	rep.Water = wr

	if *all {
		// companion calculators are best effort; a recipe without hops
		// still gets its water report
		if g, err := svc.Gravity(ctx, domain.GravityInput{Recipe: rec}); err == nil {
			rep.Gravity = g
		} else {
			rep.Skipped = append(rep.Skipped, "gravity: "+err.Error())
		}
		if b, err := svc.IBU(ctx, domain.IBUInput{Recipe: rec}); err == nil {
			rep.IBU = b
		} else {
			rep.Skipped = append(rep.Skipped, "ibu: "+err.Error())
		}
		if c, err := svc.Color(ctx, domain.ColorInput{Recipe: rec}); err == nil {
			rep.Color = c
		} else {
			rep.Skipped = append(rep.Skipped, "color: "+err.Error())
		}
	}

	var enc []byte
	if *pretty {
		enc, err = json.MarshalIndent(rep, "", "  ")
	} else {
		enc, err = json.Marshal(rep)
	}
	must(err)

	if *out == "-" {
		_, err = os.Stdout.Write(append(enc, '\n'))
		must(err)
		return
	}
	must(os.MkdirAll(filepath.Dir(*out), 0o755))
	must(os.WriteFile(*out, enc, 0o644))
}
