// Package ingest turns uploaded recipe documents into the canonical recipe
// model. Each supported format lives in its own subpackage; this package
// detects which one a payload is and dispatches
package ingest

import (
	"bytes"
	"unicode"

	"brewprints/internal/adapters/ingest/beerjson"
	"brewprints/internal/adapters/ingest/beerxml"
	"brewprints/internal/core/recipe"
	perr "brewprints/internal/platform/errors"
)

// Format names a supported upload format
type Format string

const (
	FormatBeerXML  Format = "beerxml"
	FormatBeerJSON Format = "beerjson"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Detect sniffs the payload for a supported format. XML documents open with
// '<', JSON documents with '{' or '['; anything else is rejected
func Detect(data []byte) (Format, error) {
	for _, b := range bytes.TrimPrefix(data, bom) {
		if unicode.IsSpace(rune(b)) {
			continue
		}
		switch b {
		case '<':
			return FormatBeerXML, nil
		case '{', '[':
			return FormatBeerJSON, nil
		default:
			return "", perr.Newf(perr.ErrorCodeValidation, "unrecognized recipe document (leading byte %q)", b)
		}
	}
	return "", perr.New(perr.ErrorCodeValidation, "empty recipe document")
}

// Parse decodes the first recipe in the payload. An empty format means
// detect; an unknown format is a validation error
func Parse(format Format, data []byte) (recipe.Recipe, Format, error) {
	if format == "" {
		f, err := Detect(data)
		if err != nil {
			return recipe.Recipe{}, "", err
		}
		format = f
	}
	switch format {
	case FormatBeerXML:
		rec, err := beerxml.Parse(data)
		return rec, format, err
	case FormatBeerJSON:
		rec, err := beerjson.Parse(data)
		return rec, format, err
	default:
		return recipe.Recipe{}, format, perr.Newf(perr.ErrorCodeValidation, "unsupported recipe format %q", format)
	}
}
