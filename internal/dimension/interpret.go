// Package dimension interprets OCR text tokens from a floor plan as
// dimension labels and attaches them to rooms.
//
// A token like "3.5m" or "3000" becomes an annotation carrying the
// parsed value, its unit, and the value converted to canonical meters.
// Annotations are filtered for architectural plausibility, spatially
// assigned to the nearest room, and finally folded into per-room OCR
// width/height/area figures. OCR-derived dimensions are stored alongside
// the geometry-derived ones, never in their place.
package dimension

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/roomscan/floorplan-mcp/internal/geometry"
)

// Orientation says whether a dimension label annotates a horizontal or a
// vertical extent, derived from the shape of the label's own bounding
// box (wider than tall reads as horizontal).
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// TextToken is one raw OCR token as delivered by the external
// text-detection service: the recognized text and the vertices of its
// bounding polygon in image space.
type TextToken struct {
	Text     string           `json:"text"`
	Vertices geometry.Polygon `json:"vertices"`
}

// Annotation is an interpreted dimension label.
type Annotation struct {
	RawText     string           `json:"raw_text"`
	Value       float64          `json:"value"`
	Unit        string           `json:"unit"`
	Meters      float64          `json:"meters"`
	Polygon     geometry.Polygon `json:"polygon"`
	Center      geometry.Point   `json:"center"`
	Orientation Orientation      `json:"orientation"`
}

// Plausible architectural dimension range in meters. Anything outside is
// OCR noise (a page number, a scale note, a garbled token).
const (
	PlausibleMinMeters = 0.1
	PlausibleMaxMeters = 50
)

// dimensionPattern matches a leading numeric token with an optional
// trailing unit. Commas are accepted as decimal separators since plans
// from metric locales print "3,5".
var dimensionPattern = regexp.MustCompile(`^\s*(\d+(?:[.,]\d+)?)\s*(mm|cm|m|ft|in|'|")?\s*$`)

// metersPerUnit holds the fixed conversion factors to canonical meters.
var metersPerUnit = map[string]float64{
	"mm": 0.001,
	"cm": 0.01,
	"m":  1,
	"ft": 0.3048,
	"'":  0.3048,
	"in": 0.0254,
	`"`:  0.0254,
}

// Interpretation is the parsed numeric content of a dimension token.
type Interpretation struct {
	Value  float64 // numeric value as printed
	Unit   string  // normalized unit ("mm", "cm", "m", "ft", "in")
	Meters float64 // value converted to canonical meters
}

// Interpret parses a dimension text token. The boolean is false when the
// token does not match the numeric+unit pattern; per the error-handling
// policy such tokens are dropped silently, never propagated as errors.
//
// When the token carries no unit the unit is inferred from magnitude:
// values of 100 and above are taken as millimeters, smaller values as
// meters. The inference is ambiguous for bare values in the 100-999
// range that could be centimeters; that behavior is inherited and
// documented rather than resolved (see DESIGN.md).
func Interpret(text string) (Interpretation, bool) {
	m := dimensionPattern.FindStringSubmatch(text)
	if m == nil {
		return Interpretation{}, false
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return Interpretation{}, false
	}

	unit := m[2]
	if unit == "" {
		if value >= 100 {
			unit = "mm"
		} else {
			unit = "m"
		}
	}

	factor, ok := metersPerUnit[unit]
	if !ok {
		return Interpretation{}, false
	}

	return Interpretation{
		Value:  value,
		Unit:   normalizeUnit(unit),
		Meters: value * factor,
	}, true
}

func normalizeUnit(unit string) string {
	switch unit {
	case "'":
		return "ft"
	case `"`:
		return "in"
	default:
		return unit
	}
}

// FilterImplausible drops annotations whose canonical value falls
// outside the default plausible architectural range.
func FilterImplausible(anns []Annotation) []Annotation {
	return FilterOutsideRange(anns, PlausibleMinMeters, PlausibleMaxMeters)
}

// FilterOutsideRange drops annotations whose canonical value falls
// outside [min, max] meters.
func FilterOutsideRange(anns []Annotation, min, max float64) []Annotation {
	kept := make([]Annotation, 0, len(anns))
	for _, a := range anns {
		if a.Meters < min || a.Meters > max {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

// TokensToAnnotations interprets raw OCR tokens and returns the
// plausible dimension annotations among them, in token order. Tokens
// that fail the pattern, lack a bounding polygon, or parse to an
// implausible value are dropped.
func TokensToAnnotations(tokens []TextToken) []Annotation {
	return TokensToAnnotationsRange(tokens, PlausibleMinMeters, PlausibleMaxMeters)
}

// TokensToAnnotationsRange is TokensToAnnotations with a caller-chosen
// plausibility range.
func TokensToAnnotationsRange(tokens []TextToken, min, max float64) []Annotation {
	anns := make([]Annotation, 0, len(tokens))
	for _, tok := range tokens {
		interp, ok := Interpret(tok.Text)
		if !ok || len(tok.Vertices) == 0 {
			continue
		}

		anns = append(anns, Annotation{
			RawText:     tok.Text,
			Value:       interp.Value,
			Unit:        interp.Unit,
			Meters:      interp.Meters,
			Polygon:     tok.Vertices,
			Center:      geometry.Centroid(tok.Vertices),
			Orientation: orientationOf(tok.Vertices),
		})
	}
	return FilterOutsideRange(anns, min, max)
}

// orientationOf derives a label's orientation from its bounding polygon:
// wider than tall is horizontal, otherwise vertical.
func orientationOf(poly geometry.Polygon) Orientation {
	minX, maxX := poly[0].X, poly[0].X
	minY, maxY := poly[0].Y, poly[0].Y
	for _, p := range poly[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	if maxX-minX > maxY-minY {
		return Horizontal
	}
	return Vertical
}
