package dimension

import (
	"math"
	"testing"

	"github.com/roomscan/floorplan-mcp/internal/geometry"
)

func TestInterpret(t *testing.T) {
	cases := []struct {
		text   string
		unit   string
		meters float64
	}{
		{"3000", "mm", 3.0},   // unitless, magnitude says millimeters
		{"3.5", "m", 3.5},     // unitless, small magnitude says meters
		{"3.5m", "m", 3.5},
		{"3,5m", "m", 3.5},    // metric decimal comma
		{"250cm", "cm", 2.5},
		{"12ft", "ft", 3.6576},
		{"12'", "ft", 3.6576},
		{"30in", "in", 0.762},
		{`30"`, "in", 0.762},
		{" 4200 mm ", "mm", 4.2},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got, ok := Interpret(tc.text)
			if !ok {
				t.Fatalf("Interpret(%q) failed to parse", tc.text)
			}
			if got.Unit != tc.unit {
				t.Errorf("Unit = %q, want %q", got.Unit, tc.unit)
			}
			if math.Abs(got.Meters-tc.meters) > 1e-9 {
				t.Errorf("Meters = %v, want %v", got.Meters, tc.meters)
			}
		})
	}
}

func TestInterpret_Rejects(t *testing.T) {
	cases := []string{
		"",
		"bedroom",
		"m3.5",     // unit before value
		"3.5 x 4",  // compound dimension strings are not single tokens
		"3.5km",    // unsupported unit
		"--",
	}

	for _, text := range cases {
		if _, ok := Interpret(text); ok {
			t.Errorf("Interpret(%q) parsed, want rejection", text)
		}
	}
}

func labelToken(text string, x, y, w, h float64) TextToken {
	return TextToken{
		Text:     text,
		Vertices: geometry.Rect{X: x, Y: y, W: w, H: h}.Polygon(),
	}
}

func TestFilterImplausible(t *testing.T) {
	anns := []Annotation{
		{RawText: "1cm", Meters: 0.01},
		{RawText: "5m", Meters: 5.0},
		{RawText: "75m", Meters: 75},
	}

	kept := FilterImplausible(anns)
	if len(kept) != 1 {
		t.Fatalf("kept %d annotations, want 1", len(kept))
	}
	if kept[0].RawText != "5m" {
		t.Errorf("kept %q, want the 5m entry", kept[0].RawText)
	}
}

func TestTokensToAnnotations(t *testing.T) {
	tokens := []TextToken{
		labelToken("3.5m", 0, 0, 40, 10),   // wide box: horizontal
		labelToken("4200", 100, 0, 10, 40), // tall box: vertical, 4200mm
		labelToken("scale", 0, 50, 40, 10), // not a dimension
		labelToken("900", 0, 100, 40, 10),  // 900mm = 0.9m, plausible
		{Text: "2.5m"},                     // no polygon: dropped
	}

	anns := TokensToAnnotations(tokens)
	if len(anns) != 3 {
		t.Fatalf("got %d annotations, want 3", len(anns))
	}

	if anns[0].Orientation != Horizontal {
		t.Errorf("wide label orientation = %s, want horizontal", anns[0].Orientation)
	}
	if anns[1].Orientation != Vertical {
		t.Errorf("tall label orientation = %s, want vertical", anns[1].Orientation)
	}
	if math.Abs(anns[1].Meters-4.2) > 1e-9 {
		t.Errorf("4200 -> %v m, want 4.2", anns[1].Meters)
	}

	// Center comes from the polygon centroid.
	if anns[0].Center != (geometry.Point{X: 20, Y: 5}) {
		t.Errorf("Center = %v, want (20,5)", anns[0].Center)
	}
}
