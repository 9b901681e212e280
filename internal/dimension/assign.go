package dimension

import (
	"github.com/roomscan/floorplan-mcp/internal/floorplan"
	"github.com/roomscan/floorplan-mcp/internal/geometry"
)

// DefaultTolerancePx is how far (in pixels) a dimension label's center
// may sit outside a room outline and still be considered for that room.
// Dimension text is usually printed just outside the wall it measures.
const DefaultTolerancePx = 20

// AssignToRooms buckets annotations by the room they most plausibly
// annotate.
//
// For each annotation, every room whose outline contains the label
// center or lies within tolerance of it is a candidate; among the
// candidates the one with the smallest outline distance wins, earlier
// rooms winning exact ties. Each annotation lands in at most one bucket;
// annotations matching no room are dropped.
func AssignToRooms(anns []Annotation, rooms []*floorplan.Room, tolerance float64) map[string][]Annotation {
	buckets := make(map[string][]Annotation)

	for _, ann := range anns {
		if id, ok := nearestRoom(ann.Center, rooms, tolerance); ok {
			buckets[id] = append(buckets[id], ann)
		}
	}
	return buckets
}

func nearestRoom(center geometry.Point, rooms []*floorplan.Room, tolerance float64) (string, bool) {
	best := ""
	bestDist := 0.0
	found := false

	for _, room := range rooms {
		if !geometry.WithinDistance(center, room.Polygon, tolerance) {
			continue
		}
		d := geometry.DistanceToPolygon(center, room.Polygon)
		if !found || d < bestDist {
			best = room.ID
			bestDist = d
			found = true
		}
	}
	return best, found
}

// ApplyToRoom folds a room's assigned annotations into OCR dimensions on
// the room.
//
// Annotations are split by orientation; the maximum-valued horizontal
// one becomes the OCR width and the maximum-valued vertical one the OCR
// height. When both are present the OCR area is their product and the
// room's dimensions count as verified. Geometry-derived dimensions are
// left untouched; the two channels are stored side by side and not
// reconciled.
func ApplyToRoom(room *floorplan.Room, anns []Annotation) {
	if len(anns) == 0 {
		return
	}

	var width, height float64
	for _, ann := range anns {
		switch ann.Orientation {
		case Horizontal:
			if ann.Meters > width {
				width = ann.Meters
			}
		case Vertical:
			if ann.Meters > height {
				height = ann.Meters
			}
		}
	}

	if width == 0 && height == 0 {
		return
	}

	ocr := &floorplan.OCRDimensions{WidthM: width, HeightM: height}
	if width > 0 && height > 0 {
		ocr.AreaM2 = width * height
		ocr.Verified = true
	}
	room.OCR = ocr
}

// Overlay runs the full OCR dimension stage: tokens are interpreted and
// filtered, assigned to rooms, and applied. Rooms gain OCR dimensions in
// place; everything else is untouched.
func Overlay(tokens []TextToken, rooms []*floorplan.Room, tolerance float64) {
	anns := TokensToAnnotations(tokens)
	buckets := AssignToRooms(anns, rooms, tolerance)
	for _, room := range rooms {
		ApplyToRoom(room, buckets[room.ID])
	}
}
