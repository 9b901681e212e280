package floorplan

import (
	"math"
	"testing"

	"github.com/roomscan/floorplan-mcp/internal/geometry"
)

func boxDetection(label string, w, h float64) RawDetection {
	return RawDetection{
		Box:        geometry.Rect{X: 0, Y: 0, W: w, H: h},
		Confidence: 0.9,
		ClassLabel: label,
	}
}

func TestClassify_LabelWins(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		label string
		want  RoomType
	}{
		{"bathroom", RoomBathroom},
		{"BATHROOM", RoomBathroom},
		{"master bedroom", RoomBedroom},
		{"kitchen", RoomKitchen},
		{"living room", RoomLivingRoom},
		{"dining", RoomDiningRoom},
		{"hallway", RoomHallway},
		{"corridor", RoomHallway},
		{"walk-in closet", RoomCloset},
		{"laundry", RoomLaundry},
		{"garage", RoomGarage},
		{"home office", RoomOffice},
	}

	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			// Tiny box: a size-based classification would disagree, so a
			// match proves the label took precedence at any size.
			room := c.Classify(boxDetection(tc.label, 5, 5), 1.0)
			if room.Type != tc.want {
				t.Errorf("Classify(%q) = %s, want %s", tc.label, room.Type, tc.want)
			}
			if room.Source != SourceLabel {
				t.Errorf("Source = %s, want %s", room.Source, SourceLabel)
			}
		})
	}
}

func TestClassify_GenericLabelIgnored(t *testing.T) {
	c := NewClassifier()

	// "room" carries no signal; this 10x10 box at scale 1 has area 100,
	// which falls in the bedroom bucket.
	room := c.Classify(boxDetection("room", 10, 10), 1.0)
	if room.Type != RoomBedroom {
		t.Errorf("generic label should fall through to geometry, got %s", room.Type)
	}
	if room.Source != SourceGeometry {
		t.Errorf("Source = %s, want %s", room.Source, SourceGeometry)
	}
}

func TestClassify_NarrowRoomIsHallway(t *testing.T) {
	c := NewClassifier()

	// 60x5: aspect ratio 0.083, well under the hallway bound.
	room := c.Classify(boxDetection("", 60, 5), 1.0)
	if room.Type != RoomHallway {
		t.Errorf("Classify(60x5) = %s, want %s", room.Type, RoomHallway)
	}
}

func TestClassify_AreaBuckets(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		name string
		w, h float64
		want RoomType
	}{
		{"closet", 5, 5, RoomCloset},              // 25
		{"bathroom", 7, 7, RoomBathroom},          // 49
		{"bedroom", 10, 10, RoomBedroom},          // 100
		{"mid near-square dining", 14, 14, RoomDiningRoom}, // 196
		{"mid elongated bedroom", 20, 11, RoomBedroom},     // 220, ar 0.55
		{"large near-square dining", 23, 22, RoomDiningRoom}, // 506, ar ~0.96
		{"large elongated living", 30, 15, RoomLivingRoom},   // 450, ar 0.5
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			room := c.Classify(boxDetection("", tc.w, tc.h), 1.0)
			if room.Type != tc.want {
				t.Errorf("Classify(%vx%v) = %s, want %s", tc.w, tc.h, room.Type, tc.want)
			}
		})
	}
}

func TestClassify_Dimensions(t *testing.T) {
	c := NewClassifier()

	// 20x10 box at 0.5 length units per pixel.
	room := c.Classify(boxDetection("bedroom", 20, 10), 0.5)

	d := room.Dimensions
	if d.WidthPx != 20 || d.HeightPx != 10 {
		t.Errorf("pixel dims = %vx%v, want 20x10", d.WidthPx, d.HeightPx)
	}
	if d.AreaPx != 200 {
		t.Errorf("AreaPx = %v, want 200", d.AreaPx)
	}
	if d.WidthPhys != 10 || d.HeightPhys != 5 {
		t.Errorf("phys dims = %vx%v, want 10x5", d.WidthPhys, d.HeightPhys)
	}
	// Area scales by the square of the factor.
	if math.Abs(d.AreaPhys-50) > 1e-9 {
		t.Errorf("AreaPhys = %v, want 50", d.AreaPhys)
	}
}

func TestClassify_PolygonOverridesBoxArea(t *testing.T) {
	c := NewClassifier()

	// Triangular outline inside a 10x10 box: polygon area, not box area.
	det := RawDetection{
		Box: geometry.Rect{W: 10, H: 10},
		Polygon: geometry.Polygon{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10},
		},
		ClassLabel: "bedroom",
	}

	room := c.Classify(det, 1.0)
	if room.Dimensions.AreaPx != 50 {
		t.Errorf("AreaPx = %v, want polygon area 50", room.Dimensions.AreaPx)
	}
}

func TestClassify_MalformedPolygon(t *testing.T) {
	c := NewClassifier()

	// Two-point "polygon": the outline falls back to the bounding box,
	// and a detection with no box at all degrades to zero area and the
	// smallest bucket rather than failing.
	det := RawDetection{
		Polygon: geometry.Polygon{{X: 0, Y: 0}, {X: 5, Y: 5}},
	}

	room := c.Classify(det, 1.0)
	if room == nil {
		t.Fatal("malformed detection must still produce a room")
	}
	if room.Dimensions.AreaPx != 0 {
		t.Errorf("AreaPx = %v, want 0", room.Dimensions.AreaPx)
	}
	if room.Type != RoomCloset {
		t.Errorf("zero-area room should land in the smallest bucket, got %s", room.Type)
	}
}

func TestClassify_AssignsColorAndID(t *testing.T) {
	c := NewClassifier()

	room := c.Classify(boxDetection("kitchen", 10, 10), 1.0)
	if room.ID == "" {
		t.Error("room must get an ID")
	}
	if room.Color != DisplayColor(RoomKitchen) {
		t.Errorf("Color = %q, want the kitchen table entry %q", room.Color, DisplayColor(RoomKitchen))
	}
}

func TestAspectRatio(t *testing.T) {
	cases := []struct {
		w, h, want float64
	}{
		{10, 10, 1},
		{20, 10, 0.5},
		{10, 20, 0.5},
		{0, 10, 0},
	}

	for _, tc := range cases {
		if got := aspectRatio(tc.w, tc.h); got != tc.want {
			t.Errorf("aspectRatio(%v, %v) = %v, want %v", tc.w, tc.h, got, tc.want)
		}
	}
}

func TestClassifyFurniture(t *testing.T) {
	items := ClassifyFurniture([]RawDetection{
		boxDetection("bed", 10, 8),
		boxDetection("dining table", 6, 6),
		boxDetection("flux capacitor", 2, 2),
	})

	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[0].Type != FurnitureBed {
		t.Errorf("items[0].Type = %s, want bed", items[0].Type)
	}
	if items[1].Type != FurnitureTable {
		t.Errorf("items[1].Type = %s, want table", items[1].Type)
	}
	if items[2].Type != FurnitureOther {
		t.Errorf("unmatched label should be other, got %s", items[2].Type)
	}
	if items[0].AssignedRoomID != "" {
		t.Error("fresh furniture must be unassigned")
	}
}
