package pipeline

import (
	"context"
	"testing"

	"github.com/roomscan/floorplan-mcp/internal/dimension"
	"github.com/roomscan/floorplan-mcp/internal/floorplan"
	"github.com/roomscan/floorplan-mcp/internal/geometry"
)

// twoRoomInput builds a plan with a labeled kitchen, an unlabeled room
// holding a bed, and a sofa in the kitchen.
func twoRoomInput() Input {
	return Input{
		Rooms: []floorplan.RawDetection{
			{Box: geometry.Rect{X: 0, Y: 0, W: 200, H: 150}, ClassLabel: "kitchen", Confidence: 0.95},
			{Box: geometry.Rect{X: 200, Y: 0, W: 200, H: 150}, ClassLabel: "", Confidence: 0.8},
		},
		Furniture: []floorplan.RawDetection{
			{Box: geometry.Rect{X: 250, Y: 40, W: 60, H: 40}, ClassLabel: "bed", Confidence: 0.9},
			{Box: geometry.Rect{X: 40, Y: 40, W: 50, H: 25}, ClassLabel: "sofa", Confidence: 0.85},
		},
		Scale: 0.05,
	}
}

func TestRun_FullPipeline(t *testing.T) {
	p := New()
	res := p.Run(twoRoomInput())

	if len(res.Rooms) != 2 {
		t.Fatalf("got %d rooms, want 2", len(res.Rooms))
	}
	if len(res.Furniture) != 2 {
		t.Fatalf("got %d furniture items, want 2", len(res.Furniture))
	}

	kitchen, unlabeled := res.Rooms[0], res.Rooms[1]
	if kitchen.Type != floorplan.RoomKitchen {
		t.Errorf("room 0 = %s, want kitchen", kitchen.Type)
	}

	bed, sofa := res.Furniture[0], res.Furniture[1]
	if bed.AssignedRoomID != unlabeled.ID {
		t.Errorf("bed assigned to %q, want the unlabeled room", bed.AssignedRoomID)
	}
	if sofa.AssignedRoomID != kitchen.ID {
		t.Errorf("sofa assigned to %q, want the kitchen", sofa.AssignedRoomID)
	}
}

func TestRun_FurnitureRefinesUnlabeledRoom(t *testing.T) {
	p := New()

	// The unlabeled 200x150 room at scale 0.05 has physical area 75, so
	// the geometry bucket types it before fusion runs; the bed inside it
	// must not override that geometric classification.
	res := p.Run(twoRoomInput())
	unlabeled := res.Rooms[1]

	if unlabeled.Type == floorplan.RoomUnknown {
		t.Errorf("geometry bucket should have typed the unlabeled room")
	}
	if unlabeled.Source == floorplan.SourceFurniture {
		t.Errorf("furniture must not override a geometry-typed room")
	}
}

func TestRun_OCROverlay(t *testing.T) {
	in := twoRoomInput()
	in.Tokens = []dimension.TextToken{
		{Text: "4.2m", Vertices: geometry.Rect{X: 60, Y: 2, W: 40, H: 10}.Polygon()},
		{Text: "3.1m", Vertices: geometry.Rect{X: 2, Y: 60, W: 10, H: 40}.Polygon()},
	}

	res := New().Run(in)
	kitchen := res.Rooms[0]

	if kitchen.OCR == nil {
		t.Fatal("kitchen gained no OCR dimensions")
	}
	if kitchen.OCR.WidthM != 4.2 || kitchen.OCR.HeightM != 3.1 {
		t.Errorf("OCR dims = %vx%v, want 4.2x3.1", kitchen.OCR.WidthM, kitchen.OCR.HeightM)
	}

	// Geometry-derived dimensions survive untouched.
	if kitchen.Dimensions.WidthPhys != 200*0.05 {
		t.Errorf("WidthPhys = %v, want 10", kitchen.Dimensions.WidthPhys)
	}
}

func TestRun_Deterministic(t *testing.T) {
	p := New()
	in := twoRoomInput()

	a := p.Run(in)
	b := p.Run(in)

	for i := range a.Rooms {
		if a.Rooms[i].Type != b.Rooms[i].Type || a.Rooms[i].Source != b.Rooms[i].Source {
			t.Errorf("room %d classification differs across identical runs", i)
		}
	}
	for i := range a.Furniture {
		// IDs are fresh per run; the assignment structure must match.
		aAssigned := a.Furniture[i].AssignedRoomID != ""
		bAssigned := b.Furniture[i].AssignedRoomID != ""
		if aAssigned != bAssigned {
			t.Errorf("furniture %d assignment differs across identical runs", i)
		}
	}
}

func TestAnalyzeBatch(t *testing.T) {
	p := New()
	p.BatchLimit = 2

	inputs := []Input{twoRoomInput(), twoRoomInput(), twoRoomInput()}

	results, err := p.AnalyzeBatch(context.Background(), inputs)
	if err != nil {
		t.Fatalf("AnalyzeBatch failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, res := range results {
		if len(res.Rooms) != 2 {
			t.Errorf("result %d has %d rooms, want 2", i, len(res.Rooms))
		}
	}
}

func TestAnalyzeBatch_CancelledContext(t *testing.T) {
	p := New()
	p.BatchLimit = 1

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.AnalyzeBatch(ctx, []Input{twoRoomInput()}); err == nil {
		t.Error("cancelled context should surface an error")
	}
}
