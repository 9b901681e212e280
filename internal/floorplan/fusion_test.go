package floorplan

import "testing"

func itemsOf(types ...FurnitureType) []*FurnitureItem {
	items := make([]*FurnitureItem, len(types))
	for i, t := range types {
		items[i] = &FurnitureItem{ID: newID(), Type: t}
	}
	return items
}

func TestInferRoomType_SingleStrongItem(t *testing.T) {
	cases := []struct {
		name  string
		types []FurnitureType
		want  RoomType
	}{
		{"bed", []FurnitureType{FurnitureBed}, RoomBedroom},
		{"toilet", []FurnitureType{FurnitureToilet}, RoomBathroom},
		{"stove", []FurnitureType{FurnitureStove}, RoomKitchen},
		{"refrigerator", []FurnitureType{FurnitureRefrigerator}, RoomKitchen},
		{"sofa", []FurnitureType{FurnitureSofa}, RoomLivingRoom},
		{"bathtub", []FurnitureType{FurnitureBathtub}, RoomBathroom},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := InferRoomTypeFromFurniture(itemsOf(tc.types...)); got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestInferRoomType_InsufficientEvidence(t *testing.T) {
	// A single chair scores 1 in every direction, below the acceptance
	// threshold: the room stays unknown rather than being guessed.
	if got := InferRoomTypeFromFurniture(itemsOf(FurnitureChair)); got != RoomUnknown {
		t.Errorf("single chair inferred %s, want unknown", got)
	}

	if got := InferRoomTypeFromFurniture(nil); got != RoomUnknown {
		t.Errorf("no furniture inferred %s, want unknown", got)
	}
}

func TestInferRoomType_DiningSet(t *testing.T) {
	// Three chairs with a table trigger the dining-set bonus: table 5 +
	// bonus 8 = 13 for dining, beating the table's kitchen/office votes.
	items := itemsOf(FurnitureTable, FurnitureChair, FurnitureChair, FurnitureChair)
	if got := InferRoomTypeFromFurniture(items); got != RoomDiningRoom {
		t.Errorf("dining set inferred %s, want dining_room", got)
	}
}

func TestInferRoomType_TwoChairsNoBonus(t *testing.T) {
	// Two chairs with a table: no set bonus, each chair contributes its
	// weak spread. Dining still wins (5 + 2 = 7) but through the
	// per-chair path.
	items := itemsOf(FurnitureTable, FurnitureChair, FurnitureChair)
	if got := InferRoomTypeFromFurniture(items); got != RoomDiningRoom {
		t.Errorf("got %s, want dining_room", got)
	}
}

func TestInferRoomType_MixedEvidence(t *testing.T) {
	// Sink votes bathroom 3 / kitchen 2; adding a stove (kitchen 10)
	// swings the room decisively to kitchen.
	items := itemsOf(FurnitureSink, FurnitureStove)
	if got := InferRoomTypeFromFurniture(items); got != RoomKitchen {
		t.Errorf("got %s, want kitchen", got)
	}

	// A sink alone reaches exactly the bathroom threshold.
	if got := InferRoomTypeFromFurniture(itemsOf(FurnitureSink)); got != RoomBathroom {
		t.Errorf("lone sink inferred %s, want bathroom", got)
	}
}

func TestReclassifyRooms_OverridesOnlyUnknown(t *testing.T) {
	unknown := &Room{ID: "u", Type: RoomUnknown, Source: SourceUnclassified, Color: DisplayColor(RoomUnknown)}
	typed := &Room{ID: "t", Type: RoomKitchen, Source: SourceLabel, Color: DisplayColor(RoomKitchen)}
	rooms := []*Room{unknown, typed}

	bed := &FurnitureItem{ID: "f1", Type: FurnitureBed, AssignedRoomID: "u"}
	sofa := &FurnitureItem{ID: "f2", Type: FurnitureSofa, AssignedRoomID: "t"}
	index := BuildFurnitureIndex([]*FurnitureItem{bed, sofa})

	ReclassifyRooms(rooms, index)

	if unknown.Type != RoomBedroom {
		t.Errorf("unknown room refined to %s, want bedroom", unknown.Type)
	}
	if unknown.Source != SourceFurniture {
		t.Errorf("Source = %s, want %s", unknown.Source, SourceFurniture)
	}
	if unknown.Color != DisplayColor(RoomBedroom) {
		t.Error("refinement must update the display color")
	}

	// The confidently typed room keeps its label-derived type even
	// though its furniture says living room.
	if typed.Type != RoomKitchen {
		t.Errorf("typed room overridden to %s", typed.Type)
	}
}

func TestReclassifyRooms_WeakEvidenceLeavesUnknown(t *testing.T) {
	room := &Room{ID: "u", Type: RoomUnknown, Source: SourceUnclassified}
	chair := &FurnitureItem{ID: "f", Type: FurnitureChair, AssignedRoomID: "u"}

	ReclassifyRooms([]*Room{room}, BuildFurnitureIndex([]*FurnitureItem{chair}))

	if room.Type != RoomUnknown {
		t.Errorf("room refined to %s on sub-threshold evidence", room.Type)
	}
	if room.Source != SourceUnclassified {
		t.Errorf("Source changed to %s without refinement", room.Source)
	}
}

func TestReclassifyRooms_Idempotent(t *testing.T) {
	room := &Room{ID: "u", Type: RoomUnknown, Source: SourceUnclassified}
	bed := &FurnitureItem{ID: "f", Type: FurnitureBed, AssignedRoomID: "u"}
	index := BuildFurnitureIndex([]*FurnitureItem{bed})

	ReclassifyRooms([]*Room{room}, index)
	first := room.Type

	ReclassifyRooms([]*Room{room}, index)

	if room.Type != first {
		t.Errorf("second pass changed type from %s to %s", first, room.Type)
	}
	if room.Source != SourceFurniture {
		t.Errorf("Source = %s after second pass", room.Source)
	}
}

func TestDisplayColor(t *testing.T) {
	if DisplayColor(RoomKitchen) == DisplayColor(RoomBathroom) {
		t.Error("distinct room types should have distinct colors")
	}
	if DisplayColor(RoomType("made-up")) != DisplayColor(RoomUnknown) {
		t.Error("unlisted types share the unknown color")
	}
}
