package floorplan

// Furniture-based classification refinement. Rooms the classifier could
// not type from their label or geometry get a second chance here: the
// furniture assigned to a room votes for the room types it is evidence
// of, and a sufficiently strong winner overrides the unknown type.

// evidenceThreshold is the minimum accumulated score a candidate type
// must reach; below it the evidence is too thin and the room stays
// unknown rather than being guessed.
const evidenceThreshold = 3

// diningChairCount is how many chairs must co-occur with a table before
// the set reads as a dining arrangement.
const diningChairCount = 3

// diningSetBonus is the dining-room score added for a chairs+table set.
const diningSetBonus = 8

// furnitureEvidence holds the per-furniture-type vote weights. A single
// strongly diagnostic item (bed, toilet, stove, refrigerator) is enough
// to clear the acceptance threshold on its own; weakly diagnostic items
// (sink, table, cabinet) spread smaller weights across several types.
var furnitureEvidence = map[FurnitureType]map[RoomType]float64{
	FurnitureBed:          {RoomBedroom: 10},
	FurnitureToilet:       {RoomBathroom: 10},
	FurnitureBathtub:      {RoomBathroom: 8},
	FurnitureSink:         {RoomBathroom: 3, RoomKitchen: 2},
	FurnitureStove:        {RoomKitchen: 10},
	FurnitureRefrigerator: {RoomKitchen: 10},
	FurnitureCounter:      {RoomKitchen: 5},
	FurnitureSofa:         {RoomLivingRoom: 8},
	FurnitureTable:        {RoomDiningRoom: 5, RoomKitchen: 2, RoomOffice: 2},
	FurnitureCabinet:      {RoomCloset: 3, RoomKitchen: 2},
}

// InferRoomTypeFromFurniture scores room types from the furniture found
// in a room and returns the strongest candidate.
//
// Chairs are handled contextually: three or more chairs together with a
// table read as a dining set and add a single dining-room bonus;
// otherwise each chair contributes weak, ambiguous evidence (dining,
// office, a little living room). If no candidate reaches the acceptance
// threshold the result is RoomUnknown.
//
// Ties between equal scores resolve in favor of the type whose evidence
// was accumulated first in item order, keeping the result deterministic
// for a fixed furniture ordering.
func InferRoomTypeFromFurniture(items []*FurnitureItem) RoomType {
	scores := make(map[RoomType]float64)
	// Insertion order of first evidence, for deterministic tie-breaks.
	order := make([]RoomType, 0, 8)

	add := func(t RoomType, w float64) {
		if _, seen := scores[t]; !seen {
			order = append(order, t)
		}
		scores[t] += w
	}

	chairs := 0
	hasTable := false
	for _, item := range items {
		if item.Type == FurnitureChair {
			chairs++
			continue
		}
		if item.Type == FurnitureTable {
			hasTable = true
		}
		addEvidence(item.Type, add)
	}

	if chairs >= diningChairCount && hasTable {
		add(RoomDiningRoom, diningSetBonus)
	} else {
		for i := 0; i < chairs; i++ {
			add(RoomDiningRoom, 1)
			add(RoomOffice, 1)
			add(RoomLivingRoom, 0.5)
		}
	}

	best := RoomUnknown
	bestScore := 0.0
	for _, t := range order {
		if scores[t] > bestScore {
			best = t
			bestScore = scores[t]
		}
	}

	if bestScore < evidenceThreshold {
		return RoomUnknown
	}
	return best
}

// evidenceOrder fixes the order room-type weights are applied for each
// furniture type, since map iteration order would otherwise make
// tie-breaks nondeterministic.
var evidenceOrder = map[FurnitureType][]RoomType{
	FurnitureBed:          {RoomBedroom},
	FurnitureToilet:       {RoomBathroom},
	FurnitureBathtub:      {RoomBathroom},
	FurnitureSink:         {RoomBathroom, RoomKitchen},
	FurnitureStove:        {RoomKitchen},
	FurnitureRefrigerator: {RoomKitchen},
	FurnitureCounter:      {RoomKitchen},
	FurnitureSofa:         {RoomLivingRoom},
	FurnitureTable:        {RoomDiningRoom, RoomKitchen, RoomOffice},
	FurnitureCabinet:      {RoomCloset, RoomKitchen},
}

func addEvidence(ft FurnitureType, add func(RoomType, float64)) {
	weights := furnitureEvidence[ft]
	for _, t := range evidenceOrder[ft] {
		add(t, weights[t])
	}
}

// ReclassifyRooms overrides the type of still-unknown rooms using the
// furniture assigned to them.
//
// Rooms already typed from their class label or their geometry are never
// overridden: furniture is corroborating fallback evidence only. The
// transition is one-directional (unclassified -> geometry -> furniture),
// which makes the pass idempotent — rerunning it on already-refined
// rooms changes nothing.
func ReclassifyRooms(rooms []*Room, index RoomFurnitureIndex) {
	for _, room := range rooms {
		if room.Type != RoomUnknown {
			continue
		}

		inferred := InferRoomTypeFromFurniture(index[room.ID])
		if inferred == RoomUnknown {
			continue
		}

		room.Type = inferred
		room.Source = SourceFurniture
		room.Color = DisplayColor(inferred)
	}
}
