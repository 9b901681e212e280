package floorplan

import "github.com/roomscan/floorplan-mcp/internal/geometry"

// cornerMajority is the number of bounding-box corners (of 4) that must
// land inside a single room before the fallback rule assigns the item.
// The threshold is inherited behavior, kept as-is; see DESIGN.md.
const cornerMajority = 2

// AssignFurniture links each furniture item to the room that contains
// it, mutating only the items' AssignedRoomID.
//
// Primary rule: the item's center point is tested against each room
// outline in room-list order and the first containing room wins. The
// tie-break is room order, not proximity, so results are deterministic
// for a fixed input ordering.
//
// Fallback rule: when no room contains the center (a box straddling a
// wall), the four corners of the item's bounding box are tallied per
// room; the room containing the most corners wins, provided it reaches
// at least cornerMajority. Requiring a corner majority avoids spurious
// assignment from sliver overlaps at room boundaries. Ties go to the
// first room reaching the maximum in iteration order. Items matching no
// room are left unassigned; that is a legitimate terminal state.
func AssignFurniture(items []*FurnitureItem, rooms []*Room) {
	for _, item := range items {
		item.AssignedRoomID = assignOne(item, rooms)
	}
}

func assignOne(item *FurnitureItem, rooms []*Room) string {
	center := item.Box.Center()
	for _, room := range rooms {
		if geometry.ContainsPoint(room.Polygon, center) {
			return room.ID
		}
	}

	corners := item.Box.Corners()

	best := ""
	bestCount := 0
	for _, room := range rooms {
		count := 0
		for _, c := range corners {
			if geometry.ContainsPoint(room.Polygon, c) {
				count++
			}
		}
		if count >= cornerMajority && count > bestCount {
			best = room.ID
			bestCount = count
		}
	}
	return best
}
