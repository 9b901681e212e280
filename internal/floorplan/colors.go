package floorplan

import "github.com/lucasb-eyer/go-colorful"

// roomColors maps each room type to its display color. Built once at
// init and treated as immutable; DisplayColor is the only reader.
var roomColors = map[RoomType]colorful.Color{
	RoomBathroom:   mustHex("#7FD1E0"),
	RoomBedroom:    mustHex("#B39DDB"),
	RoomKitchen:    mustHex("#FFB74D"),
	RoomLivingRoom: mustHex("#81C784"),
	RoomDiningRoom: mustHex("#F06292"),
	RoomHallway:    mustHex("#BCAAA4"),
	RoomCloset:     mustHex("#90A4AE"),
	RoomLaundry:    mustHex("#4DD0E1"),
	RoomGarage:     mustHex("#A1887F"),
	RoomOffice:     mustHex("#9575CD"),
	RoomUnknown:    mustHex("#E0E0E0"),
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("floorplan: bad color literal " + s)
	}
	return c
}

// TypeColor returns the display color for a room type. Unlisted types
// share the unknown color.
func TypeColor(t RoomType) colorful.Color {
	if c, ok := roomColors[t]; ok {
		return c
	}
	return roomColors[RoomUnknown]
}

// DisplayColor returns the hex display color for a room type. Unlisted
// types share the unknown color.
func DisplayColor(t RoomType) string {
	if c, ok := roomColors[t]; ok {
		return c.Hex()
	}
	return roomColors[RoomUnknown].Hex()
}

// BlendColor returns the room type's color blended toward white in Lab
// space, used for translucent-looking polygon fills on renders.
func BlendColor(t RoomType, towardWhite float64) colorful.Color {
	c, ok := roomColors[t]
	if !ok {
		c = roomColors[RoomUnknown]
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return c.BlendLab(white, towardWhite).Clamped()
}
