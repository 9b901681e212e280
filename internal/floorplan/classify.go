package floorplan

import (
	"math"
	"strings"

	"github.com/roomscan/floorplan-mcp/internal/geometry"
)

// Classifier converts raw room detections into dimensioned, provisionally
// typed rooms. The zero value is not usable; construct with
// NewClassifier and override thresholds before first use if needed.
//
// Area thresholds are upper bounds in the physical area unit implied by
// the caller's scale factor. The defaults are tuned for square feet,
// which is what the surrounding application calibrates to.
type Classifier struct {
	// HallwayAspect is the aspect-ratio bound below which a label-less
	// room is a hallway regardless of size.
	HallwayAspect float64

	// DiningAspect is the near-square aspect-ratio bound above which
	// mid-to-large label-less rooms read as dining rooms.
	DiningAspect float64

	// Area bucket upper bounds, ascending.
	AreaCloset   float64
	AreaBathroom float64
	AreaBedroom  float64
	AreaMidSize  float64
}

// NewClassifier returns a classifier with the default thresholds.
func NewClassifier() *Classifier {
	return &Classifier{
		HallwayAspect: 0.4,
		DiningAspect:  0.85,
		AreaCloset:    30,
		AreaBathroom:  80,
		AreaBedroom:   150,
		AreaMidSize:   250,
	}
}

// labelTypes maps known class-label substrings to room types. Matching
// is case-insensitive and first-match in this order; "bath" must come
// before generic fallbacks so "bathroom" never reads as a bedroom.
var labelTypes = []struct {
	substr string
	t      RoomType
}{
	{"bath", RoomBathroom},
	{"bed", RoomBedroom},
	{"kitchen", RoomKitchen},
	{"living", RoomLivingRoom},
	{"dining", RoomDiningRoom},
	{"hall", RoomHallway},
	{"corridor", RoomHallway},
	{"closet", RoomCloset},
	{"wardrobe", RoomCloset},
	{"laundry", RoomLaundry},
	{"garage", RoomGarage},
	{"office", RoomOffice},
	{"study", RoomOffice},
}

// typeFromLabel maps a detector class label to a room type. Generic
// labels like "room" carry no signal and map to unknown.
func typeFromLabel(label string) RoomType {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return RoomUnknown
	}
	for _, lt := range labelTypes {
		if strings.Contains(label, lt.substr) {
			return lt.t
		}
	}
	return RoomUnknown
}

// aspectRatio returns min(w,h)/max(w,h), a narrowness measure in (0,1].
// Degenerate extents yield 0 so the caller's comparisons stay ordered.
func aspectRatio(w, h float64) float64 {
	max := math.Max(w, h)
	if max <= 0 {
		return 0
	}
	return math.Min(w, h) / max
}

// Classify builds a Room from one raw detection.
//
// Pixel dimensions come from the bounding box, the pixel area from the
// outline polygon via the shoelace formula, and physical values from the
// externally calibrated scale factor (length per pixel; area scales by
// its square). The room type is taken from the class label when it maps
// to a known type, otherwise from geometry: very narrow rooms are
// hallways, everything else is bucketed by physical area with a
// near-square check separating dining rooms from bedrooms and living
// rooms.
//
// A malformed outline (<3 points) yields area 0 and the room lands in
// the smallest bucket; it is never an error.
func (c *Classifier) Classify(det RawDetection, scale float64) *Room {
	outline := det.Outline()

	dims := Dimensions{
		WidthPx:  det.Box.W,
		HeightPx: det.Box.H,
		AreaPx:   geometry.Area(outline),
	}
	dims.WidthPhys = dims.WidthPx * scale
	dims.HeightPhys = dims.HeightPx * scale
	dims.AreaPhys = dims.AreaPx * scale * scale

	ar := aspectRatio(dims.WidthPx, dims.HeightPx)

	roomType := typeFromLabel(det.ClassLabel)
	source := SourceLabel
	if roomType == RoomUnknown {
		roomType = c.typeFromGeometry(dims.AreaPhys, ar)
		source = SourceGeometry
		if roomType == RoomUnknown {
			source = SourceUnclassified
		}
	}

	return &Room{
		ID:         newID(),
		Polygon:    outline,
		Box:        det.Box,
		Type:       roomType,
		Source:     source,
		Color:      DisplayColor(roomType),
		Confidence: det.Confidence,
		Dimensions: dims,
	}
}

// typeFromGeometry buckets a label-less room by shape and size.
//
// Rooms at or above the bedroom range get the near-square dining check
// at every size: a large near-square room is a dining room, a large
// elongated one a living room.
func (c *Classifier) typeFromGeometry(areaPhys, ar float64) RoomType {
	if ar > 0 && ar < c.HallwayAspect {
		return RoomHallway
	}

	switch {
	case areaPhys < c.AreaCloset:
		return RoomCloset
	case areaPhys < c.AreaBathroom:
		return RoomBathroom
	case areaPhys < c.AreaBedroom:
		return RoomBedroom
	case areaPhys < c.AreaMidSize:
		if ar > c.DiningAspect {
			return RoomDiningRoom
		}
		return RoomBedroom
	default:
		if ar > c.DiningAspect {
			return RoomDiningRoom
		}
		return RoomLivingRoom
	}
}

// ClassifyAll classifies each detection in input order.
func (c *Classifier) ClassifyAll(dets []RawDetection, scale float64) []*Room {
	rooms := make([]*Room, 0, len(dets))
	for _, det := range dets {
		rooms = append(rooms, c.Classify(det, scale))
	}
	return rooms
}

// ClassifyFurniture converts raw furniture detections into furniture
// items. Labels that match no known furniture type become "other";
// assignment to rooms happens in a later stage.
func ClassifyFurniture(dets []RawDetection) []*FurnitureItem {
	items := make([]*FurnitureItem, 0, len(dets))
	for _, det := range dets {
		items = append(items, &FurnitureItem{
			ID:         newID(),
			Box:        det.Box,
			Type:       furnitureTypeFromLabel(det.ClassLabel),
			Confidence: det.Confidence,
		})
	}
	return items
}

var furnitureLabels = []struct {
	substr string
	t      FurnitureType
}{
	{"bed", FurnitureBed},
	{"toilet", FurnitureToilet},
	{"bathtub", FurnitureBathtub},
	{"tub", FurnitureBathtub},
	{"sink", FurnitureSink},
	{"basin", FurnitureSink},
	{"stove", FurnitureStove},
	{"oven", FurnitureStove},
	{"cooktop", FurnitureStove},
	{"refrigerator", FurnitureRefrigerator},
	{"fridge", FurnitureRefrigerator},
	{"counter", FurnitureCounter},
	{"sofa", FurnitureSofa},
	{"couch", FurnitureSofa},
	{"table", FurnitureTable},
	{"desk", FurnitureTable},
	{"chair", FurnitureChair},
	{"cabinet", FurnitureCabinet},
	{"cupboard", FurnitureCabinet},
}

func furnitureTypeFromLabel(label string) FurnitureType {
	label = strings.ToLower(strings.TrimSpace(label))
	for _, fl := range furnitureLabels {
		if strings.Contains(label, fl.substr) {
			return fl.t
		}
	}
	return FurnitureOther
}
