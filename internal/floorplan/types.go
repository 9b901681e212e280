// Package floorplan turns raw geometric detections of a floor-plan image
// into a labeled, dimensioned model: rooms with physical dimensions and a
// function label, and furniture items linked to their containing room.
//
// The pipeline runs in fixed stages over immutable inputs:
//
//  1. Classify: each raw detection becomes a dimensioned Room with a
//     provisional type from its class label or its geometry.
//  2. Assign: furniture items are spatially linked to containing rooms.
//  3. Refine: rooms that are still untyped are re-scored from the
//     furniture assigned to them.
//  4. Overlay (optional): OCR dimension annotations are attached to the
//     nearest room.
//
// Every stage is deterministic given identical inputs and ordering; ties
// are broken by input order. No stage deletes rooms, and data-quality
// problems (malformed polygons, ambiguous text) degrade rather than
// error.
package floorplan

import (
	"github.com/google/uuid"

	"github.com/roomscan/floorplan-mcp/internal/geometry"
)

// RoomType is the functional classification of a room.
type RoomType string

const (
	RoomUnknown    RoomType = "unknown"
	RoomBathroom   RoomType = "bathroom"
	RoomBedroom    RoomType = "bedroom"
	RoomKitchen    RoomType = "kitchen"
	RoomLivingRoom RoomType = "living_room"
	RoomDiningRoom RoomType = "dining_room"
	RoomHallway    RoomType = "hallway"
	RoomCloset     RoomType = "closet"
	RoomLaundry    RoomType = "laundry"
	RoomGarage     RoomType = "garage"
	RoomOffice     RoomType = "office"
)

// FurnitureType identifies a detected furniture item.
type FurnitureType string

const (
	FurnitureBed          FurnitureType = "bed"
	FurnitureToilet       FurnitureType = "toilet"
	FurnitureBathtub      FurnitureType = "bathtub"
	FurnitureSink         FurnitureType = "sink"
	FurnitureStove        FurnitureType = "stove"
	FurnitureRefrigerator FurnitureType = "refrigerator"
	FurnitureCounter      FurnitureType = "counter"
	FurnitureSofa         FurnitureType = "sofa"
	FurnitureTable        FurnitureType = "table"
	FurnitureChair        FurnitureType = "chair"
	FurnitureCabinet      FurnitureType = "cabinet"
	FurnitureOther        FurnitureType = "other"
)

// ClassificationSource records which stage produced a room's current
// type. The progression is one-directional: a room classified from its
// label or its geometry is never overridden by furniture evidence.
type ClassificationSource string

const (
	SourceUnclassified ClassificationSource = "unclassified"
	SourceLabel        ClassificationSource = "label"
	SourceGeometry     ClassificationSource = "geometry"
	SourceFurniture    ClassificationSource = "furniture"
)

// RawDetection is one detection produced by an external image-recognition
// service: a bounding box plus optional outline polygon, a class label,
// and the model's confidence. When Polygon is empty the bounding box
// outline stands in for it.
type RawDetection struct {
	Box        geometry.Rect    `json:"bounding_box"`
	Polygon    geometry.Polygon `json:"polygon,omitempty"`
	Confidence float64          `json:"confidence"`
	ClassLabel string           `json:"class_label"`
}

// Outline returns the detection's polygon, falling back to the bounding
// box outline when no polygon was supplied.
func (d RawDetection) Outline() geometry.Polygon {
	if len(d.Polygon) >= 3 {
		return d.Polygon
	}
	return d.Box.Polygon()
}

// Dimensions holds a room's measurements in both pixel and physical
// units. Physical values are pixel values scaled by the externally
// calibrated length scale factor.
type Dimensions struct {
	WidthPx    float64 `json:"width_px"`
	HeightPx   float64 `json:"height_px"`
	AreaPx     float64 `json:"area_px"`
	WidthPhys  float64 `json:"width_phys"`
	HeightPhys float64 `json:"height_phys"`
	AreaPhys   float64 `json:"area_phys"`
}

// OCRDimensions holds measurements recovered from dimension text printed
// on the plan, in canonical meters. They are stored alongside the
// geometry-derived dimensions and never replace them.
type OCRDimensions struct {
	WidthM   float64 `json:"width_m"`
	HeightM  float64 `json:"height_m"`
	AreaM2   float64 `json:"area_m2"`
	Verified bool    `json:"verified"`
}

// Room is a classified, dimensioned room. Constructed once by the
// classifier; the type may be overwritten exactly once by the furniture
// refinement pass, and OCR dimensions may be attached later.
type Room struct {
	ID         string               `json:"id"`
	Polygon    geometry.Polygon     `json:"polygon"`
	Box        geometry.Rect        `json:"bounding_box"`
	Type       RoomType             `json:"room_type"`
	Source     ClassificationSource `json:"classification_source"`
	Color      string               `json:"color"`
	Confidence float64              `json:"confidence"`
	Dimensions Dimensions           `json:"dimensions"`
	OCR        *OCRDimensions       `json:"ocr_dimensions,omitempty"`
}

// FurnitureItem is a detected furniture piece, optionally linked to the
// room that contains it. AssignedRoomID is empty when no room satisfied
// the containment rules.
type FurnitureItem struct {
	ID             string        `json:"id"`
	Box            geometry.Rect `json:"bounding_box"`
	Type           FurnitureType `json:"furniture_type"`
	Confidence     float64       `json:"confidence"`
	AssignedRoomID string        `json:"assigned_room_id,omitempty"`
}

// RoomFurnitureIndex maps room IDs to the furniture assigned to them.
// It is derived per pipeline run and never persisted.
type RoomFurnitureIndex map[string][]*FurnitureItem

// BuildFurnitureIndex groups assigned furniture by room ID. Unassigned
// items are omitted.
func BuildFurnitureIndex(items []*FurnitureItem) RoomFurnitureIndex {
	index := make(RoomFurnitureIndex)
	for _, item := range items {
		if item.AssignedRoomID == "" {
			continue
		}
		index[item.AssignedRoomID] = append(index[item.AssignedRoomID], item)
	}
	return index
}

func newID() string {
	return uuid.New().String()
}
