package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/roomscan/floorplan-mcp/internal/floorplan"
	"github.com/roomscan/floorplan-mcp/internal/geometry"
)

func whiteCanvas(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func decodeOverlay(t *testing.T, result *OverlayResult) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("result is not valid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("result is not a valid PNG: %v", err)
	}
	return img
}

func TestRenderOverlay_FillsRoom(t *testing.T) {
	rooms := []floorplan.Room{{
		Type: floorplan.RoomKitchen,
		Box:  geometry.Rect{X: 20, Y: 20, W: 40, H: 40},
		Polygon: geometry.Polygon{
			{X: 20, Y: 20}, {X: 60, Y: 20}, {X: 60, Y: 60}, {X: 20, Y: 60},
		},
	}}

	result, err := RenderOverlay(whiteCanvas(100, 100), rooms, nil, OverlayOptions{})
	if err != nil {
		t.Fatalf("RenderOverlay failed: %v", err)
	}
	if result.RoomCount != 1 {
		t.Errorf("RoomCount = %d, want 1", result.RoomCount)
	}

	img := decodeOverlay(t, result)

	inR, inG, inB, _ := img.At(40, 40).RGBA()
	if inR == 0xffff && inG == 0xffff && inB == 0xffff {
		t.Error("pixel inside the room is still white; fill was not applied")
	}

	outR, outG, outB, _ := img.At(5, 5).RGBA()
	if outR != 0xffff || outG != 0xffff || outB != 0xffff {
		t.Error("pixel outside the room was modified")
	}
}

func TestRenderOverlay_FurnitureOutline(t *testing.T) {
	furniture := []floorplan.FurnitureItem{{
		Type: floorplan.FurnitureBed,
		Box:  geometry.Rect{X: 10, Y: 10, W: 20, H: 20},
	}}

	result, err := RenderOverlay(whiteCanvas(50, 50), nil, furniture, OverlayOptions{DrawFurniture: true})
	if err != nil {
		t.Fatalf("RenderOverlay failed: %v", err)
	}

	img := decodeOverlay(t, result)
	r, g, b, _ := img.At(10, 15).RGBA()
	if r == 0xffff && g == 0xffff && b == 0xffff {
		t.Error("furniture box edge was not drawn")
	}
}

func TestRenderOverlay_LabelsAtCentroid(t *testing.T) {
	rooms := []floorplan.Room{{
		Type: floorplan.RoomBedroom,
		Box:  geometry.Rect{X: 10, Y: 10, W: 80, H: 80},
		Polygon: geometry.Polygon{
			{X: 10, Y: 10}, {X: 90, Y: 10}, {X: 90, Y: 90}, {X: 10, Y: 90},
		},
	}}

	// Full opacity makes every in-room pixel the pure type color, so any
	// black pixel near the centroid must be label text.
	result, err := RenderOverlay(whiteCanvas(100, 100), rooms, nil, OverlayOptions{
		FillOpacity: 1,
		DrawLabels:  true,
	})
	if err != nil {
		t.Fatalf("RenderOverlay failed: %v", err)
	}

	img := decodeOverlay(t, result)
	found := false
	for y := 40; y <= 60 && !found; y++ {
		for x := 10; x <= 90; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r == 0 && g == 0 && b == 0 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no label pixels found near the room centroid")
	}
}

func TestRenderOverlay_MaxWidth(t *testing.T) {
	result, err := RenderOverlay(whiteCanvas(400, 200), nil, nil, OverlayOptions{MaxWidth: 100})
	if err != nil {
		t.Fatalf("RenderOverlay failed: %v", err)
	}
	if result.Width != 100 {
		t.Errorf("Width = %d, want 100", result.Width)
	}
	if result.Height != 50 {
		t.Errorf("Height = %d, want 50 (aspect preserved)", result.Height)
	}
}

func TestRenderOverlay_BadOpacity(t *testing.T) {
	if _, err := RenderOverlay(whiteCanvas(10, 10), nil, nil, OverlayOptions{FillOpacity: 1.5}); err == nil {
		t.Error("opacity above 1 should be rejected")
	}
}

func TestRenderOverlay_BoxFallback(t *testing.T) {
	// A room with a malformed outline must still render via its box.
	rooms := []floorplan.Room{{
		Type:    floorplan.RoomCloset,
		Box:     geometry.Rect{X: 2, Y: 2, W: 6, H: 6},
		Polygon: geometry.Polygon{{X: 3, Y: 3}},
	}}

	result, err := RenderOverlay(whiteCanvas(10, 10), rooms, nil, OverlayOptions{FillOpacity: 1})
	if err != nil {
		t.Fatalf("RenderOverlay failed: %v", err)
	}

	img := decodeOverlay(t, result)
	r, g, b, _ := img.At(5, 5).RGBA()
	if r == 0xffff && g == 0xffff && b == 0xffff {
		t.Error("box fallback fill was not applied")
	}
}
