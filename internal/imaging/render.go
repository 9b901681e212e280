package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/roomscan/floorplan-mcp/internal/floorplan"
	"github.com/roomscan/floorplan-mcp/internal/geometry"
)

// defaultFillOpacity is the room fill strength when the caller passes 0.
const defaultFillOpacity = 0.35

// furnitureOutline is the stroke color for furniture boxes.
var furnitureOutline = color.NRGBA{R: 40, G: 40, B: 40, A: 255}

// OverlayOptions controls overlay rendering.
type OverlayOptions struct {
	// FillOpacity is the blend strength of room fills, 0 to 1.
	// Zero means the default (0.35); 1 paints solid type colors.
	FillOpacity float64

	// DrawFurniture draws a box outline around each furniture item.
	DrawFurniture bool

	// DrawLabels writes each room's type at its polygon centroid.
	DrawLabels bool

	// MaxWidth, when positive, downscales the result so its width does
	// not exceed this value. Aspect ratio is preserved.
	MaxWidth int
}

// OverlayResult contains a rendered overlay image.
type OverlayResult struct {
	// ImageBase64 is the rendered overlay as a base64-encoded PNG.
	ImageBase64 string `json:"image_base64"`

	// Width and Height are the dimensions of the rendered image.
	Width  int `json:"width"`
	Height int `json:"height"`

	// RoomCount and FurnitureCount are the numbers of rooms and
	// furniture items drawn.
	RoomCount      int `json:"room_count"`
	FurnitureCount int `json:"furniture_count"`
}

// RenderOverlay draws classification results over a plan image: each
// room's outline polygon is filled with its type color blended into the
// plan, furniture boxes get dark outlines, and room types are written
// at the polygon centroids.
//
// Rooms are drawn in input order, so where outlines overlap, later
// rooms paint over earlier ones. The plan image itself is not modified.
func RenderOverlay(img image.Image, rooms []floorplan.Room, furniture []floorplan.FurnitureItem, opts OverlayOptions) (*OverlayResult, error) {
	opacity := opts.FillOpacity
	if opacity == 0 {
		opacity = defaultFillOpacity
	}
	if opacity < 0 || opacity > 1 {
		return nil, fmt.Errorf("fill opacity must be in [0,1], got %v", opts.FillOpacity)
	}

	canvas := imaging.Clone(img)

	for i := range rooms {
		fillRoom(canvas, &rooms[i], opacity)
	}
	if opts.DrawFurniture {
		for i := range furniture {
			strokeRect(canvas, furniture[i].Box)
		}
	}
	if opts.DrawLabels {
		for i := range rooms {
			labelRoom(canvas, &rooms[i])
		}
	}

	var out image.Image = canvas
	if opts.MaxWidth > 0 && canvas.Bounds().Dx() > opts.MaxWidth {
		out = imaging.Resize(canvas, opts.MaxWidth, 0, imaging.Lanczos)
	}

	encoded, err := encodePNGBase64(out)
	if err != nil {
		return nil, err
	}

	bounds := out.Bounds()
	return &OverlayResult{
		ImageBase64:    encoded,
		Width:          bounds.Dx(),
		Height:         bounds.Dy(),
		RoomCount:      len(rooms),
		FurnitureCount: len(furniture),
	}, nil
}

// fillRoom blends the room's type color into every canvas pixel inside
// its outline. Rooms without a usable polygon fall back to the box.
func fillRoom(canvas *image.NRGBA, room *floorplan.Room, opacity float64) {
	outline := room.Polygon
	if len(outline) < 3 {
		outline = room.Box.Polygon()
	}
	if len(outline) < 3 {
		return
	}

	tint := floorplan.TypeColor(room.Type)

	minX, minY, maxX, maxY := polygonBounds(outline, canvas.Bounds())
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := geometry.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			if !geometry.ContainsPoint(outline, p) {
				continue
			}
			base, _ := colorful.MakeColor(canvas.NRGBAAt(x, y))
			blended := base.BlendLab(tint, opacity).Clamped()
			r, g, b := blended.RGB255()
			canvas.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
}

// strokeRect draws a one-pixel rectangle outline, clipped to the canvas.
func strokeRect(canvas *image.NRGBA, box geometry.Rect) {
	x1, y1 := int(box.X), int(box.Y)
	x2, y2 := int(box.X+box.W), int(box.Y+box.H)

	bounds := canvas.Bounds()
	for x := x1; x <= x2; x++ {
		setClipped(canvas, bounds, x, y1)
		setClipped(canvas, bounds, x, y2)
	}
	for y := y1; y <= y2; y++ {
		setClipped(canvas, bounds, x1, y)
		setClipped(canvas, bounds, x2, y)
	}
}

func setClipped(canvas *image.NRGBA, bounds image.Rectangle, x, y int) {
	if image.Pt(x, y).In(bounds) {
		canvas.SetNRGBA(x, y, furnitureOutline)
	}
}

// labelRoom writes the room's type at its outline centroid, centered
// horizontally on the text width.
func labelRoom(canvas *image.NRGBA, room *floorplan.Room) {
	text := string(room.Type)

	var at geometry.Point
	if len(room.Polygon) >= 3 {
		at = geometry.Centroid(room.Polygon)
	} else {
		at = room.Box.Center()
	}

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(int(at.X)), Y: fixed.I(int(at.Y))},
	}
	d.Dot.X -= d.MeasureString(text) / 2
	d.DrawString(text)
}

// polygonBounds returns the polygon's integer bounding box intersected
// with the canvas bounds.
func polygonBounds(poly geometry.Polygon, clip image.Rectangle) (minX, minY, maxX, maxY int) {
	minXf, minYf := poly[0].X, poly[0].Y
	maxXf, maxYf := minXf, minYf
	for _, p := range poly[1:] {
		if p.X < minXf {
			minXf = p.X
		}
		if p.X > maxXf {
			maxXf = p.X
		}
		if p.Y < minYf {
			minYf = p.Y
		}
		if p.Y > maxYf {
			maxYf = p.Y
		}
	}

	minX, minY = int(minXf), int(minYf)
	maxX, maxY = int(maxXf), int(maxYf)
	if minX < clip.Min.X {
		minX = clip.Min.X
	}
	if minY < clip.Min.Y {
		minY = clip.Min.Y
	}
	if maxX > clip.Max.X-1 {
		maxX = clip.Max.X - 1
	}
	if maxY > clip.Max.Y-1 {
		maxY = clip.Max.Y - 1
	}
	return minX, minY, maxX, maxY
}

// encodePNGBase64 encodes an image as a base64 PNG string.
func encodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
