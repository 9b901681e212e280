// Package detect provides a local fallback producer of room detections.
//
// The primary source of detections is an external image-recognition
// service. When its output is unavailable, this package extracts room
// candidates directly from the plan image: wall pixels are found with a
// gradient edge test, grouped into connected contours by flood fill, and
// each sufficiently large, sufficiently rectangular contour becomes a
// raw detection with an ordered, simplified outline polygon.
//
// The detector is tuned for clean, high-contrast plan drawings with
// solid wall lines. Scanned or hand-drawn plans produce noisy contours
// and poor candidates; use the external service for those.
package detect

import (
	"image"
	"math"
	"sort"

	"github.com/roomscan/floorplan-mcp/internal/floorplan"
	"github.com/roomscan/floorplan-mcp/internal/geometry"
)

// edgeThreshold is the grayscale gradient magnitude above which a pixel
// counts as part of a wall line.
const edgeThreshold = 30.0

// minContourSize discards tiny contours (door swings, text strokes)
// before they are considered as room outlines.
const minContourSize = 10

// outlineTolerance is the simplification tolerance in pixels applied to
// candidate outlines.
const outlineTolerance = 2.0

// pixel is an integer image coordinate used during contour tracing.
type pixel struct {
	x, y int
}

// RoomCandidatesResult contains the room candidates found in an image.
type RoomCandidatesResult struct {
	// Candidates is the list of detections, sorted by area (largest
	// first) so downstream room-order tie-breaks favor big rooms.
	Candidates []floorplan.RawDetection `json:"candidates"`

	// Count is the number of candidates found.
	Count int `json:"count"`
}

// DetectRoomCandidates finds room-shaped regions in a plan image.
//
// Parameters:
//   - img: the plan image to analyze.
//   - minArea: minimum bounding-box area in square pixels for a contour
//     to count as a room. Filters out fixtures and symbols.
//   - minRectangularity: how closely the contour length must match the
//     perimeter of its bounding box (0 to 1). Rooms on architectural
//     plans are near-rectangular; 0.5 to 0.8 works well.
//
// The confidence on each detection is its rectangularity score. The
// outline polygon is the contour ordered around its centroid and
// simplified; class labels are always empty since this detector knows
// shapes, not semantics — classification happens downstream.
func DetectRoomCandidates(img image.Image, minArea int, minRectangularity float64) (*RoomCandidatesResult, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	edges := wallEdges(img, width, height)
	contours := findContours(edges, width, height)

	candidates := make([]floorplan.RawDetection, 0)
	for _, contour := range contours {
		det, ok := candidateFromContour(contour, minArea, minRectangularity)
		if !ok {
			continue
		}
		candidates = append(candidates, det)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Box.W*candidates[i].Box.H > candidates[j].Box.W*candidates[j].Box.H
	})

	return &RoomCandidatesResult{Candidates: candidates, Count: len(candidates)}, nil
}

// candidateFromContour turns one contour into a raw detection, rejecting
// it when too small or too far from rectangular.
func candidateFromContour(contour []pixel, minArea int, minRectangularity float64) (floorplan.RawDetection, bool) {
	if len(contour) < 4 {
		return floorplan.RawDetection{}, false
	}

	minX, minY := contour[0].x, contour[0].y
	maxX, maxY := minX, minY
	for _, p := range contour {
		if p.x < minX {
			minX = p.x
		}
		if p.x > maxX {
			maxX = p.x
		}
		if p.y < minY {
			minY = p.y
		}
		if p.y > maxY {
			maxY = p.y
		}
	}

	w := maxX - minX
	h := maxY - minY
	if w*h < minArea {
		return floorplan.RawDetection{}, false
	}

	// A perfect rectangle's contour length equals its perimeter; the
	// score measures deviation from that.
	perimeter := 2 * (w + h)
	rectangularity := 1.0 - math.Abs(float64(len(contour)-perimeter))/float64(perimeter)
	if rectangularity < minRectangularity {
		return floorplan.RawDetection{}, false
	}

	return floorplan.RawDetection{
		Box: geometry.Rect{
			X: float64(minX),
			Y: float64(minY),
			W: float64(w),
			H: float64(h),
		},
		Polygon:    outlinePolygon(contour),
		Confidence: rectangularity,
	}, true
}

// outlinePolygon orders a contour's pixels by angle around the contour
// centroid and simplifies the result. Angular ordering assumes a
// roughly convex outline, which holds for the rectangular rooms this
// detector accepts.
func outlinePolygon(contour []pixel) geometry.Polygon {
	poly := make(geometry.Polygon, len(contour))
	for i, p := range contour {
		poly[i] = geometry.Point{X: float64(p.x), Y: float64(p.y)}
	}

	center := geometry.Centroid(poly)
	sort.Slice(poly, func(i, j int) bool {
		ai := math.Atan2(poly[i].Y-center.Y, poly[i].X-center.X)
		aj := math.Atan2(poly[j].Y-center.Y, poly[j].X-center.X)
		return ai < aj
	})

	return geometry.Simplify(poly, outlineTolerance)
}

// wallEdges performs gradient-based edge detection, marking pixels whose
// grayscale difference to the right or lower neighbor exceeds the
// threshold. Border pixels are never edges.
func wallEdges(img image.Image, width, height int) [][]bool {
	bounds := img.Bounds()
	edges := make([][]bool, height)

	for y := 0; y < height; y++ {
		edges[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				continue
			}

			c := grayValue(img, x+bounds.Min.X, y+bounds.Min.Y)
			cx := grayValue(img, x+1+bounds.Min.X, y+bounds.Min.Y)
			cy := grayValue(img, x+bounds.Min.X, y+1+bounds.Min.Y)

			dx := math.Abs(float64(c) - float64(cx))
			dy := math.Abs(float64(c) - float64(cy))

			if dx > edgeThreshold || dy > edgeThreshold {
				edges[y][x] = true
			}
		}
	}

	return edges
}

// findContours groups connected edge pixels into contours using
// flood fill with 8-connectivity. Contours below minContourSize are
// discarded as noise.
func findContours(edges [][]bool, width, height int) [][]pixel {
	visited := make([][]bool, height)
	for y := 0; y < height; y++ {
		visited[y] = make([]bool, width)
	}

	contours := make([][]pixel, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges[y][x] && !visited[y][x] {
				contour := floodFill(edges, visited, x, y, width, height)
				if len(contour) >= minContourSize {
					contours = append(contours, contour)
				}
			}
		}
	}

	return contours
}

// floodFill collects the connected component containing the start pixel.
// Stack-based rather than recursive so large wall outlines cannot
// overflow the stack.
func floodFill(edges, visited [][]bool, startX, startY, width, height int) []pixel {
	contour := make([]pixel, 0)
	stack := []pixel{{x: startX, y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.x < 0 || p.x >= width || p.y < 0 || p.y >= height {
			continue
		}
		if visited[p.y][p.x] || !edges[p.y][p.x] {
			continue
		}

		visited[p.y][p.x] = true
		contour = append(contour, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, pixel{x: p.x + dx, y: p.y + dy})
			}
		}
	}

	return contour
}

// grayValue converts a pixel to grayscale using ITU-R BT.601 luminance
// weights.
func grayValue(img image.Image, x, y int) uint8 {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(float64(r>>8)*0.299 + float64(g>>8)*0.587 + float64(b>>8)*0.114)
}
