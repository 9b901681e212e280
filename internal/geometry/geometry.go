// Package geometry provides the 2D polygon primitives used by floor-plan
// analysis: area, containment, distance, centroid approximation, and
// outline simplification.
//
// # Coordinate System
//
// All coordinates are in detection-image pixel space with origin at the
// top-left corner, X increasing rightward and Y increasing downward.
// Polygons are ordered point sequences; insertion order defines the edges
// and the closing edge from the last point back to the first is implicit.
// Polygons are assumed simple (non-self-intersecting); three points are
// the minimum for a well-defined area.
//
// # Degenerate Input
//
// None of the functions in this package return errors. A polygon with
// fewer than three points has area zero, contains no points, and is at
// infinite distance from everything. Callers degrade gracefully rather
// than failing the pipeline on malformed detections.
package geometry

import "math"

// Point is a 2D coordinate in pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polygon is an ordered sequence of vertices describing a closed shape.
type Polygon []Point

// Rect is an axis-aligned rectangle described by its top-left corner
// and extent.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Center returns the rectangle's midpoint.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Corners returns the rectangle's four corners in clockwise order
// starting from the top-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}
}

// Polygon returns the rectangle's outline as a four-point polygon.
func (r Rect) Polygon() Polygon {
	c := r.Corners()
	return Polygon{c[0], c[1], c[2], c[3]}
}

// Area computes the polygon's area using the shoelace formula.
//
// The result is invariant to the starting vertex and to winding
// direction: the signed sum is halved and its absolute value returned.
// Polygons with fewer than three points have area 0.
func Area(poly Polygon) float64 {
	if len(poly) < 3 {
		return 0
	}

	sum := 0.0
	for i := range poly {
		j := (i + 1) % len(poly)
		sum += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return math.Abs(sum) / 2
}

// ContainsPoint reports whether p lies inside poly using the ray-casting
// even-odd rule.
//
// A horizontal ray is cast from p and boundary crossings are counted; an
// odd count means inside. Points exactly on an edge may be reported
// either way; callers that need boundary tolerance should use
// WithinDistance instead.
func ContainsPoint(poly Polygon, p Point) bool {
	if len(poly) < 3 {
		return false
	}

	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			x := (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// DistanceToSegment returns the shortest distance from p to the segment
// between a and b. The projection of p onto the segment's line is
// clamped to the segment before measuring.
func DistanceToSegment(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y

	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		// Degenerate segment: a and b coincide.
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))

	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

// DistanceToPolygon returns the minimum distance from p to any edge of
// poly, including the implicit closing edge. Returns +Inf for polygons
// with fewer than two points.
func DistanceToPolygon(p Point, poly Polygon) float64 {
	if len(poly) < 2 {
		return math.Inf(1)
	}

	min := math.Inf(1)
	for i := range poly {
		j := (i + 1) % len(poly)
		if d := DistanceToSegment(p, poly[i], poly[j]); d < min {
			min = d
		}
	}
	return min
}

// WithinDistance reports whether p is inside poly or within tolerance
// pixels of its boundary.
func WithinDistance(p Point, poly Polygon, tolerance float64) bool {
	if ContainsPoint(poly, p) {
		return true
	}
	return DistanceToPolygon(p, poly) <= tolerance
}

// Centroid returns the arithmetic mean of the polygon's vertices.
//
// This is NOT the area-weighted centroid: vertex-dense stretches of the
// outline pull the result toward them. It is adequate for label
// placement, which is its only use here, and cheap to compute. Returns
// the zero point for an empty polygon.
func Centroid(poly Polygon) Point {
	if len(poly) == 0 {
		return Point{}
	}

	var sx, sy float64
	for _, p := range poly {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(poly))
	return Point{X: sx / n, Y: sy / n}
}

// simplifyThreshold is the vertex count above which Simplify actually
// reduces the outline. Short outlines pass through unchanged.
const simplifyThreshold = 10

// Simplify reduces a dense polygon outline in a single pass.
//
// The first and last points are always kept. Each interior point is
// measured against the line through its immediate neighbors in the
// original sequence and dropped when its perpendicular distance falls
// below tolerance. Outlines with simplifyThreshold or fewer points are
// returned unchanged.
//
// This is a cheap approximation, not a recursive Douglas-Peucker
// reduction: because neighbors are taken from the original sequence
// rather than the surviving chain, consecutive near-collinear points can
// all be dropped even when their cumulative deviation is large. Good
// enough for contour outlines from the detector; not suitable where
// bounded error matters.
func Simplify(poly Polygon, tolerance float64) Polygon {
	if len(poly) <= simplifyThreshold {
		return poly
	}

	out := make(Polygon, 0, len(poly))
	out = append(out, poly[0])
	for i := 1; i < len(poly)-1; i++ {
		if DistanceToSegment(poly[i], poly[i-1], poly[i+1]) >= tolerance {
			out = append(out, poly[i])
		}
	}
	out = append(out, poly[len(poly)-1])
	return out
}
