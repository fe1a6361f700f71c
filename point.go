package overlay

import "math"

// Point represents a position in screen space (pixels).
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	d := p.Sub(q)
	return math.Sqrt(d.X*d.X + d.Y*d.Y)
}

// Lerp performs linear interpolation between two points.
// t=0 returns p, t=1 returns q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// IsFinite reports whether both coordinates are finite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Size is a width/height pair in pixels.
type Size struct {
	W, H float64
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool { return s.W == 0 && s.H == 0 }

// Rect is an axis-aligned rectangle in screen space.
// Min is the top-left corner, Max the bottom-right.
type Rect struct {
	Min, Max Point
}

// RectXYWH builds a rectangle from its top-left corner and size.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{Min: Pt(x, y), Max: Pt(x+w, y+h)}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center returns the centre point.
func (r Rect) Center() Point {
	return Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	d := Pt(dx, dy)
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Inset returns r shrunk by d on every side (grown when d is negative).
func (r Rect) Inset(d float64) Rect {
	return Rect{Min: Pt(r.Min.X+d, r.Min.Y+d), Max: Pt(r.Max.X-d, r.Max.Y-d)}
}

// Contains reports whether p lies inside r. Edges are inclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Overlaps reports whether r and s are closer than gap on both axes.
// Rectangles exactly gap apart do not overlap.
func (r Rect) Overlaps(s Rect, gap float64) bool {
	return r.Min.X < s.Max.X+gap && s.Min.X < r.Max.X+gap &&
		r.Min.Y < s.Max.Y+gap && s.Min.Y < r.Max.Y+gap
}
