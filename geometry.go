package overlay

import (
	"fmt"
	"math"
)

// Range is a closed interval [Min, Max] in data units.
type Range struct {
	Min, Max float64
}

// R is a convenience function to create a Range.
func R(lo, hi float64) Range { return Range{Min: lo, Max: hi} }

// Valid reports whether the range is finite and non-empty (Min < Max).
func (r Range) Valid() bool {
	return finite(r.Min) && finite(r.Max) && r.Min < r.Max
}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Contains reports whether v lies in the closed interval.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Clip intersects [lo, hi] with r. It reports false when the
// intersection is empty or degenerate.
func (r Range) Clip(lo, hi float64) (Range, bool) {
	c := Range{Min: math.Max(lo, r.Min), Max: math.Min(hi, r.Max)}
	if !(c.Min < c.Max) {
		return Range{}, false
	}
	return c, true
}

// Viewport is the visible window of the host chart.
type Viewport struct {
	Time   Range // visible time range, Min < Max
	Price  Range // visible price range, Min < Max
	Pixels Size  // drawing surface size
}

// Validate checks that both ranges are non-empty and the surface has area.
func (v Viewport) Validate() error {
	switch {
	case !v.Time.Valid():
		return fmt.Errorf("%w: time range [%g, %g]", ErrInvalidViewport, v.Time.Min, v.Time.Max)
	case !v.Price.Valid():
		return fmt.Errorf("%w: price range [%g, %g]", ErrInvalidViewport, v.Price.Min, v.Price.Max)
	case !(v.Pixels.W > 0) || !(v.Pixels.H > 0) || math.IsInf(v.Pixels.W, 0) || math.IsInf(v.Pixels.H, 0):
		return fmt.Errorf("%w: pixel bounds %gx%g", ErrInvalidViewport, v.Pixels.W, v.Pixels.H)
	}
	return nil
}

// Bounds returns the pixel rectangle of the drawing surface.
func (v Viewport) Bounds() Rect {
	return Rect{Max: Pt(v.Pixels.W, v.Pixels.H)}
}

// Geometry maps between data space (time, price) and screen space.
//
// Both directions are total: coordinates outside the viewport map outside
// the pixel bounds rather than being rejected. Callers decide visibility.
type Geometry interface {
	ToPixel(t, p float64) Point
	ToData(pt Point) (t, p float64)
	Viewport() Viewport
}

// GeometryFunc derives a Geometry for a viewport. Hosts with a non-linear
// price axis supply their own through WithGeometry.
type GeometryFunc func(Viewport) Geometry

// LinearGeometry is the default Geometry: time grows to the right and
// price grows upward, both linearly.
type LinearGeometry struct {
	vp     Viewport
	sx, sy float64 // pixels per data unit
}

// NewLinearGeometry returns the linear transform for vp.
// vp must be valid; see Viewport.Validate.
func NewLinearGeometry(vp Viewport) Geometry {
	return &LinearGeometry{
		vp: vp,
		sx: vp.Pixels.W / vp.Time.Span(),
		sy: vp.Pixels.H / vp.Price.Span(),
	}
}

// ToPixel maps (t, p) to a pixel position.
func (g *LinearGeometry) ToPixel(t, p float64) Point {
	return Point{
		X: (t - g.vp.Time.Min) * g.sx,
		Y: g.vp.Pixels.H - (p-g.vp.Price.Min)*g.sy,
	}
}

// ToData maps a pixel position back to (t, p).
func (g *LinearGeometry) ToData(pt Point) (t, p float64) {
	t = g.vp.Time.Min + pt.X/g.sx
	p = g.vp.Price.Min + (g.vp.Pixels.H-pt.Y)/g.sy
	return t, p
}

// Viewport returns the viewport the transform was derived from.
func (g *LinearGeometry) Viewport() Viewport { return g.vp }

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
