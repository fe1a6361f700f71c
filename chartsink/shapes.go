package chartsink

import (
	"math"

	"github.com/gogpu/overlay"
	"github.com/wcharczuk/go-chart/v2"
)

// shapePath traces the glyph of kind inscribed in r. It reports false for
// shapes without a glyph.
func shapePath(cr chart.Renderer, kind overlay.ShapeKind, r overlay.Rect) bool {
	c := r.Center()
	rad := math.Min(r.Width(), r.Height()) / 2

	switch kind {
	case overlay.ShapeCircle:
		regular(cr, c, rad, 16, 0)
	case overlay.ShapeDot:
		regular(cr, c, rad/2, 12, 0)
	case overlay.ShapeSquare, overlay.ShapeCustom:
		rect(cr, c.X-rad, c.Y-rad, 2*rad, 2*rad)
	case overlay.ShapeLabeledPin:
		rect(cr, r.Min.X, r.Min.Y, r.Width(), r.Height())
	case overlay.ShapeTriangleUp:
		poly(cr, c.X, r.Min.Y, r.Max.X, r.Max.Y, r.Min.X, r.Max.Y)
	case overlay.ShapeTriangleDown:
		poly(cr, r.Min.X, r.Min.Y, r.Max.X, r.Min.Y, c.X, r.Max.Y)
	case overlay.ShapeDiamond:
		poly(cr, c.X, r.Min.Y, r.Max.X, c.Y, c.X, r.Max.Y, r.Min.X, c.Y)
	case overlay.ShapeStar:
		star(cr, c, rad, rad*0.45)
	case overlay.ShapeCross:
		t := rad / 3
		rect(cr, c.X-rad, c.Y-t/2, 2*rad, t)
		rect(cr, c.X-t/2, c.Y-rad, t, 2*rad)
	case overlay.ShapeArrowUp:
		poly(cr, c.X, r.Min.Y, r.Max.X, c.Y, c.X+rad/3, c.Y, c.X+rad/3, r.Max.Y, c.X-rad/3, r.Max.Y, c.X-rad/3, c.Y, r.Min.X, c.Y)
	case overlay.ShapeArrowDown:
		poly(cr, c.X, r.Max.Y, r.Max.X, c.Y, c.X+rad/3, c.Y, c.X+rad/3, r.Min.Y, c.X-rad/3, r.Min.Y, c.X-rad/3, c.Y, r.Min.X, c.Y)
	default:
		return false
	}
	return true
}

// poly traces a closed polygon from x, y pairs.
func poly(cr chart.Renderer, xy ...float64) {
	cr.MoveTo(px(xy[0]), px(xy[1]))
	for i := 2; i+1 < len(xy); i += 2 {
		cr.LineTo(px(xy[i]), px(xy[i+1]))
	}
	cr.Close()
}

func regular(cr chart.Renderer, c overlay.Point, rad float64, n int, rot float64) {
	xy := make([]float64, 0, 2*n)
	for i := range n {
		a := rot + 2*math.Pi*float64(i)/float64(n)
		xy = append(xy, c.X+rad*math.Cos(a), c.Y+rad*math.Sin(a))
	}
	poly(cr, xy...)
}

func star(cr chart.Renderer, c overlay.Point, outer, inner float64) {
	const n = 5
	xy := make([]float64, 0, 4*n)
	for i := range 2 * n {
		rad := outer
		if i%2 == 1 {
			rad = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/n
		xy = append(xy, c.X+rad*math.Cos(a), c.Y+rad*math.Sin(a))
	}
	poly(cr, xy...)
}
