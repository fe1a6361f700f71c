package ggsink

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/overlay"
)

// drawShape fills the glyph of kind inscribed in r.
func drawShape(dc *gg.Context, kind overlay.ShapeKind, r overlay.Rect) error {
	c := r.Center()
	w, h := r.Width(), r.Height()
	rad := math.Min(w, h) / 2

	switch kind {
	case overlay.ShapeCircle:
		dc.DrawCircle(c.X, c.Y, rad)
	case overlay.ShapeDot:
		dc.DrawCircle(c.X, c.Y, rad/2)
	case overlay.ShapeSquare:
		dc.DrawRectangle(c.X-rad, c.Y-rad, 2*rad, 2*rad)
	case overlay.ShapeLabeledPin:
		dc.DrawRoundedRectangle(r.Min.X, r.Min.Y, w, h, math.Min(4, rad))
	case overlay.ShapeTriangleUp:
		polygon(dc, pt(c.X, r.Min.Y), pt(r.Max.X, r.Max.Y), pt(r.Min.X, r.Max.Y))
	case overlay.ShapeTriangleDown:
		polygon(dc, pt(r.Min.X, r.Min.Y), pt(r.Max.X, r.Min.Y), pt(c.X, r.Max.Y))
	case overlay.ShapeDiamond:
		polygon(dc, pt(c.X, r.Min.Y), pt(r.Max.X, c.Y), pt(c.X, r.Max.Y), pt(r.Min.X, c.Y))
	case overlay.ShapeStar:
		star(dc, c, rad, rad*0.45)
	case overlay.ShapeCross:
		t := rad / 3
		dc.DrawRectangle(c.X-rad, c.Y-t/2, 2*rad, t)
		dc.DrawRectangle(c.X-t/2, c.Y-rad, t, 2*rad)
	case overlay.ShapeArrowUp:
		arrow(dc, r, -1)
	case overlay.ShapeArrowDown:
		arrow(dc, r, 1)
	default:
		return nil
	}
	return dc.Fill()
}

type point = overlay.Point

func pt(x, y float64) point { return overlay.Pt(x, y) }

func polygon(dc *gg.Context, pts ...point) {
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
}

// star draws a five-pointed star with its first point straight up.
func star(dc *gg.Context, c point, outer, inner float64) {
	const n = 5
	for i := range 2 * n {
		rad := outer
		if i%2 == 1 {
			rad = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/n
		x, y := c.X+rad*math.Cos(a), c.Y+rad*math.Sin(a)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

// arrow draws a head over a shaft; dir is -1 for up and 1 for down.
func arrow(dc *gg.Context, r overlay.Rect, dir float64) {
	c := r.Center()
	w, h := r.Width(), r.Height()
	head := h * 0.5
	shaft := w * 0.3

	tip, base := r.Min.Y, r.Min.Y+head
	end := r.Max.Y
	if dir > 0 {
		tip, base, end = r.Max.Y, r.Max.Y-head, r.Min.Y
	}
	polygon(dc,
		pt(c.X, tip),
		pt(r.Max.X, base),
		pt(c.X+shaft/2, base),
		pt(c.X+shaft/2, end),
		pt(c.X-shaft/2, end),
		pt(c.X-shaft/2, base),
		pt(r.Min.X, base),
	)
}
