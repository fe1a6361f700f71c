package overlay

import (
	"cmp"
	"math"
	"slices"
	"strings"
)

// Placement is the resolved screen-space box of one marker.
type Placement struct {
	ID     string
	Anchor Point // projected data-space anchor
	Box    Rect  // resolved box; the default box when Hidden
	Level  int   // 0 at default position, k when stacked k levels up
	Hidden bool  // no position was free this frame
}

// Stacked reports whether the marker was moved off its default position.
func (p Placement) Stacked() bool { return p.Level > 0 }

type candidate struct {
	m      *Marker
	anchor Point
	box    Rect
	col    float64
}

// Layout places the markers visible in g's viewport so that no two
// placed boxes overlap. It is a pure function of its inputs.
//
// Markers outside the visible time range are not part of the result.
// Every visible marker appears exactly once, in placement order; markers
// that could not be placed carry Hidden=true.
//
// Placement order is (screen column, priority desc, time, id). A screen
// column is ColumnWidth pixels wide; within one column the higher priority
// marker claims the default position first.
func Layout(markers []Marker, g Geometry, cfg LayoutConfig, meas LabelMeasurer) []Placement {
	vp := g.Viewport()
	colW := math.Max(cfg.ColumnWidth, 1)

	cands := make([]candidate, 0, len(markers))
	maxHalf := 0.0
	for i := range markers {
		m := &markers[i]
		if !vp.Time.Contains(m.Time) {
			continue
		}
		a := anchorPoint(m, g, vp)
		ext := markerExtent(*m, cfg, meas)
		cands = append(cands, candidate{
			m:      m,
			anchor: a,
			box:    defaultBox(m, a, ext),
			col:    math.Floor(a.X / colW),
		})
		maxHalf = math.Max(maxHalf, ext.W/2)
	}
	if len(cands) == 0 {
		return nil
	}
	slices.SortStableFunc(cands, compareCandidates)

	out := make([]Placement, 0, len(cands))
	// window holds the placed boxes that later candidates can still reach.
	window := make([]Rect, 0, 16)
	for _, c := range cands {
		// Later candidates start at or right of this column, so their left
		// edge is at least colStart - maxHalf.
		horizon := c.col*colW - maxHalf
		window = slices.DeleteFunc(window, func(b Rect) bool {
			return b.Max.X+cfg.MinGap <= horizon
		})

		p := Placement{ID: c.m.ID, Anchor: c.anchor, Box: c.box, Hidden: true}
		step := c.box.Height() + cfg.StackGap
		for level := 0; level <= max(cfg.MaxStackDepth, 0); level++ {
			box := c.box.Translate(0, -float64(level)*step)
			if level > 0 && box.Min.Y < 0 {
				break
			}
			if !collides(box, window, cfg.MinGap) {
				p.Box, p.Level, p.Hidden = box, level, false
				window = append(window, box)
				break
			}
		}
		out = append(out, p)
	}
	return out
}

func compareCandidates(a, b candidate) int {
	if c := cmp.Compare(a.col, b.col); c != 0 {
		return c
	}
	if c := cmp.Compare(b.m.Priority, a.m.Priority); c != 0 {
		return c
	}
	if c := cmp.Compare(a.m.Time, b.m.Time); c != 0 {
		return c
	}
	return strings.Compare(a.m.ID, b.m.ID)
}

func collides(box Rect, placed []Rect, gap float64) bool {
	for _, b := range placed {
		if box.Overlaps(b, gap) {
			return true
		}
	}
	return false
}

// anchorPoint projects the marker's anchor. Edge-anchored markers keep the
// time column but pin y to the top or bottom of the surface.
func anchorPoint(m *Marker, g Geometry, vp Viewport) Point {
	switch m.Anchor {
	case AnchorTop:
		return Pt(g.ToPixel(m.Time, vp.Price.Max).X, 0)
	case AnchorBottom:
		return Pt(g.ToPixel(m.Time, vp.Price.Min).X, vp.Pixels.H)
	default:
		return g.ToPixel(m.Time, m.Price)
	}
}

// defaultBox hangs the box below the anchor (top-centre at anchor+lead) or
// stands it above (bottom-centre at anchor-lead).
func defaultBox(m *Marker, a Point, ext Size) Rect {
	lead := m.Lead.Pixels()
	x := a.X - ext.W/2
	if m.Side == PlaceAbove {
		return RectXYWH(x, a.Y-lead-ext.H, ext.W, ext.H)
	}
	return RectXYWH(x, a.Y+lead, ext.W, ext.H)
}
