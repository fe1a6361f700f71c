package overlay

// RegionSpan is the screen rectangle of one visible trend region.
type RegionSpan struct {
	ID    string
	Rect  Rect
	Time  Range // visible data-space time interval
	Price Range // visible data-space price interval
}

// RenderRegions clips every region against g's viewport and projects the
// surviving rectangles. Regions do not avoid each other: the result keeps
// insertion order, and later spans are drawn on top.
//
// A region entirely outside the viewport yields no span. When limit is
// positive at most limit spans are returned.
func RenderRegions(regions []TrendRegion, g Geometry, limit int) []RegionSpan {
	vp := g.Viewport()
	var spans []RegionSpan
	for _, r := range regions {
		if limit > 0 && len(spans) >= limit {
			break
		}
		span, ok := clipRegion(r, g, vp)
		if !ok {
			continue
		}
		spans = append(spans, span)
	}
	return spans
}

func clipRegion(r TrendRegion, g Geometry, vp Viewport) (RegionSpan, bool) {
	tr, ok := vp.Time.Clip(r.Start, r.End)
	if !ok {
		return RegionSpan{}, false
	}
	lo, hi := vp.Price.Min, vp.Price.Max
	if r.Bottom != nil {
		lo = *r.Bottom
	}
	if r.Top != nil {
		hi = *r.Top
	}
	pr, ok := vp.Price.Clip(lo, hi)
	if !ok {
		return RegionSpan{}, false
	}
	// Top-left is (earliest time, highest price).
	tl := g.ToPixel(tr.Min, pr.Max)
	br := g.ToPixel(tr.Max, pr.Min)
	return RegionSpan{
		ID:    r.ID,
		Rect:  normRect(tl, br),
		Time:  tr,
		Price: pr,
	}, true
}

// normRect orders two corners into a Rect with Min top-left.
func normRect(a, b Point) Rect {
	return Rect{
		Min: Pt(min(a.X, b.X), min(a.Y, b.Y)),
		Max: Pt(max(a.X, b.X), max(a.Y, b.Y)),
	}
}
