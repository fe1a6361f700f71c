package overlay

// Compose turns a frame into draw commands: region spans first, in
// registration order, then every placed marker in placement order as
// connector, glyph and label. Hidden markers emit nothing.
//
// markers and regions are the snapshots the frame was computed from;
// entries the frame does not reference are ignored.
func Compose(f *Frame, markers []Marker, regions []TrendRegion, cfg Config, meas LabelMeasurer) []Command {
	cmds := make([]Command, 0, len(f.spans)+3*len(f.placements))

	if len(f.spans) > 0 {
		byID := make(map[string]*TrendRegion, len(regions))
		for i := range regions {
			byID[regions[i].ID] = &regions[i]
		}
		for _, s := range f.spans {
			r, ok := byID[s.ID]
			if !ok {
				continue
			}
			top, bottom := cfg.Style.regionColors(*r)
			cmds = append(cmds, FillRegionCommand{ID: s.ID, Rect: s.Rect, Top: top, Bottom: bottom})
		}
	}

	if len(f.placements) == 0 {
		return cmds
	}
	byID := make(map[string]*Marker, len(markers))
	for i := range markers {
		byID[markers[i].ID] = &markers[i]
	}
	for _, p := range f.placements {
		m, ok := byID[p.ID]
		if !ok || p.Hidden {
			continue
		}
		cmds = appendMarker(cmds, p, m, cfg, meas)
	}
	return cmds
}

func appendMarker(cmds []Command, p Placement, m *Marker, cfg Config, meas LabelMeasurer) []Command {
	st := cfg.Style
	box := p.Box
	above := box.Center().Y < p.Anchor.Y

	var to Point
	switch {
	case box.Min.Y > p.Anchor.Y:
		to = Pt(p.Anchor.X, box.Min.Y)
	case box.Max.Y < p.Anchor.Y:
		to = Pt(p.Anchor.X, box.Max.Y)
	default:
		to = p.Anchor
	}
	if to != p.Anchor {
		cmds = append(cmds, StrokeLineCommand{
			ID:    m.ID,
			From:  p.Anchor,
			To:    to,
			Color: st.connectorColor(*m),
			Width: st.ConnectorWidth,
			Dash:  st.ConnectorDash,
		})
	}

	glyph, label := splitBox(box, m, cfg.Layout, above)
	if m.Shape.Kind != ShapeText {
		cmds = append(cmds, FillShapeCommand{ID: m.ID, Shape: m.Shape, Rect: glyph, Color: st.markerColor(*m)})
	}
	if m.Label != "" && meas != nil {
		cmds = append(cmds, DrawTextCommand{
			ID:    m.ID,
			Text:  m.Label,
			Rect:  label,
			Color: st.labelColor(*m),
			Size:  st.LabelSize,
		})
	}
	return cmds
}

// splitBox divides a marker box into glyph and label areas. Enclosing
// shapes share the whole box; otherwise the glyph sits on the side nearest
// the anchor and the label fills the rest.
func splitBox(box Rect, m *Marker, cfg LayoutConfig, above bool) (glyph, label Rect) {
	if m.Label == "" || m.Shape.enclosesLabel() {
		return box, box
	}
	gs := m.Size
	if gs.IsZero() {
		gs = cfg.MarkerSize
	}
	cx := box.Center().X
	if above {
		glyph = RectXYWH(cx-gs.W/2, box.Max.Y-gs.H, gs.W, gs.H)
		label = Rect{Min: box.Min, Max: Pt(box.Max.X, glyph.Min.Y-cfg.LabelPadding)}
		return glyph, label
	}
	glyph = RectXYWH(cx-gs.W/2, box.Min.Y, gs.W, gs.H)
	label = Rect{Min: Pt(box.Min.X, glyph.Max.Y+cfg.LabelPadding), Max: box.Max}
	return glyph, label
}
