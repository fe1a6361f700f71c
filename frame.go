package overlay

// Frame is the immutable result of one layout computation: the resolved
// marker placements and the visible region spans for one viewport.
//
// A Frame is never patched; the controller replaces it wholesale on the
// next recomputation. Accessors return copies.
type Frame struct {
	seq        uint64
	viewport   Viewport
	valid      bool // false for the empty frame produced without a viewport
	placements []Placement
	byID       map[string]int
	spans      []RegionSpan
}

func newFrame(seq uint64, vp Viewport, placements []Placement, spans []RegionSpan) *Frame {
	f := &Frame{
		seq:        seq,
		viewport:   vp,
		valid:      true,
		placements: placements,
		byID:       make(map[string]int, len(placements)),
		spans:      spans,
	}
	for i, p := range placements {
		f.byID[p.ID] = i
	}
	return f
}

func emptyFrame(seq uint64) *Frame {
	return &Frame{seq: seq, byID: map[string]int{}}
}

// Seq is the generation number of the frame; it grows by one per
// recomputation.
func (f *Frame) Seq() uint64 { return f.seq }

// Viewport returns the viewport the frame was computed for. ok is false
// when the frame was computed before any viewport was supplied.
func (f *Frame) Viewport() (vp Viewport, ok bool) { return f.viewport, f.valid }

// Len returns the number of visible markers, hidden ones included.
func (f *Frame) Len() int { return len(f.placements) }

// Placements returns the marker placements in placement order.
func (f *Frame) Placements() []Placement {
	return append([]Placement(nil), f.placements...)
}

// Placement returns the placement of the marker with the given id. ok is
// false when the marker is not visible in this frame.
func (f *Frame) Placement(id string) (p Placement, ok bool) {
	i, ok := f.byID[id]
	if !ok {
		return Placement{}, false
	}
	return f.placements[i], true
}

// Hidden returns the ids of markers that could not be placed, in
// placement order.
func (f *Frame) Hidden() []string {
	var ids []string
	for _, p := range f.placements {
		if p.Hidden {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// Spans returns the visible region spans in draw order.
func (f *Frame) Spans() []RegionSpan {
	return append([]RegionSpan(nil), f.spans...)
}

// HitTest returns the id of the placed marker whose box contains pt.
// Boxes are tested in reverse placement order so that, at shared edges,
// the later-placed marker wins. Hidden markers are never hit.
func (f *Frame) HitTest(pt Point) (string, bool) {
	for i := len(f.placements) - 1; i >= 0; i-- {
		p := f.placements[i]
		if !p.Hidden && p.Box.Contains(pt) {
			return p.ID, true
		}
	}
	return "", false
}

// Stats summarises the frame.
func (f *Frame) Stats() FrameStats {
	s := FrameStats{Visible: len(f.placements), Regions: len(f.spans)}
	for _, p := range f.placements {
		switch {
		case p.Hidden:
			s.Hidden++
		case p.Stacked():
			s.Stacked++
		default:
			s.Placed++
		}
	}
	return s
}

// FrameStats counts the outcome of a layout.
type FrameStats struct {
	Visible int // markers in the visible time range
	Placed  int // at default position
	Stacked int // moved up one or more levels
	Hidden  int
	Regions int // region spans drawn
}
