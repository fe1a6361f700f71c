package overlay

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutEmpty(t *testing.T) {
	assert.Empty(t, Layout(nil, testGeometry(), DefaultLayoutConfig(), testMeasurer))

	offscreen := []Marker{dot("early", 50, 15, 0), dot("late", 250, 15, 0)}
	assert.Empty(t, Layout(offscreen, testGeometry(), DefaultLayoutConfig(), testMeasurer))
}

func TestLayoutSeparatedMarkersKeepDefaultPosition(t *testing.T) {
	var ms []Marker
	for i, tm := range []float64{110, 130, 150, 170, 190} {
		ms = append(ms, dot(fmt.Sprintf("m%d", i), tm, 15, i))
	}
	ps := Layout(ms, testGeometry(), DefaultLayoutConfig(), testMeasurer)
	require.Len(t, ps, len(ms))
	for _, p := range ps {
		assert.False(t, p.Hidden, p.ID)
		assert.Zero(t, p.Level, p.ID)
	}

	// Default placement: the anchor is the box's top-centre.
	p := placementsByID(ps)["m2"]
	assert.Equal(t, Pt(400, 300), p.Anchor)
	assert.Equal(t, RectXYWH(392, 300, 16, 16), p.Box)
}

func TestLayoutHigherPriorityWinsDefaultPosition(t *testing.T) {
	a := dot("A", 150, 15, 1)
	b := dot("B", 151, 15, 5)

	for _, in := range [][]Marker{{a, b}, {b, a}} {
		ps := placementsByID(Layout(in, testGeometry(), DefaultLayoutConfig(), testMeasurer))
		require.Len(t, ps, 2)

		assert.False(t, ps["B"].Hidden)
		assert.Zero(t, ps["B"].Level)
		assert.Equal(t, RectXYWH(400, 300, 16, 16), ps["B"].Box)

		assert.True(t, ps["A"].Hidden || ps["A"].Stacked(), "A must yield")
		assert.Equal(t, 1, ps["A"].Level)
		assert.Equal(t, RectXYWH(392, 282, 16, 16), ps["A"].Box)
	}
}

func TestLayoutEarlierColumnPlacesFirst(t *testing.T) {
	// x=400 and x=416 fall in different 16 px columns, so time order wins
	// over priority.
	a := dot("A", 150, 15, 1)
	b := dot("B", 152, 15, 5)

	ps := placementsByID(Layout([]Marker{b, a}, testGeometry(), DefaultLayoutConfig(), testMeasurer))
	assert.Zero(t, ps["A"].Level)
	assert.Equal(t, 1, ps["B"].Level)
}

func TestLayoutColumnEdgeOrdersBeforePriority(t *testing.T) {
	// 8 px per time unit: x=399 is the last pixel of column 24, x=401 is
	// in column 25. The boxes overlap but the earlier column places first.
	a := dot("A", 149.875, 15, 1)
	b := dot("B", 150.125, 15, 5)

	for _, in := range [][]Marker{{a, b}, {b, a}} {
		ps := placementsByID(Layout(in, testGeometry(), DefaultLayoutConfig(), testMeasurer))
		require.Len(t, ps, 2)
		assert.Equal(t, Pt(399, 300), ps["A"].Anchor)
		assert.Equal(t, Pt(401, 300), ps["B"].Anchor)

		assert.Zero(t, ps["A"].Level)
		assert.Equal(t, RectXYWH(391, 300, 16, 16), ps["A"].Box)
		assert.Equal(t, 1, ps["B"].Level)
		assert.Equal(t, RectXYWH(393, 282, 16, 16), ps["B"].Box)
	}

	// With 32 px columns both anchors share column 12 and priority decides.
	cfg := DefaultLayoutConfig()
	cfg.ColumnWidth = 32
	ps := placementsByID(Layout([]Marker{a, b}, testGeometry(), cfg, testMeasurer))
	assert.Zero(t, ps["B"].Level)
	assert.Equal(t, 1, ps["A"].Level)
}

func TestLayoutTieBrokenByID(t *testing.T) {
	x := dot("x", 150, 15, 3)
	y := dot("y", 150, 15, 3)

	first := Layout([]Marker{y, x}, testGeometry(), DefaultLayoutConfig(), testMeasurer)
	second := Layout([]Marker{x, y}, testGeometry(), DefaultLayoutConfig(), testMeasurer)
	assert.Equal(t, first, second)

	ps := placementsByID(first)
	assert.Zero(t, ps["x"].Level)
	assert.Equal(t, 1, ps["y"].Level)
}

func TestLayoutStackThenHide(t *testing.T) {
	var ms []Marker
	for i := range 10 {
		ms = append(ms, dot(fmt.Sprintf("m%d", i), 150, 15, 0))
	}
	ps := Layout(ms, testGeometry(), DefaultLayoutConfig(), testMeasurer)
	require.Len(t, ps, 10, "hidden markers stay in the result")

	for i, p := range ps {
		assert.Equal(t, fmt.Sprintf("m%d", i), p.ID)
		if i <= 3 {
			assert.False(t, p.Hidden, p.ID)
			assert.Equal(t, i, p.Level, p.ID)
			continue
		}
		assert.True(t, p.Hidden, p.ID)
		assert.Equal(t, RectXYWH(392, 300, 16, 16), p.Box, "hidden keeps the default box")
	}
}

func TestLayoutNoStacking(t *testing.T) {
	cfg := DefaultLayoutConfig()
	cfg.MaxStackDepth = 0

	ps := placementsByID(Layout([]Marker{dot("a", 150, 15, 1), dot("b", 150, 15, 0)}, testGeometry(), cfg, testMeasurer))
	assert.False(t, ps["a"].Hidden)
	assert.True(t, ps["b"].Hidden)
}

func TestLayoutStackStopsAtTopEdge(t *testing.T) {
	// Anchored at the top price, level 1 would leave the surface.
	ps := placementsByID(Layout([]Marker{dot("a", 150, 20, 1), dot("b", 150, 20, 0)}, testGeometry(), DefaultLayoutConfig(), testMeasurer))
	assert.False(t, ps["a"].Hidden)
	assert.True(t, ps["b"].Hidden)
}

func TestLayoutEdgeAnchors(t *testing.T) {
	top := Marker{ID: "top", Time: 150, Anchor: AnchorTop}
	bottom := Marker{ID: "bottom", Time: 150, Anchor: AnchorBottom, Side: PlaceAbove}

	ps := placementsByID(Layout([]Marker{top, bottom}, testGeometry(), DefaultLayoutConfig(), testMeasurer))
	assert.Equal(t, Pt(400, 0), ps["top"].Anchor)
	assert.Equal(t, Pt(400, 600), ps["bottom"].Anchor)
	assert.Equal(t, RectXYWH(392, 584, 16, 16), ps["bottom"].Box)
}

func TestLayoutLeadOffsetsBox(t *testing.T) {
	below := Marker{ID: "below", Time: 120, Price: 15, Lead: LineMedium}
	above := Marker{ID: "above", Time: 180, Price: 15, Lead: LineLong, Side: PlaceAbove}

	ps := placementsByID(Layout([]Marker{below, above}, testGeometry(), DefaultLayoutConfig(), testMeasurer))
	assert.InDelta(t, 320.0, ps["below"].Box.Min.Y, 1e-9)
	assert.InDelta(t, 265.0, ps["above"].Box.Max.Y, 1e-9)
}

func TestLayoutDeterministic(t *testing.T) {
	ms := randomMarkers(rand.New(rand.NewPCG(7, 11)), 200)
	cfg := DefaultLayoutConfig()

	want := Layout(ms, testGeometry(), cfg, testMeasurer)
	for range 3 {
		shuffled := slices.Clone(ms)
		rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, want, Layout(shuffled, testGeometry(), cfg, testMeasurer))
	}
}

func TestLayoutNeverOverlaps(t *testing.T) {
	cfg := DefaultLayoutConfig()
	for seed := range uint64(20) {
		r := rand.New(rand.NewPCG(seed, seed*31+1))
		ms := randomMarkers(r, 10+r.IntN(300))

		ps := Layout(ms, testGeometry(), cfg, testMeasurer)

		visible := 0
		for _, m := range ms {
			if testViewport().Time.Contains(m.Time) {
				visible++
			}
		}
		require.Len(t, ps, visible, "seed %d", seed)

		var placed []Placement
		seen := map[string]bool{}
		for _, p := range ps {
			require.False(t, seen[p.ID], "seed %d: %s placed twice", seed, p.ID)
			seen[p.ID] = true
			if !p.Hidden {
				placed = append(placed, p)
			}
		}
		for i := range placed {
			for j := i + 1; j < len(placed); j++ {
				assert.False(t, placed[i].Box.Overlaps(placed[j].Box, cfg.MinGap),
					"seed %d: %s %v overlaps %s %v", seed, placed[i].ID, placed[i].Box, placed[j].ID, placed[j].Box)
			}
		}
	}
}

// A marker is hidden only when every stack level collides with a marker
// placed before it.
func TestLayoutHiddenOnlyWhenBlocked(t *testing.T) {
	cfg := DefaultLayoutConfig()
	ms := randomMarkers(rand.New(rand.NewPCG(3, 5)), 250)
	ps := Layout(ms, testGeometry(), cfg, testMeasurer)

	var before []Rect
	for _, p := range ps {
		if !p.Hidden {
			before = append(before, p.Box)
			continue
		}
		step := p.Box.Height() + cfg.StackGap
		for level := 0; level <= cfg.MaxStackDepth; level++ {
			box := p.Box.Translate(0, -float64(level)*step)
			if level > 0 && box.Min.Y < 0 {
				break
			}
			assert.True(t, collides(box, before, cfg.MinGap), "%s level %d was free", p.ID, level)
		}
	}
}

func randomMarkers(r *rand.Rand, n int) []Marker {
	shapes := []Shape{{Kind: ShapeCircle}, {Kind: ShapeLabeledPin}, {Kind: ShapeText}, {Kind: ShapeTriangleUp}}
	labels := []string{"", "B", "S", "TP", "Earnings"}
	ms := make([]Marker, n)
	for i := range ms {
		m := Marker{
			ID:       fmt.Sprintf("m%03d", i),
			Time:     90 + r.Float64()*120,
			Price:    10 + r.Float64()*10,
			Priority: r.IntN(4),
			Shape:    shapes[r.IntN(len(shapes))],
			Label:    labels[r.IntN(len(labels))],
			Side:     Side(r.IntN(2)),
			Lead:     LineLength(r.IntN(5)),
		}
		if m.Shape.Kind == ShapeText && m.Label == "" {
			m.Label = "note"
		}
		if r.IntN(5) == 0 {
			m.Size = Size{W: 8 + r.Float64()*24, H: 8 + r.Float64()*24}
		}
		ms[i] = m
	}
	return ms
}

func BenchmarkLayout(b *testing.B) {
	ms := randomMarkers(rand.New(rand.NewPCG(1, 2)), 1000)
	g := testGeometry()
	cfg := DefaultLayoutConfig()
	b.ReportAllocs()
	for b.Loop() {
		_ = Layout(ms, g, cfg, testMeasurer)
	}
}
