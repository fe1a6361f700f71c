package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame(t *testing.T, ms ...Marker) *Frame {
	t.Helper()
	g := testGeometry()
	return newFrame(1, g.Viewport(), Layout(ms, g, DefaultLayoutConfig(), testMeasurer), nil)
}

func TestFrameHitTest(t *testing.T) {
	var ms []Marker
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		ms = append(ms, dot(id, 150, 15, 0))
	}
	ms = append(ms, dot("far", 110, 15, 0))
	f := testFrame(t, ms...)
	require.Equal(t, []string{"e"}, f.Hidden())

	tests := []struct {
		name string
		pt   Point
		want string
	}{
		{"default box", Pt(400, 308), "a"},
		{"first stack level", Pt(400, 290), "b"},
		{"third stack level", Pt(400, 254), "d"},
		{"separate marker", Pt(80, 308), "far"},
		{"gap between levels", Pt(400, 299), ""},
		{"empty space", Pt(700, 100), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := f.HitTest(tt.pt)
			assert.Equal(t, tt.want != "", ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestFrameSharedEdgePrefersLaterPlacement(t *testing.T) {
	cfg := DefaultLayoutConfig()
	cfg.MinGap, cfg.StackGap = 0, 0
	g := testGeometry()
	f := newFrame(1, g.Viewport(), Layout([]Marker{dot("a", 150, 15, 0), dot("b", 150, 15, 0)}, g, cfg, testMeasurer), nil)

	// b sits directly on top of a; y=300 is on both boxes.
	id, ok := f.HitTest(Pt(400, 300))
	require.True(t, ok)
	assert.Equal(t, "b", id)
}

func TestFrameAccessors(t *testing.T) {
	f := testFrame(t, dot("a", 150, 15, 0), dot("b", 150, 15, 0), dot("c", 120, 15, 0))

	assert.Equal(t, uint64(1), f.Seq())
	vp, ok := f.Viewport()
	assert.True(t, ok)
	assert.Equal(t, testViewport(), vp)
	assert.Equal(t, 3, f.Len())

	p, ok := f.Placement("b")
	require.True(t, ok)
	assert.True(t, p.Stacked())
	_, ok = f.Placement("missing")
	assert.False(t, ok)

	ps := f.Placements()
	ps[0].ID = "mutated"
	assert.NotEqual(t, "mutated", f.Placements()[0].ID, "accessors return copies")

	assert.Equal(t, FrameStats{Visible: 3, Placed: 2, Stacked: 1}, f.Stats())
}

func TestEmptyFrame(t *testing.T) {
	f := emptyFrame(4)
	_, ok := f.Viewport()
	assert.False(t, ok)
	assert.Zero(t, f.Len())
	assert.Empty(t, f.Hidden())
	assert.Empty(t, f.Spans())
	_, ok = f.HitTest(Pt(0, 0))
	assert.False(t, ok)
	assert.Equal(t, FrameStats{}, f.Stats())
}
