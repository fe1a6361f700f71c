package overlay

import "testing"

// testMeasurer gives labels a 6x10 cell per rune so extents are exact.
var testMeasurer = FixedMeasurer{CharWidth: 6, LineHeight: 10}

// testViewport maps one time unit to 8 px and one price unit to 60 px.
func testViewport() Viewport {
	return Viewport{
		Time:   R(100, 200),
		Price:  R(10, 20),
		Pixels: Size{W: 800, H: 600},
	}
}

func testGeometry() Geometry { return NewLinearGeometry(testViewport()) }

func dot(id string, t, price float64, priority int) Marker {
	return Marker{ID: id, Time: t, Price: price, Priority: priority}
}

func newTestController(t *testing.T, opts ...Option) (*Controller, *Recorder) {
	t.Helper()
	rec := NewRecorder()
	opts = append([]Option{WithMeasurer(testMeasurer), WithSink(rec)}, opts...)
	c := New(opts...)
	if err := c.OnViewportChanged(testViewport()); err != nil {
		t.Fatalf("OnViewportChanged: %v", err)
	}
	return c, rec
}

func placementsByID(ps []Placement) map[string]Placement {
	m := make(map[string]Placement, len(ps))
	for _, p := range ps {
		m[p.ID] = p
	}
	return m
}
