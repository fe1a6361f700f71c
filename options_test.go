package overlay

import (
	"testing"
)

// mockSink is a test sink for DI testing.
type mockSink struct {
	calls int
	last  []Command
}

func (m *mockSink) Draw(cmds []Command) error {
	m.calls++
	m.last = cmds
	return nil
}

// TestNewDefaults tests that New without options uses the default config.
func TestNewDefaults(t *testing.T) {
	c := New()
	if c.Config().Layout != DefaultLayoutConfig() {
		t.Errorf("Layout = %+v, want %+v", c.Config().Layout, DefaultLayoutConfig())
	}
	if c.measurer == nil {
		t.Error("measurer is nil, expected the default measurer")
	}
	if c.sink != nil {
		t.Errorf("sink = %v, want nil", c.sink)
	}
	if c.series != nil {
		t.Errorf("series = %v, want nil", c.series)
	}

	c = New(WithLayout(LayoutConfig{MaxStackDepth: 1}), WithStyle(Style{LabelSize: 9}), WithMeasurer(testMeasurer))
	if got := c.Config().Layout.MaxStackDepth; got != 1 {
		t.Errorf("MaxStackDepth = %d, want 1", got)
	}
	if got := c.Config().Style.LabelSize; got != 9 {
		t.Errorf("LabelSize = %v, want 9", got)
	}

	c = New(WithConfig(Config{MaxRegions: 3}), WithMeasurer(testMeasurer))
	if got := c.Config().MaxRegions; got != 3 {
		t.Errorf("MaxRegions = %d, want 3", got)
	}
}

// TestWithSinkInjection tests dependency injection of a custom sink.
func TestWithSinkInjection(t *testing.T) {
	mock := &mockSink{}
	c := New(WithSink(mock), WithMeasurer(testMeasurer))
	if err := c.OnViewportChanged(testViewport()); err != nil {
		t.Fatalf("OnViewportChanged() = %v", err)
	}
	if err := c.RegisterMarker(dot("a", 150, 15, 0)); err != nil {
		t.Fatalf("RegisterMarker() = %v", err)
	}

	if err := c.Render(); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	if mock.calls != 1 {
		t.Errorf("mock calls = %d, want 1", mock.calls)
	}
	if len(mock.last) == 0 {
		t.Error("mock received no commands")
	}

	other := NewRecorder()
	c.SetSink(other)
	if err := c.Render(); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	if mock.calls != 1 {
		t.Errorf("replaced sink drawn: calls = %d, want 1", mock.calls)
	}
	if other.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", other.Frames())
	}
}

func TestOptionsApplyInOrder(t *testing.T) {
	c := New(WithLayout(LayoutConfig{MaxStackDepth: 7}), WithConfig(DefaultConfig()), WithMeasurer(testMeasurer))
	if got, want := c.Config().Layout.MaxStackDepth, DefaultLayoutConfig().MaxStackDepth; got != want {
		t.Errorf("MaxStackDepth = %d, want %d", got, want)
	}

	c = New(WithConfig(DefaultConfig()), WithLayout(LayoutConfig{MaxStackDepth: 7}), WithMeasurer(testMeasurer))
	if got := c.Config().Layout.MaxStackDepth; got != 7 {
		t.Errorf("MaxStackDepth = %d, want 7", got)
	}
	if got, want := c.Config().Style.LabelSize, DefaultStyle().LabelSize; got != want {
		t.Errorf("LabelSize = %v, want %v", got, want)
	}
}

func TestWithGeometryNilKeepsDefault(t *testing.T) {
	c := New(WithGeometry(nil), WithMeasurer(testMeasurer))
	if err := c.OnViewportChanged(testViewport()); err != nil {
		t.Fatalf("OnViewportChanged() = %v", err)
	}
	if _, ok := c.Geometry().(*LinearGeometry); !ok {
		t.Errorf("Geometry() = %T, want *LinearGeometry", c.Geometry())
	}
}
