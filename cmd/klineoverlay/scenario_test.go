package main

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/gogpu/overlay"
	"github.com/gogpu/overlay/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestScenario(t *testing.T) (*Scenario, *series.Series) {
	t.Helper()
	sc, err := LoadScenario(filepath.Join("testdata", "btc.yaml"))
	require.NoError(t, err)
	s, err := sc.Series()
	require.NoError(t, err)
	return sc, s
}

func TestLoadScenario(t *testing.T) {
	sc, s := loadTestScenario(t)
	assert.Equal(t, "BTC daily", sc.Title)
	assert.Equal(t, 8, s.Len())

	r, ok := s.TimeRange()
	require.True(t, ok)
	assert.Equal(t, overlay.R(0, 7), r)
}

func TestBuildMarkers(t *testing.T) {
	sc, s := loadTestScenario(t)
	ms, err := sc.BuildMarkers(s)
	require.NoError(t, err)
	require.Len(t, ms, 7)

	byID := make(map[string]overlay.Marker, len(ms))
	for _, m := range ms {
		byID[m.ID] = m
	}

	b1 := byID["b1"]
	assert.Equal(t, overlay.KindBuy, b1.Kind)
	assert.Equal(t, "B", b1.Label)
	assert.InDelta(t, 10.8, b1.Price, 1e-9, "snapped to the candle low")
	assert.Equal(t, 2, b1.Priority)

	s1 := byID["s1"]
	assert.Equal(t, "TP", s1.Label)
	assert.InDelta(t, 14.1, s1.Price, 1e-9, "snapped to the candle high")

	w1 := byID["w1"]
	assert.Equal(t, overlay.ShapeDiamond, w1.Shape.Kind)
	assert.Equal(t, overlay.PlaceAbove, w1.Side)
	assert.InDelta(t, 14.0, w1.Price, 0)

	assert.Equal(t, overlay.AnchorTop, byID["e1"].Anchor)
	assert.Equal(t, "CPI", byID["e1"].Label)
	assert.Equal(t, overlay.LineLong, byID["n1"].Lead)
	assert.Equal(t, overlay.ShapeText, byID["n1"].Shape.Kind)

	fed := byID["feed-flag-0"]
	assert.Equal(t, overlay.KindBuy, fed.Kind)
	assert.InDelta(t, 2, fed.Time, 0)
	assert.InDelta(t, 11.1, fed.Price, 1e-9)

	surge := byID["feed-flag-1"]
	assert.Equal(t, overlay.KindSurge, surge.Kind)
	assert.Equal(t, "+8%", surge.Label)
	assert.InDelta(t, 13.0, surge.Price, 1e-9)

	_, skipped := byID["feed-flag-2"]
	assert.False(t, skipped, "unknown feed type is dropped")
}

func TestBuildRegions(t *testing.T) {
	sc, _ := loadTestScenario(t)
	rs, err := sc.BuildRegions()
	require.NoError(t, err)
	require.Len(t, rs, 3)

	assert.Equal(t, overlay.TrendRising, rs[0].Kind)
	assert.InDelta(t, 4.5, rs[0].End, 0)

	assert.True(t, math.IsInf(rs[1].End, 1))
	require.NotNil(t, rs[1].Top)
	assert.InDelta(t, 14.0, *rs[1].Top, 0)

	assert.Equal(t, "feed-trend-0", rs[2].ID)
	assert.InDelta(t, 1, rs[2].Start, 0)
	assert.InDelta(t, 3, rs[2].End, 0)
	assert.Equal(t, 2, rs[2].Strength)
}

func TestParseScenarioErrors(t *testing.T) {
	_, err := ParseScenario([]byte("title: empty\n"))
	assert.ErrorIs(t, err, series.ErrEmpty)

	_, err = ParseScenario([]byte("candles: [oops"))
	assert.Error(t, err)
}

func TestMarkerSpecErrors(t *testing.T) {
	s, err := series.New([]series.Candle{{Time: 0, Open: 1, High: 2, Low: 0.5, Close: 1.5}})
	require.NoError(t, err)

	tests := []struct {
		name string
		spec MarkerSpec
	}{
		{"kind", MarkerSpec{ID: "m", Kind: "moon"}},
		{"shape", MarkerSpec{ID: "m", Shape: "blob"}},
		{"side", MarkerSpec{ID: "m", Side: "left"}},
		{"anchor", MarkerSpec{ID: "m", Anchor: "middle"}},
		{"lead", MarkerSpec{ID: "m", Lead: "huge"}},
		{"no candle", MarkerSpec{ID: "m", T: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.spec.build(s)
			assert.Error(t, err)
		})
	}
}

func TestMarkerSpecOverrides(t *testing.T) {
	s, err := series.New([]series.Candle{{Time: 0, Open: 1, High: 2, Low: 0.5, Close: 1.5}})
	require.NoError(t, err)

	m, err := MarkerSpec{ID: "m", Kind: "Sell", Icon: "flag", Anchor: "bottom", Color: "#112233"}.build(s)
	require.NoError(t, err)
	assert.Equal(t, overlay.CustomShape("flag"), m.Shape)
	assert.Equal(t, overlay.AnchorBottom, m.Anchor)
	assert.InDelta(t, 0x11/255.0, m.Color.R, 1e-9)
	assert.Zero(t, m.Price, "pinned markers ignore price")

	m, err = MarkerSpec{ID: "plain", Kind: "stop_loss"}.build(s)
	require.NoError(t, err)
	assert.Equal(t, overlay.ShapeCircle, m.Shape.Kind)
	assert.InDelta(t, 0.5, m.Price, 0)
}

func TestViewportFromScenario(t *testing.T) {
	sc, s := loadTestScenario(t)
	px := overlay.Size{W: 800, H: 600}

	vp, err := sc.Viewport(s, px, 0)
	require.NoError(t, err)
	assert.InDelta(t, -0.5, vp.Time.Min, 1e-9)
	assert.InDelta(t, 7.5, vp.Time.Max, 1e-9)
	assert.InDelta(t, 9.5, vp.Price.Min, 1e-9)
	assert.InDelta(t, 14.1, vp.Price.Max, 1e-9)

	sc.View = &ViewSpec{From: 2, To: 4}
	vp, err = sc.Viewport(s, px, 0)
	require.NoError(t, err)
	assert.InDelta(t, 11.1, vp.Price.Min, 1e-9)

	lo, hi := 5.0, 20.0
	sc.View = &ViewSpec{From: 2, To: 4, PriceMin: &lo, PriceMax: &hi}
	vp, err = sc.Viewport(s, px, 0)
	require.NoError(t, err)
	assert.Equal(t, overlay.R(5, 20), vp.Price)

	sc.View = &ViewSpec{From: 4, To: 2, PriceMin: &lo, PriceMax: &hi}
	_, err = sc.Viewport(s, px, 0)
	assert.ErrorIs(t, err, overlay.ErrInvalidViewport)
}
