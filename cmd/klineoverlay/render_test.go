package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/overlay"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings(t *testing.T, format string) Settings {
	t.Helper()
	return Settings{
		Width:      400,
		Height:     300,
		Format:     format,
		Output:     filepath.Join(t.TempDir(), "out."+format),
		Padding:    0.05,
		Background: "#FFFFFF",
		Layout:     overlay.DefaultLayoutConfig(),
	}
}

func TestPrepare(t *testing.T) {
	sc, _ := loadTestScenario(t)
	job, err := Prepare(sc, testSettings(t, "png"))
	require.NoError(t, err)

	assert.Len(t, job.Controller.Markers(), 7)
	assert.Len(t, job.Controller.Regions(), 3)

	f := job.Controller.CurrentFrame()
	assert.Equal(t, 7, f.Len())
	assert.Equal(t, 3, f.Stats().Regions)
	n, err := testutil.GatherAndCount(job.Registry, "overlay_layouts_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPrepareLogsRejected(t *testing.T) {
	sc, _ := loadTestScenario(t)
	sc.Markers = append(sc.Markers, MarkerSpec{ID: "b1", T: 2, Kind: "buy"}, MarkerSpec{ID: "late", T: 99, Price: ptr(12.0)})
	job, err := Prepare(sc, testSettings(t, "png"))
	require.NoError(t, err)
	assert.Len(t, job.Controller.Markers(), 7, "duplicate and out-of-range markers are skipped")

	n, err := testutil.GatherAndCount(job.Registry, "overlay_rejected_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "one series per rejection reason")
}

func TestRenderPNG(t *testing.T) {
	sc, _ := loadTestScenario(t)
	st := testSettings(t, "png")
	job, err := Prepare(sc, st)
	require.NoError(t, err)
	require.NoError(t, job.Render())

	f, err := os.Open(st.Output)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())

	// The first candle body is drawn in the rising colour.
	b := job.bars()[0]
	r, g, _, _ := img.At(int(b.X), int((b.Top+b.Bottom)/2)).RGBA()
	assert.Greater(t, g, r)
}

func TestRenderSVG(t *testing.T) {
	sc, _ := loadTestScenario(t)
	st := testSettings(t, "svg")
	job, err := Prepare(sc, st)
	require.NoError(t, err)
	require.NoError(t, job.Render())

	data, err := os.ReadFile(st.Output)
	require.NoError(t, err)
	svg := string(data)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(svg), "<svg"))
	assert.Contains(t, svg, "CPI")
	// 8 candles with a wick and a body each
	assert.GreaterOrEqual(t, strings.Count(svg, "<path"), 16)
}

func TestBars(t *testing.T) {
	sc, _ := loadTestScenario(t)
	job, err := Prepare(sc, testSettings(t, "png"))
	require.NoError(t, err)

	bars := job.bars()
	require.Len(t, bars, 8)
	// 8 candle pitches over 400px, 70% body
	assert.InDelta(t, 17.5, bars[0].HalfWidth, 1e-9)
	for _, b := range bars {
		assert.LessOrEqual(t, b.High, b.Top)
		assert.Less(t, b.Top, b.Bottom)
		assert.LessOrEqual(t, b.Bottom, b.Low)
	}
	assert.True(t, bars[0].Rising)
	assert.False(t, bars[2].Rising)
}

func TestPrintTables(t *testing.T) {
	sc, _ := loadTestScenario(t)
	job, err := Prepare(sc, testSettings(t, "png"))
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintPlacements(&buf, job.Controller)
	out := buf.String()
	for _, id := range []string{"b1", "s1", "w1", "e1", "n1", "feed-flag-0"} {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "labeled_pin")

	buf.Reset()
	require.NoError(t, PrintMetrics(&buf, job.Registry))
	assert.Contains(t, buf.String(), "overlay_layouts_total")
	assert.Contains(t, buf.String(), "state=hidden")
}

func TestRootCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart.svg")
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"render", filepath.Join("testdata", "btc.yaml"), "--format", "svg", "-o", out, "--width", "320", "--table"})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(out)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "b1")

	cmd = newRootCmd()
	cmd.SetArgs([]string{"layout"})
	assert.Error(t, cmd.Execute())
}

func ptr[T any](v T) *T { return &v }
