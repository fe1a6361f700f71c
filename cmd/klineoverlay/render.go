package main

import (
	"math"
	"os"

	"github.com/gogpu/gg"
	"github.com/gogpu/overlay"
	"github.com/gogpu/overlay/chartsink"
	"github.com/gogpu/overlay/ggsink"
	"github.com/gogpu/overlay/promobserver"
	"github.com/gogpu/overlay/series"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"
	"go.uber.org/multierr"
)

// Job is a scenario loaded into a controller, ready to draw.
type Job struct {
	Controller *overlay.Controller
	Series     *series.Series
	Registry   *prometheus.Registry
	Settings   Settings
}

// Prepare registers the scenario with a new controller and sets the
// viewport. Rejected markers and regions are logged and skipped.
func Prepare(sc *Scenario, st Settings) (*Job, error) {
	s, err := sc.Series()
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	obs, err := promobserver.New(reg)
	if err != nil {
		return nil, errors.Wrap(err, "register metrics")
	}

	c := overlay.New(
		overlay.WithConfig(st.Config()),
		overlay.WithSeries(s),
		overlay.WithObserver(obs),
	)

	regions, err := sc.BuildRegions()
	if err != nil {
		return nil, err
	}
	for _, err := range multierr.Errors(c.RegisterRegions(regions...)) {
		log.WithError(err).Warn("region rejected")
	}

	markers, err := sc.BuildMarkers(s)
	if err != nil {
		return nil, err
	}
	for _, err := range multierr.Errors(c.RegisterMarkers(markers...)) {
		log.WithError(err).Warn("marker rejected")
	}

	vp, err := sc.Viewport(s, overlay.Size{W: float64(st.Width), H: float64(st.Height)}, st.Padding)
	if err != nil {
		return nil, errors.Wrap(err, "viewport")
	}
	if err := c.OnViewportChanged(vp); err != nil {
		return nil, err
	}
	log.Debugf("viewport time [%g, %g] price [%g, %g]", vp.Time.Min, vp.Time.Max, vp.Price.Min, vp.Price.Max)

	return &Job{Controller: c, Series: s, Registry: reg, Settings: st}, nil
}

// Render draws the candles and the overlay to the output file.
func (j *Job) Render() error {
	switch j.Settings.Format {
	case "svg":
		return j.renderChart(chart.SVG)
	default:
		return j.renderPNG()
	}
}

func (j *Job) renderPNG() error {
	st := j.Settings
	dc := gg.NewContext(st.Width, st.Height)
	defer func() { _ = dc.Close() }()

	dc.ClearWithColor(gg.Hex(st.Background))
	for _, b := range j.bars() {
		drawBarGG(dc, b)
	}

	sink, err := ggsink.New(dc)
	if err != nil {
		return err
	}
	j.Controller.SetSink(sink)
	if err := j.Controller.Render(); err != nil {
		return err
	}
	return errors.Wrap(dc.SavePNG(st.Output), "save png")
}

func (j *Job) renderChart(provider chart.RendererProvider) error {
	st := j.Settings
	bars := j.bars()
	sink, err := chartsink.New(provider, st.Width, st.Height,
		chartsink.WithBackground(gg.Hex(st.Background)),
		chartsink.WithUnderlay(func(r chart.Renderer) {
			for _, b := range bars {
				drawBarChart(r, b)
			}
		}),
	)
	if err != nil {
		return err
	}
	j.Controller.SetSink(sink)
	if err := j.Controller.Render(); err != nil {
		return err
	}

	f, err := os.Create(st.Output)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	if err := sink.Save(f); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "save svg")
	}
	return f.Close()
}

// bar is a candle in pixel space.
type bar struct {
	X, HalfWidth float64
	High, Low    float64 // wick ends
	Top, Bottom  float64 // body
	Rising       bool
}

// bars projects the visible candles. A body is 70% of the candle pitch
// and at least one pixel tall.
func (j *Job) bars() []bar {
	g := j.Controller.Geometry()
	if g == nil {
		return nil
	}
	vp := g.Viewport()
	candles := j.Series.Window(vp.Time.Min, vp.Time.Max)

	pitch := math.Inf(1)
	for i := 1; i < len(candles); i++ {
		pitch = math.Min(pitch, candles[i].Time-candles[i-1].Time)
	}
	if math.IsInf(pitch, 1) {
		pitch = vp.Time.Span()
	}
	half := math.Max(1, pitch*vp.Pixels.W/vp.Time.Span()*0.35)

	out := make([]bar, len(candles))
	for i, c := range candles {
		hi := g.ToPixel(c.Time, c.High)
		lo := g.ToPixel(c.Time, c.Low)
		o := g.ToPixel(c.Time, c.Open).Y
		cl := g.ToPixel(c.Time, c.Close).Y
		top, bottom := math.Min(o, cl), math.Max(o, cl)
		if bottom-top < 1 {
			bottom = top + 1
		}
		out[i] = bar{X: hi.X, HalfWidth: half, High: hi.Y, Low: lo.Y, Top: top, Bottom: bottom, Rising: c.Rising()}
	}
	return out
}

func (b bar) color() gg.RGBA {
	if b.Rising {
		return overlay.ColorUp
	}
	return overlay.ColorDown
}

func drawBarGG(dc *gg.Context, b bar) {
	col := b.color()
	dc.SetRGBA(col.R, col.G, col.B, col.A)
	dc.SetLineWidth(1)
	dc.DrawLine(b.X, b.High, b.X, b.Low)
	_ = dc.Stroke()
	dc.DrawRectangle(b.X-b.HalfWidth, b.Top, 2*b.HalfWidth, b.Bottom-b.Top)
	_ = dc.Fill()
}

func drawBarChart(r chart.Renderer, b bar) {
	col := chartsink.Color(b.color())
	r.ResetStyle()
	r.SetStrokeColor(col)
	r.SetStrokeWidth(1)
	r.MoveTo(round(b.X), round(b.High))
	r.LineTo(round(b.X), round(b.Low))
	r.Stroke()

	r.ResetStyle()
	r.SetFillColor(col)
	x0, x1 := round(b.X-b.HalfWidth), round(b.X+b.HalfWidth)
	y0, y1 := round(b.Top), round(b.Bottom)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.Close()
	r.Fill()
}

func round(v float64) int { return int(math.Round(v)) }
