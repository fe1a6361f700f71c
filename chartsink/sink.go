// Package chartsink draws overlay frames with a go-chart renderer, which
// gives the overlay SVG as well as PNG output.
//
// Every Draw starts a fresh renderer from the provider, so a Sink always
// holds exactly the last frame; Save writes it out.
//
//	sink, err := chartsink.New(chart.SVG, 800, 600)
//	c := overlay.New(overlay.WithSink(sink))
//	...
//	_ = c.Render()
//	_ = sink.Save(w)
package chartsink

import (
	"errors"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/overlay"
	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoFrame is returned by Save before the first frame was drawn.
var ErrNoFrame = errors.New("chartsink: no frame drawn")

// Sink is an overlay.Sink backed by go-chart renderers.
type Sink struct {
	provider      chart.RendererProvider
	width, height int
	font          *truetype.Font
	bands         int
	background    drawing.Color
	underlay      func(chart.Renderer)

	r chart.Renderer
}

var (
	_ overlay.Sink    = (*Sink)(nil)
	_ overlay.Painter = (*Sink)(nil)
)

// Option configures a Sink.
type Option func(*Sink)

// WithFont sets the label font. The default is go-chart's Roboto.
func WithFont(f *truetype.Font) Option {
	return func(s *Sink) { s.font = f }
}

// WithGradientBands sets how many horizontal bands approximate a region
// gradient. One band fills with the top colour only.
func WithGradientBands(n int) Option {
	return func(s *Sink) { s.bands = max(n, 1) }
}

// WithBackground fills each frame with col before drawing.
func WithBackground(col gg.RGBA) Option {
	return func(s *Sink) { s.background = Color(col) }
}

// WithUnderlay runs fn on every new frame after the background and before
// the overlay, e.g. to draw the candles the overlay annotates.
func WithUnderlay(fn func(chart.Renderer)) Option {
	return func(s *Sink) { s.underlay = fn }
}

// New creates a Sink rendering width x height frames with provider,
// typically chart.SVG or chart.PNG.
func New(provider chart.RendererProvider, width, height int, opts ...Option) (*Sink, error) {
	s := &Sink{
		provider: provider,
		width:    width,
		height:   height,
		bands:    8,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.font == nil {
		f, err := chart.GetDefaultFont()
		if err != nil {
			return nil, err
		}
		s.font = f
	}
	return s, nil
}

// Draw implements overlay.Sink.
func (s *Sink) Draw(cmds []overlay.Command) error {
	r, err := s.provider(s.width, s.height)
	if err != nil {
		return err
	}
	s.r = r
	if s.background.A > 0 {
		r.SetFillColor(s.background)
		rect(r, 0, 0, float64(s.width), float64(s.height))
		r.Fill()
	}
	if s.underlay != nil {
		s.underlay(r)
	}
	return overlay.Replay(cmds, s)
}

// Save writes the last frame to w.
func (s *Sink) Save(w io.Writer) error {
	if s.r == nil {
		return ErrNoFrame
	}
	return s.r.Save(w)
}

// FillRegion fills the span with bands stepping from Top to Bottom.
func (s *Sink) FillRegion(c overlay.FillRegionCommand) error {
	rc := c.Rect
	if rc.Width() <= 0 || rc.Height() <= 0 {
		return nil
	}
	bandH := rc.Height() / float64(s.bands)
	for i := range s.bands {
		t := 0.0
		if s.bands > 1 {
			t = float64(i) / float64(s.bands-1)
		}
		s.r.ResetStyle()
		s.r.SetFillColor(Color(c.Top.Lerp(c.Bottom, t)))
		y := rc.Min.Y + float64(i)*bandH
		rect(s.r, rc.Min.X, y, rc.Width(), bandH)
		s.r.Fill()
	}
	return nil
}

// StrokeLine strokes a connector.
func (s *Sink) StrokeLine(c overlay.StrokeLineCommand) error {
	s.r.ResetStyle()
	s.r.SetStrokeColor(Color(c.Color))
	s.r.SetStrokeWidth(c.Width)
	if len(c.Dash) > 0 {
		s.r.SetStrokeDashArray(c.Dash)
	}
	s.r.MoveTo(px(c.From.X), px(c.From.Y))
	s.r.LineTo(px(c.To.X), px(c.To.Y))
	s.r.Stroke()
	return nil
}

// FillShape fills a marker glyph. Custom icons are drawn as squares.
func (s *Sink) FillShape(c overlay.FillShapeCommand) error {
	s.r.ResetStyle()
	s.r.SetFillColor(Color(c.Color))
	if !shapePath(s.r, c.Shape.Kind, c.Rect) {
		return nil
	}
	s.r.Fill()
	return nil
}

// DrawText draws a label centred in its rectangle.
func (s *Sink) DrawText(c overlay.DrawTextCommand) error {
	if c.Text == "" {
		return nil
	}
	s.r.ResetStyle()
	s.r.SetFont(s.font)
	s.r.SetFontSize(c.Size)
	s.r.SetFontColor(Color(c.Color))
	box := s.r.MeasureText(c.Text)
	p := c.Rect.Center()
	s.r.Text(c.Text, px(p.X)-box.Width()/2, px(p.Y)+box.Height()/2)
	return nil
}

// Color converts a gg colour to a go-chart colour.
func Color(c gg.RGBA) drawing.Color {
	return drawing.Color{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(c.A)}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func px(v float64) int { return int(math.Round(v)) }

func rect(r chart.Renderer, x, y, w, h float64) {
	r.MoveTo(px(x), px(y))
	r.LineTo(px(x+w), px(y))
	r.LineTo(px(x+w), px(y+h))
	r.LineTo(px(x), px(y+h))
	r.Close()
}
