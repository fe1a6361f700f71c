// Package ggsink draws overlay frames into a gg.Context.
//
// The sink replays the command list of each frame with the gg immediate
// mode API: region spans become gradient-filled rectangles, connectors
// become (optionally dashed) lines, marker glyphs become filled paths and
// labels are drawn with a gg/text face.
//
// # Example
//
//	dc := gg.NewContext(800, 600)
//	sink, err := ggsink.New(dc)
//	if err != nil { ... }
//
//	c := overlay.New(overlay.WithSink(sink))
//	...
//	_ = c.Render()
//	_ = dc.SavePNG("overlay.png")
package ggsink

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/gogpu/overlay"
)

// IconFunc draws a custom marker icon inscribed in r. The current colour
// is already set to the marker colour.
type IconFunc func(dc *gg.Context, r overlay.Rect) error

// Sink is an overlay.Sink backed by a gg.Context.
type Sink struct {
	dc         *gg.Context
	source     *text.FontSource
	faces      map[float64]text.Face
	icons      map[string]IconFunc
	background gg.RGBA
	clear      bool
}

// Ensure Sink implements the overlay interfaces.
var (
	_ overlay.Sink    = (*Sink)(nil)
	_ overlay.Painter = (*Sink)(nil)
)

// Option configures a Sink.
type Option func(*Sink)

// WithFontSource sets the font used for labels. The default is Go Regular.
func WithFontSource(src *text.FontSource) Option {
	return func(s *Sink) {
		s.source = src
	}
}

// WithBackground clears the context to col before every frame.
// Without it the overlay is drawn on top of whatever the context holds.
func WithBackground(col gg.RGBA) Option {
	return func(s *Sink) {
		s.background = col
		s.clear = true
	}
}

// WithIcon registers the painter for ShapeCustom markers named name.
func WithIcon(name string, fn IconFunc) Option {
	return func(s *Sink) {
		s.icons[name] = fn
	}
}

// New creates a Sink drawing into dc.
func New(dc *gg.Context, opts ...Option) (*Sink, error) {
	s := &Sink{
		dc:    dc,
		faces: make(map[float64]text.Face),
		icons: make(map[string]IconFunc),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.source == nil {
		src, err := overlay.GoRegular()
		if err != nil {
			return nil, fmt.Errorf("ggsink: load default font: %w", err)
		}
		s.source = src
	}
	return s, nil
}

// Context returns the target context.
func (s *Sink) Context() *gg.Context { return s.dc }

// Draw implements overlay.Sink.
func (s *Sink) Draw(cmds []overlay.Command) error {
	if s.clear {
		s.dc.ClearWithColor(s.background)
	}
	return overlay.Replay(cmds, s)
}

// FillRegion fills the span with a vertical gradient.
func (s *Sink) FillRegion(c overlay.FillRegionCommand) error {
	r := c.Rect
	if r.Width() <= 0 || r.Height() <= 0 {
		return nil
	}
	s.dc.Push()
	defer s.dc.Pop()

	x := r.Center().X
	s.dc.SetFillBrush(gg.NewLinearGradientBrush(x, r.Min.Y, x, r.Max.Y).
		AddColorStop(0, c.Top).
		AddColorStop(1, c.Bottom))
	s.dc.DrawRectangle(r.Min.X, r.Min.Y, r.Width(), r.Height())
	return s.dc.Fill()
}

// StrokeLine strokes a connector.
func (s *Sink) StrokeLine(c overlay.StrokeLineCommand) error {
	setColor(s.dc, c.Color)
	s.dc.SetLineWidth(c.Width)
	if len(c.Dash) > 0 {
		s.dc.SetDash(c.Dash...)
	} else {
		s.dc.ClearDash()
	}
	s.dc.DrawLine(c.From.X, c.From.Y, c.To.X, c.To.Y)
	err := s.dc.Stroke()
	s.dc.ClearDash()
	return err
}

// FillShape fills a marker glyph.
func (s *Sink) FillShape(c overlay.FillShapeCommand) error {
	setColor(s.dc, c.Color)
	if c.Shape.Kind == overlay.ShapeCustom {
		if fn, ok := s.icons[c.Shape.Custom]; ok {
			return fn(s.dc, c.Rect)
		}
		overlay.Logger().Debug("ggsink: no icon registered, drawing square", "icon", c.Shape.Custom, "id", c.ID)
		s.dc.DrawRectangle(c.Rect.Min.X, c.Rect.Min.Y, c.Rect.Width(), c.Rect.Height())
		return s.dc.Fill()
	}
	return drawShape(s.dc, c.Shape.Kind, c.Rect)
}

// DrawText draws a label centred in its rectangle.
func (s *Sink) DrawText(c overlay.DrawTextCommand) error {
	if c.Text == "" {
		return nil
	}
	s.dc.SetFont(s.face(c.Size))
	setColor(s.dc, c.Color)
	p := c.Rect.Center()
	s.dc.DrawStringAnchored(c.Text, p.X, p.Y, 0.5, 0.5)
	return nil
}

func (s *Sink) face(size float64) text.Face {
	if f, ok := s.faces[size]; ok {
		return f
	}
	f := s.source.Face(size)
	s.faces[size] = f
	return f
}

func setColor(dc *gg.Context, c gg.RGBA) {
	dc.SetRGBA(c.R, c.G, c.B, c.A)
}
