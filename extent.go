package overlay

import (
	"math"
	"sync"
	"unicode/utf8"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// LabelMeasurer reports the pixel extent of a marker label.
type LabelMeasurer interface {
	Measure(label string) Size
}

// FaceMeasurer measures labels with a gg text face.
type FaceMeasurer struct {
	face text.Face
}

// NewFaceMeasurer returns a measurer backed by face.
func NewFaceMeasurer(face text.Face) *FaceMeasurer {
	return &FaceMeasurer{face: face}
}

// Face returns the underlying face.
func (m *FaceMeasurer) Face() text.Face { return m.face }

// Measure returns the advance width and line height of label.
func (m *FaceMeasurer) Measure(label string) Size {
	w, h := text.Measure(label, m.face)
	return Size{W: math.Ceil(w), H: math.Ceil(h)}
}

var (
	goRegularOnce sync.Once
	goRegular     *text.FontSource
	goRegularErr  error
)

// GoRegular returns the shared Go Regular font source used for labels
// when the host supplies no face of its own.
func GoRegular() (*text.FontSource, error) {
	goRegularOnce.Do(func() {
		goRegular, goRegularErr = text.NewFontSource(goregular.TTF)
	})
	return goRegular, goRegularErr
}

// DefaultMeasurer returns a FaceMeasurer using Go Regular at size points.
func DefaultMeasurer(size float64) (*FaceMeasurer, error) {
	src, err := GoRegular()
	if err != nil {
		return nil, err
	}
	return NewFaceMeasurer(src.Face(size)), nil
}

// FixedMeasurer measures labels as a monospace grid. It is deterministic
// across platforms, which makes it the measurer of choice in tests.
type FixedMeasurer struct {
	CharWidth  float64
	LineHeight float64
}

// Measure returns rune count times CharWidth by LineHeight.
func (m FixedMeasurer) Measure(label string) Size {
	if label == "" {
		return Size{}
	}
	return Size{W: float64(utf8.RuneCountInString(label)) * m.CharWidth, H: m.LineHeight}
}

// markerExtent is the box size of m at default placement.
func markerExtent(m Marker, cfg LayoutConfig, meas LabelMeasurer) Size {
	s := m.Size
	if s.IsZero() {
		s = cfg.MarkerSize
	}
	if m.Label == "" || meas == nil {
		return s
	}
	ls := meas.Measure(m.Label)
	pad := cfg.LabelPadding
	switch {
	case m.Shape.Kind == ShapeText:
		return Size{W: ls.W + 2*pad, H: ls.H + 2*pad}
	case m.Shape.enclosesLabel():
		return Size{W: math.Max(s.W, ls.W+2*pad), H: math.Max(s.H, ls.H+2*pad)}
	default:
		// Glyph on top, label underneath.
		return Size{W: math.Max(s.W, ls.W), H: s.H + pad + ls.H}
	}
}
