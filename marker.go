package overlay

import (
	"math"

	"github.com/gogpu/gg"
)

// MarkerKind is the business meaning of a marker. It only selects the
// default colour; layout never looks at it.
type MarkerKind uint8

const (
	KindNone MarkerKind = iota
	KindBuy
	KindSell
	KindStopLoss
	KindTakeProfit
	KindEvent
	KindSurge
	KindPlunge
	KindWarning
	KindInfo
	KindNumber
	KindCustom
)

var markerKindNames = [...]string{
	KindNone:       "none",
	KindBuy:        "buy",
	KindSell:       "sell",
	KindStopLoss:   "stop_loss",
	KindTakeProfit: "take_profit",
	KindEvent:      "event",
	KindSurge:      "surge",
	KindPlunge:     "plunge",
	KindWarning:    "warning",
	KindInfo:       "info",
	KindNumber:     "number",
	KindCustom:     "custom",
}

// String returns the lower-case name of the kind.
func (k MarkerKind) String() string {
	if int(k) < len(markerKindNames) {
		return markerKindNames[k]
	}
	return "unknown"
}

// ParseMarkerKind returns the kind with the given name.
func ParseMarkerKind(s string) (MarkerKind, bool) {
	for i, name := range markerKindNames {
		if name == s {
			return MarkerKind(i), true
		}
	}
	return KindNone, false
}

// ShapeKind enumerates the marker glyphs a sink knows how to draw.
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeSquare
	ShapeLabeledPin // rounded box enclosing the label
	ShapeTriangleUp
	ShapeTriangleDown
	ShapeDiamond
	ShapeStar
	ShapeDot
	ShapeCross
	ShapeArrowUp
	ShapeArrowDown
	ShapeText   // label only, no glyph
	ShapeCustom // host-provided icon, named by Shape.Custom
	shapeCount
)

var shapeKindNames = [...]string{
	ShapeCircle:       "circle",
	ShapeSquare:       "square",
	ShapeLabeledPin:   "labeled_pin",
	ShapeTriangleUp:   "triangle_up",
	ShapeTriangleDown: "triangle_down",
	ShapeDiamond:      "diamond",
	ShapeStar:         "star",
	ShapeDot:          "dot",
	ShapeCross:        "cross",
	ShapeArrowUp:      "arrow_up",
	ShapeArrowDown:    "arrow_down",
	ShapeText:         "text",
	ShapeCustom:       "custom",
}

// String returns the lower-case name of the shape kind.
func (k ShapeKind) String() string {
	if k < shapeCount {
		return shapeKindNames[k]
	}
	return "unknown"
}

// ParseShapeKind returns the shape kind with the given name.
func ParseShapeKind(s string) (ShapeKind, bool) {
	for i, name := range shapeKindNames {
		if name == s {
			return ShapeKind(i), true
		}
	}
	return ShapeCircle, false
}

// Shape is a closed variant: one of the built-in glyphs, or a custom icon
// identified by name. The layout engine only uses its extent.
type Shape struct {
	Kind   ShapeKind
	Custom string // icon name, only for ShapeCustom
}

// CustomShape returns a Shape referring to a host-provided icon.
func CustomShape(name string) Shape {
	return Shape{Kind: ShapeCustom, Custom: name}
}

// String returns the shape name, "custom(name)" for custom icons.
func (s Shape) String() string {
	if s.Kind == ShapeCustom {
		return "custom(" + s.Custom + ")"
	}
	return s.Kind.String()
}

// enclosesLabel reports whether the label is drawn inside the glyph.
func (s Shape) enclosesLabel() bool {
	return s.Kind == ShapeLabeledPin || s.Kind == ShapeText
}

// Anchor selects how a marker's vertical anchor is derived.
type Anchor uint8

const (
	AnchorPrice  Anchor = iota // anchor at Marker.Price
	AnchorTop                  // pin to the top band, price ignored
	AnchorBottom               // pin to the bottom band, price ignored
)

// Side is the side of the anchor the marker box sits on by default.
type Side uint8

const (
	PlaceBelow Side = iota // anchor is the box's top-centre
	PlaceAbove             // anchor is the box's bottom-centre
)

// LineLength is the connector length between anchor and box.
type LineLength uint8

const (
	LineNone LineLength = iota
	LineShort
	LineMedium
	LineLong
	LineExtraLong
)

var lineLengthPixels = [...]float64{
	LineNone:      0,
	LineShort:     8,
	LineMedium:    20,
	LineLong:      35,
	LineExtraLong: 55,
}

// Pixels returns the connector length in pixels.
func (l LineLength) Pixels() float64 {
	if int(l) < len(lineLengthPixels) {
		return lineLengthPixels[l]
	}
	return lineLengthPixels[LineMedium]
}

// Marker is a single annotated point on the chart.
type Marker struct {
	ID        string
	Time      float64
	Price     float64
	Anchor    Anchor
	Priority  int // higher wins collisions
	Kind      MarkerKind
	Shape     Shape
	Size      Size // zero uses LayoutConfig.MarkerSize
	Label     string
	Side      Side
	Lead      LineLength
	Color     gg.RGBA // zero alpha selects the palette colour for Kind
	TextColor gg.RGBA // zero alpha selects Style.LabelColor
}

// Validate checks the marker against the series time range. When hasRange
// is false any finite timestamp is accepted.
func (m Marker) Validate(series Range, hasRange bool) error {
	switch {
	case m.ID == "":
		return invalidMarker(m.ID, "empty id")
	case !finite(m.Time):
		return invalidMarker(m.ID, "timestamp %g is not finite", m.Time)
	case hasRange && !series.Contains(m.Time):
		return invalidMarker(m.ID, "timestamp %g outside series range [%g, %g]", m.Time, series.Min, series.Max)
	case m.Anchor == AnchorPrice && !finite(m.Price):
		return invalidMarker(m.ID, "price %g is not finite", m.Price)
	case m.Anchor > AnchorBottom:
		return invalidMarker(m.ID, "unknown anchor %d", m.Anchor)
	case m.Side > PlaceAbove:
		return invalidMarker(m.ID, "unknown side %d", m.Side)
	case m.Shape.Kind >= shapeCount:
		return invalidMarker(m.ID, "unknown shape %d", m.Shape.Kind)
	case m.Shape.Kind == ShapeCustom && m.Shape.Custom == "":
		return invalidMarker(m.ID, "custom shape without icon name")
	case m.Size.W < 0 || m.Size.H < 0 || math.IsNaN(m.Size.W) || math.IsNaN(m.Size.H):
		return invalidMarker(m.ID, "negative size %gx%g", m.Size.W, m.Size.H)
	case m.Shape.Kind == ShapeText && m.Label == "":
		return invalidMarker(m.ID, "text marker without label")
	}
	return nil
}
