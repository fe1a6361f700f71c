package overlay

import "github.com/gogpu/gg"

// Palette colours shared by the default style.
var (
	ColorBlue   = gg.Hex("#4285F4")
	ColorRed    = gg.Hex("#EA4335")
	ColorYellow = gg.Hex("#FBBC04")
	ColorGreen  = gg.Hex("#34A853")
	ColorUp     = gg.Hex("#00AA00")
	ColorDown   = gg.Hex("#FF4444")
	ColorPurple = gg.Hex("#9C27B0")
	ColorGrey   = gg.Hex("#666666")

	TrendRisingColor  = gg.Hex("#4CAF50")
	TrendFallingColor = gg.Hex("#F44336")
	TrendNeutralColor = gg.Hex("#2196F3")
)

// Style is the visual configuration handed to the composer. It is plain
// data supplied by the host; nothing in the engine mutates it.
type Style struct {
	KindColors  map[MarkerKind]gg.RGBA
	TrendColors map[TrendKind]gg.RGBA

	LabelColor gg.RGBA
	LabelSize  float64 // points

	ConnectorColor gg.RGBA // zero alpha uses the marker colour
	ConnectorWidth float64
	ConnectorDash  []float64

	RegionTopAlpha    float64
	RegionBottomAlpha float64
}

// DefaultStyle returns the stock colours of the K-line marker library.
func DefaultStyle() Style {
	return Style{
		KindColors: map[MarkerKind]gg.RGBA{
			KindNone:       ColorBlue,
			KindBuy:        ColorGreen,
			KindSell:       ColorRed,
			KindStopLoss:   ColorRed,
			KindTakeProfit: ColorGreen,
			KindEvent:      ColorPurple,
			KindSurge:      ColorUp,
			KindPlunge:     ColorDown,
			KindWarning:    ColorYellow,
			KindInfo:       ColorBlue,
			KindNumber:     ColorBlue,
			KindCustom:     ColorBlue,
		},
		TrendColors: map[TrendKind]gg.RGBA{
			TrendNeutral: TrendNeutralColor,
			TrendRising:  TrendRisingColor,
			TrendFalling: TrendFallingColor,
		},
		LabelColor:        gg.White,
		LabelSize:         11,
		ConnectorWidth:    1.5,
		ConnectorDash:     []float64{4, 3},
		RegionTopAlpha:    0.30,
		RegionBottomAlpha: 0.10,
	}
}

// markerColor resolves the fill colour of m.
func (s Style) markerColor(m Marker) gg.RGBA {
	if m.Color.A > 0 {
		return m.Color
	}
	if c, ok := s.KindColors[m.Kind]; ok {
		return c
	}
	return ColorBlue
}

func (s Style) labelColor(m Marker) gg.RGBA {
	if m.TextColor.A > 0 {
		return m.TextColor
	}
	if m.Shape.Kind == ShapeText || !m.Shape.enclosesLabel() {
		// Text drawn on the chart background takes the marker colour.
		return s.markerColor(m)
	}
	if m.Kind == KindWarning {
		// Yellow background reads better with dark text.
		return gg.Black
	}
	return s.LabelColor
}

func (s Style) connectorColor(m Marker) gg.RGBA {
	if s.ConnectorColor.A > 0 {
		return s.ConnectorColor
	}
	return s.markerColor(m)
}

// regionColors returns the top and bottom colours of the region gradient.
func (s Style) regionColors(r TrendRegion) (top, bottom gg.RGBA) {
	base := r.Color
	if base.A == 0 {
		var ok bool
		if base, ok = s.TrendColors[r.Kind]; !ok {
			base = TrendNeutralColor
		}
	}
	top, bottom = base, base
	top.A = s.RegionTopAlpha
	bottom.A = s.RegionBottomAlpha
	return top, bottom
}
