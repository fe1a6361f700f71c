package feed

import (
	"fmt"

	"github.com/gogpu/overlay"
	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

// MarkerType is the numeric marker type of the feed.
type MarkerType int

const (
	TypeNumber MarkerType = iota
	TypeBuy
	TypeSell
	TypeUpTriangle
	TypeDownTriangle
)

// ParseMarkers decodes a marker feed. Items with an unknown type are
// skipped.
func ParseMarkers(data []byte, opts ...Option) ([]overlay.Marker, error) {
	o := newOptions(opts)
	vals, err := items(data)
	if err != nil {
		return nil, err
	}

	markers := make([]overlay.Marker, 0, len(vals))
	for i, val := range vals {
		m, ok, err := parseMarker(val, o, fmt.Sprintf("%sflag-%d", o.prefix, i))
		if err != nil {
			return nil, errors.Wrapf(err, "item %d", i)
		}
		if !ok {
			overlay.Logger().Debug("feed: skipping marker of unknown type", "item", i, "type", val.GetInt("type"))
			continue
		}
		markers = append(markers, m)
	}
	return markers, nil
}

func parseMarker(val *fastjson.Value, o options, id string) (overlay.Marker, bool, error) {
	day, err := parseDay(val, "flag_at")
	if err != nil {
		return overlay.Marker{}, false, err
	}
	tv := val.Get("type")
	if tv == nil || tv.Type() != fastjson.TypeNumber {
		return overlay.Marker{}, false, errors.Wrap(ErrMalformed, "type is not a number")
	}
	t := o.scale(day)
	extra := string(val.GetStringBytes("extra"))

	var m overlay.Marker
	switch MarkerType(tv.GetInt()) {
	case TypeNumber:
		m = overlay.NumberMarker(id, t, 0, extra)
	case TypeBuy:
		m = overlay.BuyMarker(id, t, 0, orDefault(extra, "B"))
	case TypeSell:
		m = overlay.SellMarker(id, t, 0, orDefault(extra, "S"))
	case TypeUpTriangle:
		m = overlay.SurgeMarker(id, t, 0)
		m.Label = extra
	case TypeDownTriangle:
		m = overlay.PlungeMarker(id, t, 0)
		m.Label = extra
	default:
		return overlay.Marker{}, false, nil
	}
	anchor(&m, o.pricer)
	return m, true, nil
}

// anchor prices m through p. Unpriced markers are pinned to the band on
// their side and turned to face into the chart.
func anchor(m *overlay.Marker, p Pricer) {
	if p != nil {
		if price, ok := p.Snap(m.Time, m.Side); ok {
			m.Price = price
			return
		}
	}
	if m.Side == overlay.PlaceAbove {
		m.Anchor, m.Side = overlay.AnchorTop, overlay.PlaceBelow
	} else {
		m.Anchor, m.Side = overlay.AnchorBottom, overlay.PlaceAbove
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
