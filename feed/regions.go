package feed

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/overlay"
	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

// ParseTrendRegions decodes a trend-region feed. End dates are inclusive:
// a region ending on day d covers d entirely. A null or empty end gives
// an open-ended region. An unknown type is logged and read as neutral.
func ParseTrendRegions(data []byte, opts ...Option) ([]overlay.TrendRegion, error) {
	o := newOptions(opts)
	vals, err := items(data)
	if err != nil {
		return nil, err
	}

	regions := make([]overlay.TrendRegion, 0, len(vals))
	for i, val := range vals {
		r, err := parseRegion(val, o)
		if err != nil {
			return nil, errors.Wrapf(err, "item %d", i)
		}
		r.ID = fmt.Sprintf("%strend-%d", o.prefix, i)
		regions = append(regions, r)
	}
	return regions, nil
}

func parseRegion(val *fastjson.Value, o options) (overlay.TrendRegion, error) {
	start, err := parseDay(val, "start")
	if err != nil {
		return overlay.TrendRegion{}, err
	}
	r := overlay.TrendRegion{
		Start:    o.scale(start),
		End:      math.Inf(1),
		Strength: val.GetInt("size"),
	}
	if !isNull(val, "end") {
		end, err := parseDay(val, "end")
		if err != nil {
			return overlay.TrendRegion{}, err
		}
		r.End = o.scale(end.AddDate(0, 0, 1))
	}
	if !isNull(val, "type") {
		name := strings.ToLower(string(val.GetStringBytes("type")))
		kind, ok := overlay.ParseTrendKind(name)
		if !ok && name != "" {
			overlay.Logger().Warn("feed: unknown trend type, using neutral", "type", name)
		}
		r.Kind = kind
	}
	return r, nil
}
