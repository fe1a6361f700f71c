// Package feed decodes the JSON marker and trend-region feeds of the
// K-line signal service into overlay values.
//
// Trend regions:
//
//	{"items": [{"start": "2025-03-19", "end": "2025-03-24", "size": 3,
//	            "type": "rising", "updated_at": "2025-05-22T06:46:10Z"}]}
//
// A null end marks a trend that is still running. Markers:
//
//	{"items": [{"flag_at": "2025-03-20", "type": 1, "extra": "B",
//	            "updated_at": "2025-05-22T06:46:10Z"}]}
//
// with type 0 number, 1 buy, 2 sell, 3 up triangle and 4 down triangle.
// Dates are calendar days (yyyy-mm-dd) mapped to the chart's time axis by
// a TimeScale.
package feed

import (
	"time"

	"github.com/gogpu/overlay"
	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

// DateLayout is the layout of feed dates.
const DateLayout = "2006-01-02"

// ErrMalformed is wrapped by every error about the shape of a feed.
var ErrMalformed = errors.New("feed: malformed payload")

// TimeScale maps a calendar day to the chart's time axis.
type TimeScale func(day time.Time) float64

// UnixSeconds places days at their midnight UTC unix timestamp.
func UnixSeconds(day time.Time) float64 { return float64(day.Unix()) }

// DaysSince places days at their index counted from epoch, the layout of
// charts that use the candle index as x value.
func DaysSince(epoch time.Time) TimeScale {
	epoch = truncateDay(epoch)
	return func(day time.Time) float64 {
		return float64(truncateDay(day).Sub(epoch) / (24 * time.Hour))
	}
}

// Pricer supplies the anchor price of a marker at t. series.Series
// implements it by snapping to the candle low or high.
type Pricer interface {
	Snap(t float64, side overlay.Side) (float64, bool)
}

// Option configures decoding.
type Option func(*options)

type options struct {
	scale  TimeScale
	pricer Pricer
	prefix string
}

// WithTimeScale sets the time mapping. The default is UnixSeconds.
func WithTimeScale(s TimeScale) Option {
	return func(o *options) { o.scale = s }
}

// WithPricer anchors markers at a price. Without one, or when the pricer
// has no candle at the marker's time, markers that would sit above the
// price are pinned to the top band and the others to the bottom band.
func WithPricer(p Pricer) Option {
	return func(o *options) { o.pricer = p }
}

// WithIDPrefix prefixes generated ids, so that several feeds can share a
// controller.
func WithIDPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

func newOptions(opts []Option) options {
	o := options{scale: UnixSeconds}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func items(data []byte) ([]*fastjson.Value, error) {
	parser := fastjson.Parser{}
	val, err := parser.ParseBytes(data)
	if err != nil {
		return nil, errors.Wrap(err, "feed: failed to parse payload")
	}
	arr := val.Get("items")
	if arr == nil || arr.Type() != fastjson.TypeArray {
		return nil, errors.Wrap(ErrMalformed, "missing items array")
	}
	return arr.GetArray(), nil
}

func parseDay(val *fastjson.Value, key string) (time.Time, error) {
	s := val.GetStringBytes(key)
	if s == nil {
		return time.Time{}, errors.Wrapf(ErrMalformed, "%s is not a string", key)
	}
	day, err := time.Parse(DateLayout, string(s))
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrMalformed, "%s %q: %v", key, s, err)
	}
	return day, nil
}

func isNull(val *fastjson.Value, key string) bool {
	v := val.Get(key)
	return v == nil || v.Type() == fastjson.TypeNull ||
		(v.Type() == fastjson.TypeString && len(v.GetStringBytes()) == 0)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
