package overlay

import (
	"math"

	"github.com/gogpu/gg"
)

// TrendKind is the direction of a trend region; it selects the default colour.
type TrendKind uint8

const (
	TrendNeutral TrendKind = iota
	TrendRising
	TrendFalling
)

var trendKindNames = [...]string{
	TrendNeutral: "neutral",
	TrendRising:  "rising",
	TrendFalling: "falling",
}

// String returns the lower-case name of the trend kind.
func (k TrendKind) String() string {
	if int(k) < len(trendKindNames) {
		return trendKindNames[k]
	}
	return "unknown"
}

// ParseTrendKind returns the trend kind with the given name. Unknown names
// map to TrendNeutral and false.
func ParseTrendKind(s string) (TrendKind, bool) {
	for i, name := range trendKindNames {
		if name == s {
			return TrendKind(i), true
		}
	}
	return TrendNeutral, false
}

// TrendRegion is a shaded time span, optionally limited to a price band.
type TrendRegion struct {
	ID    string
	Start float64
	End   float64 // +Inf for an open-ended trend

	// Optional price band. A nil bound extends to the visible price range.
	Top    *float64
	Bottom *float64

	Kind     TrendKind
	Color    gg.RGBA // zero alpha selects the style colour for Kind
	Strength int
}

// Bound returns a pointer to v, for TrendRegion.Top and Bottom.
func Bound(v float64) *float64 { return &v }

// Validate checks the region's bounds.
func (r TrendRegion) Validate() error {
	switch {
	case r.ID == "":
		return invalidRegion(r.ID, "empty id")
	case !finite(r.Start):
		return invalidRegion(r.ID, "start %g is not finite", r.Start)
	case math.IsNaN(r.End) || math.IsInf(r.End, -1):
		return invalidRegion(r.ID, "end %g is not valid", r.End)
	case r.Start >= r.End:
		return invalidRegion(r.ID, "start %g not before end %g", r.Start, r.End)
	case r.Top != nil && !finite(*r.Top):
		return invalidRegion(r.ID, "top %g is not finite", *r.Top)
	case r.Bottom != nil && !finite(*r.Bottom):
		return invalidRegion(r.ID, "bottom %g is not finite", *r.Bottom)
	case r.Top != nil && r.Bottom != nil && *r.Top <= *r.Bottom:
		return invalidRegion(r.ID, "top %g not above bottom %g", *r.Top, *r.Bottom)
	case r.Kind > TrendFalling:
		return invalidRegion(r.ID, "unknown trend kind %d", r.Kind)
	}
	return nil
}

// OpenEnded reports whether the region extends to the end of the series.
func (r TrendRegion) OpenEnded() bool { return math.IsInf(r.End, 1) }

// clone copies the region so callers cannot mutate the band through the
// pointers they passed in.
func (r TrendRegion) clone() TrendRegion {
	if r.Top != nil {
		r.Top = Bound(*r.Top)
	}
	if r.Bottom != nil {
		r.Bottom = Bound(*r.Bottom)
	}
	return r
}
