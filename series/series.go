// Package series holds the candle (OHLC) data a chart overlays. It
// supplies the controller's series bounds, snaps markers to candle
// extremes and fits viewports to the visible candles.
package series

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/overlay"
	"go.uber.org/multierr"
)

var (
	// ErrEmpty is returned when an operation needs at least one candle.
	ErrEmpty = errors.New("series: no candles")

	// ErrOutOfOrder is returned by Append for a candle older than the last.
	ErrOutOfOrder = errors.New("series: candle out of order")

	// ErrInvalidCandle is returned for non-finite or inconsistent prices.
	ErrInvalidCandle = errors.New("series: invalid candle")
)

// Candle is one OHLC bar.
type Candle struct {
	Time                   float64
	Open, High, Low, Close float64
}

// Validate checks that the candle is finite and Low <= Open, Close <= High.
func (c Candle) Validate() error {
	for _, v := range []float64{c.Time, c.Open, c.High, c.Low, c.Close} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w at t=%g: non-finite value", ErrInvalidCandle, c.Time)
		}
	}
	if c.Low > c.High || c.Open < c.Low || c.Open > c.High || c.Close < c.Low || c.Close > c.High {
		return fmt.Errorf("%w at t=%g: low %g high %g open %g close %g",
			ErrInvalidCandle, c.Time, c.Low, c.High, c.Open, c.Close)
	}
	return nil
}

// Rising reports whether the candle closed above its open.
func (c Candle) Rising() bool { return c.Close > c.Open }

// Series is an append-only, time-ordered list of candles.
type Series struct {
	candles []Candle
}

var _ overlay.SeriesBounds = (*Series)(nil)

// New builds a Series from candles, which are sorted by time. Invalid
// candles are dropped and reported together; for duplicate times the
// last candle wins.
func New(candles []Candle) (*Series, error) {
	var errs error
	valid := make([]Candle, 0, len(candles))
	for _, c := range candles {
		if err := c.Validate(); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		valid = append(valid, c)
	}
	slices.SortStableFunc(valid, func(a, b Candle) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
	s := &Series{candles: valid[:0]}
	for _, c := range valid {
		if n := len(s.candles); n > 0 && s.candles[n-1].Time == c.Time {
			s.candles[n-1] = c
			continue
		}
		s.candles = append(s.candles, c)
	}
	return s, errs
}

// Append adds a candle at the end. A candle with the time of the last one
// replaces it, which is how a live bar is updated.
func (s *Series) Append(c Candle) error {
	if err := c.Validate(); err != nil {
		return err
	}
	n := len(s.candles)
	switch {
	case n == 0 || c.Time > s.candles[n-1].Time:
		s.candles = append(s.candles, c)
	case c.Time == s.candles[n-1].Time:
		s.candles[n-1] = c
	default:
		return fmt.Errorf("%w: t=%g before last t=%g", ErrOutOfOrder, c.Time, s.candles[n-1].Time)
	}
	return nil
}

// Len returns the number of candles.
func (s *Series) Len() int { return len(s.candles) }

// Candles returns a copy of the candles in time order.
func (s *Series) Candles() []Candle { return slices.Clone(s.candles) }

// TimeRange implements overlay.SeriesBounds.
func (s *Series) TimeRange() (overlay.Range, bool) {
	if len(s.candles) == 0 {
		return overlay.Range{}, false
	}
	return overlay.R(s.candles[0].Time, s.candles[len(s.candles)-1].Time), true
}

// At returns the candle at exactly t.
func (s *Series) At(t float64) (Candle, bool) {
	i, ok := slices.BinarySearchFunc(s.candles, t, func(c Candle, t float64) int {
		switch {
		case c.Time < t:
			return -1
		case c.Time > t:
			return 1
		}
		return 0
	})
	if !ok {
		return Candle{}, false
	}
	return s.candles[i], true
}

// Snap returns the anchor price for a marker at t: the candle low for
// markers placed below the price, the high for markers placed above.
func (s *Series) Snap(t float64, side overlay.Side) (float64, bool) {
	c, ok := s.At(t)
	if !ok {
		return 0, false
	}
	if side == overlay.PlaceAbove {
		return c.High, true
	}
	return c.Low, true
}

// Window returns the candles with from <= Time <= to.
func (s *Series) Window(from, to float64) []Candle {
	lo, _ := slices.BinarySearchFunc(s.candles, from, func(c Candle, t float64) int {
		if c.Time < t {
			return -1
		}
		return 1
	})
	hi := lo
	for hi < len(s.candles) && s.candles[hi].Time <= to {
		hi++
	}
	return s.candles[lo:hi:hi]
}

// Viewport fits a viewport to the candles in [from, to]: the price range
// spans their lows and highs, grown by pad (a fraction of the span) on
// each side.
func (s *Series) Viewport(from, to float64, px overlay.Size, pad float64) (overlay.Viewport, error) {
	price, ok := priceRange(s.Window(from, to), pad)
	if !ok {
		return overlay.Viewport{}, ErrEmpty
	}
	vp := overlay.Viewport{Time: overlay.R(from, to), Price: price, Pixels: px}
	return vp, vp.Validate()
}

// Fit is Viewport over the whole series, padded by half a candle on the
// time axis so the first and last bars are not cut.
func (s *Series) Fit(px overlay.Size, pad float64) (overlay.Viewport, error) {
	r, ok := s.TimeRange()
	if !ok {
		return overlay.Viewport{}, ErrEmpty
	}
	half := 0.5
	if n := len(s.candles); n > 1 {
		half = r.Span() / float64(n-1) / 2
	}
	price, _ := priceRange(s.candles, pad)
	vp := overlay.Viewport{
		Time:   overlay.R(r.Min-half, r.Max+half),
		Price:  price,
		Pixels: px,
	}
	return vp, vp.Validate()
}

// priceRange spans the lows and highs of candles, padded. A flat range is
// widened by 1% of the price (at least 1) so that it stays non-empty.
func priceRange(candles []Candle, pad float64) (overlay.Range, bool) {
	if len(candles) == 0 {
		return overlay.Range{}, false
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range candles {
		lo = math.Min(lo, c.Low)
		hi = math.Max(hi, c.High)
	}
	if span := hi - lo; span > 0 {
		return overlay.R(lo-span*pad, hi+span*pad), true
	}
	d := math.Max(math.Abs(hi)*0.01, 1) / 2
	return overlay.R(lo-d, hi+d), true
}
