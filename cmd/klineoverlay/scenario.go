package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/overlay"
	"github.com/gogpu/overlay/feed"
	"github.com/gogpu/overlay/series"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Scenario is a chart to annotate: the candles plus the markers and trend
// regions drawn over them.
//
//	title: BTC daily
//	epoch: 2025-03-01
//	candles:
//	  - {t: 0, o: 10, h: 12, l: 9, c: 11}
//	markers:
//	  - {id: b1, t: 0, kind: buy, label: B}
//	regions:
//	  - {id: up, start: 0, end: 5, kind: rising}
//	feeds:
//	  markers: flags.json
type Scenario struct {
	Title   string       `yaml:"title"`
	Epoch   string       `yaml:"epoch"`
	Candles []CandleSpec `yaml:"candles"`
	View    *ViewSpec    `yaml:"viewport"`
	Markers []MarkerSpec `yaml:"markers"`
	Regions []RegionSpec `yaml:"regions"`
	Feeds   FeedSpec     `yaml:"feeds"`

	dir string
}

// CandleSpec is one OHLC bar.
type CandleSpec struct {
	T float64 `yaml:"t"`
	O float64 `yaml:"o"`
	H float64 `yaml:"h"`
	L float64 `yaml:"l"`
	C float64 `yaml:"c"`
}

// ViewSpec selects the visible time window. Without a price band the
// window is fitted to its candles.
type ViewSpec struct {
	From     float64  `yaml:"from"`
	To       float64  `yaml:"to"`
	PriceMin *float64 `yaml:"price_min"`
	PriceMax *float64 `yaml:"price_max"`
}

// MarkerSpec describes a marker. Kind selects a preset; the other fields
// override it. A marker without price is snapped to its candle.
type MarkerSpec struct {
	ID       string   `yaml:"id"`
	T        float64  `yaml:"t"`
	Price    *float64 `yaml:"price"`
	Kind     string   `yaml:"kind"`
	Shape    string   `yaml:"shape"`
	Icon     string   `yaml:"icon"`
	Side     string   `yaml:"side"`
	Anchor   string   `yaml:"anchor"`
	Lead     string   `yaml:"lead"`
	Priority int      `yaml:"priority"`
	Label    string   `yaml:"label"`
	Color    string   `yaml:"color"`
}

// RegionSpec describes a trend region. A missing end leaves it open.
type RegionSpec struct {
	ID       string   `yaml:"id"`
	Start    float64  `yaml:"start"`
	End      *float64 `yaml:"end"`
	Top      *float64 `yaml:"top"`
	Bottom   *float64 `yaml:"bottom"`
	Kind     string   `yaml:"kind"`
	Color    string   `yaml:"color"`
	Strength int      `yaml:"strength"`
}

// FeedSpec names JSON feed files, relative to the scenario file.
type FeedSpec struct {
	Markers string `yaml:"markers"`
	Regions string `yaml:"regions"`
}

var (
	sideNames = map[string]overlay.Side{
		"below": overlay.PlaceBelow,
		"above": overlay.PlaceAbove,
	}
	anchorNames = map[string]overlay.Anchor{
		"price":  overlay.AnchorPrice,
		"top":    overlay.AnchorTop,
		"bottom": overlay.AnchorBottom,
	}
	leadNames = map[string]overlay.LineLength{
		"none":       overlay.LineNone,
		"short":      overlay.LineShort,
		"medium":     overlay.LineMedium,
		"long":       overlay.LineLong,
		"extra_long": overlay.LineExtraLong,
	}
)

// LoadScenario reads a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scenario")
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scenario %s", path)
	}
	sc.dir = filepath.Dir(path)
	return sc, nil
}

// ParseScenario decodes a YAML scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.Wrap(err, "decode yaml")
	}
	if len(sc.Candles) == 0 {
		return nil, series.ErrEmpty
	}
	return &sc, nil
}

// Series builds the candle series. Invalid candles are logged and dropped.
func (sc *Scenario) Series() (*series.Series, error) {
	candles := make([]series.Candle, len(sc.Candles))
	for i, c := range sc.Candles {
		candles[i] = series.Candle{Time: c.T, Open: c.O, High: c.H, Low: c.L, Close: c.C}
	}
	s, err := series.New(candles)
	if err != nil {
		log.WithError(err).Warn("dropped invalid candles")
	}
	if s.Len() == 0 {
		return nil, series.ErrEmpty
	}
	return s, nil
}

// Viewport returns the configured viewport, or the whole series fitted
// to the surface.
func (sc *Scenario) Viewport(s *series.Series, px overlay.Size, pad float64) (overlay.Viewport, error) {
	v := sc.View
	if v == nil {
		return s.Fit(px, pad)
	}
	if v.PriceMin == nil || v.PriceMax == nil {
		return s.Viewport(v.From, v.To, px, pad)
	}
	vp := overlay.Viewport{
		Time:   overlay.R(v.From, v.To),
		Price:  overlay.R(*v.PriceMin, *v.PriceMax),
		Pixels: px,
	}
	return vp, vp.Validate()
}

// timeScale maps feed dates onto the candle time axis: days since the
// epoch when one is set, unix seconds otherwise.
func (sc *Scenario) timeScale() (feed.TimeScale, error) {
	if sc.Epoch == "" {
		return feed.UnixSeconds, nil
	}
	epoch, err := time.Parse(feed.DateLayout, sc.Epoch)
	if err != nil {
		return nil, errors.Wrap(err, "epoch")
	}
	return feed.DaysSince(epoch), nil
}

// BuildMarkers converts the inline markers and the marker feed.
func (sc *Scenario) BuildMarkers(s *series.Series) ([]overlay.Marker, error) {
	out := make([]overlay.Marker, 0, len(sc.Markers))
	for i, spec := range sc.Markers {
		m, err := spec.build(s)
		if err != nil {
			return nil, errors.Wrapf(err, "marker %d (%s)", i, spec.ID)
		}
		out = append(out, m)
	}
	if sc.Feeds.Markers == "" {
		return out, nil
	}
	data, scale, err := sc.readFeed(sc.Feeds.Markers)
	if err != nil {
		return nil, err
	}
	fed, err := feed.ParseMarkers(data, feed.WithTimeScale(scale), feed.WithPricer(s), feed.WithIDPrefix("feed-"))
	if err != nil {
		return nil, errors.Wrapf(err, "marker feed %s", sc.Feeds.Markers)
	}
	log.Debugf("loaded %d markers from %s", len(fed), sc.Feeds.Markers)
	return append(out, fed...), nil
}

// BuildRegions converts the inline regions and the region feed.
func (sc *Scenario) BuildRegions() ([]overlay.TrendRegion, error) {
	out := make([]overlay.TrendRegion, 0, len(sc.Regions))
	for i, spec := range sc.Regions {
		r, err := spec.build()
		if err != nil {
			return nil, errors.Wrapf(err, "region %d (%s)", i, spec.ID)
		}
		out = append(out, r)
	}
	if sc.Feeds.Regions == "" {
		return out, nil
	}
	data, scale, err := sc.readFeed(sc.Feeds.Regions)
	if err != nil {
		return nil, err
	}
	fed, err := feed.ParseTrendRegions(data, feed.WithTimeScale(scale), feed.WithIDPrefix("feed-"))
	if err != nil {
		return nil, errors.Wrapf(err, "region feed %s", sc.Feeds.Regions)
	}
	log.Debugf("loaded %d regions from %s", len(fed), sc.Feeds.Regions)
	return append(out, fed...), nil
}

func (sc *Scenario) readFeed(name string) ([]byte, feed.TimeScale, error) {
	scale, err := sc.timeScale()
	if err != nil {
		return nil, nil, err
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(sc.dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "read feed")
	}
	return data, scale, nil
}

func (spec MarkerSpec) build(s *series.Series) (overlay.Marker, error) {
	kind := overlay.KindNone
	if spec.Kind != "" {
		k, ok := overlay.ParseMarkerKind(strings.ToLower(spec.Kind))
		if !ok {
			return overlay.Marker{}, fmt.Errorf("unknown kind %q", spec.Kind)
		}
		kind = k
	}
	m := preset(kind, spec)

	if spec.Shape != "" {
		shape, ok := overlay.ParseShapeKind(strings.ToLower(spec.Shape))
		if !ok {
			return overlay.Marker{}, fmt.Errorf("unknown shape %q", spec.Shape)
		}
		m.Shape = overlay.Shape{Kind: shape}
	}
	if spec.Icon != "" {
		m.Shape = overlay.CustomShape(spec.Icon)
	}
	if err := lookup(sideNames, spec.Side, "side", &m.Side); err != nil {
		return overlay.Marker{}, err
	}
	if err := lookup(anchorNames, spec.Anchor, "anchor", &m.Anchor); err != nil {
		return overlay.Marker{}, err
	}
	if err := lookup(leadNames, spec.Lead, "lead", &m.Lead); err != nil {
		return overlay.Marker{}, err
	}
	if spec.Label != "" {
		m.Label = spec.Label
	}
	if spec.Color != "" {
		m.Color = gg.Hex(spec.Color)
	}
	m.Priority = spec.Priority

	if m.Anchor != overlay.AnchorPrice {
		return m, nil
	}
	if spec.Price != nil {
		m.Price = *spec.Price
		return m, nil
	}
	price, ok := s.Snap(m.Time, m.Side)
	if !ok {
		return overlay.Marker{}, fmt.Errorf("no price and no candle at t=%g", m.Time)
	}
	m.Price = price
	return m, nil
}

// preset returns the stock marker for kind.
func preset(kind overlay.MarkerKind, spec MarkerSpec) overlay.Marker {
	switch kind {
	case overlay.KindBuy:
		return overlay.BuyMarker(spec.ID, spec.T, 0, "B")
	case overlay.KindSell:
		return overlay.SellMarker(spec.ID, spec.T, 0, "S")
	case overlay.KindSurge:
		return overlay.SurgeMarker(spec.ID, spec.T, 0)
	case overlay.KindPlunge:
		return overlay.PlungeMarker(spec.ID, spec.T, 0)
	case overlay.KindEvent:
		return overlay.EventMarker(spec.ID, spec.T, "")
	case overlay.KindNumber:
		return overlay.NumberMarker(spec.ID, spec.T, 0, "")
	case overlay.KindInfo:
		return overlay.TextMarker(spec.ID, spec.T, 0, spec.Label, overlay.LineMedium)
	}
	return overlay.Marker{
		ID:    spec.ID,
		Time:  spec.T,
		Kind:  kind,
		Shape: overlay.Shape{Kind: overlay.ShapeCircle},
		Lead:  overlay.LineShort,
	}
}

func lookup[T any](names map[string]T, s, what string, dst *T) error {
	if s == "" {
		return nil
	}
	v, ok := names[strings.ToLower(s)]
	if !ok {
		return fmt.Errorf("unknown %s %q", what, s)
	}
	*dst = v
	return nil
}

func (spec RegionSpec) build() (overlay.TrendRegion, error) {
	r := overlay.TrendRegion{
		ID:       spec.ID,
		Start:    spec.Start,
		End:      math.Inf(1),
		Top:      spec.Top,
		Bottom:   spec.Bottom,
		Strength: spec.Strength,
	}
	if spec.End != nil {
		r.End = *spec.End
	}
	if spec.Kind != "" {
		k, ok := overlay.ParseTrendKind(strings.ToLower(spec.Kind))
		if !ok {
			return overlay.TrendRegion{}, fmt.Errorf("unknown trend kind %q", spec.Kind)
		}
		r.Kind = k
	}
	if spec.Color != "" {
		r.Color = gg.Hex(spec.Color)
	}
	return r, nil
}
