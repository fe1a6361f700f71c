// Package promobserver exports overlay layout statistics as Prometheus
// metrics.
//
//	obs, err := promobserver.New(prometheus.DefaultRegisterer)
//	c := overlay.New(overlay.WithObserver(obs))
package promobserver

import (
	"errors"
	"time"

	"github.com/gogpu/overlay"
	"github.com/prometheus/client_golang/prometheus"
)

// Observer implements overlay.Observer with Prometheus collectors.
type Observer struct {
	layouts  prometheus.Counter
	duration prometheus.Histogram
	markers  *prometheus.GaugeVec
	regions  prometheus.Gauge
	rejected *prometheus.CounterVec
}

var _ overlay.Observer = (*Observer)(nil)

// Option configures the collectors.
type Option func(*options)

type options struct {
	namespace   string
	constLabels prometheus.Labels
	buckets     []float64
}

// WithNamespace prefixes every metric name. The default is "overlay".
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// WithConstLabels attaches labels to every metric, e.g. the chart id.
func WithConstLabels(l prometheus.Labels) Option {
	return func(o *options) { o.constLabels = l }
}

// WithBuckets overrides the layout duration buckets, in seconds.
func WithBuckets(b []float64) Option {
	return func(o *options) { o.buckets = b }
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer, opts ...Option) (*Observer, error) {
	o := options{
		namespace: "overlay",
		buckets:   prometheus.ExponentialBuckets(50e-6, 2, 12), // 50µs to ~100ms
	}
	for _, opt := range opts {
		opt(&o)
	}

	obs := &Observer{
		layouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "layouts_total",
			Help:        "Number of layout recomputations",
			ConstLabels: o.constLabels,
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   o.namespace,
			Name:        "layout_duration_seconds",
			Help:        "Time spent laying out markers and clipping regions",
			ConstLabels: o.constLabels,
			Buckets:     o.buckets,
		}),
		markers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   o.namespace,
			Name:        "markers",
			Help:        "Visible markers in the current frame by outcome",
			ConstLabels: o.constLabels,
		}, []string{"state"}),
		regions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   o.namespace,
			Name:        "regions",
			Help:        "Region spans drawn in the current frame",
			ConstLabels: o.constLabels,
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "rejected_total",
			Help:        "Rejected registrations by kind and reason",
			ConstLabels: o.constLabels,
		}, []string{"kind", "reason"}),
	}

	for _, c := range []prometheus.Collector{obs.layouts, obs.duration, obs.markers, obs.regions, obs.rejected} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return obs, nil
}

// ObserveLayout implements overlay.Observer.
func (o *Observer) ObserveLayout(s overlay.FrameStats, elapsed time.Duration) {
	o.layouts.Inc()
	o.duration.Observe(elapsed.Seconds())
	o.markers.WithLabelValues("placed").Set(float64(s.Placed))
	o.markers.WithLabelValues("stacked").Set(float64(s.Stacked))
	o.markers.WithLabelValues("hidden").Set(float64(s.Hidden))
	o.regions.Set(float64(s.Regions))
}

// ObserveRejected implements overlay.Observer.
func (o *Observer) ObserveRejected(kind string, err error) {
	o.rejected.WithLabelValues(kind, reason(err)).Inc()
}

func reason(err error) string {
	switch {
	case errors.Is(err, overlay.ErrDuplicateID):
		return "duplicate"
	case errors.Is(err, overlay.ErrInvalidMarker):
		return "invalid"
	default:
		return "other"
	}
}
