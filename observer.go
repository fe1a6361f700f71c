package overlay

import "time"

// Observer receives statistics from the controller. Implementations must
// be cheap: they run on the render thread.
type Observer interface {
	// ObserveLayout is called after every recomputation.
	ObserveLayout(stats FrameStats, elapsed time.Duration)

	// ObserveRejected is called when a registration is rejected.
	// kind is "marker" or "region".
	ObserveRejected(kind string, err error)
}

// SeriesBounds reports the time range of the host's data series. Markers
// outside it are rejected at registration. ok is false while the series
// is empty, in which case any finite timestamp is accepted.
type SeriesBounds interface {
	TimeRange() (r Range, ok bool)
}

// SeriesBoundsFunc adapts a function to SeriesBounds.
type SeriesBoundsFunc func() (Range, bool)

// TimeRange implements SeriesBounds.
func (f SeriesBoundsFunc) TimeRange() (Range, bool) { return f() }
