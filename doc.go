// Package overlay computes and draws annotations on top of a candlestick
// (K-line) chart: point markers such as trade signals, and shaded trend
// regions.
//
// # Overview
//
// The host chart owns candles, axes, gestures and the data-to-pixel
// transform. overlay consumes that transform through the [Geometry]
// interface, lays markers out so that no two overlap, clips trend regions
// to the visible window and issues immediate-mode draw commands to a
// [Sink].
//
// # Quick Start
//
//	sink, err := ggsink.New(dc)
//	...
//	c := overlay.New(overlay.WithSink(sink))
//
//	_ = c.RegisterMarker(overlay.BuyMarker("b1", 150, 15, "B"))
//	_ = c.RegisterRegion(overlay.TrendRegion{ID: "up", Start: 120, End: 180, Kind: overlay.TrendRising})
//
//	// On every camera change:
//	_ = c.OnViewportChanged(overlay.Viewport{
//	    Time:   overlay.R(100, 200),
//	    Price:  overlay.R(10, 20),
//	    Pixels: overlay.Size{W: 800, H: 600},
//	})
//
//	// Once per host frame:
//	_ = c.Render()
//
//	// On tap:
//	if id, ok := c.HitTest(x, y); ok { ... }
//
// # Layout
//
// [Layout] is a pure function from (markers, geometry, config) to
// placements. Markers are ordered by screen column, then priority
// (descending), time and id. Each marker takes its default box if free,
// otherwise the first free stack level above it, otherwise it is hidden.
// Hidden markers stay in the [Frame] with Hidden set.
//
// # Frames
//
// A [Frame] is immutable and replaced wholesale on recomputation. The
// controller recomputes lazily: triggers mark the frame stale and the next
// CurrentFrame, Render or HitTest pays for the layout once.
//
// # Coordinate System
//
//   - Origin (0,0) at the top-left of the drawing surface
//   - X increases right (later time)
//   - Y increases down (lower price)
//
// # Concurrency
//
// The engine is single-threaded and synchronous. A [Controller] must only
// be used from one goroutine at a time.
package overlay
