package overlay

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/multierr"
)

// Controller owns the registered markers and trend regions, tracks the
// host's viewport and produces frames on demand.
//
// Triggers (registration, OnViewportChanged, OnDataChanged) only mark the
// current frame stale; the layout runs lazily on the next CurrentFrame,
// Render or HitTest. A burst of viewport updates during a pan gesture
// therefore costs one layout per drawn frame.
//
// Controller is NOT safe for concurrent use. All calls must come from the
// host's render thread, or be serialised externally.
type Controller struct {
	cfg      Config
	sink     Sink
	geometry GeometryFunc
	series   SeriesBounds
	measurer LabelMeasurer
	observer Observer

	markers   []Marker // registration order
	markerIdx map[string]int
	regions   []TrendRegion // registration order = draw order
	regionIdx map[string]int

	viewport Viewport
	hasView  bool
	geom     Geometry

	frame *Frame
	stale bool
	seq   uint64
}

// New creates a Controller. Without options it uses DefaultConfig, the
// linear geometry, no series bounds and no sink.
func New(opts ...Option) *Controller {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.measurer == nil {
		o.measurer = defaultMeasurerFor(o.config.Style.LabelSize)
	}
	return &Controller{
		cfg:       o.config,
		sink:      o.sink,
		geometry:  o.geometry,
		series:    o.series,
		measurer:  o.measurer,
		observer:  o.observer,
		markerIdx: make(map[string]int),
		regionIdx: make(map[string]int),
		stale:     true,
	}
}

func defaultMeasurerFor(size float64) LabelMeasurer {
	m, err := DefaultMeasurer(size)
	if err != nil {
		Logger().Warn("overlay: default font unavailable, using fixed metrics", "err", err)
		return FixedMeasurer{CharWidth: size * 0.6, LineHeight: size * 1.2}
	}
	return m
}

// Config returns the controller's configuration.
func (c *Controller) Config() Config { return c.cfg }

// SetSink replaces the render sink.
func (c *Controller) SetSink(s Sink) { c.sink = s }

// RegisterMarker adds m. It fails with ErrInvalidMarker when m does not
// validate against the series range, and with ErrDuplicateID when the id
// is taken. On failure the controller is unchanged.
func (c *Controller) RegisterMarker(m Marker) error {
	if err := c.addMarker(m); err != nil {
		c.rejected("marker", err)
		return err
	}
	c.invalidate()
	return nil
}

// RegisterMarkers adds every valid marker and reports all failures
// combined. Valid markers are kept even when others fail.
func (c *Controller) RegisterMarkers(ms ...Marker) error {
	var errs error
	added := false
	for _, m := range ms {
		if err := c.addMarker(m); err != nil {
			c.rejected("marker", err)
			errs = multierr.Append(errs, err)
			continue
		}
		added = true
	}
	if added {
		c.invalidate()
	}
	return errs
}

func (c *Controller) addMarker(m Marker) error {
	var (
		r  Range
		ok bool
	)
	if c.series != nil {
		r, ok = c.series.TimeRange()
	}
	if err := m.Validate(r, ok); err != nil {
		return err
	}
	if _, dup := c.markerIdx[m.ID]; dup {
		return &DuplicateError{Kind: "marker", ID: m.ID}
	}
	c.markerIdx[m.ID] = len(c.markers)
	c.markers = append(c.markers, m)
	return nil
}

// UnregisterMarker removes the marker with the given id. Removing an
// unknown id is a no-op and leaves the current frame untouched.
func (c *Controller) UnregisterMarker(id string) {
	i, ok := c.markerIdx[id]
	if !ok {
		return
	}
	c.markers = slices.Delete(c.markers, i, i+1)
	delete(c.markerIdx, id)
	for j := i; j < len(c.markers); j++ {
		c.markerIdx[c.markers[j].ID] = j
	}
	c.invalidate()
}

// RegisterRegion adds r. Errors follow RegisterMarker.
func (c *Controller) RegisterRegion(r TrendRegion) error {
	if err := c.addRegion(r); err != nil {
		c.rejected("region", err)
		return err
	}
	c.invalidate()
	return nil
}

// RegisterRegions adds every valid region and reports all failures combined.
func (c *Controller) RegisterRegions(rs ...TrendRegion) error {
	var errs error
	added := false
	for _, r := range rs {
		if err := c.addRegion(r); err != nil {
			c.rejected("region", err)
			errs = multierr.Append(errs, err)
			continue
		}
		added = true
	}
	if added {
		c.invalidate()
	}
	return errs
}

func (c *Controller) addRegion(r TrendRegion) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if _, dup := c.regionIdx[r.ID]; dup {
		return &DuplicateError{Kind: "region", ID: r.ID}
	}
	c.regionIdx[r.ID] = len(c.regions)
	c.regions = append(c.regions, r.clone())
	return nil
}

// UnregisterRegion removes the region with the given id. Removing an
// unknown id is a no-op.
func (c *Controller) UnregisterRegion(id string) {
	i, ok := c.regionIdx[id]
	if !ok {
		return
	}
	c.regions = slices.Delete(c.regions, i, i+1)
	delete(c.regionIdx, id)
	for j := i; j < len(c.regions); j++ {
		c.regionIdx[c.regions[j].ID] = j
	}
	c.invalidate()
}

// Clear removes all markers and regions.
func (c *Controller) Clear() {
	if len(c.markers) == 0 && len(c.regions) == 0 {
		return
	}
	c.markers, c.regions = nil, nil
	clear(c.markerIdx)
	clear(c.regionIdx)
	c.invalidate()
}

// Markers returns the registered markers in registration order.
func (c *Controller) Markers() []Marker { return slices.Clone(c.markers) }

// Marker returns the registered marker with the given id.
func (c *Controller) Marker(id string) (Marker, bool) {
	i, ok := c.markerIdx[id]
	if !ok {
		return Marker{}, false
	}
	return c.markers[i], true
}

// Regions returns the registered regions in registration order.
func (c *Controller) Regions() []TrendRegion {
	out := make([]TrendRegion, len(c.regions))
	for i, r := range c.regions {
		out[i] = r.clone()
	}
	return out
}

// OnViewportChanged records the host's new camera. An invalid viewport
// is rejected with ErrInvalidViewport and the previous one is kept.
func (c *Controller) OnViewportChanged(vp Viewport) error {
	if err := vp.Validate(); err != nil {
		return err
	}
	c.viewport, c.hasView = vp, true
	c.geom = c.geometry(vp)
	c.invalidate()
	return nil
}

// OnDataChanged tells the controller the host's series changed.
func (c *Controller) OnDataChanged() {
	c.invalidate()
}

// Viewport returns the last viewport supplied by the host.
func (c *Controller) Viewport() (Viewport, bool) { return c.viewport, c.hasView }

// Geometry returns the transform for the current viewport, or nil before
// the first viewport.
func (c *Controller) Geometry() Geometry { return c.geom }

// CurrentFrame returns the current frame, recomputing it first when a
// trigger has fired since the last computation. Before the first viewport
// the frame is empty.
func (c *Controller) CurrentFrame() *Frame {
	if c.stale || c.frame == nil {
		c.recompute()
	}
	return c.frame
}

func (c *Controller) recompute() {
	c.seq++
	c.stale = false
	if !c.hasView {
		Logger().Debug("overlay: no viewport, empty frame", "err", ErrStaleViewport, "seq", c.seq)
		c.frame = emptyFrame(c.seq)
		return
	}

	start := time.Now()
	placements := Layout(c.markers, c.geom, c.cfg.Layout, c.measurer)
	spans := RenderRegions(c.regions, c.geom, c.cfg.MaxRegions)
	c.frame = newFrame(c.seq, c.viewport, placements, spans)
	elapsed := time.Since(start)

	stats := c.frame.Stats()
	Logger().Debug("overlay: layout recomputed",
		"seq", c.seq,
		"visible", stats.Visible,
		"stacked", stats.Stacked,
		"hidden", stats.Hidden,
		"regions", stats.Regions,
		"elapsed", elapsed)
	if c.observer != nil {
		c.observer.ObserveLayout(stats, elapsed)
	}
}

// Commands returns the draw commands of the current frame without
// touching the sink.
func (c *Controller) Commands() []Command {
	return Compose(c.CurrentFrame(), c.markers, c.regions, c.cfg, c.measurer)
}

// Render recomputes the frame if stale and draws it into the sink.
func (c *Controller) Render() error {
	if c.sink == nil {
		return ErrNoSink
	}
	if err := c.sink.Draw(c.Commands()); err != nil {
		Logger().Warn("overlay: sink failed", "seq", c.seq, "err", err)
		return fmt.Errorf("overlay: render frame %d: %w", c.seq, err)
	}
	return nil
}

// HitTest returns the id of the placed marker under the pixel (x, y).
func (c *Controller) HitTest(x, y float64) (string, bool) {
	return c.CurrentFrame().HitTest(Pt(x, y))
}

// HitTestData is HitTest for a data-space position.
func (c *Controller) HitTestData(t, p float64) (string, bool) {
	if c.geom == nil {
		return "", false
	}
	return c.CurrentFrame().HitTest(c.geom.ToPixel(t, p))
}

func (c *Controller) invalidate() { c.stale = true }

func (c *Controller) rejected(kind string, err error) {
	if c.observer != nil {
		c.observer.ObserveRejected(kind, err)
	}
}
