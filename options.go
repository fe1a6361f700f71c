package overlay

// LayoutConfig tunes the collision resolution of the layout engine.
type LayoutConfig struct {
	// MarkerSize is the glyph size used when Marker.Size is zero.
	MarkerSize Size

	// LabelPadding separates a label from its glyph or pin border.
	LabelPadding float64

	// MinGap is the minimum clearance between two placed boxes.
	MinGap float64

	// StackGap separates consecutive stack levels.
	StackGap float64

	// MaxStackDepth is the number of alternate positions tried above the
	// default one before a marker is hidden. Zero disables stacking.
	MaxStackDepth int

	// ColumnWidth is the width in pixels of a screen column. Markers whose
	// anchors share a column compete by priority before time. Values below
	// one pixel are treated as one pixel.
	ColumnWidth float64
}

// Config is the construction-time configuration of a Controller.
type Config struct {
	Layout LayoutConfig
	Style  Style

	// MaxRegions caps the number of region spans drawn per frame, in
	// registration order. Zero means no limit.
	MaxRegions int
}

// DefaultLayoutConfig returns the default layout tuning.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		MarkerSize:    Size{W: 16, H: 16},
		LabelPadding:  4,
		MinGap:        2,
		StackGap:      2,
		MaxStackDepth: 3,
		ColumnWidth:   16,
	}
}

// DefaultConfig returns the default controller configuration.
func DefaultConfig() Config {
	return Config{
		Layout: DefaultLayoutConfig(),
		Style:  DefaultStyle(),
	}
}

// Option configures a Controller during creation.
//
// Example:
//
//	c := overlay.New(
//	    overlay.WithSink(sink),
//	    overlay.WithSeries(candles),
//	)
type Option func(*controllerOptions)

type controllerOptions struct {
	config   Config
	sink     Sink
	geometry GeometryFunc
	series   SeriesBounds
	measurer LabelMeasurer
	observer Observer
}

func defaultOptions() controllerOptions {
	return controllerOptions{
		config:   DefaultConfig(),
		geometry: NewLinearGeometry,
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(o *controllerOptions) {
		o.config = cfg
	}
}

// WithLayout replaces the layout tuning only.
func WithLayout(l LayoutConfig) Option {
	return func(o *controllerOptions) {
		o.config.Layout = l
	}
}

// WithStyle replaces the style only.
func WithStyle(s Style) Option {
	return func(o *controllerOptions) {
		o.config.Style = s
	}
}

// WithSink sets the render sink that Render draws into.
func WithSink(s Sink) Option {
	return func(o *controllerOptions) {
		o.sink = s
	}
}

// WithGeometry sets the transform factory. The default is NewLinearGeometry.
func WithGeometry(f GeometryFunc) Option {
	return func(o *controllerOptions) {
		if f != nil {
			o.geometry = f
		}
	}
}

// WithSeries bounds marker timestamps to the series' time range.
func WithSeries(s SeriesBounds) Option {
	return func(o *controllerOptions) {
		o.series = s
	}
}

// WithMeasurer sets the label measurer. Without one the controller uses
// DefaultMeasurer at Style.LabelSize.
func WithMeasurer(m LabelMeasurer) Option {
	return func(o *controllerOptions) {
		o.measurer = m
	}
}

// WithObserver receives statistics after every recomputation.
func WithObserver(obs Observer) Option {
	return func(o *controllerOptions) {
		o.observer = obs
	}
}
