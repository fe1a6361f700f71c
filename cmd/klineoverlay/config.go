package main

import (
	"strings"

	"github.com/gogpu/overlay"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings are the rendering knobs shared by every command. They come from
// flags, KLINEOVERLAY_* environment variables and the optional config file,
// in that order of precedence.
type Settings struct {
	Width, Height int
	Format        string
	Output        string
	Padding       float64
	Background    string
	Table         bool
	Metrics       bool

	Layout     overlay.LayoutConfig
	MaxRegions int
}

func setDefaults(v *viper.Viper) {
	l := overlay.DefaultLayoutConfig()
	v.SetDefault("width", 800)
	v.SetDefault("height", 600)
	v.SetDefault("format", "png")
	v.SetDefault("padding", 0.05)
	v.SetDefault("background", "#FFFFFF")
	v.SetDefault("layout.min-gap", l.MinGap)
	v.SetDefault("layout.stack-gap", l.StackGap)
	v.SetDefault("layout.max-stack-depth", l.MaxStackDepth)
	v.SetDefault("layout.column-width", l.ColumnWidth)
	v.SetDefault("layout.marker-size", l.MarkerSize.W)
	v.SetDefault("layout.label-padding", l.LabelPadding)
	v.SetDefault("max-regions", 0)
}

// initConfig wires environment variables and the config file into v and
// binds flags.
func initConfig(v *viper.Viper, flags *pflag.FlagSet) error {
	setDefaults(v)
	v.SetEnvPrefix("KLINEOVERLAY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return errors.Wrap(err, "bind flags")
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", file)
		}
	}
	return nil
}

// loadSettings reads Settings from v.
func loadSettings(v *viper.Viper) (Settings, error) {
	s := Settings{
		Width:      v.GetInt("width"),
		Height:     v.GetInt("height"),
		Format:     strings.ToLower(v.GetString("format")),
		Output:     v.GetString("output"),
		Padding:    v.GetFloat64("padding"),
		Background: v.GetString("background"),
		Table:      v.GetBool("table"),
		Metrics:    v.GetBool("metrics"),
		MaxRegions: v.GetInt("max-regions"),
	}
	size := v.GetFloat64("layout.marker-size")
	s.Layout = overlay.LayoutConfig{
		MarkerSize:    overlay.Size{W: size, H: size},
		LabelPadding:  v.GetFloat64("layout.label-padding"),
		MinGap:        v.GetFloat64("layout.min-gap"),
		StackGap:      v.GetFloat64("layout.stack-gap"),
		MaxStackDepth: v.GetInt("layout.max-stack-depth"),
		ColumnWidth:   v.GetFloat64("layout.column-width"),
	}

	switch {
	case s.Width <= 0 || s.Height <= 0:
		return s, errors.Errorf("invalid size %dx%d", s.Width, s.Height)
	case s.Format != "png" && s.Format != "svg":
		return s, errors.Errorf("unknown format %q, want png or svg", s.Format)
	case s.Padding < 0 || s.Padding >= 0.5:
		return s, errors.Errorf("padding %g out of [0, 0.5)", s.Padding)
	case s.Layout.MaxStackDepth < 0:
		return s, errors.Errorf("negative max stack depth %d", s.Layout.MaxStackDepth)
	}
	if s.Output == "" {
		s.Output = "overlay." + s.Format
	}
	return s, nil
}

// Config returns the controller configuration for s.
func (s Settings) Config() overlay.Config {
	cfg := overlay.DefaultConfig()
	cfg.Layout = s.Layout
	cfg.MaxRegions = s.MaxRegions
	return cfg
}
