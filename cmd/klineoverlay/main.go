// Command klineoverlay draws markers and trend regions over a candlestick
// chart described by a YAML scenario.
//
//	klineoverlay render scenario.yaml --format svg --output chart.svg
//	klineoverlay layout scenario.yaml --metrics
package main

import (
	"log/slog"

	"github.com/gogpu/overlay"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Fatal("cannot execute command")
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:          "klineoverlay",
		Short:        "K-line chart overlay renderer",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(v, cmd.Flags()); err != nil {
				return err
			}
			setupLogging(v.GetBool("debug"))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.Bool("debug", false, "debug logging, including the layout engine")
	pf.String("config", "", "config file (yaml, json or toml)")
	pf.Int("width", 800, "surface width in pixels")
	pf.Int("height", 600, "surface height in pixels")
	pf.Float64("padding", 0.05, "price padding as a fraction of the visible range")
	pf.Int("max-regions", 0, "maximum trend regions drawn per frame, 0 for no limit")
	pf.Bool("metrics", false, "print the layout metrics")

	root.AddCommand(newRenderCmd(v), newLayoutCmd(v))
	return root
}

func newRenderCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <scenario.yaml>",
		Short: "Render the chart with its overlay to an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := prepare(v, args[0])
			if err != nil {
				return err
			}
			if err := job.Render(); err != nil {
				return err
			}
			log.Infof("wrote %s (%dx%d %s)", job.Settings.Output, job.Settings.Width, job.Settings.Height, job.Settings.Format)

			out := cmd.OutOrStdout()
			if job.Settings.Table {
				PrintPlacements(out, job.Controller)
			}
			if job.Settings.Metrics {
				return PrintMetrics(out, job.Registry)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.String("format", "png", "output format: png or svg")
	f.StringP("output", "o", "", "output file (default overlay.<format>)")
	f.String("background", "#FFFFFF", "background colour")
	f.Bool("table", false, "print the marker placements")
	return cmd
}

func newLayoutCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "layout <scenario.yaml>",
		Short: "Print the marker layout without drawing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := prepare(v, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			PrintPlacements(out, job.Controller)
			if job.Settings.Metrics {
				return PrintMetrics(out, job.Registry)
			}
			return nil
		},
	}
}

func prepare(v *viper.Viper, path string) (*Job, error) {
	st, err := loadSettings(v)
	if err != nil {
		return nil, err
	}
	sc, err := LoadScenario(path)
	if err != nil {
		return nil, err
	}
	if sc.Title != "" {
		log.Infof("scenario %q: %d candles", sc.Title, len(sc.Candles))
	}
	return Prepare(sc, st)
}

// setupLogging configures logrus and, in debug mode, routes the overlay
// engine's slog output through it.
func setupLogging(debug bool) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if !debug {
		return
	}
	log.SetLevel(log.DebugLevel)
	w := log.StandardLogger().WriterLevel(log.DebugLevel)
	overlay.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
}
