package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gogpu/overlay"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.SetTitle(title)
	return t
}

// PrintPlacements writes the layout result of the controller's current
// frame, one row per marker in layout order.
func PrintPlacements(w io.Writer, c *overlay.Controller) {
	f := c.CurrentFrame()
	t := newTable(w, fmt.Sprintf("frame %d", f.Seq()))
	t.AppendHeader(table.Row{"id", "kind", "shape", "state", "x", "y", "w", "h"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
	})

	for _, p := range f.Placements() {
		m, _ := c.Marker(p.ID)
		b := p.Box
		t.AppendRow(table.Row{
			p.ID, m.Kind, m.Shape, state(p),
			fmt.Sprintf("%.1f", b.Min.X), fmt.Sprintf("%.1f", b.Min.Y),
			fmt.Sprintf("%.1f", b.Width()), fmt.Sprintf("%.1f", b.Height()),
		})
	}

	s := f.Stats()
	t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d placed / %d stacked / %d hidden", s.Placed, s.Stacked, s.Hidden)})
	t.Render()
}

func state(p overlay.Placement) string {
	switch {
	case p.Hidden:
		return "hidden"
	case p.Stacked():
		return fmt.Sprintf("stacked L%d", p.Level)
	}
	return "placed"
}

// PrintMetrics dumps the registry's samples.
func PrintMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	t := newTable(w, "metrics")
	t.AppendHeader(table.Row{"metric", "labels", "value"})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 3, Align: text.AlignRight}})
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			t.AppendRow(table.Row{mf.GetName(), labels(m), value(mf.GetType(), m)})
		}
	}
	t.Render()
	return nil
}

func labels(m *dto.Metric) string {
	pairs := make([]string, 0, len(m.GetLabel()))
	for _, l := range m.GetLabel() {
		pairs = append(pairs, l.GetName()+"="+l.GetValue())
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func value(typ dto.MetricType, m *dto.Metric) string {
	switch typ {
	case dto.MetricType_COUNTER:
		return fmt.Sprintf("%g", m.GetCounter().GetValue())
	case dto.MetricType_GAUGE:
		return fmt.Sprintf("%g", m.GetGauge().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		return fmt.Sprintf("n=%d sum=%.6fs", h.GetSampleCount(), h.GetSampleSum())
	}
	return "-"
}
