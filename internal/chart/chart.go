// Package chart renders one metric column of a results table as a bar chart.
package chart

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/signalnine/cohstats/internal/table"
)

// Label builds a bar label such as MESI/Max Sharing/rpw4/8c from a row's
// identifier cells, skipping empty ones.
func Label(tbl *table.Table, row []string) string {
	var parts []string
	add := func(col, prefix, suffix string) {
		if i := tbl.Index(col); i >= 0 && row[i] != "" {
			parts = append(parts, prefix+row[i]+suffix)
		}
	}
	add("Protocol", "", "")
	add("Reads Per Write", "", "")
	add("RPW", "rpw", "")
	add("Cores", "", "c")
	return strings.Join(parts, "/")
}

// Render draws one bar per row that has a numeric value for metric and saves
// the chart to path; the extension picks the format (png, svg, pdf, ...).
func Render(tbl *table.Table, metric, path string) error {
	mi := tbl.Index(metric)
	if mi < 0 {
		return fmt.Errorf("metric column %q not in table", metric)
	}

	var values plotter.Values
	var ticks []plot.Tick
	for _, row := range tbl.Rows {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[mi]), 64)
		if err != nil {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: float64(len(values)), Label: Label(tbl, row)})
		values = append(values, v)
	}
	if len(values) == 0 {
		return fmt.Errorf("no numeric values for %q", metric)
	}

	p := plot.New()
	p.Title.Text = metric
	p.Y.Label.Text = metric

	bar, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("building bar chart: %w", err)
	}
	bar.Color = color.RGBA{54, 162, 235, 255}
	p.Add(bar)

	p.X.Min = -0.5
	p.X.Max = float64(len(values)) - 0.5
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = 0.8
	p.X.Tick.Label.XAlign = -1

	width := vg.Length(len(values))*0.4*vg.Inch + 2*vg.Inch
	if width < 6*vg.Inch {
		width = 6 * vg.Inch
	}
	if err := p.Save(width, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving chart %s: %w", filepath.Base(path), err)
	}
	return nil
}
