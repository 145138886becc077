// Package charts renders the sales charts as SVG images.
//
// Both charts plot Sales against Month with one point or bar per row, in
// table order. Axis ranges and ticks are always set explicitly so tables
// with a single row or identical values still render.
package charts

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"salesdash/internal/core"
	"salesdash/internal/format"
)

// ContentType is the media type of every rendered chart.
const ContentType = "image/svg+xml"

const (
	defaultWidth  = 800
	defaultHeight = 360
	yTickCount    = 5
	maxBarWidth   = 60
	minBarWidth   = 8
	barSpacing    = 12
)

var (
	lineColor = drawing.ColorFromHex("1f77b4")
	barColor  = drawing.ColorFromHex("636efa")
	gridColor = drawing.ColorFromHex("e5e5e5")
)

// Options controls the size of a rendered chart. Zero fields fall back to
// defaults.
type Options struct {
	Width  int
	Height int
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// Line writes a line chart of t with a marker on every row.
func Line(w io.Writer, t core.SalesTable, opts Options) error {
	width, height := opts.size()
	if t.Empty() {
		return placeholder(w, width, height)
	}

	xs := make([]float64, len(t))
	ticks := make([]chart.Tick, 0, len(t)+2)
	ticks = append(ticks, chart.Tick{Value: 0.5})
	for i, r := range t {
		xs[i] = float64(i + 1)
		ticks = append(ticks, chart.Tick{Value: xs[i], Label: r.Month})
	}
	maxX := float64(len(t)) + 0.5
	ticks = append(ticks, chart.Tick{Value: maxX})

	yRange, yTicks := valueAxis(t.Values())

	graph := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 16, Bottom: 12}},
		XAxis: chart.XAxis{
			Name:  "Month",
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0.5, Max: maxX},
		},
		YAxis: chart.YAxis{
			Name:           "Sales",
			Range:          yRange,
			Ticks:          yTicks,
			GridMajorStyle: chart.Style{StrokeColor: gridColor, StrokeWidth: 1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Sales",
				XValues: xs,
				YValues: t.Values(),
				Style: chart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 2,
					DotColor:    lineColor,
					DotWidth:    4,
				},
			},
		},
	}

	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render line chart: %w", err)
	}
	return nil
}

// Bar writes a bar chart of t, one bar per row.
func Bar(w io.Writer, t core.SalesTable, opts Options) error {
	width, height := opts.size()
	if t.Empty() {
		return placeholder(w, width, height)
	}

	bars := make([]chart.Value, len(t))
	for i, r := range t {
		bars[i] = chart.Value{
			Value: r.Sales,
			Label: r.Month,
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor, StrokeWidth: 1},
		}
	}

	yRange, yTicks := valueAxis(t.Values())

	graph := chart.BarChart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 16, Bottom: 12}},
		BarWidth:   barWidth(width, len(t)),
		BarSpacing: barSpacing,
		YAxis: chart.YAxis{
			Name:  "Sales",
			Range: yRange,
			Ticks: yTicks,
		},
		Bars: bars,
	}

	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	return nil
}

// barWidth shrinks bars so that n of them fit the plot area.
func barWidth(width, n int) int {
	usable := width - 120
	bw := usable/n - barSpacing
	if bw > maxBarWidth {
		return maxBarWidth
	}
	if bw < minBarWidth {
		return minBarWidth
	}
	return bw
}

// valueAxis returns a Y range that includes zero and every value, padded by
// ten percent, with evenly spaced labelled ticks.
func valueAxis(values []float64) (*chart.ContinuousRange, []chart.Tick) {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.1
	if hi > 0 {
		hi += pad
	}
	if lo < 0 {
		lo -= pad
	}

	step := (hi - lo) / float64(yTickCount-1)
	ticks := make([]chart.Tick, yTickCount)
	for i := range ticks {
		v := lo + step*float64(i)
		if i == yTickCount-1 {
			v = hi
		}
		ticks[i] = chart.Tick{Value: v, Label: format.Axis(v)}
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}, ticks
}

// placeholder writes a blank chart with a notice. go-chart refuses to render
// a chart without data.
func placeholder(w io.Writer, width, height int) error {
	_, err := fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
		`<rect width="100%%" height="100%%" fill="#ffffff"/>`+
		`<text x="50%%" y="50%%" text-anchor="middle" dominant-baseline="middle" `+
		`font-family="sans-serif" font-size="14" fill="#888888">%s</text></svg>`,
		width, height, width, height, EmptyMessage)
	return err
}

// EmptyMessage is shown in place of a chart when no rows are selected.
const EmptyMessage = "No data for the selected months"
