package report

import (
	"bytes"
	"fmt"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/clauselens/clauselens/internal/metrics"
	"github.com/clauselens/clauselens/internal/series"
)

const (
	chartBG    = "282a36"
	chartFG    = "f8f8f2"
	chartMuted = "6272a4"
)

func toneColor(t metrics.Tone) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(t.Hex(), "#"))
}

// barChartSVG renders a count series as vertical bars, one per point,
// filled with each point's tone.
func barChartSVG(s series.Series, width, height int) (string, error) {
	if len(s.Points) == 0 {
		return "", fmt.Errorf("series %q has no points", s.Name)
	}

	bars := make([]chart.Value, 0, len(s.Points))
	for _, p := range s.Points {
		col := toneColor(p.Tone)
		bars = append(bars, chart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: chart.Style{FillColor: col, StrokeColor: col},
		})
	}

	bc := chart.BarChart{
		Width:      width,
		Height:     height,
		BarWidth:   52,
		Background: chart.Style{FillColor: drawing.ColorFromHex(chartBG)},
		Canvas:     chart.Style{FillColor: drawing.ColorFromHex(chartBG)},
		XAxis:      chart.Style{FontColor: drawing.ColorFromHex(chartFG)},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: drawing.ColorFromHex(chartMuted)},
			Range: &chart.ContinuousRange{Min: s.Axis.Min, Max: s.Axis.Max},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.SVG, &buf); err != nil {
		return "", fmt.Errorf("rendering %q: %w", s.Name, err)
	}
	return buf.String(), nil
}

// donutChartSVG renders a series as a donut of its non-zero points.
// Returns empty output when the series has nothing to slice, so callers
// can show an empty state instead of a degenerate chart.
func donutChartSVG(s series.Series, size int) (string, error) {
	values := make([]chart.Value, 0, len(s.Points))
	for _, p := range s.Points {
		if p.Value <= 0 {
			continue
		}
		col := toneColor(p.Tone)
		values = append(values, chart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: chart.Style{
				FillColor:   col,
				StrokeColor: drawing.ColorFromHex(chartBG),
				StrokeWidth: 2,
				FontColor:   drawing.ColorFromHex(chartBG),
			},
		})
	}
	if len(values) == 0 {
		return "", nil
	}

	dc := chart.DonutChart{
		Width:      size,
		Height:     size,
		Background: chart.Style{FillColor: drawing.ColorFromHex(chartBG)},
		Canvas:     chart.Style{FillColor: drawing.ColorFromHex(chartBG)},
		Values:     values,
	}

	var buf bytes.Buffer
	if err := dc.Render(chart.SVG, &buf); err != nil {
		return "", fmt.Errorf("rendering %q: %w", s.Name, err)
	}
	return buf.String(), nil
}
