// Package series turns derived metrics into declarative chart series.
// A Series says what to draw, never how: consumers (the terminal bars,
// the report's SVG charts, the live-stream payloads) map points and
// tones onto their own rendering.
package series

import (
	"github.com/clauselens/clauselens/internal/metrics"
)

// Axis is the value range a series should be plotted against.
type Axis struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Point is one category in a series.
type Point struct {
	Label string       `json:"label"`
	Value float64      `json:"value"`
	Tone  metrics.Tone `json:"tone"`
}

// Series is an ordered set of points with a fixed axis. For a given
// builder the point count and category order never vary with input;
// only the values do.
type Series struct {
	Name    string  `json:"name"`
	Axis    Axis    `json:"axis"`
	Points  []Point `json:"points"`
	Percent float64 `json:"percent,omitempty"` // headline share on ratio series
}

// SeverityBreakdown builds the risk-by-severity series: exactly three
// points, high to low.
func SeverityBreakdown(m metrics.Metrics) Series {
	points := []Point{
		{Label: "High", Value: float64(m.BySeverity.High), Tone: metrics.ToneDanger},
		{Label: "Medium", Value: float64(m.BySeverity.Medium), Tone: metrics.ToneWarning},
		{Label: "Low", Value: float64(m.BySeverity.Low), Tone: metrics.ToneSafe},
	}
	return Series{
		Name:   "Risks by Severity",
		Axis:   countAxis(points),
		Points: points,
	}
}

// ComplianceRatio builds the found-vs-missing series for the essential
// clause checklist, plus the found percentage.
func ComplianceRatio(m metrics.Metrics) Series {
	found := m.ComplianceFound
	missing := m.ComplianceTotal - m.ComplianceFound
	if missing < 0 {
		missing = 0
	}

	var percent float64
	if m.ComplianceTotal > 0 {
		percent = metrics.Clamp(float64(found) / float64(m.ComplianceTotal) * 100)
	}

	points := []Point{
		{Label: "Found", Value: float64(found), Tone: metrics.ToneSafe},
		{Label: "Missing", Value: float64(missing), Tone: metrics.ToneDanger},
	}
	return Series{
		Name:    "Essential Clauses",
		Axis:    countAxis(points),
		Points:  points,
		Percent: percent,
	}
}

// AmbiguityBreakdown builds the responsibility-issue series: exactly
// three points in a fixed order.
func AmbiguityBreakdown(m metrics.Metrics) Series {
	points := []Point{
		{Label: "Passive Voice", Value: float64(m.Ambiguity.PassiveVoice), Tone: metrics.ToneWarning},
		{Label: "Vague Terms", Value: float64(m.Ambiguity.VagueTerms), Tone: metrics.ToneWarning},
		{Label: "Missing Subjects", Value: float64(m.Ambiguity.MissingSubjects), Tone: metrics.ToneWarning},
	}
	return Series{
		Name:   "Ambiguity Issues",
		Axis:   countAxis(points),
		Points: points,
	}
}

// RiskTypes builds the risk-type ranking series, preserving the metric
// ordering (count descending, payload order on ties). Tones follow each
// type's share of all typed findings.
func RiskTypes(m metrics.Metrics) Series {
	total := 0
	for _, tc := range m.ByType {
		total += tc.Count
	}

	points := make([]Point, 0, len(m.ByType))
	for _, tc := range m.ByType {
		points = append(points, Point{
			Label: tc.Label,
			Value: float64(tc.Count),
			Tone:  shareTone(tc.Count, total),
		})
	}
	return Series{
		Name:   "Risk Types",
		Axis:   countAxis(points),
		Points: points,
	}
}

// All builds every standard series for a result, in presentation order.
func All(m metrics.Metrics) []Series {
	return []Series{
		SeverityBreakdown(m),
		ComplianceRatio(m),
		AmbiguityBreakdown(m),
		RiskTypes(m),
	}
}

// MaxValue returns the largest point value in the series.
func (s Series) MaxValue() float64 {
	max := 0.0
	for _, p := range s.Points {
		if p.Value > max {
			max = p.Value
		}
	}
	return max
}

// countAxis sizes an axis for count data: 0 up to the largest value,
// never collapsing to a zero-width range.
func countAxis(points []Point) Axis {
	max := 0.0
	for _, p := range points {
		if p.Value > max {
			max = p.Value
		}
	}
	if max == 0 {
		max = 1
	}
	return Axis{Min: 0, Max: max}
}

func shareTone(count, total int) metrics.Tone {
	if total == 0 {
		return metrics.ToneSafe
	}
	share := float64(count) / float64(total)
	switch {
	case share >= 0.5:
		return metrics.ToneDanger
	case share >= 0.25:
		return metrics.ToneWarning
	default:
		return metrics.ToneSafe
	}
}
