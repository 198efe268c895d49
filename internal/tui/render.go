package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/clauselens/clauselens/internal/gauge"
	"github.com/clauselens/clauselens/internal/metrics"
	"github.com/clauselens/clauselens/internal/result"
	"github.com/clauselens/clauselens/internal/reveal"
	"github.com/clauselens/clauselens/internal/series"
)

const (
	// Entrance offsets are specified in pixels; one terminal cell stands
	// in for this many.
	pxPerCell = 8.0

	rasterRows = 9
	gaugeGap   = 2

	maxRiskRows = 8
)

// applyReveal shifts a block's lines by the entrance offsets, keeping
// the block height constant so nothing below it jumps. Opacity is
// handled inside the builders; tilt has no terminal rendering.
func applyReveal(lines []string, st reveal.Style) []string {
	shiftY := int(math.Round(st.OffsetY / pxPerCell))
	shiftX := int(math.Round(st.OffsetX / pxPerCell))

	out := lines
	if shiftY > 0 {
		out = make([]string, 0, len(lines))
		for i := 0; i < shiftY && i < len(lines); i++ {
			out = append(out, "")
		}
		out = append(out, lines[:len(lines)-len(out)]...)
	}
	if shiftX > 0 {
		indent := strings.Repeat(" ", shiftX)
		shifted := make([]string, len(out))
		for i, l := range out {
			if l == "" {
				shifted[i] = l
				continue
			}
			shifted[i] = indent + l
		}
		out = shifted
	}
	return out
}

func splitLines(s string) []string { return strings.Split(s, "\n") }

func (m Model) renderHeader(width int, st reveal.Style) []string {
	op := st.Opacity

	name := faded(hexFg, op).Bold(true).Render(m.analysis.DisplayName())
	lang := ""
	if m.analysis.Language != "" {
		lang = faded(hexDim, op).Render(" (" + m.analysis.Language + ")")
	}
	badge := badgeStyle(m.metrics.Verdict.Tone, op).Render(m.metrics.Verdict.Label)

	left := name + lang
	gap := width - lipgloss.Width(left) - lipgloss.Width(badge)
	if gap < 1 {
		gap = 1
	}
	line1 := left + strings.Repeat(" ", gap) + badge

	info := fmt.Sprintf("%d clauses · %d findings", m.metrics.ClauseCount, m.metrics.BySeverity.Total())
	if t := m.analysis.CreatedTime(); !t.IsZero() {
		info = "Analyzed " + t.Format("Jan 2, 2006 15:04") + " · " + info
	}
	line2 := faded(hexDim, op).Render(info)

	return applyReveal([]string{line1, line2}, st)
}

func (m Model) renderGauges(width int, st reveal.Style) []string {
	op := st.Opacity
	boxes := make([]string, 0, len(m.gauges)*2-1)

	for i, g := range m.gauges {
		rs := gauge.RasterStyles{
			Fill:  toneStyle(g.Tone, op),
			Track: faded(hexBorder, op),
			Text:  faded(hexFg, op).Bold(true),
		}
		label := fmt.Sprintf("%d", g.Reading(m.now))
		lines := gauge.Raster{Rows: rasterRows}.Lines(g.Fraction(m.now), label, rs)

		cols := rasterRows * 2
		title := lipgloss.PlaceHorizontal(cols, lipgloss.Center, g.Title)
		lines = append(lines, faded(hexDim, op).Render(title))

		if i > 0 {
			boxes = append(boxes, strings.Repeat(" ", gaugeGap))
		}
		boxes = append(boxes, strings.Join(lines, "\n"))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
	return applyReveal(splitLines(row), st)
}

// barPanel renders one chart series as a framed block of horizontal
// bars. innerW is the content width inside the panel frame.
func barPanel(s series.Series, empty string, innerW int, op float64) string {
	labelW := 0
	for _, p := range s.Points {
		if len(p.Label) > labelW {
			labelW = len(p.Label)
		}
	}

	avail := innerW - labelW - 6
	if avail < 4 {
		avail = 4
	}

	lines := []string{panelTitle(op).Render(s.Name)}
	if len(s.Points) == 0 {
		lines = append(lines, faded(hexDim, op).Render(empty))
	}
	for _, p := range s.Points {
		n := 0
		if s.Axis.Max > 0 {
			n = int(math.Round(p.Value / s.Axis.Max * float64(avail)))
		}
		if p.Value > 0 && n == 0 {
			n = 1
		}
		if n > avail {
			n = avail
		}

		label := faded(hexFg, op).Render(fmt.Sprintf("%-*s", labelW, p.Label))
		bar := toneStyle(p.Tone, op).Render(strings.Repeat("█", n)) +
			faded(hexBorder, op).Render(strings.Repeat("░", avail-n))
		value := faded(hexDim, op).Render(fmt.Sprintf("%3d", int(p.Value)))
		lines = append(lines, label+" "+bar+" "+value)
	}

	return panelStyle(op).Width(innerW).Render(strings.Join(lines, "\n"))
}

func (m Model) renderCharts(width int, st reveal.Style) []string {
	op := st.Opacity
	panelW := (width - 1) / 2
	innerW := panelW - 2

	left := barPanel(m.series[0], "", innerW, op)
	right := barPanel(m.series[2], "", innerW, op)

	row := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	return applyReveal(splitLines(row), st)
}

func (m Model) renderTypes(width int, st reveal.Style) []string {
	panel := barPanel(m.series[3], "No typed findings.", width-2, st.Opacity)
	return applyReveal(splitLines(panel), st)
}

// renderChecklist draws the essential-clause section. The container
// style fades the frame and title; each row carries its own staggered
// entrance style.
func (m Model) renderChecklist(width int, st reveal.Style, rows []reveal.Style) []string {
	op := st.Opacity
	c := m.analysis.ClauseAnalysis.Compliance

	title := fmt.Sprintf("Essential Clauses %d/%d", m.metrics.ComplianceFound, m.metrics.ComplianceTotal)
	lines := []string{panelTitle(op).Render(title)}

	i := 0
	rowStyle := func() reveal.Style {
		if i < len(rows) {
			s := rows[i]
			i++
			return s
		}
		i++
		return reveal.Visible
	}

	for _, found := range c.FoundClauses {
		rs := rowStyle()
		indent := strings.Repeat(" ", int(math.Round(rs.OffsetX/pxPerCell)))
		mark := faded(hexGreen, rs.Opacity).Render("✓")
		lines = append(lines, indent+mark+" "+faded(hexFg, rs.Opacity).Render(metrics.TypeLabel(found)))
	}
	for _, mc := range c.MissingClauses {
		rs := rowStyle()
		indent := strings.Repeat(" ", int(math.Round(rs.OffsetX/pxPerCell)))
		tone := metrics.SeverityTone(result.Severity(mc.Importance))
		mark := faded(hexRed, rs.Opacity).Render("✗")
		label := metrics.TypeLabel(mc.ClauseType)
		if mc.Importance != "" {
			label += " (" + mc.Importance + ")"
		}
		lines = append(lines, indent+mark+" "+toneStyle(tone, rs.Opacity).Render(label))
	}
	if len(c.FoundClauses) == 0 && len(c.MissingClauses) == 0 {
		lines = append(lines, faded(hexDim, op).Render("No checklist data."))
	}

	panel := panelStyle(op).Width(width - 2).Render(strings.Join(lines, "\n"))
	return applyReveal(splitLines(panel), st)
}

func (m Model) renderRisks(width int, st reveal.Style) []string {
	op := st.Opacity
	risks := m.analysis.ClauseAnalysis.Risks

	if len(risks) == 0 {
		lines := []string{
			panelTitle(op).Render("Risk Findings"),
			faded(hexDim, op).Render("No risk findings."),
		}
		panel := panelStyle(op).Width(width - 2).Render(strings.Join(lines, "\n"))
		return applyReveal(splitLines(panel), st)
	}

	shown := risks
	if len(shown) > maxRiskRows {
		shown = shown[:maxRiskRows]
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(faded(hexBorder, op)).
		Width(width).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return faded(hexDim, op).Bold(true).Padding(0, 1)
			}
			return toneStyle(metrics.SeverityTone(shown[row].Severity), op).Padding(0, 1)
		}).
		Headers("SEVERITY", "TYPE", "FINDING", "SCORE")

	for _, r := range shown {
		sev := string(r.Severity)
		if sev == "" {
			sev = "unrated"
		}
		text := r.Description
		if text == "" {
			text = r.MatchedText
		}
		t.Row(sev, metrics.TypeLabel(r.RiskType), runeTruncate(text, 60), fmt.Sprintf("%.1f", r.RiskScore))
	}

	lines := splitLines(t.Render())
	if len(risks) > maxRiskRows {
		more := fmt.Sprintf("… and %d more findings", len(risks)-maxRiskRows)
		lines = append(lines, faded(hexDim, op).Render(more))
	}
	return applyReveal(lines, st)
}

func (m Model) renderSummary(width int, st reveal.Style) []string {
	op := st.Opacity
	lines := []string{
		panelTitle(op).Render("Summary"),
		faded(hexFg, op).Render(m.analysis.Summary),
	}
	panel := panelStyle(op).Width(width - 2).Render(strings.Join(lines, "\n"))
	return applyReveal(splitLines(panel), st)
}

func runeTruncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
