package gauge

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RasterStyles are the cell styles used when drawing a ring in the
// terminal.
type RasterStyles struct {
	Fill  lipgloss.Style
	Track lipgloss.Style
	Text  lipgloss.Style
}

// Raster draws a ring into terminal cells. Terminal cells are roughly
// twice as tall as wide, so the grid uses 2*Rows columns to keep the
// ring round.
type Raster struct {
	Rows int
}

// Lines renders the ring at the given fill fraction with a centered
// label, one string per terminal row. The sweep starts at 12 o'clock
// and runs clockwise, matching the SVG rendering.
func (ra Raster) Lines(fraction float64, label string, st RasterStyles) []string {
	rows := ra.Rows
	if rows < 3 {
		rows = 3
	}
	cols := rows * 2

	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	labelRow := rows / 2
	labelStart := (cols - len(label)) / 2
	if labelStart < 0 {
		labelStart = 0
	}

	cx := float64(cols-1) / 2
	cy := float64(rows-1) / 2

	lines := make([]string, 0, rows)
	for y := 0; y < rows; y++ {
		var b strings.Builder
		for x := 0; x < cols; x++ {
			if y == labelRow && x >= labelStart && x < labelStart+len(label) {
				b.WriteString(st.Text.Render(string(label[x-labelStart])))
				continue
			}

			dx := (float64(x) - cx) / (float64(cols) / 2)
			dy := (float64(y) - cy) / (float64(rows) / 2)
			dist := math.Hypot(dx, dy)
			if dist < 0.68 || dist > 1.08 {
				b.WriteByte(' ')
				continue
			}

			// Angle measured clockwise from 12 o'clock, as a turn
			// fraction in [0,1).
			angle := math.Atan2(dx, -dy)
			if angle < 0 {
				angle += 2 * math.Pi
			}
			turn := angle / (2 * math.Pi)

			if turn < fraction {
				b.WriteString(st.Fill.Render("█"))
			} else {
				b.WriteString(st.Track.Render("░"))
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}
