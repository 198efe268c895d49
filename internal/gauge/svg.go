package gauge

import (
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"github.com/clauselens/clauselens/internal/metrics"
)

// SVGOptions control standalone ring rendering.
type SVGOptions struct {
	Animate  bool          // play the mount animation on load
	Duration time.Duration // mount animation length when animating
	ID       string        // element id prefix; must be unique per page
}

const (
	svgFont       = "ui-sans-serif, system-ui, sans-serif"
	svgTrackColor = "#44475a"
	svgTitleColor = "#6272a4"

	// easeOutCubic as a CSS timing function.
	svgEasing = "cubic-bezier(0.33, 1, 0.68, 1)"
)

// RenderSVG emits a self-contained ring gauge. The progress circle's
// dash values come straight from the ring geometry, and the optional
// mount animation sweeps the dash offset from the full circumference to
// the score's offset, honoring prefers-reduced-motion.
func RenderSVG(ring Ring, score float64, title string, tone metrics.Tone, opts SVGOptions) string {
	score = metrics.Clamp(score)
	arc := ring.Arc(score)

	size := ring.Size
	c := size / 2
	id := opts.ID
	if id == "" {
		id = "gauge"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" xmlns="http://www.w3.org/2000/svg">`+"\n",
		size, size, size, size)

	if opts.Animate {
		ms := opts.Duration.Milliseconds()
		if ms <= 0 {
			ms = 1100
		}
		fmt.Fprintf(&b, "<style>\n")
		fmt.Fprintf(&b, "@keyframes fill-%s { from { stroke-dashoffset: %.2f; } to { stroke-dashoffset: %.2f; } }\n",
			id, arc.Circumference, arc.DashOffset)
		fmt.Fprintf(&b, "#%s-value { animation: fill-%s %dms %s forwards; }\n", id, id, ms, svgEasing)
		fmt.Fprintf(&b, "@media (prefers-reduced-motion: reduce) { #%s-value { animation: none; } }\n", id)
		fmt.Fprintf(&b, "</style>\n")
	}

	fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="%.2f" fill="none" stroke="%s" stroke-width="%.1f"/>`+"\n",
		c, c, arc.Radius, svgTrackColor, ring.Stroke)

	// Rotated so the sweep starts at 12 o'clock.
	fmt.Fprintf(&b, `<circle id="%s-value" cx="%.1f" cy="%.1f" r="%.2f" fill="none" stroke="%s" stroke-width="%.1f" stroke-linecap="round" stroke-dasharray="%.2f" stroke-dashoffset="%.2f" transform="rotate(-90 %.1f %.1f)"/>`+"\n",
		id, c, c, arc.Radius, tone.Hex(), ring.Stroke, arc.DashArray, arc.DashOffset, c, c)

	fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" text-anchor="middle" fill="%s" font-family="%s" font-size="%.1f" font-weight="bold">%d</text>`+"\n",
		c, c+size*0.09, tone.Hex(), svgFont, size*0.26, int(math.Round(score)))

	if title != "" {
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" text-anchor="middle" fill="%s" font-family="%s" font-size="%.1f">%s</text>`+"\n",
			c, c+size*0.24, svgTitleColor, svgFont, size*0.09, html.EscapeString(title))
	}

	b.WriteString("</svg>")
	return b.String()
}
