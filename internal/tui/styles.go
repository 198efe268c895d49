package tui

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/clauselens/clauselens/internal/metrics"
)

// Color palette.
var (
	colorRed     = lipgloss.Color("#ff5555")
	colorGreen   = lipgloss.Color("#50fa7b")
	colorYellow  = lipgloss.Color("#f1fa8c")
	colorBlue    = lipgloss.Color("#8be9fd")
	colorPurple  = lipgloss.Color("#bd93f9")
	colorDim     = lipgloss.Color("#6272a4")
	colorBg      = lipgloss.Color("#282a36")
	colorBgLight = lipgloss.Color("#343746")
	colorFg      = lipgloss.Color("#f8f8f2")
	colorBorder  = lipgloss.Color("#44475a")
)

// Style definitions for the chrome that never animates.
var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorBgLight).
			Padding(0, 1)

	statusKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Background(colorBgLight).
			Bold(true)

	helpHeaderStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true).
			Padding(0, 0, 1, 0)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	helpBarStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	tooltipStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPurple).
			Background(colorBg).
			Padding(0, 1)

	tooltipTitleStyle = lipgloss.NewStyle().
				Foreground(colorFg).
				Bold(true)
)

var bgRGB = hexColor("#282a36")

func hexColor(s string) colorful.Color {
	c, _ := colorful.Hex(s)
	return c
}

// fadeHex blends a color toward the background. Opacity 1 is the color
// itself, 0 disappears into the background; terminal cells cannot be
// translucent, so entrance fades are emulated in color space.
func fadeHex(hex string, opacity float64) lipgloss.Color {
	if opacity >= 1 {
		return lipgloss.Color(hex)
	}
	if opacity < 0 {
		opacity = 0
	}
	return lipgloss.Color(bgRGB.BlendRgb(hexColor(hex), opacity).Hex())
}

// faded builds a foreground style at the given opacity.
func faded(hex string, opacity float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(fadeHex(hex, opacity))
}

// toneStyle colors by tone at the given opacity.
func toneStyle(t metrics.Tone, opacity float64) lipgloss.Style {
	return faded(t.Hex(), opacity)
}

// Palette hex strings for the fade path; lipgloss.Color values cannot be
// blended directly.
const (
	hexFg     = "#f8f8f2"
	hexDim    = "#6272a4"
	hexBlue   = "#8be9fd"
	hexPurple = "#bd93f9"
	hexBorder = "#44475a"
	hexGreen  = "#50fa7b"
	hexRed    = "#ff5555"
)

// badgeStyle renders the verdict pill: background in the verdict tone,
// dark text.
func badgeStyle(t metrics.Tone, opacity float64) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorBg).
		Background(fadeHex(t.Hex(), opacity)).
		Bold(true).
		Padding(0, 1)
}

// panelStyle frames a dashboard section.
func panelStyle(opacity float64) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fadeHex(hexBorder, opacity)).
		Padding(0, 1)
}

// panelTitle styles a section heading.
func panelTitle(opacity float64) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(fadeHex(hexPurple, opacity)).
		Bold(true)
}
