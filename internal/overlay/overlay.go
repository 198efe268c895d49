// Package overlay implements the shared tooltip service. A surface
// owns exactly one floating overlay element, created lazily and reused
// by every chart; charts receive the controller by reference at
// construction time and never reach for a global.
package overlay

import (
	"sync"

	"github.com/clauselens/clauselens/internal/metrics"
)

// Row is one line of tooltip content: a tone-colored marker, a label,
// and a value.
type Row struct {
	Tone  metrics.Tone
	Label string
	Value string
}

// Content is what the tooltip shows.
type Content struct {
	Title string
	Rows  []Row
}

// Anchor locates the pointer relative to a chart, together with the
// chart's own placement and the surface's scroll position.
type Anchor struct {
	ChartX, ChartY   float64 // chart origin in document coordinates
	LocalX, LocalY   float64 // pointer offset within the chart
	ScrollX, ScrollY float64 // scroll offsets at the time of the event
}

// DocumentX resolves the anchor's horizontal document coordinate, which
// stays correct when the surface is scrolled.
func (a Anchor) DocumentX() float64 { return a.ChartX + a.LocalX + a.ScrollX }

// DocumentY resolves the anchor's vertical document coordinate.
func (a Anchor) DocumentY() float64 { return a.ChartY + a.LocalY + a.ScrollY }

// Handle is the one overlay element a surface manages.
type Handle interface {
	SetContent(Content)
	MoveTo(x, y float64)
	SetVisible(bool)
}

// Surface creates the overlay element. Create is called at most once
// per controller, on the first Show.
type Surface interface {
	Create() Handle
}

// Tooltip is the tooltip controller. Construct one per surface at
// start-up and pass it to every chart component.
type Tooltip struct {
	mu      sync.Mutex
	surface Surface
	handle  Handle
	content Content
	visible bool
}

// NewTooltip builds a controller over the given surface. The overlay
// element itself is not created until the first Show.
func NewTooltip(surface Surface) *Tooltip {
	return &Tooltip{surface: surface}
}

// Show replaces the overlay's content and moves it to the anchor's
// document position, making it visible. Interleaved callers take the
// single element over from each other; the last call wins.
func (t *Tooltip) Show(c Content, at Anchor) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.handle == nil {
		t.handle = t.surface.Create()
	}
	t.content = c
	t.visible = true
	t.handle.SetContent(c)
	t.handle.MoveTo(at.DocumentX(), at.DocumentY())
	t.handle.SetVisible(true)
}

// Hide makes the overlay invisible and inert to pointer interaction.
// Content is kept, so a later Show can be cheap, and Hide before any
// Show never creates the element.
func (t *Tooltip) Hide() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.handle == nil {
		return
	}
	t.visible = false
	t.handle.SetVisible(false)
}

// Visible reports whether the overlay is currently shown.
func (t *Tooltip) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}

// Current returns the last content handed to Show, whether or not the
// overlay is visible right now.
func (t *Tooltip) Current() Content {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.content
}
