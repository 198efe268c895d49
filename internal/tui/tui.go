// Package tui renders the analysis dashboard in the terminal: animated
// score gauges, bar charts with hover tooltips, a compliance checklist,
// and the risk table, all entering the screen as they scroll into view.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/clauselens/clauselens/internal/gauge"
	"github.com/clauselens/clauselens/internal/metrics"
	"github.com/clauselens/clauselens/internal/overlay"
	"github.com/clauselens/clauselens/internal/result"
	"github.com/clauselens/clauselens/internal/reveal"
	"github.com/clauselens/clauselens/internal/series"
)

const (
	defaultGaugeDuration = 1100 * time.Millisecond
	defaultFPS           = 30
)

// Options tune the dashboard's motion. Zero values fall back to the
// standard timings; ReducedMotion settles everything instantly.
type Options struct {
	ReducedMotion  bool
	GaugeDuration  time.Duration
	RevealDuration time.Duration
	Stagger        time.Duration
	FPS            int
}

func (o Options) frameInterval() time.Duration {
	fps := o.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	return time.Second / time.Duration(fps)
}

// frameMsg carries the frame clock. Every animation reads time from the
// model, so nothing moves between frames.
type frameMsg time.Time

// clock is the shared time cell behind the reveal controller's clock
// function. It survives the model being copied between updates.
type clock struct {
	now time.Time
}

// Model is the top-level Bubble Tea model for the dashboard.
type Model struct {
	analysis *result.Analysis
	metrics  metrics.Metrics
	series   []series.Series
	opts     Options

	// UI state
	width      int
	height     int
	viewHeight int // visible document lines above the status bar
	scroll     int
	docHeight  int

	// Animation
	now    time.Time
	clk    *clock
	gauges [3]*gauge.State
	ctrl   *reveal.Controller

	// Document layout
	sections []*section
	regions  []hitRegion

	// Tooltip
	box     *boxOverlay
	tooltip *overlay.Tooltip

	ticking  bool
	showHelp bool
}

// New builds the dashboard model for one analysis result. The gauges
// start their mount animation immediately; section entrances wait for
// the first window size.
func New(a *result.Analysis, opts Options) Model {
	if a == nil {
		a = &result.Analysis{}
	}
	if opts.GaugeDuration <= 0 {
		opts.GaugeDuration = defaultGaugeDuration
	}
	if opts.Stagger < 0 {
		opts.Stagger = 0
	}

	now := time.Now()
	m := Model{
		analysis: a,
		metrics:  metrics.Derive(a),
		opts:     opts,
		now:      now,
		clk:      &clock{now: now},
		ticking:  !opts.ReducedMotion,
	}
	m.series = series.All(m.metrics)

	ring := gauge.Ring{Size: 180, Stroke: 14}
	titles := [3]string{"Risk Score", "Compliance", "Ambiguity"}
	scores := [3]float64{m.metrics.RiskScore, m.metrics.ComplianceScore, m.metrics.AmbiguityScore}
	tones := [3]metrics.Tone{m.metrics.RiskTone, m.metrics.ComplianceTone, m.metrics.AmbiguityTone}
	for i := range m.gauges {
		g := gauge.New(ring, opts.GaugeDuration)
		g.Title = titles[i]
		g.Tone = tones[i]
		g.SetScore(now, scores[i])
		if opts.ReducedMotion {
			g.Settle(now)
		}
		m.gauges[i] = g
	}

	m.box = &boxOverlay{}
	m.tooltip = overlay.NewTooltip(boxSurface{box: m.box})

	m.attach()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.opts.ReducedMotion {
		return nil
	}
	return m.tick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewHeight = m.height - 1 // status bar
		if m.viewHeight < 1 {
			m.viewHeight = 1
		}
		m.layout()
		m.publishVisibility()
		cmd := m.ensureTick()
		return m, cmd

	case frameMsg:
		m.now = time.Time(msg)
		m.clk.now = m.now
		if m.animating() {
			return m, m.tick()
		}
		m.ticking = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		cmd := m.ensureTick()
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, keys.Down):
		m.scrollBy(1)

	case key.Matches(msg, keys.Up):
		m.scrollBy(-1)

	case key.Matches(msg, keys.PageDown):
		m.scrollBy(m.viewHeight - 2)

	case key.Matches(msg, keys.PageUp):
		m.scrollBy(-(m.viewHeight - 2))

	case key.Matches(msg, keys.Top):
		m.scrollTo(0)

	case key.Matches(msg, keys.Bottom):
		m.scrollTo(m.maxScroll())

	case key.Matches(msg, keys.Replay):
		m.replay()
	}
	cmd := m.ensureTick()
	return m, cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-3)
		return
	case tea.MouseButtonWheelDown:
		m.scrollBy(3)
		return
	}
	if msg.Action != tea.MouseActionMotion || m.showHelp {
		m.tooltip.Hide()
		return
	}

	r, ok := m.hitTest(msg.X, msg.Y)
	if !ok {
		m.tooltip.Hide()
		return
	}
	doc := msg.Y + m.scroll
	m.tooltip.Show(r.content, overlay.Anchor{
		ChartX:  float64(r.x0),
		ChartY:  float64(r.y0 - m.scroll),
		LocalX:  float64(msg.X - r.x0),
		LocalY:  float64(doc - r.y0),
		ScrollY: float64(m.scroll),
	})
}

func (m *Model) scrollBy(delta int) { m.scrollTo(m.scroll + delta) }

func (m *Model) scrollTo(pos int) {
	if max := m.maxScroll(); pos > max {
		pos = max
	}
	if pos < 0 {
		pos = 0
	}
	if pos == m.scroll {
		return
	}
	m.scroll = pos
	m.publishVisibility()
}

func (m Model) maxScroll() int {
	max := m.docHeight - m.viewHeight
	if max < 0 {
		max = 0
	}
	return max
}

func (m *Model) clampScroll() {
	if m.scroll > m.maxScroll() {
		m.scroll = m.maxScroll()
	}
}

// replay restarts the gauge mounts and every section entrance.
func (m *Model) replay() {
	now := time.Now()
	m.now = now
	m.clk.now = now

	m.ctrl.ReleaseAll()
	for i, g := range m.gauges {
		ng := gauge.New(g.Ring(), m.opts.GaugeDuration)
		ng.Title = g.Title
		ng.Tone = g.Tone
		ng.SetScore(now, g.Score())
		if m.opts.ReducedMotion {
			ng.Settle(now)
		}
		m.gauges[i] = ng
	}

	m.attach()
	m.layout()
	m.publishVisibility()
}

// animating reports whether any gauge or triggered entrance still has
// frames left to draw.
func (m Model) animating() bool {
	if m.opts.ReducedMotion {
		return false
	}
	for _, g := range m.gauges {
		if !g.Done(m.now) {
			return true
		}
	}
	for _, sec := range m.sections {
		if sec.item.Fired() && !sec.item.Done(m.now) {
			return true
		}
		for _, it := range sec.group {
			if it.Fired() && !it.Done(m.now) {
				return true
			}
		}
	}
	return false
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.frameInterval(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// ensureTick restarts the frame loop after an event that set something
// in motion. The loop parks itself once every animation has settled.
func (m *Model) ensureTick() tea.Cmd {
	if m.ticking || !m.animating() {
		return nil
	}
	m.ticking = true
	return m.tick()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var body []string
	if m.showHelp {
		body = m.helpLines()
	} else {
		doc := make([]string, 0, m.docHeight)
		for i, sec := range m.sections {
			if i > 0 {
				doc = append(doc, "")
			}
			doc = append(doc, m.renderSection(sec)...)
		}
		body = m.viewport(doc)
		body = m.compositeTooltip(body)
	}

	return strings.Join(body, "\n") + "\n" + m.renderStatusBar()
}

// viewport slices the scrolled window out of the document and pads it
// to a fixed height so the status bar never moves.
func (m Model) viewport(doc []string) []string {
	start := m.scroll
	if start > len(doc) {
		start = len(doc)
	}
	end := start + m.viewHeight
	if end > len(doc) {
		end = len(doc)
	}
	view := append([]string(nil), doc[start:end]...)
	for len(view) < m.viewHeight {
		view = append(view, "")
	}
	return view
}

// compositeTooltip draws the floating tooltip box over the viewport,
// anchored just past the pointer and clipped to the screen edges.
func (m Model) compositeTooltip(view []string) []string {
	if !m.box.visible {
		return view
	}

	box := m.renderTooltip(m.box.content)
	boxLines := splitLines(box)
	boxW := lipgloss.Width(box)

	x := int(m.box.x) + 2
	y := int(m.box.y) - m.scroll - len(boxLines)
	if y < 0 {
		y = int(m.box.y) - m.scroll + 1
	}
	if x+boxW > m.width {
		x = m.width - boxW
	}
	if x < 0 {
		x = 0
	}

	for i, row := range boxLines {
		idx := y + i
		if idx < 0 || idx >= len(view) {
			continue
		}
		base := ansi.Truncate(view[idx], x, "")
		if pad := x - ansi.StringWidth(base); pad > 0 {
			base += strings.Repeat(" ", pad)
		}
		view[idx] = base + row
	}
	return view
}

func (m Model) renderTooltip(c overlay.Content) string {
	lines := []string{tooltipTitleStyle.Render(c.Title)}
	for _, r := range c.Rows {
		marker := lipgloss.NewStyle().Foreground(lipgloss.Color(r.Tone.Hex())).Render("●")
		lines = append(lines, fmt.Sprintf("%s %s  %s", marker, r.Label, r.Value))
	}
	return tooltipStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatusBar() string {
	left := statusKeyStyle.Render(" clauselens ") + " " + m.analysis.DisplayName()

	pos := fmt.Sprintf("%d/%d", m.scroll+1, m.docHeight)
	right := pos + " · r replay · ? help · q quit"

	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) helpLines() []string {
	var b strings.Builder
	b.WriteString("\n  " + helpHeaderStyle.Render("Keyboard Shortcuts") + "\n")

	bindings := []key.Binding{
		keys.Up, keys.Down, keys.PageUp, keys.PageDown,
		keys.Top, keys.Bottom, keys.Replay, keys.Help, keys.Quit,
	}
	for _, kb := range bindings {
		h := kb.Help()
		b.WriteString(fmt.Sprintf("  %s  %s\n", helpKeyStyle.Width(12).Render(h.Key), h.Desc))
	}
	b.WriteString("\n  " + helpBarStyle.Render("Press ? to close help"))

	lines := splitLines(b.String())
	for len(lines) < m.viewHeight {
		lines = append(lines, "")
	}
	return lines[:m.viewHeight]
}

// Run starts the dashboard and blocks until the user quits.
func Run(a *result.Analysis, opts Options) error {
	m := New(a, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
