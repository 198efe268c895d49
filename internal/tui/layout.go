package tui

import (
	"fmt"
	"time"

	"github.com/clauselens/clauselens/internal/gauge"
	"github.com/clauselens/clauselens/internal/overlay"
	"github.com/clauselens/clauselens/internal/reveal"
	"github.com/clauselens/clauselens/internal/series"
)

// Section ids, in document order.
const (
	secHeader = iota
	secGauges
	secCharts
	secTypes
	secChecklist
	secRisks
	secSummary
)

// section is one vertical slice of the dashboard document. Geometry is
// recomputed on resize; the reveal items live for the model's lifetime.
type section struct {
	id     int
	top    int
	height int
	sensor *viewSensor
	item   *reveal.Item
	group  []*reveal.Item // checklist rows, staggered
}

// viewSensor feeds a section's visible fraction to the reveal
// controller. The model publishes on every scroll and resize; all of it
// runs on the update goroutine, so there is no locking.
type viewSensor struct {
	subs map[int]func(float64)
	next int
}

func newViewSensor() *viewSensor {
	return &viewSensor{subs: make(map[int]func(float64))}
}

func (s *viewSensor) Subscribe(fn func(visibleFraction float64)) (cancel func()) {
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

// Report delivers the fraction to every subscriber. Callbacks may
// unsubscribe themselves mid-delivery, so iteration works on a snapshot.
func (s *viewSensor) Report(fraction float64) {
	fns := make([]func(float64), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn(fraction)
	}
}

// attach builds the section list and registers every entrance with the
// reveal controller. Called once at construction and again on replay.
func (m *Model) attach() {
	m.ctrl = reveal.NewController(m.opts.ReducedMotion)
	clk := m.clk
	m.ctrl.SetClock(func() time.Time { return clk.now })

	base := reveal.Options{Duration: m.opts.RevealDuration}

	m.sections = nil
	add := func(id int, v reveal.Variant) *section {
		sec := &section{id: id, sensor: newViewSensor()}
		o := base
		o.Variant = v
		sec.item = m.ctrl.Attach(sec.sensor, o)
		m.sections = append(m.sections, sec)
		return sec
	}

	add(secHeader, reveal.FadeIn)
	add(secGauges, reveal.SlideUp)
	add(secCharts, reveal.SlideUp)
	add(secTypes, reveal.SlideLeft)

	chk := add(secChecklist, reveal.FadeIn)
	c := m.analysis.ClauseAnalysis.Compliance
	if rows := len(c.FoundClauses) + len(c.MissingClauses); rows > 0 {
		o := base
		o.Variant = reveal.SlideLeft
		chk.group = m.ctrl.AttachGroup(chk.sensor, o, rows, m.opts.Stagger)
	}

	add(secRisks, reveal.TiltIn)
	if m.analysis.Summary != "" {
		add(secSummary, reveal.FadeIn)
	}
}

// layout measures every section at the current width and rebuilds the
// hover regions. Entrance offsets never change a section's height, so
// the measurements hold for the whole animation.
func (m *Model) layout() {
	if m.width <= 0 {
		return
	}

	top := 0
	for _, sec := range m.sections {
		sec.top = top
		sec.height = len(m.renderSection(sec))
		top += sec.height + 1
	}
	m.docHeight = top - 1
	m.clampScroll()
	m.buildRegions()
}

// renderSection draws one section at its current entrance style.
func (m Model) renderSection(sec *section) []string {
	st := sec.item.StyleAt(m.now)
	switch sec.id {
	case secHeader:
		return m.renderHeader(m.width, st)
	case secGauges:
		return m.renderGauges(m.width, st)
	case secCharts:
		return m.renderCharts(m.width, st)
	case secTypes:
		return m.renderTypes(m.width, st)
	case secChecklist:
		rows := make([]reveal.Style, len(sec.group))
		for i, it := range sec.group {
			rows[i] = it.StyleAt(m.now)
		}
		return m.renderChecklist(m.width, st, rows)
	case secRisks:
		return m.renderRisks(m.width, st)
	default:
		return m.renderSummary(m.width, st)
	}
}

// publishVisibility reports each section's visible fraction to its
// sensor, firing entrances for sections scrolled into view.
func (m *Model) publishVisibility() {
	if m.width <= 0 {
		return
	}
	for _, sec := range m.sections {
		sec.sensor.Report(m.sectionFraction(sec))
	}
}

func (m *Model) sectionFraction(sec *section) float64 {
	if sec.height <= 0 {
		return 0
	}
	top, bot := sec.top, sec.top+sec.height
	if vt := m.scroll; top < vt {
		top = vt
	}
	if vb := m.scroll + m.viewHeight; bot > vb {
		bot = vb
	}
	if bot <= top {
		return 0
	}
	return float64(bot-top) / float64(sec.height)
}

// hitRegion maps a rectangle of document cells to tooltip content.
type hitRegion struct {
	x0, y0, x1, y1 int // x1 and y1 exclusive
	content        overlay.Content
}

func (m *Model) buildRegions() {
	m.regions = nil
	for _, sec := range m.sections {
		switch sec.id {
		case secGauges:
			m.addGaugeRegions(sec)
		case secCharts:
			panelW := (m.width - 1) / 2
			m.addBarRegions(sec, m.series[0], 0, panelW)
			m.addBarRegions(sec, m.series[2], panelW+1, panelW)
		case secTypes:
			m.addBarRegions(sec, m.series[3], 0, m.width)
		}
	}
}

func (m *Model) addGaugeRegions(sec *section) {
	cols := rasterRows * 2
	for i, g := range m.gauges {
		x0 := i * (cols + gaugeGap)
		m.regions = append(m.regions, hitRegion{
			x0: x0, x1: x0 + cols,
			y0: sec.top, y1: sec.top + rasterRows + 1,
			content: gaugeContent(g),
		})
	}
}

// addBarRegions registers one region per bar row. Bars start below the
// panel border and title line.
func (m *Model) addBarRegions(sec *section, s series.Series, x0, w int) {
	total := 0.0
	for _, p := range s.Points {
		total += p.Value
	}
	for i, p := range s.Points {
		rows := []overlay.Row{
			{Tone: p.Tone, Label: p.Label, Value: fmt.Sprintf("%d", int(p.Value))},
		}
		if total > 0 {
			rows = append(rows, overlay.Row{
				Tone:  p.Tone,
				Label: "share",
				Value: fmt.Sprintf("%.0f%%", p.Value/total*100),
			})
		}
		m.regions = append(m.regions, hitRegion{
			x0: x0 + 1, x1: x0 + w - 1,
			y0: sec.top + 2 + i, y1: sec.top + 3 + i,
			content: overlay.Content{Title: s.Name, Rows: rows},
		})
	}
}

func gaugeContent(g *gauge.State) overlay.Content {
	return overlay.Content{
		Title: g.Title,
		Rows: []overlay.Row{
			{Tone: g.Tone, Label: "score", Value: fmt.Sprintf("%.1f / 100", g.Score())},
			{Tone: g.Tone, Label: "status", Value: g.Tone.String()},
		},
	}
}

// hitTest resolves a viewport cell to the region under it, if any.
func (m Model) hitTest(x, y int) (hitRegion, bool) {
	doc := y + m.scroll
	for _, r := range m.regions {
		if x >= r.x0 && x < r.x1 && doc >= r.y0 && doc < r.y1 {
			return r, true
		}
	}
	return hitRegion{}, false
}

// boxOverlay is the single floating tooltip element over the dashboard.
type boxOverlay struct {
	content overlay.Content
	x, y    float64
	visible bool
}

func (b *boxOverlay) SetContent(c overlay.Content) { b.content = c }
func (b *boxOverlay) MoveTo(x, y float64)          { b.x, b.y = x, y }
func (b *boxOverlay) SetVisible(v bool)            { b.visible = v }

// boxSurface hands the tooltip controller its one overlay element.
type boxSurface struct {
	box *boxOverlay
}

func (s boxSurface) Create() overlay.Handle { return s.box }
