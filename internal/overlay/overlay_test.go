package overlay

import (
	"testing"

	"github.com/clauselens/clauselens/internal/metrics"
)

// fakeSurface records overlay element lifecycle for assertions.
type fakeSurface struct {
	created int
	handle  *fakeHandle
}

type fakeHandle struct {
	content  Content
	x, y     float64
	visible  bool
	setCalls int
}

func (s *fakeSurface) Create() Handle {
	s.created++
	s.handle = &fakeHandle{}
	return s.handle
}

func (h *fakeHandle) SetContent(c Content) { h.content = c; h.setCalls++ }
func (h *fakeHandle) MoveTo(x, y float64)  { h.x, h.y = x, y }
func (h *fakeHandle) SetVisible(v bool)    { h.visible = v }

func riskContent(title string) Content {
	return Content{
		Title: title,
		Rows: []Row{
			{Tone: metrics.ToneDanger, Label: "High", Value: "2"},
			{Tone: metrics.ToneSafe, Label: "Low", Value: "1"},
		},
	}
}

func TestSingleElementAcrossCharts(t *testing.T) {
	surface := &fakeSurface{}
	tip := NewTooltip(surface)

	// Three charts all drive the same controller.
	tip.Show(riskContent("severity"), Anchor{ChartX: 0, ChartY: 10})
	tip.Show(riskContent("compliance"), Anchor{ChartX: 40, ChartY: 10})
	tip.Show(riskContent("ambiguity"), Anchor{ChartX: 80, ChartY: 10})

	if surface.created != 1 {
		t.Fatalf("surface.Create called %d times, want exactly 1", surface.created)
	}
	if surface.handle.content.Title != "ambiguity" {
		t.Errorf("content = %q, want last caller's", surface.handle.content.Title)
	}
	if surface.handle.x != 80 {
		t.Errorf("x = %v, want last caller's 80", surface.handle.x)
	}
}

func TestShowPositionsAtDocumentCoordinates(t *testing.T) {
	surface := &fakeSurface{}
	tip := NewTooltip(surface)

	at := Anchor{ChartX: 12, ChartY: 30, LocalX: 5, LocalY: 2, ScrollX: 0, ScrollY: 17}
	tip.Show(riskContent("severity"), at)

	if surface.handle.x != 17 {
		t.Errorf("x = %v, want chart origin + pointer offset = 17", surface.handle.x)
	}
	if surface.handle.y != 49 {
		t.Errorf("y = %v, want origin + offset + scroll = 49", surface.handle.y)
	}
	if !surface.handle.visible {
		t.Error("overlay not visible after Show")
	}
}

func TestHideKeepsContent(t *testing.T) {
	surface := &fakeSurface{}
	tip := NewTooltip(surface)

	tip.Show(riskContent("severity"), Anchor{})
	setCalls := surface.handle.setCalls

	tip.Hide()
	if surface.handle.visible {
		t.Error("overlay still visible after Hide")
	}
	if tip.Visible() {
		t.Error("controller reports visible after Hide")
	}
	if surface.handle.setCalls != setCalls {
		t.Error("Hide must not touch content")
	}
	if got := tip.Current().Title; got != "severity" {
		t.Errorf("content after Hide = %q, want retained %q", got, "severity")
	}
}

func TestHideBeforeShowCreatesNothing(t *testing.T) {
	surface := &fakeSurface{}
	tip := NewTooltip(surface)

	tip.Hide()
	if surface.created != 0 {
		t.Errorf("Hide created the element: %d creates", surface.created)
	}
}

func TestShowAfterHideReusesElement(t *testing.T) {
	surface := &fakeSurface{}
	tip := NewTooltip(surface)

	tip.Show(riskContent("severity"), Anchor{})
	tip.Hide()
	tip.Show(riskContent("compliance"), Anchor{ChartX: 3})

	if surface.created != 1 {
		t.Fatalf("Create called %d times, want 1", surface.created)
	}
	if !surface.handle.visible {
		t.Error("overlay not visible after re-Show")
	}
	if surface.handle.content.Title != "compliance" {
		t.Errorf("content = %q after re-Show", surface.handle.content.Title)
	}
}
