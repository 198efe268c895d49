package series

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/clauselens/clauselens/internal/metrics"
)

func sampleMetrics() metrics.Metrics {
	return metrics.Metrics{
		BySeverity:      metrics.SeverityCount{High: 2, Medium: 0, Low: 1},
		ComplianceFound: 5,
		ComplianceTotal: 8,
		Ambiguity:       metrics.AmbiguityCounts{PassiveVoice: 2, VagueTerms: 1, MissingSubjects: 0, Total: 3},
		ByType: []metrics.TypeCount{
			{Type: "auto_renewal", Label: "auto renewal", Count: 2},
			{Type: "vague_penalties", Label: "vague penalties", Count: 1},
			{Type: "missing_notice_period", Label: "missing notice period", Count: 1},
		},
	}
}

func TestSeverityBreakdownShape(t *testing.T) {
	s := SeverityBreakdown(sampleMetrics())

	want := []Point{
		{Label: "High", Value: 2, Tone: metrics.ToneDanger},
		{Label: "Medium", Value: 0, Tone: metrics.ToneWarning},
		{Label: "Low", Value: 1, Tone: metrics.ToneSafe},
	}
	if diff := cmp.Diff(want, s.Points); diff != "" {
		t.Fatalf("points mismatch (-want +got):\n%s", diff)
	}
	if s.Axis != (Axis{Min: 0, Max: 2}) {
		t.Errorf("axis = %+v, want 0..2", s.Axis)
	}
}

func TestSeverityBreakdownFixedShapeOnEmpty(t *testing.T) {
	s := SeverityBreakdown(metrics.Metrics{})
	if len(s.Points) != 3 {
		t.Fatalf("got %d points, want 3 even with no findings", len(s.Points))
	}
	for _, p := range s.Points {
		if p.Value != 0 {
			t.Errorf("point %q = %v, want 0", p.Label, p.Value)
		}
	}
	if s.Axis.Max <= s.Axis.Min {
		t.Errorf("axis %+v collapsed", s.Axis)
	}
}

func TestComplianceRatio(t *testing.T) {
	s := ComplianceRatio(sampleMetrics())

	if len(s.Points) != 2 {
		t.Fatalf("got %d points, want 2", len(s.Points))
	}
	if s.Points[0].Label != "Found" || s.Points[0].Value != 5 {
		t.Errorf("found point = %+v", s.Points[0])
	}
	if s.Points[1].Label != "Missing" || s.Points[1].Value != 3 {
		t.Errorf("missing point = %+v", s.Points[1])
	}
	if s.Percent != 62.5 {
		t.Errorf("percent = %v, want 62.5", s.Percent)
	}
}

func TestComplianceRatioFloorsNegativeMissing(t *testing.T) {
	m := metrics.Metrics{ComplianceFound: 9, ComplianceTotal: 8}
	s := ComplianceRatio(m)
	if s.Points[1].Value != 0 {
		t.Errorf("missing = %v, want floor at 0", s.Points[1].Value)
	}
}

func TestComplianceRatioEmptyChecklist(t *testing.T) {
	s := ComplianceRatio(metrics.Metrics{})
	if s.Percent != 0 {
		t.Errorf("percent = %v, want 0 for empty checklist", s.Percent)
	}
}

func TestAmbiguityBreakdownOrder(t *testing.T) {
	s := AmbiguityBreakdown(sampleMetrics())

	labels := []string{"Passive Voice", "Vague Terms", "Missing Subjects"}
	if len(s.Points) != len(labels) {
		t.Fatalf("got %d points, want %d", len(s.Points), len(labels))
	}
	for i, want := range labels {
		if s.Points[i].Label != want {
			t.Errorf("point %d = %q, want %q", i, s.Points[i].Label, want)
		}
	}
}

func TestRiskTypesKeepMetricOrder(t *testing.T) {
	s := RiskTypes(sampleMetrics())

	wantLabels := []string{"auto renewal", "vague penalties", "missing notice period"}
	for i, want := range wantLabels {
		if s.Points[i].Label != want {
			t.Errorf("point %d = %q, want %q", i, s.Points[i].Label, want)
		}
	}
	// 2 of 4 findings is a half share.
	if s.Points[0].Tone != metrics.ToneDanger {
		t.Errorf("dominant type tone = %v, want danger", s.Points[0].Tone)
	}
	if s.Points[1].Tone != metrics.ToneWarning {
		t.Errorf("quarter-share tone = %v, want warning", s.Points[1].Tone)
	}
}

func TestAllOrderAndStability(t *testing.T) {
	m := sampleMetrics()
	first := All(m)
	second := All(m)

	names := []string{"Risks by Severity", "Essential Clauses", "Ambiguity Issues", "Risk Types"}
	if len(first) != len(names) {
		t.Fatalf("got %d series, want %d", len(first), len(names))
	}
	for i, want := range names {
		if first[i].Name != want {
			t.Errorf("series %d = %q, want %q", i, first[i].Name, want)
		}
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("builders not deterministic (-first +second):\n%s", diff)
	}
}

func TestMaxValue(t *testing.T) {
	s := Series{Points: []Point{{Value: 1}, {Value: 7}, {Value: 3}}}
	if got := s.MaxValue(); got != 7 {
		t.Errorf("MaxValue = %v, want 7", got)
	}
}
