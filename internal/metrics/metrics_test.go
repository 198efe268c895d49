package metrics

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/clauselens/clauselens/internal/result"
)

func sampleAnalysis() *result.Analysis {
	return &result.Analysis{
		RiskScore:       65,
		ComplianceScore: 75,
		ClauseAnalysis: result.ClauseAnalysis{
			Clauses: []result.Clause{{ID: 1}, {ID: 2}},
			Risks: []result.Risk{
				{RiskType: "auto_renewal", Severity: result.SeverityHigh},
				{RiskType: "indemnification_broad", Severity: result.SeverityHigh},
				{RiskType: "vague_penalties", Severity: result.SeverityLow},
			},
			Compliance: result.Compliance{
				TotalChecked: 8,
				TotalFound:   5,
			},
			Responsibility: result.Responsibility{
				PassiveVoice:   []result.ResponsibilityIssue{{ClauseID: 1}, {ClauseID: 2}},
				VagueTerms:     []result.ResponsibilityIssue{{ClauseID: 2}},
				AmbiguityScore: 55,
				TotalIssues:    3,
			},
		},
	}
}

func TestDeriveIsPure(t *testing.T) {
	a := sampleAnalysis()
	first := Derive(a)
	second := Derive(a)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated Derive on same input differs (-first +second):\n%s", diff)
	}
}

func TestDeriveScenario(t *testing.T) {
	m := Derive(sampleAnalysis())

	if m.Verdict.Label != "High Risk" || m.Verdict.Tone != ToneDanger {
		t.Errorf("verdict = %q/%v, want High Risk/danger", m.Verdict.Label, m.Verdict.Tone)
	}
	if m.RiskTone != ToneDanger {
		t.Errorf("risk tone = %v, want danger", m.RiskTone)
	}
	if m.ComplianceTone != ToneSafe {
		t.Errorf("compliance tone = %v, want safe", m.ComplianceTone)
	}
	if m.AmbiguityTone != ToneWarning {
		t.Errorf("ambiguity tone = %v, want warning", m.AmbiguityTone)
	}
	if m.BySeverity != (SeverityCount{High: 2, Medium: 0, Low: 1}) {
		t.Errorf("severity buckets = %+v, want {2 0 1}", m.BySeverity)
	}
	if m.ComplianceFound != 5 || m.ComplianceTotal != 8 {
		t.Errorf("compliance = %d/%d, want 5/8", m.ComplianceFound, m.ComplianceTotal)
	}
	if m.Ambiguity.Total != 3 {
		t.Errorf("ambiguity total = %d, want 3", m.Ambiguity.Total)
	}
	if m.ClauseCount != 2 {
		t.Errorf("clause count = %d, want 2", m.ClauseCount)
	}
}

func TestVerdictBoundaries(t *testing.T) {
	tests := []struct {
		score     float64
		wantLabel string
		wantTone  Tone
	}{
		{0, "Low Risk", ToneSafe},
		{30, "Low Risk", ToneSafe},
		{31, "Moderate Risk", ToneWarning},
		{60, "Moderate Risk", ToneWarning},
		{61, "High Risk", ToneDanger},
		{100, "High Risk", ToneDanger},
	}

	for _, tt := range tests {
		v := VerdictFor(tt.score)
		if v.Label != tt.wantLabel || v.Tone != tt.wantTone {
			t.Errorf("VerdictFor(%v) = %q/%v, want %q/%v",
				tt.score, v.Label, v.Tone, tt.wantLabel, tt.wantTone)
		}
	}
}

func TestComplianceToneBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  Tone
	}{
		{0, ToneDanger},
		{39, ToneDanger},
		{40, ToneWarning},
		{69, ToneWarning},
		{70, ToneSafe},
		{100, ToneSafe},
	}

	for _, tt := range tests {
		if got := ComplianceTone(tt.score); got != tt.want {
			t.Errorf("ComplianceTone(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestAmbiguityToneBoundaries(t *testing.T) {
	if got := AmbiguityTone(50); got != ToneSafe {
		t.Errorf("AmbiguityTone(50) = %v, want safe", got)
	}
	if got := AmbiguityTone(51); got != ToneWarning {
		t.Errorf("AmbiguityTone(51) = %v, want warning", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{42.5, 42.5},
		{100, 100},
		{150, 100},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDeriveClampsBeforeClassifying(t *testing.T) {
	a := &result.Analysis{RiskScore: 250, ComplianceScore: -10}
	a.ClauseAnalysis.Responsibility.AmbiguityScore = math.NaN()

	m := Derive(a)
	if m.RiskScore != 100 || m.Verdict.Label != "High Risk" {
		t.Errorf("risk = %v (%q), want 100 (High Risk)", m.RiskScore, m.Verdict.Label)
	}
	if m.ComplianceScore != 0 || m.ComplianceTone != ToneDanger {
		t.Errorf("compliance = %v (%v), want 0 (danger)", m.ComplianceScore, m.ComplianceTone)
	}
	if m.AmbiguityScore != 0 || m.AmbiguityTone != ToneSafe {
		t.Errorf("ambiguity = %v (%v), want 0 (safe)", m.AmbiguityScore, m.AmbiguityTone)
	}
}

func TestByTypeOrdering(t *testing.T) {
	a := &result.Analysis{}
	a.ClauseAnalysis.Risks = []result.Risk{
		{RiskType: "auto_renewal", Severity: result.SeverityLow},
		{RiskType: "unlimited_liability", Severity: result.SeverityHigh},
		{RiskType: "vague_penalties", Severity: result.SeverityLow},
		{RiskType: "unlimited_liability", Severity: result.SeverityHigh},
		{RiskType: "auto_renewal", Severity: result.SeverityMedium},
	}

	got := Derive(a).ByType
	want := []TypeCount{
		{Type: "auto_renewal", Label: "auto renewal", Count: 2},
		{Type: "unlimited_liability", Label: "unlimited liability", Count: 2},
		{Type: "vague_penalties", Label: "vague penalties", Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ByType mismatch (-want +got):\n%s", diff)
	}
}

func TestByTypeTiesKeepPayloadOrder(t *testing.T) {
	a := &result.Analysis{}
	a.ClauseAnalysis.Risks = []result.Risk{
		{RiskType: "waiver_of_rights"},
		{RiskType: "auto_renewal"},
		{RiskType: "non_compete_broad"},
	}

	got := Derive(a).ByType
	order := []string{"waiver_of_rights", "auto_renewal", "non_compete_broad"}
	for i, want := range order {
		if got[i].Type != want {
			t.Errorf("ByType[%d] = %q, want %q (ties must keep payload order)", i, got[i].Type, want)
		}
	}
}

func TestSeverityBucketsIncludeZeros(t *testing.T) {
	a := &result.Analysis{}
	a.ClauseAnalysis.Risks = []result.Risk{
		{RiskType: "auto_renewal", Severity: result.SeverityHigh},
		{RiskType: "auto_renewal", Severity: "catastrophic"}, // unknown grade
	}

	m := Derive(a)
	if m.BySeverity != (SeverityCount{High: 1}) {
		t.Errorf("buckets = %+v, want {High:1 Medium:0 Low:0}", m.BySeverity)
	}
	if m.BySeverity.Total() != 1 {
		t.Errorf("Total() = %d, want 1", m.BySeverity.Total())
	}
}

func TestComplianceCountFallback(t *testing.T) {
	a := &result.Analysis{}
	a.ClauseAnalysis.Compliance = result.Compliance{
		Details: []result.ComplianceDetail{
			{ClauseType: "termination", Found: true},
			{ClauseType: "liability", Found: true},
			{ClauseType: "force_majeure", Found: false},
		},
	}

	m := Derive(a)
	if m.ComplianceFound != 2 || m.ComplianceTotal != 3 {
		t.Errorf("compliance = %d/%d, want 2/3 from details fallback", m.ComplianceFound, m.ComplianceTotal)
	}
}

func TestAmbiguityTotalFallback(t *testing.T) {
	a := &result.Analysis{}
	a.ClauseAnalysis.Responsibility = result.Responsibility{
		PassiveVoice:    []result.ResponsibilityIssue{{}, {}},
		MissingSubjects: []result.ResponsibilityIssue{{}},
	}

	m := Derive(a)
	want := AmbiguityCounts{PassiveVoice: 2, VagueTerms: 0, MissingSubjects: 1, Total: 3}
	if m.Ambiguity != want {
		t.Errorf("ambiguity = %+v, want %+v", m.Ambiguity, want)
	}
}

func TestDeriveNilAndEmpty(t *testing.T) {
	for name, a := range map[string]*result.Analysis{"nil": nil, "empty": {}} {
		m := Derive(a)
		if m.Verdict.Label != "Low Risk" {
			t.Errorf("%s: verdict = %q, want Low Risk", name, m.Verdict.Label)
		}
		if len(m.ByType) != 0 {
			t.Errorf("%s: ByType = %v, want empty", name, m.ByType)
		}
	}
}

func TestToneString(t *testing.T) {
	tests := []struct {
		tone Tone
		want string
	}{
		{ToneNeutral, "neutral"},
		{ToneSafe, "safe"},
		{ToneWarning, "warning"},
		{ToneDanger, "danger"},
	}
	for _, tt := range tests {
		if got := tt.tone.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.tone), got, tt.want)
		}
	}
}

func TestSeverityTone(t *testing.T) {
	tests := []struct {
		severity result.Severity
		want     Tone
	}{
		{result.SeverityHigh, ToneDanger},
		{result.SeverityMedium, ToneWarning},
		{result.SeverityLow, ToneSafe},
		{result.Severity("catastrophic"), ToneNeutral},
		{result.Severity(""), ToneNeutral},
	}
	for _, tt := range tests {
		if got := SeverityTone(tt.severity); got != tt.want {
			t.Errorf("SeverityTone(%q) = %v, want %v", tt.severity, got, tt.want)
		}
	}
}
