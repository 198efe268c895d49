// Package metrics derives presentation-ready metrics from an analysis
// result: headline verdict, score tones, and the groupings the charts
// consume. Everything here is pure; feeding the same result in twice
// yields identical values.
package metrics

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/clauselens/clauselens/internal/result"
)

// Tone is the presentation color class for a score or datum. Surfaces
// translate tones into their own color systems (terminal palette, CSS
// classes, chart fills).
type Tone int

const (
	ToneNeutral Tone = iota
	ToneSafe
	ToneWarning
	ToneDanger
)

func (t Tone) String() string {
	switch t {
	case ToneSafe:
		return "safe"
	case ToneWarning:
		return "warning"
	case ToneDanger:
		return "danger"
	default:
		return "neutral"
	}
}

// Hex returns the palette color for the tone, shared by the terminal
// styles and the report theme.
func (t Tone) Hex() string {
	switch t {
	case ToneSafe:
		return "#50fa7b"
	case ToneWarning:
		return "#f1fa8c"
	case ToneDanger:
		return "#ff5555"
	default:
		return "#6272a4"
	}
}

// ParseTone reverses Tone.String.
func ParseTone(s string) (Tone, error) {
	switch s {
	case "neutral":
		return ToneNeutral, nil
	case "safe":
		return ToneSafe, nil
	case "warning":
		return ToneWarning, nil
	case "danger":
		return ToneDanger, nil
	}
	return ToneNeutral, fmt.Errorf("unknown tone %q", s)
}

// Tones travel the wire as their string names.
func (t Tone) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Tone) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTone(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Verdict is the headline classification of a document.
type Verdict struct {
	Label string `json:"label"`
	Tone  Tone   `json:"tone"`
}

// SeverityCount buckets risk findings by severity. All three buckets are
// always present; zero means no findings at that grade.
type SeverityCount struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Total is the number of bucketed findings.
func (s SeverityCount) Total() int {
	return s.High + s.Medium + s.Low
}

// TypeCount is one entry in the risk-type ranking.
type TypeCount struct {
	Type  string `json:"type"`  // raw token, e.g. "auto_renewal"
	Label string `json:"label"` // display form, underscores as word separators
	Count int    `json:"count"`
}

// AmbiguityCounts buckets responsibility findings by kind.
type AmbiguityCounts struct {
	PassiveVoice    int `json:"passive_voice"`
	VagueTerms      int `json:"vague_terms"`
	MissingSubjects int `json:"missing_subjects"`
	Total           int `json:"total"`
}

// Metrics is everything the visual surfaces need, derived once per
// analysis result.
type Metrics struct {
	RiskScore       float64 `json:"risk_score"` // clamped to [0,100]
	ComplianceScore float64 `json:"compliance_score"`
	AmbiguityScore  float64 `json:"ambiguity_score"`

	Verdict        Verdict `json:"verdict"`
	RiskTone       Tone    `json:"risk_tone"`
	ComplianceTone Tone    `json:"compliance_tone"`
	AmbiguityTone  Tone    `json:"ambiguity_tone"`

	BySeverity SeverityCount `json:"by_severity"`
	ByType     []TypeCount   `json:"by_type"`

	ComplianceFound int `json:"compliance_found"`
	ComplianceTotal int `json:"compliance_total"`

	Ambiguity AmbiguityCounts `json:"ambiguity"`

	ClauseCount int `json:"clause_count"`
}

// Clamp bounds a score to the displayable [0,100] range. NaN and negative
// values clamp to 0, anything above 100 clamps to 100.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// VerdictFor classifies a risk score into the headline verdict.
func VerdictFor(score float64) Verdict {
	score = Clamp(score)
	switch {
	case score > 60:
		return Verdict{Label: "High Risk", Tone: ToneDanger}
	case score > 30:
		return Verdict{Label: "Moderate Risk", Tone: ToneWarning}
	default:
		return Verdict{Label: "Low Risk", Tone: ToneSafe}
	}
}

// RiskTone maps a risk score to its display tone. Higher is worse.
func RiskTone(score float64) Tone {
	score = Clamp(score)
	switch {
	case score > 60:
		return ToneDanger
	case score > 30:
		return ToneWarning
	default:
		return ToneSafe
	}
}

// ComplianceTone maps a compliance score to its display tone. Higher is
// better, and the bands are not symmetric with the risk bands.
func ComplianceTone(score float64) Tone {
	score = Clamp(score)
	switch {
	case score >= 70:
		return ToneSafe
	case score >= 40:
		return ToneWarning
	default:
		return ToneDanger
	}
}

// AmbiguityTone maps an ambiguity score to its display tone.
func AmbiguityTone(score float64) Tone {
	if Clamp(score) > 50 {
		return ToneWarning
	}
	return ToneSafe
}

// SeverityTone maps a finding grade to its display tone. Grades outside
// the known three read as neutral.
func SeverityTone(s result.Severity) Tone {
	switch s {
	case result.SeverityHigh:
		return ToneDanger
	case result.SeverityMedium:
		return ToneWarning
	case result.SeverityLow:
		return ToneSafe
	default:
		return ToneNeutral
	}
}

// TypeLabel converts a snake_case risk-type token to its display form.
func TypeLabel(riskType string) string {
	return strings.ReplaceAll(riskType, "_", " ")
}

// Derive computes Metrics from an analysis result. Scores are clamped
// before classification; absent payload sections contribute zeros. Derive
// never fails.
func Derive(a *result.Analysis) Metrics {
	if a == nil {
		a = &result.Analysis{}
	}

	m := Metrics{
		RiskScore:       Clamp(a.RiskScore),
		ComplianceScore: Clamp(a.ComplianceScore),
		AmbiguityScore:  Clamp(a.ClauseAnalysis.Responsibility.AmbiguityScore),
		ClauseCount:     len(a.ClauseAnalysis.Clauses),
	}

	m.Verdict = VerdictFor(m.RiskScore)
	m.RiskTone = RiskTone(m.RiskScore)
	m.ComplianceTone = ComplianceTone(m.ComplianceScore)
	m.AmbiguityTone = AmbiguityTone(m.AmbiguityScore)

	m.BySeverity = countSeverities(a.ClauseAnalysis.Risks)
	m.ByType = countTypes(a.ClauseAnalysis.Risks)
	m.ComplianceFound, m.ComplianceTotal = complianceCounts(a.ClauseAnalysis.Compliance)
	m.Ambiguity = ambiguityCounts(a.ClauseAnalysis.Responsibility)

	return m
}

func countSeverities(risks []result.Risk) SeverityCount {
	var s SeverityCount
	for _, r := range risks {
		// Unknown severities stay visible in the risk list but land in
		// no bucket.
		switch r.Severity {
		case result.SeverityHigh:
			s.High++
		case result.SeverityMedium:
			s.Medium++
		case result.SeverityLow:
			s.Low++
		}
	}
	return s
}

func countTypes(risks []result.Risk) []TypeCount {
	counts := make(map[string]int)
	var order []string
	for _, r := range risks {
		if r.RiskType == "" {
			continue
		}
		if _, seen := counts[r.RiskType]; !seen {
			order = append(order, r.RiskType)
		}
		counts[r.RiskType]++
	}

	out := make([]TypeCount, 0, len(order))
	for _, t := range order {
		out = append(out, TypeCount{Type: t, Label: TypeLabel(t), Count: counts[t]})
	}
	// Descending by count; ties keep first-encountered payload order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

func complianceCounts(c result.Compliance) (found, total int) {
	found = c.TotalFound
	total = c.TotalChecked
	if total == 0 && len(c.Details) > 0 {
		// Producer omitted the totals; reconstruct them from the checklist.
		total = len(c.Details)
		found = 0
		for _, d := range c.Details {
			if d.Found {
				found++
			}
		}
	}
	return found, total
}

func ambiguityCounts(r result.Responsibility) AmbiguityCounts {
	c := AmbiguityCounts{
		PassiveVoice:    len(r.PassiveVoice),
		VagueTerms:      len(r.VagueTerms),
		MissingSubjects: len(r.MissingSubjects),
		Total:           r.TotalIssues,
	}
	if c.Total == 0 {
		c.Total = c.PassiveVoice + c.VagueTerms + c.MissingSubjects
	}
	return c
}
