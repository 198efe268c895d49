// Package result models the analysis payload produced by the contract
// analyzer service and handles its ingestion.
package result

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Severity grades a detected risk.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Analysis is one analyzed document as returned by the analyzer service.
// Producers may omit any field; absent fields decode to zero values and
// are never an error.
type Analysis struct {
	Success         bool           `json:"success"`
	ID              string         `json:"id"`
	DocumentName    string         `json:"document_name"`
	Language        string         `json:"language"`
	RiskScore       float64        `json:"risk_score"`
	ComplianceScore float64        `json:"compliance_score"`
	Summary         string         `json:"summary"`
	ClauseAnalysis  ClauseAnalysis `json:"clause_analysis"`
	CreatedAt       string         `json:"created_at"` // RFC 3339, as sent
}

// ClauseAnalysis carries the per-document findings the dashboard consumes.
// The service sends more (entities, obligations, explanations); those pass
// through untouched via the raw payload and are not modeled here.
type ClauseAnalysis struct {
	Clauses        []Clause       `json:"clauses"`
	Risks          []Risk         `json:"risks"`
	Compliance     Compliance     `json:"compliance"`
	Responsibility Responsibility `json:"responsibility"`
}

// Clause is a segmented contract clause.
type Clause struct {
	ID            int    `json:"id"`
	Text          string `json:"text"`
	SectionNumber string `json:"section_number"`
}

// Risk is a single detected risk finding.
type Risk struct {
	ClauseID        int      `json:"clause_id"`
	RiskType        string   `json:"risk_type"` // snake_case token, e.g. "unlimited_liability"
	Severity        Severity `json:"severity"`
	Description     string   `json:"description"`
	MatchedText     string   `json:"matched_text"`
	ClauseText      string   `json:"clause_text"`
	RiskScore       float64  `json:"risk_score"` // 1-10 per finding
	DetectionMethod string   `json:"detection_method"`
}

// Compliance is the essential-clause checklist outcome.
type Compliance struct {
	ComplianceScore float64            `json:"compliance_score"`
	FoundClauses    []string           `json:"found_clauses"`
	MissingClauses  []MissingClause    `json:"missing_clauses"`
	Details         []ComplianceDetail `json:"details"`
	TotalChecked    int                `json:"total_checked"`
	TotalFound      int                `json:"total_found"`
	TotalMissing    int                `json:"total_missing"`
}

// MissingClause describes an essential clause the document lacks.
type MissingClause struct {
	ClauseType  string `json:"clause_type"`
	Description string `json:"description"`
	Importance  string `json:"importance"`
}

// ComplianceDetail is the checklist entry for one essential clause type.
type ComplianceDetail struct {
	ClauseType     string         `json:"clause_type"`
	Description    string         `json:"description"`
	Weight         int            `json:"weight"`
	Found          bool           `json:"found"`
	MatchedKeyword string         `json:"matched_keyword"`
	QualityScore   float64        `json:"quality_score"` // 0-1
	QualityChecks  []QualityCheck `json:"quality_checks"`
}

// QualityCheck is one structural check applied to a found clause.
type QualityCheck struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Passed bool   `json:"passed"`
}

// Responsibility is the ambiguity analysis: who-must-do-what clarity.
type Responsibility struct {
	PassiveVoice    []ResponsibilityIssue `json:"passive_voice"`
	VagueTerms      []ResponsibilityIssue `json:"vague_terms"`
	MissingSubjects []ResponsibilityIssue `json:"missing_subjects"`
	AmbiguityScore  float64               `json:"ambiguity_score"`
	TotalIssues     int                   `json:"total_issues"`
}

// ResponsibilityIssue is a single ambiguity finding. Which fields are set
// depends on the list it came from (passive voice, vague term, missing
// subject).
type ResponsibilityIssue struct {
	ClauseID    int     `json:"clause_id"`
	MatchedText string  `json:"matched_text,omitempty"`
	Term        string  `json:"term,omitempty"`
	Context     string  `json:"context,omitempty"`
	FullText    string  `json:"full_text,omitempty"`
	Issue       string  `json:"issue"`
	Suggestion  string  `json:"suggestion,omitempty"`
	Confidence  float64 `json:"confidence"`
}

// Decode reads one analysis payload from r. Only malformed JSON is an
// error; missing fields are fine.
func Decode(r io.Reader) (*Analysis, error) {
	var a Analysis
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("decoding analysis: %w", err)
	}
	return &a, nil
}

// Load reads an analysis payload from a file.
func Load(path string) (*Analysis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening analysis: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// DisplayName returns the document name, or a placeholder when the
// payload has none.
func (a *Analysis) DisplayName() string {
	if a.DocumentName == "" {
		return "untitled document"
	}
	return a.DocumentName
}

// CreatedTime parses the created_at timestamp. Returns the zero time when
// absent or unparseable.
func (a *Analysis) CreatedTime() time.Time {
	if a.CreatedAt == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999"} {
		if t, err := time.Parse(layout, a.CreatedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}
