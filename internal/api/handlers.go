package api

import (
	"bytes"
	"net/http"

	"github.com/clauselens/clauselens/internal/metrics"
	"github.com/clauselens/clauselens/internal/report"
	"github.com/clauselens/clauselens/internal/result"
	"github.com/clauselens/clauselens/internal/series"
)

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Report page ---

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	a := s.currentResult()
	if a == nil {
		http.Error(w, "no analysis loaded", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.Write(w, a, report.Options{
		ReducedMotion:  s.opts.ReducedMotion,
		GaugeDuration:  s.opts.GaugeDuration,
		RevealDuration: s.opts.RevealDuration,
		Stagger:        s.opts.Stagger,
	}); err != nil {
		logger.Error("render report", "error", err)
	}
}

// --- Result ---

// resultMeta is the headline confirmation sent after a result loads,
// both as the POST response and as the "result_meta" stream message.
type resultMeta struct {
	ID              string       `json:"id,omitempty"`
	DocumentName    string       `json:"document_name"`
	Language        string       `json:"language,omitempty"`
	RiskScore       float64      `json:"risk_score"`
	ComplianceScore float64      `json:"compliance_score"`
	Verdict         string       `json:"verdict"`
	Tone            metrics.Tone `json:"tone"`
	Clauses         int          `json:"clauses"`
	Findings        int          `json:"findings"`
}

func metaFor(a *result.Analysis, m metrics.Metrics) resultMeta {
	return resultMeta{
		ID:              a.ID,
		DocumentName:    a.DisplayName(),
		Language:        a.Language,
		RiskScore:       m.RiskScore,
		ComplianceScore: m.ComplianceScore,
		Verdict:         m.Verdict.Label,
		Tone:            m.Verdict.Tone,
		Clauses:         m.ClauseCount,
		Findings:        m.BySeverity.Total(),
	}
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	a := s.currentResult()
	if a == nil {
		writeError(w, http.StatusNotFound, "no analysis loaded")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handlePostResult(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading body: "+err.Error())
		return
	}

	a, err := result.Decode(bytes.NewReader(raw))
	if err != nil {
		writeError(w, http.StatusBadRequest, "decoding analysis: "+err.Error())
		return
	}

	if s.opts.Validate {
		if err := result.Validate(raw); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "schema: "+err.Error())
			return
		}
	}

	s.setCurrent(a)
	writeJSON(w, http.StatusOK, metaFor(a, metrics.Derive(a)))
}

// --- Derived views ---

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	a := s.currentResult()
	if a == nil {
		writeError(w, http.StatusNotFound, "no analysis loaded")
		return
	}
	writeJSON(w, http.StatusOK, metrics.Derive(a))
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	a := s.currentResult()
	if a == nil {
		writeError(w, http.StatusNotFound, "no analysis loaded")
		return
	}
	writeJSON(w, http.StatusOK, series.All(metrics.Derive(a)))
}
