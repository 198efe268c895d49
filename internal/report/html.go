// Package report renders a stored analysis as a self-contained HTML
// page: score rings, severity and type charts, the essential-clause
// checklist, and the ambiguity findings, all inlined with no external
// assets.
package report

import (
	"fmt"
	"html/template"
	"io"
	"math"
	"strings"
	"time"

	"github.com/clauselens/clauselens/internal/gauge"
	"github.com/clauselens/clauselens/internal/metrics"
	"github.com/clauselens/clauselens/internal/result"
	"github.com/clauselens/clauselens/internal/reveal"
	"github.com/clauselens/clauselens/internal/series"
)

// Options control report rendering.
type Options struct {
	ReducedMotion  bool
	GaugeDuration  time.Duration
	RevealDuration time.Duration
	Stagger        time.Duration
	GeneratedAt    time.Time // zero means time.Now()
}

const (
	ringSize   = 180
	ringStroke = 14

	snippetRunes = 140
)

type page struct {
	DocumentName string
	Language     string
	Created      string
	GeneratedAt  string
	Reduced      bool
	RevealCSS    template.CSS
	Verdict      metrics.Verdict
	Summary      string
	Cards        []cardView
	Gauges       []gaugeView
	Charts       []chartView
	Compliance   complianceView
	Risks        []riskView
	Ambiguity    ambiguityView
}

type cardView struct {
	Label string
	Value string
	Tone  metrics.Tone
}

type gaugeView struct {
	Title string
	SVG   template.HTML
	Tip   string
	Delay int64
}

type chartView struct {
	Title   string
	Variant string
	SVG     template.HTML
	Empty   string
	Tip     string
	Delay   int64
}

type complianceView struct {
	Percent int
	Found   []string
	Missing []missingView
}

type missingView struct {
	Label       string
	Description string
	Tone        metrics.Tone
}

type riskView struct {
	SeverityLabel string
	Tone          metrics.Tone
	TypeLabel     string
	Description   string
	Snippet       string
}

type ambiguityView struct {
	Score  int
	Tone   metrics.Tone
	Groups []issueGroup
}

type issueGroup struct {
	Title  string
	Issues []issueView
}

type issueView struct {
	Issue      string
	Token      string
	Suggestion string
	Snippet    string
}

// Write renders the report for one analysis to w.
func Write(w io.Writer, a *result.Analysis, opts Options) error {
	p, err := buildPage(a, opts)
	if err != nil {
		return err
	}
	if err := reportTmpl.Execute(w, p); err != nil {
		return fmt.Errorf("executing report template: %w", err)
	}
	return nil
}

// Build renders the report to a string.
func Build(a *result.Analysis, opts Options) (string, error) {
	var b strings.Builder
	if err := Write(&b, a, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

func buildPage(a *result.Analysis, opts Options) (page, error) {
	if a == nil {
		a = &result.Analysis{}
	}
	if opts.RevealDuration <= 0 {
		opts.RevealDuration = reveal.DefaultDuration
	}
	if opts.Stagger < 0 {
		opts.Stagger = 0
	}
	generated := opts.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	m := metrics.Derive(a)
	ring := gauge.Ring{Size: ringSize, Stroke: ringStroke}

	p := page{
		DocumentName: a.DisplayName(),
		Language:     a.Language,
		GeneratedAt:  generated.Format("Jan 2, 2006 15:04"),
		Reduced:      opts.ReducedMotion,
		RevealCSS:    template.CSS(revealCSS(opts.RevealDuration)),
		Verdict:      m.Verdict,
		Summary:      a.Summary,
	}
	if created := a.CreatedTime(); !created.IsZero() {
		p.Created = created.Format("Jan 2, 2006 15:04")
	}

	p.Cards = buildCards(m)
	p.Gauges = buildGauges(ring, m, opts)
	charts, err := buildCharts(m, opts)
	if err != nil {
		return page{}, err
	}
	p.Charts = charts
	p.Compliance = buildCompliance(a, m)
	p.Risks = buildRisks(a.ClauseAnalysis.Risks)
	p.Ambiguity = buildAmbiguity(a.ClauseAnalysis.Responsibility, m)

	return p, nil
}

func buildCards(m metrics.Metrics) []cardView {
	riskTone := metrics.ToneSafe
	if m.BySeverity.High > 0 {
		riskTone = metrics.ToneDanger
	} else if m.BySeverity.Medium > 0 {
		riskTone = metrics.ToneWarning
	}
	return []cardView{
		{Label: "Clauses", Value: fmt.Sprintf("%d", m.ClauseCount), Tone: metrics.ToneNeutral},
		{Label: "Risk Findings", Value: fmt.Sprintf("%d", m.BySeverity.Total()), Tone: riskTone},
		{Label: "Essential Clauses", Value: fmt.Sprintf("%d/%d", m.ComplianceFound, m.ComplianceTotal), Tone: m.ComplianceTone},
		{Label: "Ambiguity Issues", Value: fmt.Sprintf("%d", m.Ambiguity.Total), Tone: m.AmbiguityTone},
	}
}

func buildGauges(ring gauge.Ring, m metrics.Metrics, opts Options) []gaugeView {
	svgOpts := func(id string) gauge.SVGOptions {
		return gauge.SVGOptions{
			Animate:  !opts.ReducedMotion,
			Duration: opts.GaugeDuration,
			ID:       id,
		}
	}
	stagger := opts.Stagger.Milliseconds()
	return []gaugeView{
		{
			Title: "Risk Score",
			SVG:   template.HTML(gauge.RenderSVG(ring, m.RiskScore, "Risk Score", m.RiskTone, svgOpts("risk"))),
			Tip:   fmt.Sprintf("%s at %d of 100", m.Verdict.Label, int(math.Round(m.RiskScore))),
			Delay: 0,
		},
		{
			Title: "Compliance",
			SVG:   template.HTML(gauge.RenderSVG(ring, m.ComplianceScore, "Compliance", m.ComplianceTone, svgOpts("compliance"))),
			Tip:   fmt.Sprintf("%d of %d essential clauses found", m.ComplianceFound, m.ComplianceTotal),
			Delay: stagger,
		},
		{
			Title: "Ambiguity",
			SVG:   template.HTML(gauge.RenderSVG(ring, m.AmbiguityScore, "Ambiguity", m.AmbiguityTone, svgOpts("ambiguity"))),
			Tip:   fmt.Sprintf("%d ambiguity issues", m.Ambiguity.Total),
			Delay: 2 * stagger,
		},
	}
}

func buildCharts(m metrics.Metrics, opts Options) ([]chartView, error) {
	stagger := opts.Stagger.Milliseconds()

	severity := series.SeverityBreakdown(m)
	severitySVG, err := barChartSVG(severity, 560, 280)
	if err != nil {
		return nil, err
	}

	ambiguity := series.AmbiguityBreakdown(m)
	ambiguitySVG, err := barChartSVG(ambiguity, 560, 280)
	if err != nil {
		return nil, err
	}

	types := series.RiskTypes(m)
	typesSVG, err := donutChartSVG(types, 280)
	if err != nil {
		return nil, err
	}

	ratio := series.ComplianceRatio(m)
	ratioSVG, err := donutChartSVG(ratio, 280)
	if err != nil {
		return nil, err
	}

	views := []chartView{
		{
			Title:   "Risks by Severity",
			Variant: reveal.SlideUp.String(),
			SVG:     template.HTML(severitySVG),
			Tip: fmt.Sprintf("%d high / %d medium / %d low",
				m.BySeverity.High, m.BySeverity.Medium, m.BySeverity.Low),
			Delay: 0,
		},
		{
			Title:   "Ambiguity Issues",
			Variant: reveal.SlideUp.String(),
			SVG:     template.HTML(ambiguitySVG),
			Tip: fmt.Sprintf("%d passive / %d vague / %d missing subject",
				m.Ambiguity.PassiveVoice, m.Ambiguity.VagueTerms, m.Ambiguity.MissingSubjects),
			Delay: stagger,
		},
		{
			Title:   "Risk Types",
			Variant: reveal.SlideLeft.String(),
			SVG:     template.HTML(typesSVG),
			Tip:     fmt.Sprintf("%d risk types detected", len(m.ByType)),
			Delay:   2 * stagger,
		},
		{
			Title:   "Essential Clauses",
			Variant: reveal.SlideLeft.String(),
			SVG:     template.HTML(ratioSVG),
			Tip:     fmt.Sprintf("%d%% of the checklist found", int(math.Round(ratio.Percent))),
			Delay:   3 * stagger,
		},
	}
	if typesSVG == "" {
		views[2].Empty = "No typed findings."
	}
	if ratioSVG == "" {
		views[3].Empty = "No checklist data."
	}
	return views, nil
}

func buildCompliance(a *result.Analysis, m metrics.Metrics) complianceView {
	ratio := series.ComplianceRatio(m)
	v := complianceView{Percent: int(math.Round(ratio.Percent))}

	for _, f := range a.ClauseAnalysis.Compliance.FoundClauses {
		v.Found = append(v.Found, metrics.TypeLabel(f))
	}
	for _, mc := range a.ClauseAnalysis.Compliance.MissingClauses {
		v.Missing = append(v.Missing, missingView{
			Label:       metrics.TypeLabel(mc.ClauseType),
			Description: mc.Description,
			Tone:        metrics.SeverityTone(result.Severity(mc.Importance)),
		})
	}
	return v
}

func buildRisks(risks []result.Risk) []riskView {
	views := make([]riskView, 0, len(risks))
	for _, r := range risks {
		label := string(r.Severity)
		if label == "" {
			label = "unrated"
		}
		text := r.MatchedText
		if text == "" {
			text = r.ClauseText
		}
		views = append(views, riskView{
			SeverityLabel: label,
			Tone:          metrics.SeverityTone(r.Severity),
			TypeLabel:     metrics.TypeLabel(r.RiskType),
			Description:   r.Description,
			Snippet:       snippet(text, snippetRunes),
		})
	}
	return views
}

func buildAmbiguity(r result.Responsibility, m metrics.Metrics) ambiguityView {
	v := ambiguityView{
		Score: int(math.Round(m.AmbiguityScore)),
		Tone:  m.AmbiguityTone,
	}
	groups := []struct {
		title  string
		issues []result.ResponsibilityIssue
	}{
		{"Passive Voice", r.PassiveVoice},
		{"Vague Terms", r.VagueTerms},
		{"Missing Subjects", r.MissingSubjects},
	}
	for _, g := range groups {
		if len(g.issues) == 0 {
			continue
		}
		group := issueGroup{Title: g.title}
		for _, i := range g.issues {
			token := i.Term
			if token == "" {
				token = i.MatchedText
			}
			context := i.Context
			if context == "" {
				context = i.FullText
			}
			group.Issues = append(group.Issues, issueView{
				Issue:      i.Issue,
				Token:      token,
				Suggestion: i.Suggestion,
				Snippet:    snippet(context, snippetRunes),
			})
		}
		v.Groups = append(v.Groups, group)
	}
	return v
}

// revealCSS emits the entrance classes. Hidden transforms come from the
// variant definitions, so the page and the terminal animate from the
// same starting poses.
func revealCSS(duration time.Duration) string {
	var b strings.Builder
	ms := duration.Milliseconds()
	easing := "cubic-bezier(0.33, 1, 0.68, 1)"

	fmt.Fprintf(&b, ".reveal { opacity: 0; transition: opacity %dms %s, transform %dms %s; }\n",
		ms, easing, ms, easing)
	for _, v := range []reveal.Variant{reveal.SlideUp, reveal.FadeIn, reveal.SlideLeft, reveal.TiltIn} {
		if t := hiddenTransform(v); t != "" {
			fmt.Fprintf(&b, ".reveal.%s { transform: %s; }\n", v, t)
		}
	}
	b.WriteString(".reveal.shown { opacity: 1; transform: none; }\n")
	b.WriteString("body.reduced .reveal { opacity: 1; transform: none; transition: none; }\n")
	b.WriteString("@media (prefers-reduced-motion: reduce) { .reveal { opacity: 1; transform: none; transition: none; } }\n")
	return b.String()
}

func hiddenTransform(v reveal.Variant) string {
	h := v.Hidden()
	var parts []string
	if h.OffsetX != 0 {
		parts = append(parts, fmt.Sprintf("translateX(%.0fpx)", h.OffsetX))
	}
	if h.OffsetY != 0 {
		parts = append(parts, fmt.Sprintf("translateY(%.0fpx)", h.OffsetY))
	}
	if h.Tilt != 0 {
		parts = append(parts, fmt.Sprintf("rotate(%.0fdeg)", h.Tilt))
	}
	return strings.Join(parts, " ")
}

func snippet(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit])) + "..."
}
