package api

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/clauselens/clauselens/internal/metrics"
	"github.com/clauselens/clauselens/internal/result"
	"github.com/clauselens/clauselens/internal/series"
)

const testAnalysis = `{
  "success": true,
  "id": "a3f2",
  "document_name": "services_agreement.pdf",
  "language": "en",
  "risk_score": 72.5,
  "compliance_score": 45,
  "summary": "Vendor-friendly services agreement with weak liability terms.",
  "clause_analysis": {
    "clauses": [
      {"id": 1, "text": "Either party may terminate with 30 days notice."},
      {"id": 2, "text": "Liability of the vendor shall be unlimited."}
    ],
    "risks": [
      {"clause_id": 2, "risk_type": "unlimited_liability", "severity": "high", "description": "No liability cap.", "risk_score": 9},
      {"clause_id": 1, "risk_type": "auto_renewal", "severity": "medium", "description": "Renews unless cancelled.", "risk_score": 5}
    ],
    "compliance": {
      "compliance_score": 45,
      "found_clauses": ["termination"],
      "missing_clauses": [
        {"clause_type": "limitation_of_liability", "description": "No liability cap present.", "importance": "high"}
      ],
      "total_checked": 2,
      "total_found": 1,
      "total_missing": 1
    },
    "responsibility": {
      "passive_voice": [],
      "vague_terms": [{"clause_id": 1, "term": "reasonable", "issue": "Vague standard of effort."}],
      "missing_subjects": [],
      "ambiguity_score": 20,
      "total_issues": 1
    }
  },
  "created_at": "2026-04-02T10:15:00"
}`

func newTestServer() *Server {
	return New(":0", Options{})
}

func postResult(t *testing.T, srv *Server, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/result", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %q", resp["status"])
	}
}

func TestResultRoundTrip(t *testing.T) {
	srv := newTestServer()

	w := postResult(t, srv, testAnalysis)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var meta resultMeta
	if err := json.Unmarshal(w.Body.Bytes(), &meta); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if meta.DocumentName != "services_agreement.pdf" {
		t.Errorf("expected document name, got %q", meta.DocumentName)
	}
	if meta.Verdict != "High Risk" {
		t.Errorf("expected High Risk verdict, got %q", meta.Verdict)
	}
	if meta.Tone != metrics.ToneDanger {
		t.Errorf("expected danger tone, got %v", meta.Tone)
	}
	if meta.Findings != 2 {
		t.Errorf("expected 2 findings, got %d", meta.Findings)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/result", nil)
	w2 := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w2, req)

	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w2.Code)
	}
	var a result.Analysis
	if err := json.Unmarshal(w2.Body.Bytes(), &a); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if a.DocumentName != "services_agreement.pdf" || a.RiskScore != 72.5 {
		t.Errorf("result did not round-trip: %q %v", a.DocumentName, a.RiskScore)
	}
}

func TestEndpointsBeforeLoad(t *testing.T) {
	srv := newTestServer()

	for _, path := range []string{"/api/result", "/api/metrics", "/api/series", "/"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404 before load, got %d", path, w.Code)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer()
	postResult(t, srv, testAnalysis)

	req := httptest.NewRequest(http.MethodGet, "/api/metrics", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var m metrics.Metrics
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if m.RiskScore != 72.5 {
		t.Errorf("expected risk 72.5, got %v", m.RiskScore)
	}
	if m.Verdict.Label != "High Risk" {
		t.Errorf("expected High Risk, got %q", m.Verdict.Label)
	}
	if m.BySeverity.High != 1 || m.BySeverity.Medium != 1 {
		t.Errorf("unexpected severity counts: %+v", m.BySeverity)
	}
	if m.ComplianceFound != 1 || m.ComplianceTotal != 2 {
		t.Errorf("unexpected compliance counts: %d/%d", m.ComplianceFound, m.ComplianceTotal)
	}
}

func TestSeriesEndpoint(t *testing.T) {
	srv := newTestServer()
	postResult(t, srv, testAnalysis)

	req := httptest.NewRequest(http.MethodGet, "/api/series", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var all []series.Series
	if err := json.Unmarshal(w.Body.Bytes(), &all); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 series, got %d", len(all))
	}
	if all[0].Name != "Risks by Severity" {
		t.Errorf("expected severity series first, got %q", all[0].Name)
	}
	if all[0].Points[0].Value != 1 {
		t.Errorf("expected 1 high finding, got %v", all[0].Points[0].Value)
	}
	if all[1].Percent != 50 {
		t.Errorf("expected 50%% compliance, got %v", all[1].Percent)
	}
}

func TestReportPage(t *testing.T) {
	srv := newTestServer()
	postResult(t, srv, testAnalysis)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected html content type, got %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "services_agreement.pdf") {
		t.Error("expected document name in report page")
	}
	if !strings.Contains(body, "High Risk") {
		t.Error("expected verdict in report page")
	}
}

func TestPostResultInvalidJSON(t *testing.T) {
	srv := newTestServer()

	w := postResult(t, srv, "{bad json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSchemaValidation(t *testing.T) {
	srv := New(":0", Options{Validate: true})

	// Decodes fine but violates the severity enum.
	bad := `{"clause_analysis": {"risks": [{"severity": "catastrophic"}]}}`
	w := postResult(t, srv, bad)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d: %s", w.Code, w.Body.String())
	}

	w = postResult(t, srv, testAnalysis)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for valid payload, got %d: %s", w.Code, w.Body.String())
	}
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("ws dial: %v", err)
	}
	return conn
}

func readWS(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ws read: %v", err)
	}
	return msg
}

func TestWebSocketStream(t *testing.T) {
	srv := New(":0", Options{GaugeDuration: 300 * time.Millisecond, FPS: 60})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn := dialWS(t, ts)
	defer conn.Close()

	load := wsMessage{Type: wsMsgLoadResult, Data: json.RawMessage(testAnalysis)}
	if err := conn.WriteJSON(load); err != nil {
		t.Fatalf("ws write: %v", err)
	}

	msg := readWS(t, conn)
	if msg.Type != wsMsgResultMeta {
		t.Fatalf("expected result_meta, got %q", msg.Type)
	}
	var meta resultMeta
	if err := json.Unmarshal(msg.Data, &meta); err != nil {
		t.Fatalf("unmarshal meta: %v", err)
	}
	if meta.DocumentName != "services_agreement.pdf" {
		t.Errorf("expected document name, got %q", meta.DocumentName)
	}

	if msg = readWS(t, conn); msg.Type != wsMsgMetrics {
		t.Fatalf("expected metrics, got %q", msg.Type)
	}
	if msg = readWS(t, conn); msg.Type != wsMsgSeries {
		t.Fatalf("expected series, got %q", msg.Type)
	}

	var frames int
	var last wsGaugeFrame
	for {
		msg = readWS(t, conn)
		if msg.Type != wsMsgGaugeFrame {
			t.Fatalf("expected gauge_frame, got %q", msg.Type)
		}
		frames++
		if err := json.Unmarshal(msg.Data, &last); err != nil {
			t.Fatalf("unmarshal frame: %v", err)
		}
		if last.Done {
			break
		}
	}

	if frames < 2 {
		t.Errorf("expected a frame stream, got %d frames", frames)
	}
	if len(last.Gauges) != 3 {
		t.Fatalf("expected 3 gauges, got %d", len(last.Gauges))
	}

	risk := last.Gauges[0]
	if risk.ID != "risk" || risk.Title != "Risk Score" {
		t.Errorf("unexpected first gauge: %q %q", risk.ID, risk.Title)
	}
	if risk.Tone != metrics.ToneDanger {
		t.Errorf("expected danger tone, got %v", risk.Tone)
	}
	if risk.Reading != 73 {
		t.Errorf("expected settled reading 73, got %d", risk.Reading)
	}
	want := streamRing.Offset(72.5)
	if math.Abs(risk.Arc.DashOffset-want) > 1e-6 {
		t.Errorf("expected settled offset %v, got %v", want, risk.Arc.DashOffset)
	}

	if g := last.Gauges[1]; g.ID != "compliance" || g.Tone != metrics.ToneWarning {
		t.Errorf("unexpected compliance gauge: %q %v", g.ID, g.Tone)
	}
	if g := last.Gauges[2]; g.ID != "ambiguity" || g.Tone != metrics.ToneSafe {
		t.Errorf("unexpected ambiguity gauge: %q %v", g.ID, g.Tone)
	}
}

func TestWebSocketBroadcastOnPost(t *testing.T) {
	srv := New(":0", Options{GaugeDuration: 100 * time.Millisecond, FPS: 60})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn := dialWS(t, ts)
	defer conn.Close()

	resp, err := http.Post(ts.URL+"/api/result", "application/json", strings.NewReader(testAnalysis))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	msg := readWS(t, conn)
	if msg.Type != wsMsgResultMeta {
		t.Fatalf("expected result_meta after POST, got %q", msg.Type)
	}
}

func TestWebSocketReplayOnConnect(t *testing.T) {
	srv := New(":0", Options{GaugeDuration: 100 * time.Millisecond, FPS: 60})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/result", "application/json", strings.NewReader(testAnalysis))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()

	// Connecting after the POST still gets the full stream.
	conn := dialWS(t, ts)
	defer conn.Close()

	msg := readWS(t, conn)
	if msg.Type != wsMsgResultMeta {
		t.Fatalf("expected replay on connect, got %q", msg.Type)
	}
}

func TestWebSocketReducedMotion(t *testing.T) {
	srv := New(":0", Options{ReducedMotion: true})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn := dialWS(t, ts)
	defer conn.Close()

	load := wsMessage{Type: wsMsgLoadResult, Data: json.RawMessage(testAnalysis)}
	if err := conn.WriteJSON(load); err != nil {
		t.Fatalf("ws write: %v", err)
	}

	readWS(t, conn) // result_meta
	readWS(t, conn) // metrics
	readWS(t, conn) // series

	msg := readWS(t, conn)
	if msg.Type != wsMsgGaugeFrame {
		t.Fatalf("expected gauge_frame, got %q", msg.Type)
	}
	var frame wsGaugeFrame
	if err := json.Unmarshal(msg.Data, &frame); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	if !frame.Done {
		t.Error("expected a single settled frame under reduced motion")
	}
	want := streamRing.Offset(72.5)
	if math.Abs(frame.Gauges[0].Arc.DashOffset-want) > 1e-6 {
		t.Errorf("expected settled offset %v, got %v", want, frame.Gauges[0].Arc.DashOffset)
	}
}

func TestWebSocketBadPayload(t *testing.T) {
	srv := newTestServer()
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn := dialWS(t, ts)
	defer conn.Close()

	load := wsMessage{Type: wsMsgLoadResult, Data: json.RawMessage(`"not an object"`)}
	if err := conn.WriteJSON(load); err != nil {
		t.Fatalf("ws write: %v", err)
	}

	msg := readWS(t, conn)
	if msg.Type != wsMsgError {
		t.Fatalf("expected error message, got %q", msg.Type)
	}
}

func TestWebSocketUnknownType(t *testing.T) {
	srv := newTestServer()
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn := dialWS(t, ts)
	defer conn.Close()

	if err := conn.WriteJSON(wsMessage{Type: "bogus"}); err != nil {
		t.Fatalf("ws write: %v", err)
	}

	msg := readWS(t, conn)
	if msg.Type != wsMsgError {
		t.Fatalf("expected error message, got %q", msg.Type)
	}
}
