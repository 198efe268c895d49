package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/clauselens/clauselens/internal/gauge"
	"github.com/clauselens/clauselens/internal/metrics"
	"github.com/clauselens/clauselens/internal/motion"
	"github.com/clauselens/clauselens/internal/result"
	"github.com/clauselens/clauselens/internal/series"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 64,
	WriteBufferSize: 1024 * 64,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local dev; restrict in production
	},
}

// WebSocket message types from client.
const (
	wsMsgLoadResult = "load_result"
)

// WebSocket message types to client.
const (
	wsMsgResultMeta = "result_meta"
	wsMsgMetrics    = "metrics"
	wsMsgSeries     = "series"
	wsMsgGaugeFrame = "gauge_frame"
	wsMsgError      = "error"
)

// wsMessage is the envelope for WebSocket messages in both directions.
type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// wsGaugeFrame carries one animation step across all three gauges.
type wsGaugeFrame struct {
	Gauges []wsGaugeState `json:"gauges"`
	Done   bool           `json:"done"`
}

// wsGaugeState is one gauge's arc and label at a single frame.
type wsGaugeState struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Tone    metrics.Tone    `json:"tone"`
	Score   float64         `json:"score"`
	Reading int             `json:"reading"`
	Arc     gauge.ArcParams `json:"arc"`
}

var streamRing = gauge.Ring{Size: 180, Stroke: 14}

var (
	gaugeIDs    = [3]string{"risk", "compliance", "ambiguity"}
	gaugeTitles = [3]string{"Risk Score", "Compliance", "Ambiguity"}
)

// streamSession holds the gauge animation state for one WebSocket
// connection. A generation counter ties every frame to the load that
// started it, so frames from a superseded animation are dropped instead
// of interleaving with the new one.
type streamSession struct {
	srv  *Server
	conn *websocket.Conn

	writeMu sync.Mutex // gorilla conns allow one concurrent writer

	mu     sync.Mutex
	gauges [3]*gauge.State
	handle *motion.Handle
	gen    uint64
}

func newStreamSession(srv *Server, conn *websocket.Conn) *streamSession {
	ss := &streamSession{srv: srv, conn: conn}
	for i := range ss.gauges {
		g := gauge.New(streamRing, srv.opts.GaugeDuration)
		g.Title = gaugeTitles[i]
		ss.gauges[i] = g
	}
	return ss
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	session := newStreamSession(s, conn)
	s.register(session)
	defer s.unregister(session)

	// A client joining after a result was posted gets the stream replayed.
	if a := s.currentResult(); a != nil {
		session.load(a)
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read", "error", err)
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			session.sendError("invalid message format")
			continue
		}

		switch msg.Type {
		case wsMsgLoadResult:
			session.handleLoad(msg.Data)
		default:
			session.sendError("unknown message type: " + msg.Type)
		}
	}
}

// handleLoad ingests an analysis sent over the socket. The result
// becomes the server's current one, so every live session replays it,
// this one included.
func (ss *streamSession) handleLoad(data json.RawMessage) {
	if len(data) == 0 {
		ss.sendError("load_result needs an analysis payload")
		return
	}

	a, err := result.Decode(bytes.NewReader(data))
	if err != nil {
		ss.sendError("decoding analysis: " + err.Error())
		return
	}

	if ss.srv.opts.Validate {
		if err := result.Validate(data); err != nil {
			ss.sendError("schema: " + err.Error())
			return
		}
	}

	ss.srv.setCurrent(a)
}

// load replays an analysis into this session: metadata, derived views,
// then gauge frames until the rings settle. A load arriving mid-flight
// cancels the running animation and retargets the gauges from wherever
// they are.
func (ss *streamSession) load(a *result.Analysis) {
	m := metrics.Derive(a)

	ss.send(wsMsgResultMeta, metaFor(a, m))
	ss.send(wsMsgMetrics, m)
	ss.send(wsMsgSeries, series.All(m))

	now := time.Now()
	scores := [3]float64{m.RiskScore, m.ComplianceScore, m.AmbiguityScore}
	tones := [3]metrics.Tone{m.RiskTone, m.ComplianceTone, m.AmbiguityTone}

	ss.mu.Lock()
	ss.gen++
	gen := ss.gen
	for i, g := range ss.gauges {
		g.Tone = tones[i]
		g.SetScore(now, scores[i])
	}
	if ss.handle != nil {
		ss.handle.Cancel()
		ss.handle = nil
	}

	if ss.srv.opts.ReducedMotion {
		for _, g := range ss.gauges {
			g.Settle(now)
		}
		ss.mu.Unlock()
		ss.sendFrame(gen, true)
		return
	}

	d := ss.srv.opts.GaugeDuration
	ss.handle = ss.srv.animator.Animate(0, 1, d, motion.Linear, func(_ float64, done bool) {
		ss.sendFrame(gen, done)
	})
	ss.mu.Unlock()
}

// sendFrame snapshots all three gauges at this instant and ships one
// gauge_frame message. Frames from a superseded generation are dropped.
func (ss *streamSession) sendFrame(gen uint64, done bool) {
	now := time.Now()

	ss.mu.Lock()
	if gen != ss.gen {
		ss.mu.Unlock()
		return
	}
	frame := wsGaugeFrame{Done: done}
	for i, g := range ss.gauges {
		frame.Gauges = append(frame.Gauges, wsGaugeState{
			ID:      gaugeIDs[i],
			Title:   g.Title,
			Tone:    g.Tone,
			Score:   g.Score(),
			Reading: g.Reading(now),
			Arc:     g.ArcAt(now),
		})
	}
	ss.mu.Unlock()

	ss.send(wsMsgGaugeFrame, frame)
}

// teardown cancels any running animation when the connection goes away.
func (ss *streamSession) teardown() {
	ss.mu.Lock()
	h := ss.handle
	ss.handle = nil
	ss.gen++
	ss.mu.Unlock()

	if h != nil {
		h.Cancel()
	}
}

func (ss *streamSession) send(msgType string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		logger.Error("ws marshal", "error", err)
		return
	}

	ss.writeMu.Lock()
	defer ss.writeMu.Unlock()
	if err := ss.conn.WriteJSON(wsMessage{Type: msgType, Data: raw}); err != nil {
		logger.Error("ws write", "error", err)
	}
}

func (ss *streamSession) sendError(errMsg string) {
	ss.send(wsMsgError, map[string]string{"message": errMsg})
}
