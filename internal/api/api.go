// Package api implements the HTTP API server for clauselens.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/clauselens/clauselens/internal/motion"
	"github.com/clauselens/clauselens/internal/result"
)

var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

const defaultGaugeDuration = 1100 * time.Millisecond

// Options tune how the server animates and checks incoming payloads.
// Zero values fall back to the stock timings.
type Options struct {
	Validate       bool // reject payloads that fail the result schema
	ReducedMotion  bool // settle gauges instantly, single final frame
	GaugeDuration  time.Duration
	RevealDuration time.Duration
	Stagger        time.Duration
	FPS            int
}

func (o Options) normalized() Options {
	if o.GaugeDuration <= 0 {
		o.GaugeDuration = defaultGaugeDuration
	}
	if o.Stagger < 0 {
		o.Stagger = 0
	}
	return o
}

// Server is the clauselens HTTP API server.
type Server struct {
	addr   string
	mux    *http.ServeMux
	server *http.Server
	opts   Options

	animator *motion.Animator

	mu       sync.RWMutex
	current  *result.Analysis
	sessions map[*streamSession]struct{}
}

// New creates a new API server.
func New(addr string, opts Options) *Server {
	s := &Server{
		addr:     addr,
		opts:     opts.normalized(),
		animator: motion.NewAnimator(opts.FPS),
		sessions: make(map[*streamSession]struct{}),
	}
	s.mux = http.NewServeMux()
	s.registerRoutes()
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /{$}", s.handleReport)
	s.mux.HandleFunc("GET /api/result", s.handleGetResult)
	s.mux.HandleFunc("POST /api/result", s.handlePostResult)
	s.mux.HandleFunc("GET /api/metrics", s.handleMetrics)
	s.mux.HandleFunc("GET /api/series", s.handleSeries)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	logger.Info("clauselens server listening", "addr", s.addr)
	return s.server.ListenAndServe()
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Close stops every gauge stream and shuts down the listener.
func (s *Server) Close() error {
	s.animator.Stop()
	return s.server.Close()
}

// currentResult returns the most recently loaded analysis, or nil.
func (s *Server) currentResult() *result.Analysis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// setCurrent installs a new analysis and replays it into every live
// stream session.
func (s *Server) setCurrent(a *result.Analysis) {
	s.mu.Lock()
	s.current = a
	live := make([]*streamSession, 0, len(s.sessions))
	for sess := range s.sessions {
		live = append(live, sess)
	}
	s.mu.Unlock()

	for _, sess := range live {
		sess.load(a)
	}
}

func (s *Server) register(sess *streamSession) {
	s.mu.Lock()
	s.sessions[sess] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) unregister(sess *streamSession) {
	s.mu.Lock()
	delete(s.sessions, sess)
	s.mu.Unlock()
	sess.teardown()
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.Error("json encode", "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// readBody reads the request body whole; schema validation needs the
// raw bytes, not a decoder stream.
func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, fmt.Errorf("empty request body")
	}
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}
