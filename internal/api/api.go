// Package api implements the HTTP API server for codelens.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sprite-ai/codelens/internal/assist"
	"github.com/sprite-ai/codelens/internal/model"
)

// maxBodyBytes caps request bodies; snippets are text, not uploads.
const maxBodyBytes = 1 << 20

// Server is the codelens HTTP API server.
type Server struct {
	addr    string
	mux     *http.ServeMux
	handler http.Handler
	server  *http.Server
	svc     *assist.Service
	logger  *zap.Logger
}

// New creates a new API server backed by svc.
func New(addr string, svc *assist.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{addr: addr, svc: svc, logger: logger}
	s.mux = http.NewServeMux()
	s.registerRoutes()
	s.handler = chain(s.mux, logger)
	// No write timeout: a handler waits on the model for as long as the
	// gateway client allows.
	s.server = &http.Server{
		Addr:        addr,
		Handler:     s.handler,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	for _, op := range model.Operations {
		s.mux.HandleFunc("POST /api/"+op.String(), s.handleOperation(op))
	}
	s.mux.HandleFunc("GET /api/ws", s.handleWebSocket)
	s.mux.Handle("GET /metrics", promhttp.Handler())
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.logger.Info("codelens API server listening",
		zap.String("addr", s.addr),
		zap.String("gateway", s.svc.Provider()),
	)
	return s.server.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler, middleware included, for testing.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.logger.Error("json encode error", zap.Error(err))
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

type errorResponse struct {
	Error string `json:"error"`
}

// readJSON decodes a JSON request body into v.
func readJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}
