// Package server exposes the analyses over HTTP next to the health and
// Prometheus endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/vietddude/sniffer/internal/analysis"
	"github.com/vietddude/sniffer/internal/core/config"
	"github.com/vietddude/sniffer/internal/core/domain"
)

// maxBodyBytes bounds a request body, payload included.
const maxBodyBytes = 64 << 20

// Analyzer decodes and analyzes a request of the given kind.
type Analyzer interface {
	Handle(ctx context.Context, kind string, body io.Reader) (*domain.Report, error)
}

// Server provides the analysis API.
type Server struct {
	analyzer Analyzer
	limiter  *rate.Limiter
	server   *http.Server
}

// New creates a server. A zero rate limit disables throttling.
func New(analyzer Analyzer, cfg config.ServerConfig) *Server {
	s := &Server{analyzer: analyzer}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.Handler(),
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("POST /v1/analyze/{kind}", s.throttle(http.HandlerFunc(s.handleAnalyze)))
	return mux
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) throttle(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	report, err := s.analyzer.Handle(r.Context(), kind, body)
	if err != nil {
		status := statusOf(err)
		if status == http.StatusInternalServerError {
			slog.Error("Analysis failed", "kind", kind, "error", err)
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, analysis.ErrUnknownKind):
		return http.StatusNotFound
	case errors.Is(err, analysis.ErrNoAddresses),
		errors.Is(err, analysis.ErrInvalidBlockRange),
		errors.Is(err, analysis.ErrMissingArgument),
		errors.Is(err, analysis.ErrMalformedRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("Failed to write response", "error", err)
	}
}
