// Package serve provides the HTTP confidence gate.
// server.go implements the router, response envelopes, and lifecycle.
package serve

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dicklesworthstone/concord/internal/analysis"
	"github.com/Dicklesworthstone/concord/internal/config"
	"github.com/Dicklesworthstone/concord/internal/output"
	"github.com/Dicklesworthstone/concord/internal/policy"
)

// Error codes returned in error envelopes.
const (
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeValidation  = "VALIDATION_FAILED"
	ErrCodeUpstream    = "SAMPLING_FAILED"
	ErrCodeInternal    = "INTERNAL_ERROR"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeUnavailable = "SERVICE_UNAVAILABLE"
)

// ServiceName identifies this service in health and index responses.
const ServiceName = "concord-gate"

// Server is the HTTP confidence gate.
type Server struct {
	cfg      *config.Config
	analyzer *analysis.Analyzer
	policy   *policy.Policy
	hub      *Hub
	version  string

	startedAt time.Time
	listener  net.Listener
}

// Option configures a Server.
type Option func(*Server)

// WithVersion sets the version string reported by the index endpoint.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// New creates a gate server around an analyzer and a policy.
func New(cfg *config.Config, analyzer *analysis.Analyzer, pol *policy.Policy, opts ...Option) *Server {
	s := &Server{
		cfg:       cfg,
		analyzer:  analyzer,
		policy:    pol,
		hub:       NewHub(),
		version:   "dev",
		startedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(requestLogMiddleware)

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/evaluate", s.handleEvaluate)
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/events", s.handleEvents)
	})

	return r
}

// Start runs the server until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.Addr(), err)
	}
	s.listener = ln
	s.startedAt = time.Now()

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	slog.Info("gate server listening", "addr", ln.Addr().String(), "service", ServiceName)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.hub.Close()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		slog.Info("gate server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// ==================== Request ID ====================

type contextKey string

const requestIDKey contextKey = "request_id"

// requestIDFromContext returns the request ID, or empty when absent.
func requestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// newRequestID creates a short unique request identifier.
func newRequestID() string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%d", time.Now().UnixNano())))
	return "req-" + hex.EncodeToString(hash[:8])
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = newRequestID()
		}
		w.Header().Set("X-Request-ID", reqID)
		ctx := context.WithValue(r.Context(), requestIDKey, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestIDFromContext(r.Context()),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// ==================== Response envelopes ====================

// successEnvelope wraps all successful API responses.
type successEnvelope struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// errorEnvelope wraps all error API responses.
type errorEnvelope struct {
	Success   bool        `json:"success"`
	Error     errorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type errorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func writeSuccessResponse(w http.ResponseWriter, status int, data any, reqID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	envelope := successEnvelope{
		Success:   true,
		Data:      data,
		RequestID: reqID,
		Timestamp: output.Timestamp(),
	}
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		slog.Error("encoding response", "error", err, "request_id", reqID)
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string, details map[string]any, reqID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	envelope := errorEnvelope{
		Success: false,
		Error: errorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
		RequestID: reqID,
		Timestamp: output.Timestamp(),
	}
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		slog.Error("encoding error response", "error", err, "request_id", reqID)
	}
}
