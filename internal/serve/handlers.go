// handlers.go implements the gate API endpoints.
package serve

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/Dicklesworthstone/concord/internal/analysis"
	"github.com/Dicklesworthstone/concord/internal/policy"
)

// EvaluateRequest is the request body for POST /api/evaluate and
// POST /api/analyze.
type EvaluateRequest struct {
	// Prompt is the text to sample and score. Required, non-whitespace.
	Prompt string `json:"prompt"`
	// MinConfidence overrides the gate threshold. When omitted the policy
	// threshold for the prompt applies.
	MinConfidence *float64 `json:"min_confidence,omitempty"`
	// NumSamples is the number of completions to collect, 2 to 10.
	NumSamples int `json:"num_samples,omitempty"`
}

func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, reqID string) (*EvaluateRequest, bool) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, ErrCodeBadRequest,
			"Invalid request body", nil, reqID)
		return nil, false
	}

	if req.NumSamples == 0 {
		req.NumSamples = s.cfg.Analysis.Samples
	}
	if req.MinConfidence != nil && (*req.MinConfidence < 0 || *req.MinConfidence > 1) {
		writeErrorResponse(w, http.StatusBadRequest, ErrCodeValidation,
			fmt.Sprintf("min_confidence %f outside [0.0, 1.0]", *req.MinConfidence), nil, reqID)
		return nil, false
	}
	return &req, true
}

// gateThreshold resolves the threshold for a prompt: an explicit request
// value wins, then the policy rules, then the configured default.
func (s *Server) gateThreshold(req *EvaluateRequest) float64 {
	if req.MinConfidence != nil {
		return *req.MinConfidence
	}
	if s.policy != nil {
		return s.policy.Threshold(req.Prompt)
	}
	return s.cfg.Gate.MinConfidence
}

// writeAnalysisError maps analyzer failures onto HTTP statuses.
func writeAnalysisError(w http.ResponseWriter, err error, reqID string) {
	switch {
	case analysis.IsValidation(err):
		writeErrorResponse(w, http.StatusBadRequest, ErrCodeValidation,
			err.Error(), nil, reqID)
	case analysis.IsExternalService(err):
		writeErrorResponse(w, http.StatusBadGateway, ErrCodeUpstream,
			"Sampling failed", map[string]any{"error": err.Error()}, reqID)
	default:
		writeErrorResponse(w, http.StatusInternalServerError, ErrCodeInternal,
			fmt.Sprintf("Evaluation failed: %v", err), nil, reqID)
	}
}

// handleEvaluate runs the full gate: sample, score, enforce.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFromContext(r.Context())

	req, ok := s.decodeRequest(w, r, reqID)
	if !ok {
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req.Prompt, req.NumSamples)
	if err != nil {
		slog.Warn("evaluation failed", "request_id", reqID, "error", err)
		writeAnalysisError(w, err, reqID)
		return
	}

	threshold := s.gateThreshold(req)
	decision := policy.Enforce(float64(result.Confidence), threshold)

	slog.Info("evaluation completed",
		"request_id", reqID,
		"confidence", float64(result.Confidence),
		"threshold", threshold,
		"passed", decision.Passed,
	)

	s.hub.Publish("gate", "evaluation.completed", map[string]any{
		"prompt_hash":      promptHash(req.Prompt),
		"confidence_score": float64(result.Confidence),
		"threshold":        threshold,
		"passed":           decision.Passed,
	})

	data := map[string]any{
		"confidence_score": float64(result.Confidence),
		"threshold":        threshold,
		"passed":           decision.Passed,
	}
	if !decision.Passed {
		data["reason"] = decision.Reason
	}
	writeSuccessResponse(w, http.StatusOK, data, reqID)
}

// handleAnalyze runs a full analysis and returns the complete result.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFromContext(r.Context())

	req, ok := s.decodeRequest(w, r, reqID)
	if !ok {
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req.Prompt, req.NumSamples)
	if err != nil {
		slog.Warn("analysis failed", "request_id", reqID, "error", err)
		writeAnalysisError(w, err, reqID)
		return
	}

	slog.Info("analysis completed",
		"request_id", reqID,
		"confidence", float64(result.Confidence),
		"inconsistencies", len(result.Inconsistencies),
	)
	writeSuccessResponse(w, http.StatusOK, result, reqID)
}

// handleHealth reports liveness plus process stats.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFromContext(r.Context())

	data := map[string]any{
		"status":         "healthy",
		"service":        ServiceName,
		"version":        s.version,
		"uptime_seconds": int64(time.Since(s.startedAt).Seconds()),
		"goroutines":     runtime.NumGoroutine(),
	}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if cpu, err := proc.CPUPercent(); err == nil {
			data["cpu_percent"] = cpu
		}
		if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
			data["memory_mb"] = float64(mem.RSS) / (1024 * 1024)
		}
	}

	writeSuccessResponse(w, http.StatusOK, data, reqID)
}

// handleIndex describes the service.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFromContext(r.Context())

	writeSuccessResponse(w, http.StatusOK, map[string]any{
		"service": ServiceName,
		"version": s.version,
		"endpoints": []string{
			"POST /api/evaluate",
			"POST /api/analyze",
			"GET /api/events",
			"GET /health",
		},
	}, reqID)
}

// promptHash returns a short stable fingerprint so events never carry the
// prompt text itself.
func promptHash(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(hash[:8])
}
