package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dicklesworthstone/concord/internal/sampler"
)

// Sample count bounds accepted by Analyze.
const (
	MinSamples = 2
	MaxSamples = 10

	// DefaultSamples is the sample count used when the caller does not choose.
	DefaultSamples = 5
)

// Analyzer composes the detectors into one analysis pipeline. The sampler is
// its only external dependency and is injected at construction; an Analyzer
// holds no mutable state, so concurrent Analyze calls are safe.
type Analyzer struct {
	sampler sampler.Sampler
	params  Params
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithParams overrides the detector thresholds.
func WithParams(p Params) Option {
	return func(a *Analyzer) {
		a.params = p
	}
}

// WithLogger sets the logger for pipeline telemetry.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// withClock overrides the timestamp source in tests.
func withClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		a.now = now
	}
}

// New builds an Analyzer around the given sampler.
func New(s sampler.Sampler, opts ...Option) *Analyzer {
	a := &Analyzer{
		sampler: s,
		params:  DefaultParams(),
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Params returns the detector thresholds in use.
func (a *Analyzer) Params() Params {
	return a.params
}

// Analyze samples sampleCount responses for the prompt, runs the consensus,
// divergence, and inconsistency detectors over them, and folds the external
// confidence score into a recommendation. Input is validated before the
// external call; a sampler failure is wrapped once and surfaced without
// retry. The returned result is owned by the caller and never reused.
func (a *Analyzer) Analyze(ctx context.Context, prompt string, sampleCount int) (*AnalysisResult, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, &ValidationError{Field: "prompt", Reason: "must not be empty or whitespace only"}
	}
	if sampleCount < MinSamples || sampleCount > MaxSamples {
		return nil, &ValidationError{
			Field:  "num_samples",
			Reason: fmt.Sprintf("must be between %d and %d", MinSamples, MaxSamples),
		}
	}

	start := a.now()
	sampled, err := a.sampler.Sample(ctx, prompt, sampleCount)
	if err != nil {
		return nil, &ExternalServiceError{Stage: "sampling", Err: err}
	}
	if err := sampled.Validate(sampleCount); err != nil {
		return nil, &ExternalServiceError{Stage: "sampling", Err: err}
	}

	samples := SampleSet(sampled.Responses)
	confidence := Confidence(sampled.Confidence)
	issues := DetectInconsistencies(samples, a.params)

	result := &AnalysisResult{
		Prompt:          prompt,
		Responses:       samples,
		Confidence:      confidence,
		Inconsistencies: issues,
		Consensus:       ExtractConsensus(samples),
		Divergences:     DetectDivergence(samples, a.params),
		Recommendation:  Recommend(confidence, issues),
		Model:           sampled.Model,
		SampleCount:     sampleCount,
		Elapsed:         a.now().Sub(start),
		GeneratedAt:     a.now(),
	}

	a.logger.Debug("analysis complete",
		"prompt_len", len(prompt),
		"samples", sampleCount,
		"confidence", float64(confidence),
		"inconsistencies", len(result.Inconsistencies),
		"consensus_lines", len(result.Consensus),
		"divergent_pairs", len(result.Divergences),
		"elapsed", result.Elapsed)

	return result, nil
}
