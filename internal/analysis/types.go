// Package analysis implements the consistency-analysis engine: it takes a set
// of sampled LLM responses for one prompt and derives consensus fragments,
// pairwise divergence, structural and conceptual inconsistencies, and a
// categorical recommendation from an externally supplied confidence score.
package analysis

import (
	"encoding/json"
	"fmt"
	"time"
)

// =============================================================================
// Enums
// =============================================================================

// Severity grades how impactful a detected inconsistency is.
type Severity string

const (
	// SeverityLow marks cosmetic or ignorable disagreement.
	SeverityLow Severity = "low"
	// SeverityMedium marks disagreement worth a human glance.
	SeverityMedium Severity = "medium"
	// SeverityHigh marks disagreement that should block unattended use.
	SeverityHigh Severity = "high"
	// SeverityCritical marks disagreement that invalidates the output.
	SeverityCritical Severity = "critical"
)

// String returns the severity as a string.
func (s Severity) String() string {
	return string(s)
}

// IsValid returns true if this is a known severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// InconsistencyType classifies what kind of disagreement was detected.
type InconsistencyType string

const (
	// TypeStructural covers shape-level disagreement such as length spread.
	TypeStructural InconsistencyType = "structural"
	// TypeConceptual covers vocabulary-level disagreement between responses.
	TypeConceptual InconsistencyType = "conceptual"
	// TypeLogical covers contradictory reasoning between responses.
	TypeLogical InconsistencyType = "logical"
	// TypeSecurity covers disagreement on security-relevant behavior.
	TypeSecurity InconsistencyType = "security"
	// TypePerformance covers disagreement on performance characteristics.
	TypePerformance InconsistencyType = "performance"
)

// String returns the type as a string.
func (t InconsistencyType) String() string {
	return string(t)
}

// IsValid returns true if this is a known inconsistency type.
func (t InconsistencyType) IsValid() bool {
	switch t {
	case TypeStructural, TypeConceptual, TypeLogical, TypeSecurity, TypePerformance:
		return true
	}
	return false
}

// ConfidenceBand buckets a confidence score into the four verdict bands.
type ConfidenceBand string

const (
	// BandHigh covers scores >= 0.8.
	BandHigh ConfidenceBand = "high"
	// BandMedium covers scores in [0.6, 0.8).
	BandMedium ConfidenceBand = "medium"
	// BandLow covers scores in [0.4, 0.6).
	BandLow ConfidenceBand = "low"
	// BandVeryLow covers scores below 0.4.
	BandVeryLow ConfidenceBand = "very_low"
)

// String returns the band as a string.
func (b ConfidenceBand) String() string {
	return string(b)
}

// =============================================================================
// Confidence
// =============================================================================

// Confidence is an agreement score in [0.0, 1.0] produced by the external
// scorer. Higher means more stable output across samples.
type Confidence float64

// Validate checks that the confidence is in the valid range [0.0, 1.0].
func (c Confidence) Validate() error {
	if c < 0.0 || c > 1.0 {
		return fmt.Errorf("confidence must be between 0.0 and 1.0, got %f", float64(c))
	}
	return nil
}

// Band returns the verdict band this score falls into. Band lower bounds are
// inclusive: 0.8 is high, 0.6 is medium, 0.4 is low.
func (c Confidence) Band() ConfidenceBand {
	switch {
	case c >= 0.8:
		return BandHigh
	case c >= 0.6:
		return BandMedium
	case c >= 0.4:
		return BandLow
	default:
		return BandVeryLow
	}
}

// UnmarshalJSON rejects out-of-range values at decode time so malformed
// payloads fail before they reach the engine.
func (c *Confidence) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("confidence must be a number: %w", err)
	}
	parsed := Confidence(f)
	if err := parsed.Validate(); err != nil {
		return err
	}
	*c = parsed
	return nil
}

// =============================================================================
// Analysis records
// =============================================================================

// SampleSet is the ordered collection of responses sampled for one prompt.
// A set produced by the sampler always has length equal to the requested
// sample count, which is at least 2.
type SampleSet []string

// Inconsistency is one detected disagreement among the sampled responses.
// Values are never mutated after the detector produces them.
type Inconsistency struct {
	// Type classifies the disagreement.
	Type InconsistencyType `json:"type" yaml:"type"`

	// Severity grades the impact.
	Severity Severity `json:"severity" yaml:"severity"`

	// Description is a human-readable summary of the disagreement.
	Description string `json:"description" yaml:"description"`

	// Details carries check-specific payload such as raw lengths or the
	// divergent keyword and its presence frequency.
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`

	// Indices lists the affected response positions when the disagreement is
	// attributable to specific samples.
	Indices []int `json:"indices,omitempty" yaml:"indices,omitempty"`
}

// DivergencePair records significant disagreement between two responses.
type DivergencePair struct {
	// I is the lower response index of the pair.
	I int `json:"response_a" yaml:"response_a"`

	// J is the higher response index of the pair. Always I < J.
	J int `json:"response_b" yaml:"response_b"`

	// DiffLines is the number of unified diff records between the two
	// responses, headers and context included.
	DiffLines int `json:"diff_lines" yaml:"diff_lines"`

	// Similarity is the character-level similarity ratio in [0, 1].
	Similarity float64 `json:"similarity" yaml:"similarity"`
}

// AnalysisResult aggregates everything derived from one analyze call. It is
// built once per call, owned by the caller, and never cached or shared.
type AnalysisResult struct {
	// Prompt is the analyzed prompt text.
	Prompt string `json:"prompt" yaml:"prompt"`

	// Responses are the sampled completions, in sampler order.
	Responses SampleSet `json:"responses,omitempty" yaml:"responses,omitempty"`

	// Confidence is the opaque agreement score from the external scorer.
	Confidence Confidence `json:"confidence_score" yaml:"confidence_score"`

	// Inconsistencies lists structural and conceptual disagreements.
	Inconsistencies []Inconsistency `json:"inconsistencies" yaml:"inconsistencies"`

	// Consensus lists lines present verbatim in every response.
	Consensus []string `json:"consensus_parts" yaml:"consensus_parts"`

	// Divergences lists response pairs whose diff crossed the significance
	// threshold.
	Divergences []DivergencePair `json:"divergent_parts" yaml:"divergent_parts"`

	// Recommendation is the categorical verdict string.
	Recommendation string `json:"recommendation" yaml:"recommendation"`

	// Model identifies the model that produced the samples.
	Model string `json:"model" yaml:"model"`

	// SampleCount is the number of responses requested and analyzed.
	SampleCount int `json:"num_samples" yaml:"num_samples"`

	// Elapsed is the wall time of the whole analyze call, external call
	// included.
	Elapsed time.Duration `json:"elapsed,omitempty" yaml:"elapsed,omitempty"`

	// GeneratedAt is when the analysis completed.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}

// HighSeverityCount returns how many inconsistencies carry high severity.
func HighSeverityCount(issues []Inconsistency) int {
	n := 0
	for _, issue := range issues {
		if issue.Severity == SeverityHigh {
			n++
		}
	}
	return n
}

// =============================================================================
// Tuning parameters
// =============================================================================

// Params holds the detector thresholds. The defaults are the contract; the
// knobs exist so operators can tighten or relax them deliberately.
type Params struct {
	// DivergenceThreshold is the unified diff record count a pair must exceed
	// to be flagged as divergent.
	DivergenceThreshold int `json:"divergence_threshold" yaml:"divergence_threshold"`

	// KeywordMinLen is the token length a word must exceed to count as a
	// keyword in the conceptual check.
	KeywordMinLen int `json:"keyword_min_len" yaml:"keyword_min_len"`

	// VarianceFactor scales the mean length when deciding whether the length
	// variance is structurally significant.
	VarianceFactor float64 `json:"variance_factor" yaml:"variance_factor"`
}

// DefaultParams returns the standard detector thresholds.
func DefaultParams() Params {
	return Params{
		DivergenceThreshold: 5,
		KeywordMinLen:       5,
		VarianceFactor:      0.5,
	}
}

// Validate checks that all thresholds are usable.
func (p Params) Validate() error {
	if p.DivergenceThreshold < 0 {
		return fmt.Errorf("divergence threshold must be >= 0, got %d", p.DivergenceThreshold)
	}
	if p.KeywordMinLen < 1 {
		return fmt.Errorf("keyword min length must be >= 1, got %d", p.KeywordMinLen)
	}
	if p.VarianceFactor <= 0 {
		return fmt.Errorf("variance factor must be > 0, got %f", p.VarianceFactor)
	}
	return nil
}
