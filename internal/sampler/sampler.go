// Package sampler defines the generation/scoring boundary: a collaborator
// that produces n candidate completions for a prompt in one batched call,
// together with one opaque agreement score over them. The analysis engine
// treats the score as a black box; implementations own its math.
package sampler

import (
	"context"
	"fmt"
)

// Result is the outcome of one batched sampling call.
type Result struct {
	// Responses holds exactly the requested number of completions, in
	// generation order.
	Responses []string

	// Confidence is the agreement score over the responses, in [0.0, 1.0].
	Confidence float64

	// Model identifies the model that produced the responses.
	Model string
}

// Validate checks the collaborator contract: n responses and an in-range score.
func (r *Result) Validate(n int) error {
	if len(r.Responses) != n {
		return fmt.Errorf("expected %d responses, got %d", n, len(r.Responses))
	}
	if r.Confidence < 0.0 || r.Confidence > 1.0 {
		return fmt.Errorf("confidence %f outside [0.0, 1.0]", r.Confidence)
	}
	return nil
}

// Sampler generates candidate responses and scores their agreement. One call
// covers the whole sample set; implementations batch internally rather than
// being called once per sample.
type Sampler interface {
	Sample(ctx context.Context, prompt string, n int) (*Result, error)
}

// Static is a deterministic Sampler for offline runs and tests. It cycles
// through the canned responses to fill the requested count and returns the
// fixed score.
type Static struct {
	// Responses are the canned completions to cycle through.
	Responses []string

	// Confidence is the fixed agreement score to report.
	Confidence float64

	// Model is the reported model identifier. Defaults to "static".
	Model string

	// Err, when set, is returned instead of a result.
	Err error
}

// Sample implements Sampler.
func (s *Static) Sample(ctx context.Context, prompt string, n int) (*Result, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.Responses) == 0 {
		return nil, fmt.Errorf("static sampler has no responses")
	}

	responses := make([]string, n)
	for i := 0; i < n; i++ {
		responses[i] = s.Responses[i%len(s.Responses)]
	}

	model := s.Model
	if model == "" {
		model = "static"
	}
	return &Result{Responses: responses, Confidence: s.Confidence, Model: model}, nil
}
