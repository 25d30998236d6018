// Package benchmark runs a categorized prompt suite through the consistency
// analyzer and aggregates per-category statistics. Individual prompt failures
// are recorded in the results rather than aborting the run.
package benchmark

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/Dicklesworthstone/concord/internal/analysis"
)

//go:embed suite.json
var defaultSuite []byte

// Suite maps category names to the prompts exercised under them.
type Suite map[string][]string

// DefaultSuite returns the built-in prompt suite.
func DefaultSuite() (Suite, error) {
	return parseSuite(defaultSuite)
}

// LoadSuite reads a suite from a JSON file mapping category names to prompt
// lists.
func LoadSuite(path string) (Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading benchmark suite: %w", err)
	}
	return parseSuite(data)
}

func parseSuite(data []byte) (Suite, error) {
	var s Suite
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing benchmark suite: %w", err)
	}
	if len(s) == 0 {
		return nil, errors.New("benchmark suite has no categories")
	}
	for name, prompts := range s {
		if len(prompts) == 0 {
			return nil, fmt.Errorf("benchmark category %q has no prompts", name)
		}
	}
	return s, nil
}

// Categories returns the category names in sorted order.
func (s Suite) Categories() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Size returns the total prompt count across all categories.
func (s Suite) Size() int {
	n := 0
	for _, prompts := range s {
		n += len(prompts)
	}
	return n
}

// PromptResult is the outcome for one benchmarked prompt.
type PromptResult struct {
	Prompt          string  `json:"prompt"`
	Confidence      float64 `json:"confidence"`
	Inconsistencies int     `json:"inconsistencies"`
	Recommendation  string  `json:"recommendation,omitempty"`
	Error           string  `json:"error,omitempty"`
}

// CategoryResult aggregates every prompt in one category.
type CategoryResult struct {
	Total             int            `json:"total"`
	HighConfidence    int            `json:"high_confidence"`
	MediumConfidence  int            `json:"medium_confidence"`
	LowConfidence     int            `json:"low_confidence"`
	AverageConfidence float64        `json:"average_confidence"`
	FlaggedIssues     int            `json:"flagged_issues"`
	Failures          int            `json:"failures,omitempty"`
	Prompts           []PromptResult `json:"prompts"`
}

// Result is a complete benchmark run.
type Result struct {
	Timestamp  time.Time                  `json:"timestamp"`
	Model      string                     `json:"model"`
	NumSamples int                        `json:"num_samples"`
	Categories map[string]*CategoryResult `json:"categories"`
}

// OverallMean is the prompt-weighted mean confidence across categories.
// Errored prompts are excluded.
func (r *Result) OverallMean() float64 {
	var scores []float64
	for _, cat := range r.Categories {
		for _, p := range cat.Prompts {
			if p.Error == "" {
				scores = append(scores, p.Confidence)
			}
		}
	}
	if len(scores) == 0 {
		return 0
	}
	return stat.Mean(scores, nil)
}

// WriteFile writes the full result as indented JSON.
func (r *Result) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding benchmark results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing benchmark results: %w", err)
	}
	return nil
}

// DefaultResultsPath names the results file for a run started at now.
func DefaultResultsPath(now time.Time) string {
	return fmt.Sprintf("benchmark_results_%s.json", now.Format("20060102_150405"))
}

// Progress is called after each prompt completes. index counts prompts across
// the whole run, starting at 1.
type Progress func(category string, index, total int, res PromptResult)

// Runner executes suites against an analyzer.
type Runner struct {
	analyzer *analysis.Analyzer
	model    string
	samples  int
}

// NewRunner builds a Runner. model is recorded in results only; the analyzer
// decides what actually gets sampled.
func NewRunner(analyzer *analysis.Analyzer, model string, samples int) *Runner {
	return &Runner{analyzer: analyzer, model: model, samples: samples}
}

// Run benchmarks every category in sorted order. A canceled context stops the
// run after the in-flight prompt and returns the partial result alongside the
// context error.
func (r *Runner) Run(ctx context.Context, suite Suite, progress Progress) (*Result, error) {
	result := &Result{
		Timestamp:  time.Now().UTC(),
		Model:      r.model,
		NumSamples: r.samples,
		Categories: make(map[string]*CategoryResult, len(suite)),
	}

	total := suite.Size()
	index := 0
	for _, category := range suite.Categories() {
		prompts := suite[category]
		cat := &CategoryResult{
			Total:   len(prompts),
			Prompts: make([]PromptResult, 0, len(prompts)),
		}
		result.Categories[category] = cat

		var scores []float64
		for _, prompt := range prompts {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			index++

			res := r.runPrompt(ctx, prompt)
			cat.Prompts = append(cat.Prompts, res)

			if res.Error != "" {
				cat.Failures++
			} else {
				scores = append(scores, res.Confidence)
				switch {
				case res.Confidence >= 0.8:
					cat.HighConfidence++
				case res.Confidence >= 0.6:
					cat.MediumConfidence++
				default:
					cat.LowConfidence++
				}
				if res.Inconsistencies > 0 {
					cat.FlaggedIssues++
				}
			}

			if progress != nil {
				progress(category, index, total, res)
			}
		}

		if len(scores) > 0 {
			cat.AverageConfidence = stat.Mean(scores, nil)
		}
	}

	return result, nil
}

func (r *Runner) runPrompt(ctx context.Context, prompt string) PromptResult {
	a, err := r.analyzer.Analyze(ctx, prompt, r.samples)
	if err != nil {
		return PromptResult{Prompt: prompt, Error: err.Error()}
	}
	return PromptResult{
		Prompt:          prompt,
		Confidence:      float64(a.Confidence),
		Inconsistencies: len(a.Inconsistencies),
		Recommendation:  a.Recommendation,
	}
}
