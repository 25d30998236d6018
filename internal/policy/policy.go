// Package policy enforces confidence thresholds on gate decisions, with
// optional per-prompt threshold overrides loaded from a YAML rule file.
package policy

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// DefaultPolicyPath is the default location for the policy file.
const DefaultPolicyPath = ".concord/policy.yaml"

// DefaultMinConfidence is the threshold applied when no rule matches and the
// caller supplies none.
const DefaultMinConfidence = 0.6

// Rule raises (or lowers) the required confidence for prompts matching a
// pattern.
type Rule struct {
	Pattern       string  `yaml:"pattern"`
	MinConfidence float64 `yaml:"min_confidence"`
	Reason        string  `yaml:"reason,omitempty"`
	regex         *regexp.Regexp
}

// Policy holds the threshold configuration for the gate.
type Policy struct {
	Version       int     `yaml:"version"`
	MinConfidence float64 `yaml:"min_confidence"`
	Rules         []Rule  `yaml:"rules"`
}

// Match reports which rule set the threshold for a prompt.
type Match struct {
	Pattern       string
	MinConfidence float64
	Reason        string
}

// Decision is the outcome of enforcing a threshold against a score.
type Decision struct {
	// Passed is true when the score meets the threshold. Equal passes.
	Passed bool `json:"passed" yaml:"passed"`

	// Reason is populated only on failure.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Enforce checks a confidence score against a threshold. A score equal to the
// threshold passes; the failure reason carries both values at two decimals.
func Enforce(score, threshold float64) Decision {
	if score < threshold {
		return Decision{
			Passed: false,
			Reason: fmt.Sprintf("Output confidence %.2f is below required threshold %.2f",
				score, threshold),
		}
	}
	return Decision{Passed: true}
}

// Load reads and parses a policy file from the given path.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy file: %w", err)
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing policy file: %w", err)
	}
	if p.MinConfidence == 0 {
		p.MinConfidence = DefaultMinConfidence
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadOrDefault loads the policy from the default path, preferring the home
// directory copy over the working directory, or returns the built-in default
// policy when neither exists.
func LoadOrDefault() (*Policy, error) {
	path := DefaultPolicyPath

	if home, err := os.UserHomeDir(); err == nil {
		homePath := filepath.Join(home, DefaultPolicyPath)
		if _, err := os.Stat(homePath); err == nil {
			path = homePath
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Default returns the built-in policy: the standard threshold plus stricter
// requirements for prompt classes that sample unstably in practice.
func Default() *Policy {
	p := &Policy{
		Version:       1,
		MinConfidence: DefaultMinConfidence,
		Rules: []Rule{
			{
				Pattern:       `(?i)\b(auth|password|token|secret|crypt)`,
				MinConfidence: 0.8,
				Reason:        "Security-sensitive prompts require strong agreement",
			},
			{
				Pattern:       `(?i)\b(migration|drop table|truncate|schema change)`,
				MinConfidence: 0.75,
				Reason:        "Schema-changing code requires review-grade agreement",
			},
		},
	}
	// Hardcoded patterns; compile cannot fail here.
	_ = p.compile()
	return p
}

// compile compiles all rule patterns.
func (p *Policy) compile() error {
	for i := range p.Rules {
		re, err := regexp.Compile(p.Rules[i].Pattern)
		if err != nil {
			return fmt.Errorf("invalid rule pattern %q: %w", p.Rules[i].Pattern, err)
		}
		p.Rules[i].regex = re
	}
	return nil
}

// Check returns the first rule matching the prompt, or nil when the default
// threshold applies. Rules are evaluated in file order.
func (p *Policy) Check(prompt string) *Match {
	for _, rule := range p.Rules {
		if rule.regex != nil && rule.regex.MatchString(prompt) {
			return &Match{
				Pattern:       rule.Pattern,
				MinConfidence: rule.MinConfidence,
				Reason:        rule.Reason,
			}
		}
	}
	return nil
}

// Threshold returns the confidence a prompt must reach: the first matching
// rule's threshold, else the policy default.
func (p *Policy) Threshold(prompt string) float64 {
	if match := p.Check(prompt); match != nil {
		return match.MinConfidence
	}
	return p.MinConfidence
}

// EnforceFor resolves the prompt's threshold and enforces it in one step.
func (p *Policy) EnforceFor(prompt string, score float64) Decision {
	return Enforce(score, p.Threshold(prompt))
}

// RuleCount returns the number of configured rules.
func (p *Policy) RuleCount() int {
	return len(p.Rules)
}

// Validate checks the policy for errors and compiles its patterns.
func (p *Policy) Validate() error {
	if p.Version < 1 {
		p.Version = 1
	}
	if p.MinConfidence < 0 || p.MinConfidence > 1 {
		return fmt.Errorf("min_confidence %f outside [0.0, 1.0]", p.MinConfidence)
	}
	for _, rule := range p.Rules {
		if rule.MinConfidence < 0 || rule.MinConfidence > 1 {
			return fmt.Errorf("rule %q min_confidence %f outside [0.0, 1.0]",
				rule.Pattern, rule.MinConfidence)
		}
	}
	return p.compile()
}
