package policy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnforce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		score      float64
		threshold  float64
		wantPassed bool
	}{
		{"clearly above", 0.9, 0.6, true},
		{"equal passes", 0.6, 0.6, true},
		{"just below fails", 0.59, 0.6, false},
		{"zero threshold always passes", 0.0, 0.0, true},
		{"perfect score", 1.0, 0.99, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Enforce(tc.score, tc.threshold)
			if got.Passed != tc.wantPassed {
				t.Errorf("Enforce(%v, %v).Passed = %v, want %v",
					tc.score, tc.threshold, got.Passed, tc.wantPassed)
			}
			if tc.wantPassed && got.Reason != "" {
				t.Errorf("Reason = %q, want empty on pass", got.Reason)
			}
			if !tc.wantPassed && got.Reason == "" {
				t.Error("Reason empty on failure, want populated")
			}
		})
	}
}

func TestEnforceFailureMessage(t *testing.T) {
	t.Parallel()

	got := Enforce(0.59, 0.6)
	if got.Passed {
		t.Fatal("Enforce(0.59, 0.6).Passed = true, want false")
	}
	want := "Output confidence 0.59 is below required threshold 0.60"
	if got.Reason != want {
		t.Errorf("Reason = %q, want %q", got.Reason, want)
	}
	if !strings.Contains(got.Reason, "0.59") || !strings.Contains(got.Reason, "0.60") {
		t.Errorf("Reason = %q, want both values at two decimals", got.Reason)
	}
}

func TestDefaultPolicy(t *testing.T) {
	t.Parallel()

	p := Default()
	if p.MinConfidence != DefaultMinConfidence {
		t.Errorf("MinConfidence = %v, want %v", p.MinConfidence, DefaultMinConfidence)
	}
	if p.RuleCount() == 0 {
		t.Error("default policy has no rules")
	}

	// Security-flavored prompts demand a higher bar.
	if got := p.Threshold("Write JWT auth middleware"); got != 0.8 {
		t.Errorf("Threshold(auth prompt) = %v, want 0.8", got)
	}
	// Plain prompts get the default.
	if got := p.Threshold("Write a function to reverse a string"); got != DefaultMinConfidence {
		t.Errorf("Threshold(plain prompt) = %v, want %v", got, DefaultMinConfidence)
	}
}

func TestPolicyCheckFirstMatchWins(t *testing.T) {
	t.Parallel()

	p := &Policy{
		Version:       1,
		MinConfidence: 0.6,
		Rules: []Rule{
			{Pattern: `database`, MinConfidence: 0.9, Reason: "first"},
			{Pattern: `database migration`, MinConfidence: 0.7, Reason: "second"},
		},
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	match := p.Check("write a database migration")
	if match == nil {
		t.Fatal("Check() = nil, want match")
	}
	if match.Reason != "first" {
		t.Errorf("matched rule %q, want first rule in file order", match.Reason)
	}
	if match.MinConfidence != 0.9 {
		t.Errorf("MinConfidence = %v, want 0.9", match.MinConfidence)
	}
}

func TestLoadPolicyFile(t *testing.T) {
	t.Parallel()

	content := `version: 1
min_confidence: 0.65
rules:
  - pattern: "(?i)payment"
    min_confidence: 0.9
    reason: "Billing code needs near-consensus"
`
	path := writeTempPolicy(t, content)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.MinConfidence != 0.65 {
		t.Errorf("MinConfidence = %v, want 0.65", p.MinConfidence)
	}
	if got := p.Threshold("Implement Payment capture"); got != 0.9 {
		t.Errorf("Threshold(payment prompt) = %v, want 0.9", got)
	}
	if got := p.Threshold("Sort a slice"); got != 0.65 {
		t.Errorf("Threshold(plain prompt) = %v, want 0.65", got)
	}
}

func TestLoadRejectsBadPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "rules: [unclosed"},
		{"bad regex", "rules:\n  - pattern: \"([\"\n    min_confidence: 0.7\n"},
		{"threshold out of range", "min_confidence: 1.5\n"},
		{"rule threshold out of range", "rules:\n  - pattern: \"x\"\n    min_confidence: -0.2\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeTempPolicy(t, tc.content)
			if _, err := Load(path); err == nil {
				t.Error("Load() = nil error, want failure")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) = nil error, want failure")
	}
}

func TestEnforceFor(t *testing.T) {
	t.Parallel()

	p := Default()

	// 0.7 clears the default bar but not the security bar.
	if d := p.EnforceFor("reverse a string", 0.7); !d.Passed {
		t.Errorf("EnforceFor(plain, 0.7) failed: %s", d.Reason)
	}
	if d := p.EnforceFor("store the password hash", 0.7); d.Passed {
		t.Error("EnforceFor(security, 0.7) passed, want failure at 0.8 bar")
	}
}

func writeTempPolicy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp policy: %v", err)
	}
	return path
}
