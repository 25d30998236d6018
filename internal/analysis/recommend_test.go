package analysis

import (
	"strings"
	"testing"
)

func TestRecommendBands(t *testing.T) {
	t.Parallel()

	highIssue := Inconsistency{Type: TypeStructural, Severity: SeverityHigh}
	criticalIssue := Inconsistency{Type: TypeLogical, Severity: SeverityCritical}
	mediumIssue := Inconsistency{Type: TypeConceptual, Severity: SeverityMedium}

	tests := []struct {
		name   string
		score  Confidence
		issues []Inconsistency
		want   string
	}{
		{"high band clean", 0.85, nil, RecommendationHigh},
		{"high band ignores issues", 0.9, []Inconsistency{highIssue, criticalIssue}, RecommendationHigh},
		{"high band lower bound", 0.8, []Inconsistency{highIssue}, RecommendationHigh},
		{"medium band clean", 0.7, nil, RecommendationMedium},
		{"medium band lower bound", 0.6, nil, RecommendationMedium},
		{"medium band high severity", 0.65, []Inconsistency{highIssue}, RecommendationMediumReview},
		{"medium band medium severity", 0.65, []Inconsistency{mediumIssue}, RecommendationMedium},
		{"medium band critical does not escalate", 0.65, []Inconsistency{criticalIssue}, RecommendationMedium},
		{"low band", 0.45, nil, RecommendationLow},
		{"low band lower bound", 0.4, []Inconsistency{highIssue}, RecommendationLow},
		{"very low band", 0.35, []Inconsistency{highIssue}, RecommendationVeryLow},
		{"very low band zero", 0.0, nil, RecommendationVeryLow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Recommend(tc.score, tc.issues)
			if got != tc.want {
				t.Errorf("Recommend(%v, %d issues) = %q, want %q",
					tc.score, len(tc.issues), got, tc.want)
			}
		})
	}
}

func TestRecommendVerdictWording(t *testing.T) {
	t.Parallel()

	if got := Recommend(0.85, nil); !strings.Contains(got, "HIGH CONFIDENCE") {
		t.Errorf("Recommend(0.85) = %q, want HIGH CONFIDENCE wording", got)
	}
	if got := Recommend(0.35, nil); !strings.Contains(got, "LOW CONFIDENCE") {
		t.Errorf("Recommend(0.35) = %q, want LOW CONFIDENCE wording", got)
	}
	high := Inconsistency{Type: TypeStructural, Severity: SeverityHigh}
	if got := Recommend(0.65, []Inconsistency{high}); !strings.Contains(got, "Review flagged issues") {
		t.Errorf("Recommend(0.65, high) = %q, want review-required wording", got)
	}
}

func TestConfidenceBandBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score Confidence
		want  ConfidenceBand
	}{
		{1.0, BandHigh},
		{0.8, BandHigh},
		{0.799999, BandMedium},
		{0.6, BandMedium},
		{0.599999, BandLow},
		{0.4, BandLow},
		{0.399999, BandVeryLow},
		{0.0, BandVeryLow},
	}

	for _, tc := range tests {
		if got := tc.score.Band(); got != tc.want {
			t.Errorf("Confidence(%v).Band() = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestConfidenceValidate(t *testing.T) {
	t.Parallel()

	for _, valid := range []Confidence{0.0, 0.5, 1.0} {
		if err := valid.Validate(); err != nil {
			t.Errorf("Confidence(%v).Validate() = %v, want nil", valid, err)
		}
	}
	for _, invalid := range []Confidence{-0.1, 1.1, 2.0} {
		if err := invalid.Validate(); err == nil {
			t.Errorf("Confidence(%v).Validate() = nil, want error", invalid)
		}
	}
}
