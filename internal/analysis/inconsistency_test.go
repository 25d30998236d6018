package analysis

import (
	"strings"
	"testing"
)

func TestDetectStructuralTriggersOnLengthSpread(t *testing.T) {
	t.Parallel()

	samples := SampleSet{"short", strings.Repeat("x", 1000)}

	got := DetectInconsistencies(samples, DefaultParams())
	found := false
	for _, issue := range got {
		if issue.Type == TypeStructural && issue.Severity == SeverityHigh {
			found = true
			if !strings.Contains(issue.Description, "vary significantly") {
				t.Errorf("description = %q, want length spread wording", issue.Description)
			}
			if issue.Details == nil {
				t.Error("structural issue missing details")
				continue
			}
			if _, ok := issue.Details["lengths"]; !ok {
				t.Error("structural details missing lengths")
			}
			if _, ok := issue.Details["variance"]; !ok {
				t.Error("structural details missing variance")
			}
		}
	}
	if !found {
		t.Errorf("DetectInconsistencies = %v, want a structural/high entry", got)
	}
}

func TestDetectStructuralQuietOnSimilarLengths(t *testing.T) {
	t.Parallel()

	samples := SampleSet{
		strings.Repeat("abc", 10),
		strings.Repeat("def", 11),
		strings.Repeat("ghi", 10),
	}

	got := DetectInconsistencies(samples, DefaultParams())
	for _, issue := range got {
		if issue.Type == TypeStructural {
			t.Errorf("got structural entry %+v, want none for near-equal lengths", issue)
		}
	}
}

func TestDetectStructuralSingleFlagForWholeSet(t *testing.T) {
	t.Parallel()

	// Three responses with wildly different lengths still produce one flag.
	samples := SampleSet{
		"a",
		strings.Repeat("b", 500),
		strings.Repeat("c", 2000),
	}

	got := DetectInconsistencies(samples, DefaultParams())
	structural := 0
	for _, issue := range got {
		if issue.Type == TypeStructural {
			structural++
		}
	}
	if structural != 1 {
		t.Errorf("got %d structural entries, want exactly 1", structural)
	}
}

func TestDetectConceptualPartialPresence(t *testing.T) {
	t.Parallel()

	samples := SampleSet{
		"auth using JWT tokens with secure storage",
		"auth using session cookies",
		"auth using JWT tokens",
	}

	got := DetectInconsistencies(samples, DefaultParams())

	byKeyword := make(map[string]Inconsistency)
	for _, issue := range got {
		if issue.Type != TypeConceptual {
			continue
		}
		if issue.Severity != SeverityMedium {
			t.Errorf("conceptual severity = %s, want medium", issue.Severity)
		}
		kw, _ := issue.Details["keyword"].(string)
		byKeyword[kw] = issue
	}
	if len(byKeyword) == 0 {
		t.Fatalf("DetectInconsistencies = %v, want conceptual entries", got)
	}

	// "secure" appears only in the first response; "session" only in the
	// second. "tokens" appears in two of three.
	for _, kw := range []string{"secure", "session"} {
		issue, ok := byKeyword[kw]
		if !ok {
			t.Errorf("no conceptual entry for %q", kw)
			continue
		}
		if freq, _ := issue.Details["frequency"].(float64); freq != 1.0/3.0 {
			t.Errorf("%q frequency = %v, want 1/3", kw, freq)
		}
	}
	if issue, ok := byKeyword["tokens"]; !ok {
		t.Error("no conceptual entry for \"tokens\"")
	} else {
		if freq, _ := issue.Details["frequency"].(float64); freq != 2.0/3.0 {
			t.Errorf("\"tokens\" frequency = %v, want 2/3", freq)
		}
		if !strings.Contains(issue.Description, "appears in 2/3 responses") {
			t.Errorf("description = %q, want presence count wording", issue.Description)
		}
		if len(issue.Indices) != 2 {
			t.Errorf("\"tokens\" indices = %v, want two affected responses", issue.Indices)
		}
	}

	// Words present in every response never flag.
	if _, ok := byKeyword["using"]; ok {
		t.Error("got conceptual entry for \"using\", present in all responses")
	}
}

func TestDetectConceptualIgnoresShortTokens(t *testing.T) {
	t.Parallel()

	// All divergent words are 5 characters or fewer.
	samples := SampleSet{"one two three", "four five six"}

	got := DetectInconsistencies(samples, DefaultParams())
	for _, issue := range got {
		if issue.Type == TypeConceptual {
			t.Errorf("got conceptual entry %+v, want none for short tokens", issue)
		}
	}
}

func TestDetectConceptualIdenticalResponses(t *testing.T) {
	t.Parallel()

	samples := SampleSet{
		"identical responses everywhere",
		"identical responses everywhere",
	}

	got := DetectInconsistencies(samples, DefaultParams())
	if len(got) != 0 {
		t.Errorf("DetectInconsistencies(identical) = %v, want none", got)
	}
}

func TestDetectConceptualDeterministicOrder(t *testing.T) {
	t.Parallel()

	samples := SampleSet{
		"zebras wander galaxies",
		"aardvarks wander galaxies",
	}

	first := DetectInconsistencies(samples, DefaultParams())
	second := DetectInconsistencies(samples, DefaultParams())
	if len(first) != len(second) {
		t.Fatalf("runs disagree on issue count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Description != second[i].Description {
			t.Errorf("issue %d differs across runs: %q vs %q",
				i, first[i].Description, second[i].Description)
		}
	}
}
