package analysis

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DetectInconsistencies runs the structural and conceptual checks over the
// sample set and concatenates their findings. The two checks are independent
// and their results are not deduplicated against each other.
func DetectInconsistencies(samples SampleSet, p Params) []Inconsistency {
	issues := detectStructural(samples, p)
	issues = append(issues, detectConceptual(samples, p)...)

	slog.Debug("inconsistencies detected", "responses", len(samples), "issues", len(issues))
	return issues
}

// detectStructural flags length spread across the whole sample set. Response
// lengths are character counts; when their population variance exceeds
// mean*factor, exactly one high-severity structural entry covers the set.
func detectStructural(samples SampleSet, p Params) []Inconsistency {
	if len(samples) == 0 {
		return nil
	}

	lengths := make([]float64, len(samples))
	for i, response := range samples {
		lengths[i] = float64(utf8.RuneCountInString(response))
	}

	mean := stat.Mean(lengths, nil)
	variance := stat.PopVariance(lengths, nil)
	if variance <= mean*p.VarianceFactor {
		return nil
	}

	return []Inconsistency{{
		Type:     TypeStructural,
		Severity: SeverityHigh,
		Description: fmt.Sprintf("Response lengths vary significantly (%d to %d chars)",
			int(floats.Min(lengths)), int(floats.Max(lengths))),
		Details: map[string]any{
			"lengths":  intLengths(lengths),
			"variance": variance,
		},
	}}
}

// detectConceptual flags vocabulary spread. Tokens longer than the keyword
// threshold form each response's keyword set; every union word present in at
// least one but fewer than all responses yields one medium-severity entry.
// Length alone filters short/common words; there is no stopword list. Entries
// come out in sorted keyword order so results are stable.
func detectConceptual(samples SampleSet, p Params) []Inconsistency {
	if len(samples) == 0 {
		return nil
	}

	perResponse := make([]map[string]struct{}, len(samples))
	union := make(map[string]struct{})
	for i, response := range samples {
		set := make(map[string]struct{})
		for _, word := range strings.Fields(strings.ToLower(response)) {
			if utf8.RuneCountInString(word) > p.KeywordMinLen {
				set[word] = struct{}{}
				union[word] = struct{}{}
			}
		}
		perResponse[i] = set
	}

	keywords := make([]string, 0, len(union))
	for word := range union {
		keywords = append(keywords, word)
	}
	sort.Strings(keywords)

	var issues []Inconsistency
	for _, word := range keywords {
		count := 0
		var indices []int
		for i, set := range perResponse {
			if _, ok := set[word]; ok {
				count++
				indices = append(indices, i)
			}
		}
		if count == 0 || count == len(samples) {
			continue
		}
		issues = append(issues, Inconsistency{
			Type:     TypeConceptual,
			Severity: SeverityMedium,
			Description: fmt.Sprintf("Keyword '%s' appears in %d/%d responses",
				word, count, len(samples)),
			Details: map[string]any{
				"keyword":   word,
				"frequency": float64(count) / float64(len(samples)),
			},
			Indices: indices,
		})
	}
	return issues
}

// intLengths converts the float length vector back to ints for reporting.
func intLengths(lengths []float64) []int {
	out := make([]int, len(lengths))
	for i, l := range lengths {
		out[i] = int(l)
	}
	return out
}
