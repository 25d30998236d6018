package analysis

import (
	"log/slog"
	"sort"
	"strings"
)

// ExtractConsensus returns the lines present verbatim in every response.
// Each response is split on newlines (empty lines kept as empty strings), the
// first response's distinct lines are intersected sequentially with each
// subsequent response's distinct line set, and the survivors come back sorted
// so output is stable across runs.
//
// This is a line-set agreement heuristic, not semantic agreement: reordered or
// paraphrased content that never repeats verbatim is invisible to it.
func ExtractConsensus(samples SampleSet) []string {
	if len(samples) == 0 {
		return nil
	}

	common := distinctLines(samples[0])
	for _, response := range samples[1:] {
		next := distinctLines(response)
		for line := range common {
			if _, ok := next[line]; !ok {
				delete(common, line)
			}
		}
		if len(common) == 0 {
			break
		}
	}

	out := make([]string, 0, len(common))
	for line := range common {
		out = append(out, line)
	}
	sort.Strings(out)

	slog.Debug("consensus extracted", "responses", len(samples), "lines", len(out))
	return out
}

// distinctLines returns the set of distinct newline-delimited segments in s.
func distinctLines(s string) map[string]struct{} {
	lines := strings.Split(s, "\n")
	set := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		set[line] = struct{}{}
	}
	return set
}
