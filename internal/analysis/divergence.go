package analysis

import (
	"log/slog"

	"github.com/Dicklesworthstone/concord/internal/textdiff"
)

// DetectDivergence compares every unordered response pair (i, j), i < j, and
// flags the pairs whose unified diff produces more records than the
// significance threshold. Each flagged pair carries its diff record count and
// a character-level similarity ratio over the full response texts.
//
// The result holds at most C(N,2) entries, every index pair is unique, and
// output order follows input order, so identical input yields identical output.
func DetectDivergence(samples SampleSet, p Params) []DivergencePair {
	var pairs []DivergencePair
	for i := 0; i < len(samples); i++ {
		for j := i + 1; j < len(samples); j++ {
			records := textdiff.Unified(samples[i], samples[j])
			if len(records) <= p.DivergenceThreshold {
				continue
			}
			pairs = append(pairs, DivergencePair{
				I:          i,
				J:          j,
				DiffLines:  len(records),
				Similarity: textdiff.Ratio(samples[i], samples[j]),
			})
		}
	}

	slog.Debug("divergence detected", "responses", len(samples), "pairs", len(pairs))
	return pairs
}
