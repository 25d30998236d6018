package analysis

// Verdict strings returned by Recommend. Callers match on the leading label,
// so the wording is part of the contract.
const (
	RecommendationHigh         = "HIGH CONFIDENCE - Output appears reliable"
	RecommendationMediumReview = "MEDIUM CONFIDENCE - Review flagged issues before use"
	RecommendationMedium       = "MEDIUM CONFIDENCE - Acceptable with review"
	RecommendationLow          = "LOW CONFIDENCE - Manual review required, significant uncertainty"
	RecommendationVeryLow      = "VERY LOW CONFIDENCE - Do not use, highly unreliable output"
)

// Recommend maps a confidence score and the detected inconsistencies to a
// categorical verdict. Band lower bounds are inclusive. Within the medium
// band, only high severity selects the stricter message; critical, medium,
// and low severities do not.
func Recommend(score Confidence, issues []Inconsistency) string {
	switch score.Band() {
	case BandHigh:
		return RecommendationHigh
	case BandMedium:
		if HighSeverityCount(issues) > 0 {
			return RecommendationMediumReview
		}
		return RecommendationMedium
	case BandLow:
		return RecommendationLow
	default:
		return RecommendationVeryLow
	}
}
