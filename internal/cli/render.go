package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/concord/internal/analysis"
	"github.com/Dicklesworthstone/concord/internal/output"
	"github.com/Dicklesworthstone/concord/internal/policy"
	"github.com/Dicklesworthstone/concord/internal/tui/styles"
	"github.com/Dicklesworthstone/concord/internal/tui/theme"
)

const gaugeWidth = 30

// toReviewResponse flattens an analysis result and its gate decision into the
// review output schema.
func toReviewResponse(result *analysis.AnalysisResult, decision policy.Decision, threshold float64, showResponses bool) output.ReviewResponse {
	resp := output.ReviewResponse{
		TimestampedResponse: output.NewTimestamped(),
		Prompt:              result.Prompt,
		Model:               result.Model,
		Samples:             result.SampleCount,
		Confidence:          float64(result.Confidence),
		Band:                result.Confidence.Band().String(),
		Recommendation:      result.Recommendation,
		Passed:              decision.Passed,
		Threshold:           threshold,
		Reason:              decision.Reason,
		Inconsistencies:     make([]output.IssueResponse, 0, len(result.Inconsistencies)),
		Consensus:           result.Consensus,
		Divergences:         make([]output.DivergenceResponse, 0, len(result.Divergences)),
		ElapsedMS:           result.Elapsed.Milliseconds(),
	}
	for _, issue := range result.Inconsistencies {
		resp.Inconsistencies = append(resp.Inconsistencies, output.IssueResponse{
			Type:        issue.Type.String(),
			Severity:    issue.Severity.String(),
			Description: issue.Description,
			Details:     issue.Details,
			Indices:     issue.Indices,
		})
	}
	for _, d := range result.Divergences {
		resp.Divergences = append(resp.Divergences, output.DivergenceResponse{
			ResponseA:  d.I,
			ResponseB:  d.J,
			DiffLines:  d.DiffLines,
			Similarity: d.Similarity,
		})
	}
	if showResponses {
		resp.Responses = result.Responses
	}
	return resp
}

// confidenceGauge renders a score as a colored bar with the numeric value.
func confidenceGauge(score float64, width int) string {
	if width <= 0 {
		width = gaugeWidth
	}
	filled := int(score*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	color := styles.BandColor(string(analysis.Confidence(score).Band()))
	return lipgloss.NewStyle().Foreground(color).Render(bar) +
		fmt.Sprintf(" %.2f", score)
}

// renderReview writes the human-readable result panel.
func renderReview(w io.Writer, resp output.ReviewResponse) {
	t := theme.Current()
	labelStyle := lipgloss.NewStyle().Foreground(t.Subtext)
	dimStyle := lipgloss.NewStyle().Foreground(t.Overlay)

	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Header("Consistency Review", 60))
	fmt.Fprintln(w)

	prompt := resp.Prompt
	if len(prompt) > 70 {
		prompt = prompt[:67] + "..."
	}
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Prompt:"), prompt)
	fmt.Fprintf(w, "  %s %s   %s %d samples   %s %s\n",
		labelStyle.Render("Model:"), resp.Model,
		labelStyle.Render("Sampled:"), resp.Samples,
		labelStyle.Render("Elapsed:"), output.FormatElapsed(time.Duration(resp.ElapsedMS)*time.Millisecond))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s %s %s\n",
		labelStyle.Render("Confidence:"),
		confidenceGauge(resp.Confidence, gaugeWidth),
		styles.BandBadge(resp.Band))
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Verdict:   "), resp.Recommendation)
	fmt.Fprintln(w)

	renderGateLine(w, resp.Passed, resp.Threshold, resp.Reason)

	if len(resp.Inconsistencies) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s\n", labelStyle.Render("Inconsistencies:"))
		for _, issue := range resp.Inconsistencies {
			sevStyle := lipgloss.NewStyle().Foreground(styles.SeverityColor(issue.Severity))
			fmt.Fprintf(w, "    %s %s %s\n",
				sevStyle.Render("▪"),
				sevStyle.Render(fmt.Sprintf("[%s/%s]", issue.Type, issue.Severity)),
				issue.Description)
		}
	}

	if len(resp.Consensus) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s %d line(s) agreed across all samples\n",
			labelStyle.Render("Consensus:"), len(resp.Consensus))
		for i, line := range resp.Consensus {
			if i >= 5 {
				fmt.Fprintf(w, "    %s\n", dimStyle.Render(fmt.Sprintf("... and %d more", len(resp.Consensus)-5)))
				break
			}
			if len(line) > 72 {
				line = line[:69] + "..."
			}
			fmt.Fprintf(w, "    %s\n", dimStyle.Render(line))
		}
	}

	if len(resp.Divergences) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s\n", labelStyle.Render("Divergent pairs:"))
		for _, d := range resp.Divergences {
			fmt.Fprintf(w, "    responses %d and %d: %d diff lines, %.0f%% similar\n",
				d.ResponseA, d.ResponseB, d.DiffLines, d.Similarity*100)
		}
	}

	if len(resp.Responses) > 0 {
		for i, text := range resp.Responses {
			fmt.Fprintln(w)
			fmt.Fprintln(w, styles.Header(fmt.Sprintf("Response %d", i+1), 60))
			fmt.Fprintln(w, text)
		}
	}
	fmt.Fprintln(w)
}

// renderGateLine prints the pass/fail verdict with the threshold.
func renderGateLine(w io.Writer, passed bool, threshold float64, reason string) {
	t := theme.Current()
	if passed {
		badge := styles.TextBadge("PASS", t.Base, t.Green, styles.BadgeOptions{Bold: true})
		fmt.Fprintf(w, "  %s confidence meets threshold %.2f\n", badge, threshold)
		return
	}
	badge := styles.TextBadge("FAIL", t.Base, t.Red, styles.BadgeOptions{Bold: true})
	fmt.Fprintf(w, "  %s %s\n", badge, reason)
}

// printResult routes a response value through the requested output format.
// The human renderer runs only when neither --json nor --yaml was given.
func printResult(v any, human func()) error {
	if IsJSONOutput() {
		return output.PrintJSON(v)
	}
	if IsYAMLOutput() {
		return output.PrintYAML(v)
	}
	human()
	return nil
}
