package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/Dicklesworthstone/concord/internal/output"
	"github.com/Dicklesworthstone/concord/internal/tui/styles"
	"github.com/Dicklesworthstone/concord/internal/tui/theme"
)

type compareOptions struct {
	models      []string
	samples     int
	temperature float64
	outputPath  string
}

func newCompareCmd() *cobra.Command {
	var opts compareOptions

	cmd := &cobra.Command{
		Use:     "compare <prompt>",
		Aliases: []string{"cmp"},
		Short:   "Rank models by output consistency on one prompt",
		Long: `Sample the same prompt from several models and rank them by how
consistently each one answers. A provider failure for one model is
recorded and the remaining models still run.

Examples:
  concord compare "Explain CAP theorem" -m gpt-4o -m gpt-4o-mini
  concord compare "Write a regex for emails" -m gpt-4o -m gpt-4o-mini -n 5
  cat prompt.txt | concord compare - -m gpt-4o -m o3-mini --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.models, "model", "m", nil, "Model to include (repeat for each model)")
	cmd.Flags().IntVarP(&opts.samples, "samples", "n", 0, "Number of samples per model (default from config)")
	cmd.Flags().Float64VarP(&opts.temperature, "temperature", "t", -1, "Sampling temperature (default from config)")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Write the result as JSON to a file")

	return cmd
}

func runCompare(w io.Writer, promptArg string, opts compareOptions) error {
	if len(opts.models) < 2 {
		return output.InvalidFlagError("model", fmt.Sprintf("%d given", len(opts.models)), "at least two -m flags")
	}

	prompt, err := resolvePrompt(promptArg, os.Stdin)
	if err != nil {
		return err
	}

	samples := opts.samples
	if samples == 0 {
		samples = cfg.Analysis.Samples
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rankings := make([]output.ModelScoreResponse, 0, len(opts.models))
	for _, model := range opts.models {
		if ctx.Err() != nil {
			break
		}
		rankings = append(rankings, scoreModel(ctx, model, prompt, samples, opts.temperature))
	}

	sortRankings(rankings)

	resp := output.CompareResponse{
		TimestampedResponse: output.NewTimestamped(),
		Prompt:              prompt,
		Samples:             samples,
		Rankings:            rankings,
		Winner:              compareWinner(rankings),
		Spread:              compareSpread(rankings),
	}

	if opts.outputPath != "" {
		if err := writeResultFile(opts.outputPath, resp); err != nil {
			return err
		}
	}

	return printResult(resp, func() {
		renderCompare(w, resp)
	})
}

// scoreModel runs the analysis for a single model. Failures are folded into
// the entry so one model cannot abort the comparison.
func scoreModel(ctx context.Context, model, prompt string, samples int, temperature float64) output.ModelScoreResponse {
	s, err := buildSampler(model, temperature)
	if err != nil {
		return output.ModelScoreResponse{Model: model, Error: err.Error()}
	}

	result, err := buildAnalyzer(s).Analyze(ctx, prompt, samples)
	if err != nil {
		return output.ModelScoreResponse{Model: model, Error: err.Error()}
	}

	return output.ModelScoreResponse{
		Model:           model,
		Confidence:      float64(result.Confidence),
		Band:            result.Confidence.Band().String(),
		Inconsistencies: len(result.Inconsistencies),
	}
}

// sortRankings orders by confidence descending with errored models last.
func sortRankings(rankings []output.ModelScoreResponse) {
	sort.SliceStable(rankings, func(i, j int) bool {
		if (rankings[i].Error == "") != (rankings[j].Error == "") {
			return rankings[i].Error == ""
		}
		return rankings[i].Confidence > rankings[j].Confidence
	})
}

func compareWinner(rankings []output.ModelScoreResponse) string {
	if len(rankings) == 0 || rankings[0].Error != "" {
		return ""
	}
	return rankings[0].Model
}

func compareSpread(rankings []output.ModelScoreResponse) float64 {
	scores := make([]float64, 0, len(rankings))
	for _, r := range rankings {
		if r.Error == "" {
			scores = append(scores, r.Confidence)
		}
	}
	if len(scores) < 2 {
		return 0
	}
	return floats.Max(scores) - floats.Min(scores)
}

func renderCompare(w io.Writer, resp output.CompareResponse) {
	t := theme.Current()

	prompt := resp.Prompt
	if len(prompt) > 70 {
		prompt = prompt[:67] + "..."
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Header("Model Comparison", 64))
	fmt.Fprintf(w, "  Prompt:  %s\n", prompt)
	fmt.Fprintf(w, "  Samples: %d per model\n\n", resp.Samples)

	errStyle := lipgloss.NewStyle().Foreground(t.Peach)
	winStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Green)

	table := output.NewStyledTableWriter(w, "#", "MODEL", "CONFIDENCE", "BAND", "ISSUES")
	for i, r := range resp.Rankings {
		if r.Error != "" {
			table.AddRow("-", r.Model, errStyle.Render(r.Error))
			continue
		}
		table.AddRow(
			fmt.Sprintf("%d.", i+1),
			r.Model,
			fmt.Sprintf("%.2f", r.Confidence),
			styles.BandBadge(r.Band),
			fmt.Sprintf("%d", r.Inconsistencies),
		)
	}
	if resp.Winner != "" {
		table.WithFooter(fmt.Sprintf("Winner: %s (spread %.2f)", resp.Winner, resp.Spread))
	}
	table.Render()

	if resp.Winner != "" {
		fmt.Fprintf(w, "\n  %s agreed with itself the most\n\n", winStyle.Render(resp.Winner))
	} else {
		fmt.Fprintf(w, "\n  %s\n\n", errStyle.Render("No model produced a usable result"))
	}
}
