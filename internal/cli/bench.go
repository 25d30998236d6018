package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/concord/internal/analysis"
	"github.com/Dicklesworthstone/concord/internal/benchmark"
	"github.com/Dicklesworthstone/concord/internal/output"
	"github.com/Dicklesworthstone/concord/internal/tui/styles"
	"github.com/Dicklesworthstone/concord/internal/tui/theme"
)

const benchDefaultSamples = 5

type benchOptions struct {
	model       string
	samples     int
	temperature float64
	suitePath   string
	outputPath  string
}

func newBenchCmd() *cobra.Command {
	var opts benchOptions

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark a model against the prompt suite",
		Long: `Run the built-in prompt suite across its categories and score how
consistently the model answers each one. Uses 5 samples per prompt by
default for a steadier signal.

Full per-prompt results are written to benchmark_results_<timestamp>.json
in the working directory unless --output names a different file.

Examples:
  concord bench
  concord bench -m gpt-4o-mini -n 7
  concord bench --suite my_suite.json -o results.json
  concord bench --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "Model to benchmark (default from config)")
	cmd.Flags().IntVarP(&opts.samples, "samples", "n", benchDefaultSamples, "Number of samples per prompt")
	cmd.Flags().Float64VarP(&opts.temperature, "temperature", "t", -1, "Sampling temperature (default from config)")
	cmd.Flags().StringVar(&opts.suitePath, "suite", "", "Path to a custom suite JSON file")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Where to write the full results JSON")

	return cmd
}

func runBench(w io.Writer, opts benchOptions) error {
	if opts.samples < analysis.MinSamples || opts.samples > analysis.MaxSamples {
		return output.InvalidFlagError("samples", fmt.Sprintf("%d", opts.samples),
			fmt.Sprintf("between %d and %d", analysis.MinSamples, analysis.MaxSamples))
	}

	s, err := buildSampler(opts.model, opts.temperature)
	if err != nil {
		return err
	}

	suite, err := loadBenchSuite(opts.suitePath)
	if err != nil {
		return err
	}

	model := opts.model
	if model == "" {
		model = cfg.Provider.Model
	}

	live := !IsJSONOutput() && !IsYAMLOutput()
	t := theme.Current()
	dimStyle := lipgloss.NewStyle().Foreground(t.Overlay)

	if live {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styles.Header("Benchmark Suite", 64))
		fmt.Fprintf(w, "  Loaded %d prompts across %d categories, %d samples each\n",
			suite.Size(), len(suite), opts.samples)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := benchmark.NewRunner(buildAnalyzer(s), model, opts.samples)

	lastCategory := ""
	result, err := runner.Run(ctx, suite, func(category string, index, total int, res benchmark.PromptResult) {
		if !live {
			return
		}
		if category != lastCategory {
			fmt.Fprintf(w, "\n  %s\n", dimStyle.Render("Testing category: "+category))
			lastCategory = category
		}
		renderBenchLine(w, res)
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return errors.New("benchmark interrupted")
		}
		return err
	}

	resultsPath := opts.outputPath
	if resultsPath == "" {
		resultsPath = benchmark.DefaultResultsPath(time.Now())
	}
	if err := result.WriteFile(resultsPath); err != nil {
		return err
	}

	resp := buildBenchResponse(result, resultsPath)
	return printResult(resp, func() {
		renderBenchSummary(w, resp)
	})
}

func loadBenchSuite(path string) (benchmark.Suite, error) {
	if path == "" {
		suite, err := benchmark.DefaultSuite()
		if err != nil {
			return nil, fmt.Errorf("loading built-in suite: %w", err)
		}
		return suite, nil
	}
	suite, err := benchmark.LoadSuite(path)
	if err != nil {
		return nil, output.BatchFileError(path, err.Error())
	}
	return suite, nil
}

func renderBenchLine(w io.Writer, res benchmark.PromptResult) {
	t := theme.Current()

	prompt := res.Prompt
	if len(prompt) > 60 {
		prompt = prompt[:57] + "..."
	}

	if res.Error != "" {
		errStyle := lipgloss.NewStyle().Foreground(t.Red)
		fmt.Fprintf(w, "  %s %s  %s\n", errStyle.Render("ERROR"), prompt, errStyle.Render(res.Error))
		return
	}

	var color lipgloss.Color
	switch {
	case res.Confidence >= 0.8:
		color = t.Green
	case res.Confidence >= 0.6:
		color = t.Yellow
	default:
		color = t.Red
	}
	score := lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("%.2f", res.Confidence))
	fmt.Fprintf(w, "  %s  %s\n", score, prompt)
}

func buildBenchResponse(result *benchmark.Result, resultsPath string) output.BenchResponse {
	names := make([]string, 0, len(result.Categories))
	for name := range result.Categories {
		names = append(names, name)
	}
	sort.Strings(names)

	categories := make([]output.CategoryScoreResponse, 0, len(names))
	for _, name := range names {
		cat := result.Categories[name]
		categories = append(categories, output.CategoryScoreResponse{
			Category:       name,
			Prompts:        cat.Total,
			MeanConfidence: cat.AverageConfidence,
			High:           cat.HighConfidence,
			Medium:         cat.MediumConfidence,
			Low:            cat.LowConfidence,
			Flagged:        cat.FlaggedIssues,
			Failures:       cat.Failures,
		})
	}

	return output.BenchResponse{
		TimestampedResponse: output.NewTimestamped(),
		Model:               result.Model,
		Samples:             result.NumSamples,
		Categories:          categories,
		OverallMean:         result.OverallMean(),
		ResultsPath:         resultsPath,
	}
}

func renderBenchSummary(w io.Writer, resp output.BenchResponse) {
	t := theme.Current()
	greenStyle := lipgloss.NewStyle().Foreground(t.Green)
	yellowStyle := lipgloss.NewStyle().Foreground(t.Yellow)
	redStyle := lipgloss.NewStyle().Foreground(t.Red)

	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Header("Benchmark Results", 64))

	var total, high, medium, low int
	table := output.NewStyledTableWriter(w, "CATEGORY", "TESTS", "AVG", "HIGH", "MED", "LOW", "ISSUES")
	for _, cat := range resp.Categories {
		table.AddRow(
			cat.Category,
			fmt.Sprintf("%d", cat.Prompts),
			fmt.Sprintf("%.2f", cat.MeanConfidence),
			greenStyle.Render(fmt.Sprintf("%d", cat.High)),
			yellowStyle.Render(fmt.Sprintf("%d", cat.Medium)),
			redStyle.Render(fmt.Sprintf("%d", cat.Low)),
			fmt.Sprintf("%d", cat.Flagged),
		)
		total += cat.Prompts
		high += cat.High
		medium += cat.Medium
		low += cat.Low
	}
	table.WithFooter(fmt.Sprintf("%d prompts, mean confidence %.3f", total, resp.OverallMean))
	table.Render()

	fmt.Fprintln(w)
	if total > 0 {
		fmt.Fprintf(w, "  %s\n", greenStyle.Render(fmt.Sprintf("High   (>= 0.8): %d (%.1f%%)", high, pct(high, total))))
		fmt.Fprintf(w, "  %s\n", yellowStyle.Render(fmt.Sprintf("Medium (>= 0.6): %d (%.1f%%)", medium, pct(medium, total))))
		fmt.Fprintf(w, "  %s\n", redStyle.Render(fmt.Sprintf("Low    (< 0.6):  %d (%.1f%%)", low, pct(low, total))))
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "  %s Results saved to %s\n", greenStyle.Render("✓"), resp.ResultsPath)
	fmt.Fprintln(w)
}

func pct(part, total int) float64 {
	return float64(part) / float64(total) * 100
}
