package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Dicklesworthstone/concord/internal/analysis"
	"github.com/Dicklesworthstone/concord/internal/output"
	"github.com/Dicklesworthstone/concord/internal/policy"
	"github.com/Dicklesworthstone/concord/internal/tui"
	"github.com/Dicklesworthstone/concord/internal/tui/styles"
	"github.com/Dicklesworthstone/concord/internal/tui/theme"
	"github.com/Dicklesworthstone/concord/internal/watcher"
)

type batchOptions struct {
	samples       int
	model         string
	temperature   float64
	minConfidence float64
	outputPath    string
	useTUI        bool
	watch         bool
}

func newBatchCmd() *cobra.Command {
	var opts batchOptions

	cmd := &cobra.Command{
		Use:     "batch <file>",
		Aliases: []string{"b"},
		Short:   "Review every prompt in a file",
		Long: `Run the consistency review over a file of prompts, one prompt per line.
Blank lines and lines starting with # are skipped.

Each prompt is sampled and gated independently; a provider failure on one
prompt is recorded and the run continues. The exit code is 1 when any
prompt failed its gate or errored.

Examples:
  concord batch prompts.txt
  concord batch prompts.txt --tui
  concord batch prompts.txt -n 5 -m gpt-4o
  concord batch prompts.txt --watch       # Re-run on file change
  concord batch prompts.txt -o results.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.samples, "samples", "n", 0, "Number of samples per prompt (default from config)")
	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "Model to sample (default from config)")
	cmd.Flags().Float64VarP(&opts.temperature, "temperature", "t", -1, "Sampling temperature (default from config)")
	cmd.Flags().Float64Var(&opts.minConfidence, "min-confidence", -1, "Override the gate threshold for every prompt")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Write the full results as JSON to a file")
	cmd.Flags().BoolVar(&opts.useTUI, "tui", false, "Show live progress in a full-screen view")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Watch the file and re-run when it changes")

	return cmd
}

// readPrompts loads one prompt per line, skipping blanks and # comments.
func readPrompts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var prompts []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		prompts = append(prompts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return prompts, nil
}

func runBatch(w io.Writer, path string, opts batchOptions) error {
	if opts.watch && (IsJSONOutput() || IsYAMLOutput()) {
		return output.InvalidFlagError("watch", "true", "watch mode renders to the terminal, drop --json/--yaml")
	}

	s, err := buildSampler(opts.model, opts.temperature)
	if err != nil {
		return err
	}
	pol, err := loadPolicy()
	if err != nil {
		return err
	}
	analyzer := buildAnalyzer(s)

	samples := opts.samples
	if samples == 0 {
		samples = cfg.Analysis.Samples
	}
	model := opts.model
	if model == "" {
		model = cfg.Provider.Model
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.watch {
		return runBatchWatch(ctx, w, path, analyzer, pol, opts, samples, model)
	}
	return runBatchOnce(ctx, w, path, analyzer, pol, opts, samples, model)
}

func runBatchOnce(ctx context.Context, w io.Writer, path string, analyzer *analysis.Analyzer, pol *policy.Policy, opts batchOptions, samples int, model string) error {
	prompts, err := readPrompts(path)
	if err != nil {
		return output.BatchFileError(path, err.Error())
	}
	if len(prompts) == 0 {
		return output.BatchFileError(path, "no prompts found")
	}

	if opts.useTUI && isInteractive() && !IsJSONOutput() && !IsYAMLOutput() {
		return runBatchTUI(ctx, path, prompts, analyzer, pol, opts, samples, model)
	}

	live := !IsJSONOutput() && !IsYAMLOutput()
	if live {
		fmt.Fprintf(w, "\nReviewing %d prompt(s) with %s, %d samples each\n\n", len(prompts), model, samples)
	}

	items := executeBatch(ctx, analyzer, pol, prompts, samples, opts.minConfidence,
		func(i int, item output.BatchItemResponse) {
			if live {
				renderBatchLine(w, item)
			}
		})

	resp := output.BatchResponse{
		TimestampedResponse: output.NewTimestamped(),
		Source:              path,
		Model:               model,
		Samples:             samples,
		Items:               items,
		Summary:             summarizeBatch(items),
	}

	if opts.outputPath != "" {
		if err := writeResultFile(opts.outputPath, resp); err != nil {
			return err
		}
	}

	if err := printResult(resp, func() {
		renderBatchSummary(w, resp.Summary, opts.outputPath)
	}); err != nil {
		return err
	}

	if resp.Summary.Failed+resp.Summary.Errors > 0 {
		return output.ErrGateFailed
	}
	return nil
}

// executeBatch reviews prompts sequentially, invoking observe after each. A
// canceled context stops the run after the in-flight prompt.
func executeBatch(ctx context.Context, analyzer *analysis.Analyzer, pol *policy.Policy, prompts []string, samples int, minConfidence float64, observe func(int, output.BatchItemResponse)) []output.BatchItemResponse {
	items := make([]output.BatchItemResponse, 0, len(prompts))
	for i, prompt := range prompts {
		if ctx.Err() != nil {
			break
		}
		item := evaluatePrompt(ctx, analyzer, pol, prompt, samples, minConfidence)
		items = append(items, item)
		if observe != nil {
			observe(i, item)
		}
	}
	return items
}

// evaluatePrompt runs one prompt through analysis and the gate. Failures are
// folded into the item rather than aborting the batch.
func evaluatePrompt(ctx context.Context, analyzer *analysis.Analyzer, pol *policy.Policy, prompt string, samples int, minConfidence float64) output.BatchItemResponse {
	result, err := analyzer.Analyze(ctx, prompt, samples)
	if err != nil {
		return output.BatchItemResponse{Prompt: prompt, Error: err.Error()}
	}

	threshold := resolveThreshold(pol, prompt, minConfidence)
	decision := policy.Enforce(float64(result.Confidence), threshold)
	return output.BatchItemResponse{
		Prompt:         prompt,
		Confidence:     float64(result.Confidence),
		Band:           result.Confidence.Band().String(),
		Passed:         decision.Passed,
		Recommendation: result.Recommendation,
	}
}

// summarizeBatch aggregates per-prompt results. Band counts use the coarse
// three-way split: high is 0.8 and up, medium from 0.6, low below that.
func summarizeBatch(items []output.BatchItemResponse) output.BatchSummaryResponse {
	s := output.BatchSummaryResponse{
		Total:      len(items),
		BandCounts: make(map[string]int),
	}

	scores := make([]float64, 0, len(items))
	for _, item := range items {
		if item.Error != "" {
			s.Errors++
			continue
		}
		scores = append(scores, item.Confidence)
		if item.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
		s.BandCounts[batchBand(item.Confidence)]++
	}

	if len(scores) > 0 {
		s.MeanConfidence = stat.Mean(scores, nil)
		s.MinConfidence = floats.Min(scores)
		s.MaxConfidence = floats.Max(scores)
	}
	return s
}

func batchBand(score float64) string {
	switch {
	case score >= 0.8:
		return "high"
	case score >= 0.6:
		return "medium"
	default:
		return "low"
	}
}

func renderBatchLine(w io.Writer, item output.BatchItemResponse) {
	t := theme.Current()

	prompt := item.Prompt
	if len(prompt) > 60 {
		prompt = prompt[:57] + "..."
	}

	if item.Error != "" {
		markStyle := lipgloss.NewStyle().Foreground(t.Peach)
		fmt.Fprintf(w, "  %s  --  %s  %s\n",
			markStyle.Render("!"), prompt, markStyle.Render(item.Error))
		return
	}

	mark := lipgloss.NewStyle().Foreground(t.Green).Render("✓")
	if !item.Passed {
		mark = lipgloss.NewStyle().Foreground(t.Red).Render("✗")
	}
	fmt.Fprintf(w, "  %s %.2f %s  %s\n", mark, item.Confidence, styles.BandBadge(item.Band), prompt)
}

func renderBatchSummary(w io.Writer, summary output.BatchSummaryResponse, resultPath string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", tui.RenderCompactSummary(&summary))

	if len(summary.BandCounts) > 0 {
		parts := make([]string, 0, 3)
		for _, band := range []string{"high", "medium", "low"} {
			if n, ok := summary.BandCounts[band]; ok {
				parts = append(parts, fmt.Sprintf("%s %d", band, n))
			}
		}
		if len(parts) > 0 {
			fmt.Fprintf(w, "  Bands: %s\n", strings.Join(parts, ", "))
		}
	}
	if resultPath != "" {
		fmt.Fprintf(w, "  Results written to %s\n", resultPath)
	}
	fmt.Fprintln(w)
}

// runBatchTUI drives the run through the full-screen progress view.
func runBatchTUI(ctx context.Context, path string, prompts []string, analyzer *analysis.Analyzer, pol *policy.Policy, opts batchOptions, samples int, model string) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := tui.NewBatchProgress(80)
	p := tea.NewProgram(m)

	lines := make([]tui.BatchLine, len(prompts))
	for i, prompt := range prompts {
		lines[i] = tui.BatchLine{Prompt: prompt, Status: tui.StatusPending}
	}

	base := tui.BatchProgressData{
		Phase:   tui.BatchRunning,
		Total:   len(prompts),
		Model:   model,
		Samples: samples,
	}

	snapshot := func(done int) tui.BatchProgressData {
		d := base
		d.Done = done
		if len(prompts) > 0 {
			d.Progress = float64(done) / float64(len(prompts))
		}
		d.Lines = append([]tui.BatchLine(nil), lines...)
		return d
	}

	itemsCh := make(chan []output.BatchItemResponse, 1)
	go func() {
		lines[0].Status = tui.StatusRunning
		p.Send(tui.BatchProgressMsg{Data: snapshot(0)})

		items := executeBatch(runCtx, analyzer, pol, prompts, samples, opts.minConfidence,
			func(i int, item output.BatchItemResponse) {
				lines[i].Confidence = item.Confidence
				lines[i].Band = item.Band
				lines[i].Status = itemStatus(item)
				if i+1 < len(lines) {
					lines[i+1].Status = tui.StatusRunning
				}
				p.Send(tui.BatchProgressMsg{Data: snapshot(i + 1)})
			})

		summary := summarizeBatch(items)
		final := snapshot(len(items))
		final.Phase = tui.BatchComplete
		final.Progress = 1
		final.Summary = &summary
		final.ResultPath = opts.outputPath
		p.Send(tui.BatchProgressMsg{Data: final})

		itemsCh <- items
		p.Send(tui.BatchDoneMsg{})
	}()

	_, runErr := p.Run()
	cancel()
	items := <-itemsCh
	if runErr != nil {
		return runErr
	}

	summary := summarizeBatch(items)
	if opts.outputPath != "" {
		resp := output.BatchResponse{
			TimestampedResponse: output.NewTimestamped(),
			Source:              path,
			Model:               model,
			Samples:             samples,
			Items:               items,
			Summary:             summary,
		}
		if err := writeResultFile(opts.outputPath, resp); err != nil {
			return err
		}
	}

	if summary.Failed+summary.Errors > 0 {
		return output.ErrGateFailed
	}
	return nil
}

func itemStatus(item output.BatchItemResponse) string {
	switch {
	case item.Error != "":
		return tui.StatusError
	case item.Passed:
		return tui.StatusPassed
	default:
		return tui.StatusFailed
	}
}

// runBatchWatch re-runs the batch whenever the prompt file changes. The run
// loops until interrupted; per-run gate failures are reported but do not end
// the loop.
func runBatchWatch(ctx context.Context, w io.Writer, path string, analyzer *analysis.Analyzer, pol *policy.Policy, opts batchOptions, samples int, model string) error {
	runs := make(chan struct{}, 1)
	runs <- struct{}{}

	fw, err := watcher.Follow(path, func() {
		select {
		case runs <- struct{}{}:
		default:
		}
	}, watcher.WithErrorHandler(func(err error) {
		slog.Warn("watch error", "path", path, "error", err)
	}))
	if err != nil {
		return output.BatchFileError(path, err.Error())
	}
	defer fw.Close()

	t := theme.Current()
	dimStyle := lipgloss.NewStyle().Foreground(t.Overlay)
	fmt.Fprintf(w, "%s\n", dimStyle.Render(fmt.Sprintf("Watching %s, press Ctrl-C to stop", path)))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-runs:
			once := opts
			once.watch = false
			once.useTUI = false
			if err := runBatchOnce(ctx, w, path, analyzer, pol, once, samples, model); err != nil {
				if errors.Is(err, output.ErrGateFailed) {
					// Already rendered; keep watching.
				} else {
					var cliErr *output.CLIError
					if errors.As(err, &cliErr) {
						cliErr.Render(os.Stderr, !noColor)
					} else {
						fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					}
				}
			}
			fmt.Fprintf(w, "%s\n", dimStyle.Render("Waiting for changes..."))
		}
	}
}
