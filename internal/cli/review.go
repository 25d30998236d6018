package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/concord/internal/analysis"
	"github.com/Dicklesworthstone/concord/internal/output"
	"github.com/Dicklesworthstone/concord/internal/policy"
)

type reviewOptions struct {
	samples       int
	model         string
	temperature   float64
	showResponses bool
	outputPath    string
	minConfidence float64
	interactive   bool
}

func newReviewCmd() *cobra.Command {
	var opts reviewOptions

	cmd := &cobra.Command{
		Use:     "review <prompt>",
		Aliases: []string{"r", "check"},
		Short:   "Sample a prompt and gate on agreement",
		Long: `Sample a prompt several times at the configured temperature, measure how
much the responses agree, and enforce the confidence gate on the result.

The exit code is 0 when the gate passes and 1 when it fails, so review
slots directly into scripts and CI pipelines.

Examples:
  concord review "Write a function to parse ISO timestamps"
  concord review "Explain the borrow checker" -n 5 -m gpt-4o
  concord review "Generate a SQL migration" --min-confidence 0.8
  concord review "Summarize this design" --show-responses
  concord review "Draft the release notes" -o result.json --json
  cat prompt.txt | concord review -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := resolvePrompt(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			return runReview(cmd.OutOrStdout(), prompt, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.samples, "samples", "n", 0, "Number of samples to collect (default from config)")
	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "Model to sample (default from config)")
	cmd.Flags().Float64VarP(&opts.temperature, "temperature", "t", -1, "Sampling temperature (default from config)")
	cmd.Flags().BoolVarP(&opts.showResponses, "show-responses", "r", false, "Include the full response texts in the output")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Write the full result as JSON to a file")
	cmd.Flags().Float64Var(&opts.minConfidence, "min-confidence", -1, "Override the gate threshold for this run")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "On gate failure at a terminal, ask whether to accept anyway")

	return cmd
}

// resolvePrompt reads the prompt from stdin when the argument is "-".
func resolvePrompt(arg string, stdin io.Reader) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading prompt from stdin: %w", err)
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", output.PromptRequiredError()
	}
	return prompt, nil
}

func runReview(w io.Writer, prompt string, opts reviewOptions) error {
	if opts.minConfidence > 1 {
		return output.InvalidFlagError("min-confidence",
			fmt.Sprintf("%g", opts.minConfidence), "expected a value in [0.0, 1.0]")
	}

	s, err := buildSampler(opts.model, opts.temperature)
	if err != nil {
		return err
	}
	pol, err := loadPolicy()
	if err != nil {
		return err
	}

	samples := opts.samples
	if samples == 0 {
		samples = cfg.Analysis.Samples
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analyzer := buildAnalyzer(s)
	result, err := analyzer.Analyze(ctx, prompt, samples)
	if err != nil {
		return describeAnalysisError(err)
	}

	threshold := resolveThreshold(pol, prompt, opts.minConfidence)
	decision := policy.Enforce(float64(result.Confidence), threshold)
	resp := toReviewResponse(result, decision, threshold, opts.showResponses)

	if opts.outputPath != "" {
		if err := writeResultFile(opts.outputPath, resp); err != nil {
			return err
		}
	}

	if err := printResult(resp, func() {
		renderReview(w, resp)
	}); err != nil {
		return err
	}

	if decision.Passed {
		return nil
	}

	if opts.interactive && isInteractive() {
		if output.ConfirmDestructive("Gate failed. Accept this output anyway?") {
			return nil
		}
	}
	return output.GateFailedError(float64(result.Confidence), threshold)
}

// resolveThreshold picks the gate threshold: an explicit flag wins, then the
// policy rules for the prompt, then the configured default.
func resolveThreshold(pol *policy.Policy, prompt string, override float64) float64 {
	if override >= 0 {
		return override
	}
	if pol != nil {
		return pol.Threshold(prompt)
	}
	return cfg.Gate.MinConfidence
}

// describeAnalysisError converts engine failures into user-facing errors.
func describeAnalysisError(err error) error {
	if analysis.IsExternalService(err) {
		return output.SamplingFailedError(err.Error())
	}
	return err
}

// writeResultFile persists a result as pretty JSON regardless of the terminal
// output mode.
func writeResultFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := output.WriteJSON(f, v); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
