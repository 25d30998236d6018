// Package cli implements the concord command line interface.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/concord/internal/analysis"
	"github.com/Dicklesworthstone/concord/internal/config"
	"github.com/Dicklesworthstone/concord/internal/output"
	"github.com/Dicklesworthstone/concord/internal/policy"
	"github.com/Dicklesworthstone/concord/internal/sampler"
)

// Build metadata, set via ldflags at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Package-level state shared by all commands, populated by the root
// PersistentPreRunE before any RunE fires.
var (
	cfg        *config.Config
	jsonOutput bool
	yamlOutput bool
	configPath string
	noColor    bool
)

// IsJSONOutput reports whether --json was requested.
func IsJSONOutput() bool {
	return jsonOutput
}

// IsYAMLOutput reports whether --yaml was requested.
func IsYAMLOutput() bool {
	return yamlOutput
}

// Execute runs the root command. Errors are rendered once here; cobra's own
// error printing is disabled so failures are not reported twice.
func Execute() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if errors.Is(err, output.ErrGateFailed) {
			// The command already rendered the failed result.
			return 1
		}
		var cliErr *output.CLIError
		if errors.As(err, &cliErr) {
			if IsJSONOutput() {
				_ = output.PrintJSON(cliErr.ToResponse())
			} else {
				cliErr.Render(os.Stderr, !noColor)
			}
		} else {
			if IsJSONOutput() {
				_ = output.PrintJSON(output.NewError(err.Error()))
			} else {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "concord",
		Short: "Consistency gate for LLM outputs",
		Long: `Concord samples a prompt several times, measures how much the responses
agree, and turns that agreement into a confidence score you can gate on.

Unstable prompts produce unstable answers. Concord makes that visible
before the output ships.

Examples:
  concord review "Write a function to parse ISO timestamps"
  concord batch prompts.txt --tui
  concord compare "Explain CAP theorem" -m gpt-4o -m gpt-4o-mini
  concord serve --port 8389`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadOrDefault(configPath)
			if err != nil {
				return output.ConfigLoadError(err.Error())
			}
			cfg = loaded

			if noColor {
				os.Setenv("CONCORD_NO_COLOR", "1")
			}
			if os.Getenv("CONCORD_NO_COLOR") != "" {
				lipgloss.SetColorProfile(termenv.Ascii)
			}
			setupLogging(cfg)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			printRootHelp()
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	root.PersistentFlags().BoolVar(&yamlOutput, "yaml", false, "Output as YAML")
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default ~/.concord/config.toml)")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newReviewCmd(),
		newBatchCmd(),
		newCompareCmd(),
		newBenchCmd(),
		newServeCmd(),
		newExamplesCmd(),
		newVersionCmd(),
	)

	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd == root {
			printRootHelp()
			return
		}
		// Subcommands keep cobra's standard help.
		_ = cmd.Usage()
	})

	return root
}

// setupLogging routes slog through stderr at the configured level. CLI runs
// default to warn so human output stays clean; the serve command resets this
// to the configured level for request logging.
func setupLogging(cfg *config.Config) {
	level := slog.LevelWarn
	if v := os.Getenv("CONCORD_LOG"); v != "" {
		level = parseLogLevel(v)
	}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// serveLogLevel maps the configured logging level for the long-running server.
func serveLogLevel(cfg *config.Config) slog.Level {
	return parseLogLevel(cfg.Logging.Level)
}

// buildSampler constructs the provider-backed sampler from config plus
// per-command overrides. Empty model and negative temperature mean "use
// config".
func buildSampler(model string, temperature float64) (sampler.Sampler, error) {
	if model == "" {
		model = cfg.Provider.Model
	}
	if temperature < 0 {
		temperature = cfg.Provider.Temperature
	}

	if os.Getenv(cfg.Provider.APIKeyEnv) == "" {
		return nil, output.APIKeyMissingError(cfg.Provider.APIKeyEnv)
	}

	s, err := sampler.NewOpenAI(
		sampler.WithModel(model),
		sampler.WithTemperature(temperature),
		sampler.WithBaseURL(cfg.Provider.BaseURL),
		sampler.WithAPIKeyEnv(cfg.Provider.APIKeyEnv),
	)
	if err != nil {
		return nil, output.SamplingFailedError(err.Error())
	}
	return s, nil
}

// buildAnalyzer constructs the engine with the configured detector thresholds.
func buildAnalyzer(s sampler.Sampler) *analysis.Analyzer {
	return analysis.New(s, analysis.WithParams(analysis.Params{
		DivergenceThreshold: cfg.Analysis.DivergenceThreshold,
		KeywordMinLen:       cfg.Analysis.KeywordMinLen,
		VarianceFactor:      cfg.Analysis.VarianceFactor,
	}))
}

// loadPolicy resolves the gate policy: the configured path when set, else the
// default search locations, else the built-in policy.
func loadPolicy() (*policy.Policy, error) {
	if cfg.Gate.PolicyPath != "" {
		p, err := policy.Load(cfg.Gate.PolicyPath)
		if err != nil {
			return nil, output.PolicyLoadError(err.Error())
		}
		return p, nil
	}
	return policy.LoadOrDefault()
}

