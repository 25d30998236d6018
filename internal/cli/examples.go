package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/concord/internal/output"
)

var exampleTopics = map[string]string{
	"review": `# Reviewing a single prompt

Sample a prompt several times and gate on how consistently the model answers.

    concord review "Write a function that merges two sorted lists"

Raise the sample count for a steadier score:

    concord review "Explain the borrow checker" -n 7

Pipe the prompt from a file or another tool:

    cat prompt.txt | concord review -

Fail the gate stricter than the configured threshold:

    concord review "DROP TABLE users; is this safe?" --min-confidence 0.9

Machine-readable output for scripts:

    concord review "Summarize RFC 9110" --json | jq .confidence_score

The exit code is 0 when the gate passes and 1 when it fails, so the command
slots directly into CI:

    concord review "$PROMPT" || exit 1
`,
	"batch": `# Reviewing a file of prompts

One prompt per line; blank lines and # comments are skipped.

    concord batch prompts.txt

Live full-screen progress:

    concord batch prompts.txt --tui

Keep the gate running while you edit the prompt file:

    concord batch prompts.txt --watch

Persist the full per-prompt results:

    concord batch prompts.txt -o results.json

The exit code is 1 when any prompt failed its gate or errored.
`,
	"compare": `# Comparing models

Rank models by output consistency on the same prompt:

    concord compare "Explain CAP theorem" -m gpt-4o -m gpt-4o-mini

Add as many -m flags as you need:

    concord compare "Write a bash quine" -m gpt-4o -m gpt-4o-mini -m o3-mini

The winner and the confidence spread are reported at the end. JSON output
carries the full ranking:

    concord compare "p vs np in one line" -m gpt-4o -m o3-mini --json
`,
	"bench": `# Benchmarking a model

Run the built-in prompt suite and score each category:

    concord bench

Benchmark a specific model with more samples:

    concord bench -m gpt-4o-mini -n 5

Bring your own suite as JSON, mapping category names to prompt lists:

    concord bench --suite my_suite.json

Results land in benchmark_results_<timestamp>.json unless -o says otherwise.
`,
	"serve": `# Running the HTTP gate

Start the API on the configured address:

    concord serve

Override the bind address:

    concord serve --host 0.0.0.0 --port 9090

Evaluate a prompt over HTTP:

    curl -s localhost:8389/api/evaluate \
      -d '{"prompt": "Write a haiku about Go", "num_samples": 3}'

Subscribe to evaluation events over websocket:

    websocat ws://localhost:8389/api/events
`,
	"policy": `# Gate policies

A policy maps prompt patterns to minimum confidence thresholds. The default
policy holds auth and migration prompts to a higher bar. Policies load from
.concord/policy.yaml (home directory first, then the working directory), or
the path set in the config file:

    [gate]
    min_confidence = 0.6
    policy_path = "policy.yaml"

A policy file lists rules, first match wins:

    version: 1
    min_confidence: 0.6
    rules:
      - pattern: '(?i)\b(payment|billing|invoice)'
        min_confidence: 0.85
        reason: billing changes need strong agreement
      - pattern: '(?i)delete|drop|truncate'
        min_confidence: 0.9

An explicit --min-confidence on the command line beats any rule.
`,
	"prompts": `# Prompts that demonstrate the gate

Prompts with many valid answers sample inconsistently and score low.
Well-defined tasks sample consistently and score high.

**High uncertainty (security)**

    concord review "Write JWT authentication middleware"

Why: key storage and expiration choices vary between samples.

**High uncertainty (algorithms)**

    concord review "Implement consistent hashing"

Why: multiple valid approaches with different trade-offs.

**Medium uncertainty**

    concord review "Create a REST API rate limiter"

Why: implementation details differ while the core shape agrees.

**Low uncertainty**

    concord review "Write a function to reverse a string"

Why: simple, well-defined task. Responses agree almost verbatim.
`,
	"config": `# Configuration

Settings load from ~/.concord/config.toml, or the path given by --config.
Everything has a default, so no file is required.

    [provider]
    model = "gpt-4o-mini"
    temperature = 0.7
    api_key_env = "OPENAI_API_KEY"

    [analysis]
    samples = 5

    [gate]
    min_confidence = 0.6

    [server]
    host = "127.0.0.1"
    port = 8389

Environment:

* OPENAI_API_KEY  - provider credential (name is configurable)
* CONCORD_LOG     - log level: debug, info, warn, error
* CONCORD_THEME   - color theme: mocha (default) or latte
* CONCORD_NO_COLOR - disable colored output
`,
}

func newExamplesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "examples [topic]",
		Aliases:   []string{"ex"},
		Short:     "Show usage examples",
		Long:      "Show worked examples for a topic, or an index of topics when none is given.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: exampleTopicNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := ""
			if len(args) == 1 {
				topic = args[0]
			}
			return runExamples(cmd.OutOrStdout(), topic)
		},
	}
	return cmd
}

func exampleTopicNames() []string {
	names := make([]string, 0, len(exampleTopics))
	for name := range exampleTopics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func runExamples(w io.Writer, topic string) error {
	if topic == "" {
		var b strings.Builder
		b.WriteString("# concord examples\n\nPick a topic:\n\n")
		for _, name := range exampleTopicNames() {
			b.WriteString(fmt.Sprintf("* concord examples %s\n", name))
		}
		return renderMarkdown(w, b.String())
	}

	md, ok := exampleTopics[topic]
	if !ok {
		return output.InvalidFlagError("topic", topic, strings.Join(exampleTopicNames(), ", "))
	}
	return renderMarkdown(w, md)
}

// renderMarkdown writes styled markdown when the terminal supports it and
// falls back to word-wrapped plain text otherwise.
func renderMarkdown(w io.Writer, md string) error {
	width := terminalWidth()

	if !noColor && isInteractive() {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err == nil {
			if out, err := renderer.Render(md); err == nil {
				fmt.Fprint(w, out)
				return nil
			}
		}
	}

	fmt.Fprintln(w, wordwrap.String(md, width))
	return nil
}
