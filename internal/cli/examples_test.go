package cli

import (
	"bytes"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/Dicklesworthstone/concord/internal/output"
)

func TestExampleTopicNames(t *testing.T) {
	t.Parallel()

	names := exampleTopicNames()
	if !sort.StringsAreSorted(names) {
		t.Errorf("topic names are not sorted: %v", names)
	}

	want := []string{"batch", "bench", "compare", "config", "policy", "prompts", "review", "serve"}
	if len(names) != len(want) {
		t.Fatalf("topics = %v, want %v", names, want)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("topic[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestRunExamplesIndex(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := runExamples(&buf, ""); err != nil {
		t.Fatalf("runExamples: %v", err)
	}

	out := buf.String()
	for _, name := range exampleTopicNames() {
		if !strings.Contains(out, "concord examples "+name) {
			t.Errorf("index missing topic %q:\n%s", name, out)
		}
	}
}

func TestRunExamplesTopic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		topic string
		want  string
	}{
		{topic: "review", want: "concord review"},
		{topic: "batch", want: "concord batch prompts.txt"},
		{topic: "compare", want: "concord compare"},
		{topic: "bench", want: "concord bench"},
		{topic: "serve", want: "concord serve"},
		{topic: "policy", want: "min_confidence"},
		{topic: "prompts", want: "JWT authentication middleware"},
		{topic: "config", want: "config.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := runExamples(&buf, tt.topic); err != nil {
				t.Fatalf("runExamples(%q): %v", tt.topic, err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("topic %q output missing %q", tt.topic, tt.want)
			}
		})
	}
}

func TestRunExamplesUnknownTopic(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := runExamples(&buf, "quantum")

	var cliErr *output.CLIError
	if !errors.As(err, &cliErr) || cliErr.Code != "INVALID_FLAG" {
		t.Fatalf("runExamples() error = %v, want INVALID_FLAG", err)
	}
	if !strings.Contains(cliErr.Hint, "review") {
		t.Errorf("hint %q should list the valid topics", cliErr.Hint)
	}
}

func TestRenderMarkdownWrapsPlainText(t *testing.T) {
	t.Parallel()

	// Not a terminal under test, so the plain word-wrapped path runs.
	long := strings.Repeat("concord gates unstable prompts ", 8)

	var buf bytes.Buffer
	if err := renderMarkdown(&buf, long); err != nil {
		t.Fatalf("renderMarkdown: %v", err)
	}

	for _, line := range strings.Split(buf.String(), "\n") {
		if len(line) > 80 {
			t.Errorf("line exceeds the fallback width: %q", line)
		}
	}
}
