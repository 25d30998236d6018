package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirmWith(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		opts  ConfirmOptions
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "yes full word", input: "yes\n", want: true},
		{name: "uppercase yes", input: "Y\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "no full word", input: "NO\n", want: false},
		{name: "empty defaults to no", input: "\n", want: false},
		{name: "empty with default yes", input: "\n", opts: ConfirmOptions{DefaultYes: true}, want: true},
		{name: "garbage then yes", input: "maybe\ny\n", want: true},
		{name: "garbage then no", input: "wat\nn\n", want: false},
		{name: "eof returns default", input: "", opts: ConfirmOptions{DefaultYes: true}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			got := ConfirmWith(&out, strings.NewReader(tt.input), "Proceed?", tt.opts)
			if got != tt.want {
				t.Errorf("ConfirmWith(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !strings.Contains(out.String(), "Proceed?") {
				t.Errorf("prompt not written: %q", out.String())
			}
		})
	}
}

func TestConfirmWithRepromptsOnGarbage(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	got := ConfirmWith(&out, strings.NewReader("what\nhuh\n"), "Proceed?", ConfirmOptions{MaxAsks: 2})

	if got {
		t.Error("exhausted asks should fall back to the default no")
	}
	if n := strings.Count(out.String(), "Proceed?"); n != 2 {
		t.Errorf("prompt asked %d times, want 2", n)
	}
	if !strings.Contains(out.String(), "Please answer y or n.") {
		t.Error("re-prompt notice missing")
	}
}

func TestConfirmWithHint(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ConfirmWith(&out, strings.NewReader("\n"), "Continue?", ConfirmOptions{DefaultYes: true})
	if !strings.Contains(out.String(), "[Y/n]") {
		t.Errorf("default-yes hint missing: %q", out.String())
	}

	out.Reset()
	ConfirmWith(&out, strings.NewReader("\n"), "Continue?", ConfirmOptions{})
	if !strings.Contains(out.String(), "[y/N]") {
		t.Errorf("default-no hint missing: %q", out.String())
	}
}
