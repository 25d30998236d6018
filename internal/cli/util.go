package cli

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// isInteractive returns true when both stdin and stdout are TTYs. Used to guard
// prompts in commands that would otherwise block automated runs (tests/CI).
func isInteractive() bool {
	return (isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())) &&
		(isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()))
}

// terminalWidth reports the stdout width clamped to [40, 100], falling back
// to 80 when stdout is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	if w < 40 {
		return 40
	}
	if w > 100 {
		return 100
	}
	return w
}
