package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/concord/internal/tui/theme"
)

// ConfirmOptions configures a yes/no prompt.
type ConfirmOptions struct {
	// DefaultYes answers yes when the user just presses enter.
	DefaultYes bool
	// Danger renders the prompt in the warning palette.
	Danger bool
	// MaxAsks bounds re-prompting on unrecognized input. Zero means 3.
	MaxAsks int
}

// ConfirmDestructive asks with warning styling. Used before proceeding past a
// failed gate; enter with no input declines.
func ConfirmDestructive(prompt string) bool {
	return ConfirmWith(os.Stdout, os.Stdin, prompt, ConfirmOptions{Danger: true})
}

// ConfirmWith asks via w and reads answers from r. Accepts y/yes/n/no in any
// case; unrecognized input re-prompts up to MaxAsks times, and exhausting the
// attempts (or hitting EOF) returns the default answer.
func ConfirmWith(w io.Writer, r io.Reader, prompt string, opts ConfirmOptions) bool {
	asks := opts.MaxAsks
	if asks <= 0 {
		asks = 3
	}

	styled := false
	if f, ok := w.(*os.File); ok {
		styled = term.IsTerminal(int(f.Fd())) && theme.ColorEnabled()
	}
	line := renderConfirmLine(prompt, opts, styled)

	scanner := bufio.NewScanner(r)
	for i := 0; i < asks; i++ {
		fmt.Fprint(w, line)
		if !scanner.Scan() {
			break
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if answer == "" {
			return opts.DefaultYes
		}
		switch answer {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		fmt.Fprintln(w, "Please answer y or n.")
	}
	return opts.DefaultYes
}

func renderConfirmLine(prompt string, opts ConfirmOptions, styled bool) string {
	hint := "[y/N]"
	if opts.DefaultYes {
		hint = "[Y/n]"
	}
	if !styled {
		return fmt.Sprintf("%s %s ", prompt, hint)
	}

	t := theme.Current()
	marker := lipgloss.NewStyle().Foreground(t.Lavender).Bold(true).Render("?")
	promptStyle := lipgloss.NewStyle().Foreground(t.Text)
	if opts.Danger {
		marker = lipgloss.NewStyle().Foreground(t.Warning).Bold(true).Render("⚠")
		promptStyle = lipgloss.NewStyle().Foreground(t.Warning)
	}
	hintStyled := lipgloss.NewStyle().Foreground(t.Overlay).Render(hint)
	return fmt.Sprintf("%s %s %s ", marker, promptStyle.Render(prompt), hintStyled)
}
