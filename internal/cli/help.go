package cli

import (
	"fmt"

	"github.com/Dicklesworthstone/concord/internal/tui/theme"
)

type helpEntry struct {
	command string
	args    string
	desc    string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{
		title: "SINGLE PROMPT",
		entries: []helpEntry{
			{"review", "<prompt>", "Sample a prompt and gate on agreement"},
			{"compare", "<prompt> -m <model>...", "Rank models by output stability"},
		},
	},
	{
		title: "BATCH & BENCHMARK",
		entries: []helpEntry{
			{"batch", "<file>", "Review every prompt in a file"},
			{"bench", "", "Score prompt categories for stability"},
		},
	},
	{
		title: "SERVICE",
		entries: []helpEntry{
			{"serve", "", "Run the confidence gate HTTP API"},
		},
	},
	{
		title: "REFERENCE",
		entries: []helpEntry{
			{"examples", "", "Show annotated usage examples"},
			{"version", "", "Show build information"},
		},
	},
}

// printRootHelp picks the help layout for the current terminal. The banner
// needs about 70 columns; narrower terminals get the compact listing.
func printRootHelp() {
	if terminalWidth() < 70 {
		PrintCompactHelp()
		return
	}
	PrintStunningHelp()
}

// PrintStunningHelp renders the full styled help screen shown for a bare
// `concord` invocation.
func PrintStunningHelp() {
	t := theme.Current()
	reset := "\033[0m"
	bold := "\033[1m"

	fmt.Println()
	fmt.Printf("  %s%s   ██████╗ ██████╗ ███╗   ██╗ ██████╗ ██████╗ ██████╗ ██████╗%s\n", bold, colorize(t.Lavender), reset)
	fmt.Printf("  %s%s  ██╔════╝██╔═══██╗████╗  ██║██╔════╝██╔═══██╗██╔══██╗██╔══██╗%s\n", bold, colorize(t.Blue), reset)
	fmt.Printf("  %s%s  ██║     ██║   ██║██╔██╗ ██║██║     ██║   ██║██████╔╝██║  ██║%s\n", bold, colorize(t.Blue), reset)
	fmt.Printf("  %s%s  ██║     ██║   ██║██║╚██╗██║██║     ██║   ██║██╔══██╗██║  ██║%s\n", bold, colorize(t.Mauve), reset)
	fmt.Printf("  %s%s  ╚██████╗╚██████╔╝██║ ╚████║╚██████╗╚██████╔╝██║  ██║██████╔╝%s\n", bold, colorize(t.Mauve), reset)
	fmt.Printf("  %s%s   ╚═════╝ ╚═════╝ ╚═╝  ╚═══╝ ╚═════╝ ╚═════╝ ╚═╝  ╚═╝╚═════╝%s\n", bold, colorize(t.Pink), reset)
	fmt.Println()
	fmt.Printf("  %sConsistency Gate for LLM Outputs%s\n", colorize(t.Subtext), reset)
	fmt.Println()

	for _, section := range helpSections {
		fmt.Printf("  %s%s%s%s\n", bold, colorize(t.Lavender), section.title, reset)
		for _, e := range section.entries {
			usage := e.command
			if e.args != "" {
				usage += " " + e.args
			}
			fmt.Printf("    %s%-34s%s %s%s%s\n",
				colorize(t.Green), usage, reset,
				colorize(t.Text), e.desc, reset)
		}
		fmt.Println()
	}

	fmt.Printf("  %sFlags:%s   --json, --yaml, --config <path>, --no-color\n", colorize(t.Peach), reset)
	fmt.Printf("  %sAliases:%s review|r, batch|b, compare|cmp, examples|ex\n", colorize(t.Peach), reset)
	fmt.Println()
	fmt.Printf("  %sRun 'concord <command> --help' for details on a command.%s\n", colorize(t.Overlay), reset)
	fmt.Println()
}

// PrintCompactHelp renders the short help used when the terminal is too
// narrow for the full screen.
func PrintCompactHelp() {
	t := theme.Current()
	reset := "\033[0m"

	fmt.Printf("\n  %sCONCORD - LLM Consistency Gate%s\n\n", colorize(t.Lavender), reset)
	fmt.Println("  Commands:")
	for _, section := range helpSections {
		for _, e := range section.entries {
			fmt.Printf("    %-10s %s\n", e.command, e.desc)
		}
	}
	fmt.Println()
	fmt.Println("  Environment:")
	fmt.Printf("    %-20s API key for the configured provider\n", "OPENAI_API_KEY")
	fmt.Printf("    %-20s Palette: mocha (default) or latte\n", "CONCORD_THEME")
	fmt.Printf("    %-20s Disable colored output\n", "CONCORD_NO_COLOR")
	fmt.Println()
}

