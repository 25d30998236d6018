package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/concord/internal/tui/theme"
)

type versionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
	Go      string `json:"go" yaml:"go"`
	OS      string `json:"os" yaml:"os"`
	Arch    string `json:"arch" yaml:"arch"`
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd.OutOrStdout())
		},
	}
}

func runVersion(w io.Writer) error {
	info := versionInfo{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}

	return printResult(info, func() {
		t := theme.Current()
		name := lipgloss.NewStyle().Bold(true).Foreground(t.Lavender).Render("concord")
		fmt.Fprintf(w, "%s %s\n", name, info.Version)
		fmt.Fprintf(w, "  commit: %s\n", info.Commit)
		fmt.Fprintf(w, "  built:  %s\n", info.Date)
		fmt.Fprintf(w, "  go:     %s %s/%s\n", info.Go, info.OS, info.Arch)
	})
}
