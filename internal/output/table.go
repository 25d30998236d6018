package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/concord/internal/tui/theme"
)

// StyledTable renders aligned tabular output with an optional border and
// footer. Columns size themselves to the widest cell.
type StyledTable struct {
	w       io.Writer
	headers []string
	rows    [][]string
	footer  string
	border  bool
}

// NewStyledTableWriter creates a table that renders to w.
func NewStyledTableWriter(w io.Writer, headers ...string) *StyledTable {
	return &StyledTable{w: w, headers: headers}
}

// AddRow appends a row. Missing trailing cells render empty.
func (t *StyledTable) AddRow(cells ...string) *StyledTable {
	t.rows = append(t.rows, cells)
	return t
}

// WithFooter sets a footer line rendered below the rows.
func (t *StyledTable) WithFooter(footer string) *StyledTable {
	t.footer = footer
	return t
}

// WithBorder toggles a rounded border around the table.
func (t *StyledTable) WithBorder(border bool) *StyledTable {
	t.border = border
	return t
}

// Render writes the table to its writer. Cell widths are measured with ANSI
// sequences stripped, so styled cells align with plain ones.
func (t *StyledTable) Render() {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = ansi.PrintableRuneWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := ansi.PrintableRuneWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	useColor := false
	if f, ok := t.w.(*os.File); ok {
		useColor = term.IsTerminal(int(f.Fd())) && theme.ColorEnabled()
	}
	th := theme.Current()
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(th.Lavender)
	ruleStyle := lipgloss.NewStyle().Foreground(th.Surface2)
	footerStyle := lipgloss.NewStyle().Foreground(th.Subtext)

	var b strings.Builder

	headerCells := make([]string, len(t.headers))
	for i, h := range t.headers {
		headerCells[i] = pad(h, widths[i])
	}
	headerLine := strings.Join(headerCells, "  ")
	if useColor {
		headerLine = headerStyle.Render(headerLine)
	}
	b.WriteString(headerLine + "\n")

	rule := strings.Repeat("─", ansi.PrintableRuneWidth(strings.Join(headerCells, "  ")))
	if useColor {
		rule = ruleStyle.Render(rule)
	}
	b.WriteString(rule + "\n")

	for _, row := range t.rows {
		cells := make([]string, len(t.headers))
		for i := range t.headers {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = pad(cell, widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " ") + "\n")
	}

	if t.footer != "" {
		footer := t.footer
		if useColor {
			footer = footerStyle.Render(footer)
		}
		b.WriteString(rule + "\n")
		b.WriteString(footer + "\n")
	}

	content := strings.TrimRight(b.String(), "\n")
	if t.border {
		content = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Surface1).
			Padding(0, 1).
			Render(content)
	}
	fmt.Fprintln(t.w, content)
}

func pad(s string, width int) string {
	if gap := width - ansi.PrintableRuneWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
