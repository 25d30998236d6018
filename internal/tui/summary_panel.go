package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/concord/internal/output"
	"github.com/Dicklesworthstone/concord/internal/tui/styles"
	"github.com/Dicklesworthstone/concord/internal/tui/theme"
)

// SummaryPanelMsg updates the summary panel with new data.
type SummaryPanelMsg struct {
	Summary *output.BatchSummaryResponse
}

// SummaryPanel displays aggregate statistics for a batch run.
type SummaryPanel struct {
	Width int

	summary *output.BatchSummaryResponse
}

// NewSummaryPanel creates a new batch summary panel.
func NewSummaryPanel(width int) *SummaryPanel {
	return &SummaryPanel{Width: width}
}

// SetSummary updates the panel with new data.
func (s *SummaryPanel) SetSummary(summary *output.BatchSummaryResponse) {
	s.summary = summary
}

// Init implements tea.Model.
func (s *SummaryPanel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (s *SummaryPanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SummaryPanelMsg:
		s.summary = msg.Summary
	case tea.WindowSizeMsg:
		s.Width = msg.Width
	}
	return s, nil
}

// View renders the summary panel.
func (s *SummaryPanel) View() string {
	t := theme.Current()
	w := s.Width
	if w <= 0 {
		w = 60
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Width(w - 2).
		Padding(0, 1)

	var content strings.Builder
	content.WriteString(styles.Header("Batch Summary", w-6) + "\n")

	if s.summary == nil {
		emptyStyle := lipgloss.NewStyle().Foreground(t.Subtext).Align(lipgloss.Center).Width(w - 6)
		content.WriteString(emptyStyle.Render("No results yet"))
		return boxStyle.Render(content.String())
	}

	content.WriteString(s.renderConfidence(w - 6))
	content.WriteString(s.renderOutcomes(w - 6))
	content.WriteString(s.renderBands(w - 6))

	return boxStyle.Render(strings.TrimRight(content.String(), "\n"))
}

func (s *SummaryPanel) renderConfidence(width int) string {
	t := theme.Current()
	var b strings.Builder

	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Blue)
	b.WriteString(sectionStyle.Render("Confidence") + "\n")

	mean := s.summary.MeanConfidence
	barWidth := clampInt(width-20, 10, 30)
	barColor := t.Green
	if mean < 0.4 {
		barColor = t.Red
	} else if mean < 0.6 {
		barColor = t.Yellow
	}
	bar := renderGaugeBar(mean, barWidth, barColor, t.Surface1)
	b.WriteString(fmt.Sprintf("  Mean: %s %.2f\n", bar, mean))
	b.WriteString(lipgloss.NewStyle().Foreground(t.Subtext).
		Render(fmt.Sprintf("  Range: %.2f to %.2f", s.summary.MinConfidence, s.summary.MaxConfidence)) + "\n")

	b.WriteString("\n")
	return b.String()
}

func (s *SummaryPanel) renderOutcomes(width int) string {
	t := theme.Current()
	var b strings.Builder

	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Mauve)
	b.WriteString(sectionStyle.Render("Outcomes") + "\n")

	passStyle := lipgloss.NewStyle().Foreground(t.Green)
	failStyle := lipgloss.NewStyle().Foreground(t.Red)
	parts := []string{
		passStyle.Render(fmt.Sprintf("%d passed", s.summary.Passed)),
		failStyle.Render(fmt.Sprintf("%d failed", s.summary.Failed)),
	}
	if s.summary.Errors > 0 {
		parts = append(parts, failStyle.Render(fmt.Sprintf("%d errored", s.summary.Errors)))
	}
	b.WriteString("  " + strings.Join(parts, "  ") + "\n")

	if s.summary.Total > 0 {
		rate := float64(s.summary.Passed) / float64(s.summary.Total)
		b.WriteString(lipgloss.NewStyle().Foreground(t.Subtext).
			Render(fmt.Sprintf("  Pass rate: %.0f%% of %d", rate*100, s.summary.Total)) + "\n")
	}

	b.WriteString("\n")
	return b.String()
}

func (s *SummaryPanel) renderBands(width int) string {
	if len(s.summary.BandCounts) == 0 {
		return ""
	}

	t := theme.Current()
	var b strings.Builder

	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Teal)
	b.WriteString(sectionStyle.Render("Bands") + "\n")

	order := []string{"high", "medium", "low", "very_low"}
	seen := make(map[string]bool, len(order))
	for _, band := range order {
		seen[band] = true
	}
	var extras []string
	for band := range s.summary.BandCounts {
		if !seen[band] {
			extras = append(extras, band)
		}
	}
	sort.Strings(extras)
	order = append(order, extras...)

	barWidth := clampInt(width-24, 6, 20)
	for _, band := range order {
		count, ok := s.summary.BandCounts[band]
		if !ok || count == 0 {
			continue
		}
		share := float64(count) / float64(s.summary.Total)
		bar := renderGaugeBar(share, barWidth, styles.BandColor(band), t.Surface1)
		b.WriteString(fmt.Sprintf("  %s %s %d\n", styles.BandBadge(band), bar, count))
	}

	return b.String()
}

// RenderCompactSummary produces a one-line summary for non-TUI output.
func RenderCompactSummary(s *output.BatchSummaryResponse) string {
	if s == nil {
		return "No results"
	}

	t := theme.Current()
	parts := []string{
		lipgloss.NewStyle().Foreground(t.Green).Render(fmt.Sprintf("Pass:%d", s.Passed)),
		lipgloss.NewStyle().Foreground(t.Red).Render(fmt.Sprintf("Fail:%d", s.Failed)),
	}
	if s.Errors > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Red).Render(fmt.Sprintf("Err:%d", s.Errors)))
	}
	parts = append(parts, lipgloss.NewStyle().Foreground(t.Blue).Render(fmt.Sprintf("Mean:%.2f", s.MeanConfidence)))

	return strings.Join(parts, " │ ")
}

// renderGaugeBar creates a simple filled bar for ratio display.
func renderGaugeBar(ratio float64, width int, fillColor, emptyColor lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	ratio = clampFloat(ratio, 0, 1)

	filled := int(float64(width) * ratio)
	if filled > width {
		filled = width
	}

	fillStyle := lipgloss.NewStyle().Foreground(fillColor)
	emptyStyle := lipgloss.NewStyle().Foreground(emptyColor)

	return fillStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", width-filled))
}
