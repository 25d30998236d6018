// Package tui provides terminal user interface components.
// batch_progress.go implements the live progress view for batch reviews.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/concord/internal/output"
	"github.com/Dicklesworthstone/concord/internal/tui/components"
	"github.com/Dicklesworthstone/concord/internal/tui/layout"
	"github.com/Dicklesworthstone/concord/internal/tui/styles"
	"github.com/Dicklesworthstone/concord/internal/tui/theme"
)

// BatchPhase represents the current batch lifecycle phase.
type BatchPhase string

const (
	BatchLoading  BatchPhase = "loading"
	BatchRunning  BatchPhase = "running"
	BatchComplete BatchPhase = "complete"
)

// String returns the phase name.
func (p BatchPhase) String() string {
	return string(p)
}

// Prompt line statuses.
const (
	StatusPending = "pending"
	StatusRunning = "running"
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusError   = "error"
)

// BatchLine represents a per-prompt progress line.
type BatchLine struct {
	Prompt     string
	Confidence float64
	Band       string
	Status     string
}

// BatchProgressData captures the display data for a batch run.
type BatchProgressData struct {
	Phase      BatchPhase
	Done       int
	Total      int
	Progress   float64
	Lines      []BatchLine
	Model      string
	Samples    int
	Summary    *output.BatchSummaryResponse
	ResultPath string
}

// BatchProgressMsg updates the batch progress model.
type BatchProgressMsg struct {
	Data BatchProgressData
}

// BatchDoneMsg signals that the run finished and the program should exit
// after a final render.
type BatchDoneMsg struct{}

// BatchProgress is the bubbletea model for batch runs.
type BatchProgress struct {
	Width int

	data      BatchProgressData
	bar       components.ProgressBar
	spin      spinner.Model
	summary   *SummaryPanel
	lastPhase BatchPhase
	quitting  bool
}

// NewBatchProgress creates a new batch progress model.
func NewBatchProgress(width int) *BatchProgress {
	barWidth := clampInt(width-10, 12, 60)
	bar := components.NewProgressBar(barWidth)
	bar.ShowPercent = true
	bar.Animated = true

	t := theme.Current()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(t.Blue)

	return &BatchProgress{
		Width:     width,
		bar:       bar,
		spin:      sp,
		summary:   NewSummaryPanel(width),
		lastPhase: BatchLoading,
	}
}

// SetData updates the progress model state.
func (b *BatchProgress) SetData(data BatchProgressData) {
	b.applyData(data)
}

// Init implements tea.Model.
func (b *BatchProgress) Init() tea.Cmd {
	return b.spin.Tick
}

// Update implements tea.Model.
func (b *BatchProgress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case BatchProgressMsg:
		b.applyData(msg.Data)
		return b, nil
	case BatchDoneMsg:
		b.quitting = true
		return b, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			b.quitting = true
			return b, tea.Quit
		}
	case tea.WindowSizeMsg:
		b.Width = msg.Width
		b.bar.Width = clampInt(msg.Width-10, 12, 60)
		b.summary.Width = msg.Width
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spin, cmd = b.spin.Update(msg)
		return b, cmd
	}
	return b, nil
}

// View renders the batch progress model.
func (b *BatchProgress) View() string {
	width := b.Width
	if width <= 0 {
		width = 60
	}

	switch b.data.Phase {
	case BatchRunning:
		return b.viewRunning(width)
	case BatchComplete:
		return b.viewComplete(width)
	default:
		return b.viewLoading(width)
	}
}

func (b *BatchProgress) applyData(data BatchProgressData) {
	if data.Phase == "" {
		data.Phase = BatchLoading
	}

	previous := b.data.Phase
	b.data = data
	b.bar.SetPercent(b.currentProgress())
	if data.Summary != nil {
		b.summary.SetSummary(data.Summary)
	}

	if previous != data.Phase {
		slog.Debug("batch progress phase transition",
			"from", previous.String(),
			"to", data.Phase.String(),
		)
	}
}

func (b *BatchProgress) currentProgress() float64 {
	if b.data.Progress > 0 {
		return clampFloat(b.data.Progress, 0, 1)
	}
	if b.data.Total > 0 {
		return clampFloat(float64(b.data.Done)/float64(b.data.Total), 0, 1)
	}
	return 0
}

func (b *BatchProgress) viewLoading(width int) string {
	t := theme.Current()
	var content strings.Builder

	content.WriteString(b.spin.View() + " ")
	content.WriteString(lipgloss.NewStyle().Foreground(t.Subtext).Render("Loading prompts"))
	if b.data.Total > 0 {
		content.WriteString(lipgloss.NewStyle().Foreground(t.Subtext).
			Render(fmt.Sprintf(" (%d found)", b.data.Total)))
	}

	return lipgloss.NewStyle().Width(width).Render(content.String())
}

func (b *BatchProgress) viewRunning(width int) string {
	t := theme.Current()
	var content strings.Builder

	b.bar.Width = clampInt(width-8, 12, 60)
	b.bar.SetPercent(b.currentProgress())

	header := fmt.Sprintf("Reviewing prompts (%d/%d done)", b.data.Done, b.data.Total)
	content.WriteString(lipgloss.NewStyle().Foreground(t.Text).Bold(true).Render(header) + "\n")
	content.WriteString(b.bar.View() + "\n")

	if b.data.Model != "" {
		meta := fmt.Sprintf("Model: %s  Samples: %d", b.data.Model, b.data.Samples)
		content.WriteString(lipgloss.NewStyle().Foreground(t.Subtext).Render(meta) + "\n")
	}

	if len(b.data.Lines) == 0 {
		content.WriteString(lipgloss.NewStyle().Foreground(t.Overlay).Italic(true).Render("Awaiting first result"))
		return lipgloss.NewStyle().Width(width).Render(content.String())
	}

	content.WriteString("\n")
	for _, line := range b.data.Lines {
		content.WriteString(b.renderLine(line, width) + "\n")
	}

	return lipgloss.NewStyle().Width(width).Render(strings.TrimRight(content.String(), "\n"))
}

func (b *BatchProgress) viewComplete(width int) string {
	t := theme.Current()
	var content strings.Builder

	badge := styles.TextBadge("DONE", t.Green, t.Base, styles.BadgeOptions{
		Style:      styles.BadgeStyleCompact,
		Bold:       true,
		FixedWidth: 4,
	})
	content.WriteString(lipgloss.NewStyle().Foreground(t.Text).Bold(true).Render("Batch complete ") + badge + "\n")

	if b.data.Summary != nil {
		content.WriteString(b.summary.View() + "\n")
	}

	if result := strings.TrimSpace(b.data.ResultPath); result != "" {
		resultLine := layout.TruncateWidthDefault(fmt.Sprintf("Results: %s", result), width-2)
		content.WriteString(lipgloss.NewStyle().Foreground(t.Subtext).Render(resultLine))
	}

	return lipgloss.NewStyle().Width(width).Render(strings.TrimRight(content.String(), "\n"))
}

func (b *BatchProgress) renderLine(line BatchLine, width int) string {
	t := theme.Current()

	var marker string
	statusStyle := lipgloss.NewStyle().Foreground(t.Subtext)
	switch line.Status {
	case StatusPassed:
		marker = lipgloss.NewStyle().Foreground(t.Green).Render("✓")
		statusStyle = statusStyle.Foreground(t.Green)
	case StatusFailed:
		marker = lipgloss.NewStyle().Foreground(t.Red).Render("✗")
		statusStyle = statusStyle.Foreground(t.Red)
	case StatusError:
		marker = lipgloss.NewStyle().Foreground(t.Red).Render("!")
		statusStyle = statusStyle.Foreground(t.Red)
	case StatusRunning:
		marker = b.spin.View()
		statusStyle = statusStyle.Foreground(t.Blue)
	default:
		marker = lipgloss.NewStyle().Foreground(t.Overlay).Render("·")
		statusStyle = statusStyle.Foreground(t.Overlay)
	}

	var score string
	if line.Status == StatusPassed || line.Status == StatusFailed {
		score = fmt.Sprintf("%.2f %s", line.Confidence, styles.BandBadge(line.Band))
	} else {
		score = strings.Repeat(" ", 9)
	}

	prompt := layout.TruncateWidthDefault(line.Prompt, clampInt(width-24, 10, width))
	lineText := fmt.Sprintf("%s %s %s %s",
		marker,
		score,
		statusStyle.Render(fmt.Sprintf("%-7s", line.Status)),
		lipgloss.NewStyle().Foreground(t.Text).Render(prompt),
	)
	return layout.TruncateWidthDefault(lineText, width-2)
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
