// Package components holds small reusable bubbletea building blocks.
package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/concord/internal/tui/styles"
	"github.com/Dicklesworthstone/concord/internal/tui/theme"
)

// ProgressBar renders a deterministic progress bar. Rendering is driven
// entirely by the stored percent, so views stay correct even when no
// animation frames are flowing.
type ProgressBar struct {
	Width       int
	ShowPercent bool
	ShowLabel   bool
	Label       string
	Animated    bool

	percent float64
}

// NewProgressBar creates a bar of the given width.
func NewProgressBar(width int) ProgressBar {
	if width <= 0 {
		width = 40
	}
	return ProgressBar{Width: width}
}

// SetPercent clamps and stores the completion fraction.
func (p *ProgressBar) SetPercent(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.percent = v
}

// Percent returns the stored completion fraction.
func (p ProgressBar) Percent() float64 {
	return p.percent
}

// Init implements tea.Model.
func (p ProgressBar) Init() tea.Cmd {
	return nil
}

// Update implements the bubbletea update contract for embedding models.
func (p ProgressBar) Update(msg tea.Msg) (ProgressBar, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok && size.Width > 0 {
		p.Width = size.Width
	}
	return p, nil
}

// View renders the bar.
func (p ProgressBar) View() string {
	width := p.Width
	if width <= 0 {
		width = 40
	}

	opts := []progress.Option{
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	}
	if p.Animated {
		from, to := styles.ProgressGradient()
		opts = append(opts, progress.WithGradient(from, to))
	} else {
		opts = append(opts, progress.WithSolidFill(string(theme.Current().Blue)))
	}

	bar := progress.New(opts...).ViewAs(p.percent)
	if p.ShowPercent {
		bar = fmt.Sprintf("%s %3.0f%%", bar, p.percent*100)
	}
	if p.ShowLabel && p.Label != "" {
		bar = p.Label + " " + bar
	}
	return bar
}
