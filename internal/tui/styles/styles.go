// Package styles provides shared lipgloss building blocks for terminal
// surfaces: badges, headers, and the progress gradient.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Dicklesworthstone/concord/internal/tui/theme"
)

// BadgeStyle selects how a badge is drawn.
type BadgeStyle int

const (
	// BadgeStyleFull draws a background pill with padding.
	BadgeStyleFull BadgeStyle = iota
	// BadgeStyleCompact draws foreground-only text, no padding.
	BadgeStyleCompact
)

// BadgeOptions configures TextBadge rendering.
type BadgeOptions struct {
	Style      BadgeStyle
	Bold       bool
	ShowIcon   bool
	Icon       string
	FixedWidth int
}

// TextBadge renders a small status chip. fg is the accent color, bg the
// contrast color used for full-style backgrounds.
func TextBadge(label string, fg, bg lipgloss.Color, opts BadgeOptions) string {
	if opts.ShowIcon && opts.Icon != "" {
		label = opts.Icon + " " + label
	}
	if opts.FixedWidth > 0 {
		w := runewidth.StringWidth(label)
		if w > opts.FixedWidth {
			label = runewidth.Truncate(label, opts.FixedWidth, "")
		} else if w < opts.FixedWidth {
			label = label + strings.Repeat(" ", opts.FixedWidth-w)
		}
	}

	style := lipgloss.NewStyle().Bold(opts.Bold)
	switch opts.Style {
	case BadgeStyleCompact:
		style = style.Foreground(fg)
	default:
		style = style.Background(fg).Foreground(bg).Padding(0, 1)
	}
	return style.Render(label)
}

// BandColor maps a confidence band name to its accent color.
func BandColor(band string) lipgloss.Color {
	t := theme.Current()
	switch band {
	case "high":
		return t.Green
	case "medium":
		return t.Yellow
	case "low":
		return t.Peach
	case "very_low":
		return t.Red
	default:
		return t.Subtext
	}
}

// BandBadge renders a fixed-width chip for a confidence band.
func BandBadge(band string) string {
	label := map[string]string{
		"high":     "HIGH",
		"medium":   "MED",
		"low":      "LOW",
		"very_low": "VLOW",
	}[band]
	if label == "" {
		label = strings.ToUpper(band)
	}
	t := theme.Current()
	return TextBadge(label, BandColor(band), t.Base, BadgeOptions{
		Style:      BadgeStyleCompact,
		Bold:       true,
		FixedWidth: 4,
	})
}

// SeverityColor maps an inconsistency severity to its accent color.
func SeverityColor(severity string) lipgloss.Color {
	t := theme.Current()
	switch severity {
	case "critical":
		return t.Red
	case "high":
		return t.Peach
	case "medium":
		return t.Yellow
	case "low":
		return t.Subtext
	default:
		return t.Overlay
	}
}

// Header renders a bold centered section header with an underline rule.
func Header(title string, width int) string {
	t := theme.Current()
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Lavender).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(defaultSurface1()).
		Width(width).
		Align(lipgloss.Center).
		Render(title)
}

// ProgressGradient returns the first and last stops of the theme gradient,
// in the form the progress bar component expects.
func ProgressGradient() (string, string) {
	ramp := defaultGradient()
	return ramp[0], ramp[len(ramp)-1]
}

func defaultGradient() []string {
	t := theme.Current()
	return []string{
		string(t.Blue),
		string(t.Mauve),
		string(t.Pink),
	}
}

func defaultSurface1() lipgloss.Color {
	return theme.Current().Surface1
}
