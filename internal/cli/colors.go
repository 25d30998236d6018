package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// hexToRGB parses a #rrggbb hex color into its components. Malformed input
// yields zeros.
func hexToRGB(hex string) (int, int, int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0
	}
	r, _ := strconv.ParseInt(hex[1:3], 16, 0)
	g, _ := strconv.ParseInt(hex[3:5], 16, 0)
	b, _ := strconv.ParseInt(hex[5:7], 16, 0)
	return int(r), int(g), int(b)
}

// colorToRGB renders a color value as the tail of a truecolor ANSI sequence.
// Anything that is not a #rrggbb string falls back to white.
func colorToRGB(c interface{}) string {
	var hex string
	switch v := c.(type) {
	case string:
		hex = v
	case lipgloss.Color:
		hex = string(v)
	default:
		return "255;255;255m"
	}

	if len(hex) != 7 || hex[0] != '#' {
		return "255;255;255m"
	}
	r, g, b := hexToRGB(hex)
	return fmt.Sprintf("%d;%d;%dm", r, g, b)
}

// colorize emits the full truecolor foreground escape for a color value.
func colorize(c interface{}) string {
	return "\033[38;2;" + colorToRGB(c)
}

// formatBytes renders a byte count in human units.
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}

