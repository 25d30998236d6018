// Package theme defines the color palettes used across all terminal output.
package theme

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the full palette plus semantic aliases. All terminal surfaces
// pull colors from here rather than hardcoding hex values.
type Theme struct {
	Name string

	// Base tones, darkest to lightest in the dark variants.
	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Surface2 lipgloss.Color
	Overlay  lipgloss.Color
	Subtext  lipgloss.Color
	Text     lipgloss.Color

	// Accent colors.
	Lavender lipgloss.Color
	Blue     lipgloss.Color
	Sapphire lipgloss.Color
	Sky      lipgloss.Color
	Teal     lipgloss.Color
	Green    lipgloss.Color
	Yellow   lipgloss.Color
	Peach    lipgloss.Color
	Red      lipgloss.Color
	Maroon   lipgloss.Color
	Mauve    lipgloss.Color
	Pink     lipgloss.Color

	// Semantic aliases so call sites read by intent.
	Primary lipgloss.Color
	Info    lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

// CatppuccinMocha is the default dark palette.
var CatppuccinMocha = Theme{
	Name:     "mocha",
	Base:     lipgloss.Color("#1e1e2e"),
	Mantle:   lipgloss.Color("#181825"),
	Surface0: lipgloss.Color("#313244"),
	Surface1: lipgloss.Color("#45475a"),
	Surface2: lipgloss.Color("#585b70"),
	Overlay:  lipgloss.Color("#6c7086"),
	Subtext:  lipgloss.Color("#a6adc8"),
	Text:     lipgloss.Color("#cdd6f4"),
	Lavender: lipgloss.Color("#b4befe"),
	Blue:     lipgloss.Color("#89b4fa"),
	Sapphire: lipgloss.Color("#74c7ec"),
	Sky:      lipgloss.Color("#89dceb"),
	Teal:     lipgloss.Color("#94e2d5"),
	Green:    lipgloss.Color("#a6e3a1"),
	Yellow:   lipgloss.Color("#f9e2af"),
	Peach:    lipgloss.Color("#fab387"),
	Red:      lipgloss.Color("#f38ba8"),
	Maroon:   lipgloss.Color("#eba0ac"),
	Mauve:    lipgloss.Color("#cba6f7"),
	Pink:     lipgloss.Color("#f5c2e7"),
	Primary:  lipgloss.Color("#89b4fa"),
	Info:     lipgloss.Color("#89dceb"),
	Success:  lipgloss.Color("#a6e3a1"),
	Warning:  lipgloss.Color("#f9e2af"),
	Error:    lipgloss.Color("#f38ba8"),
}

// CatppuccinLatte is the light palette for light terminal backgrounds.
var CatppuccinLatte = Theme{
	Name:     "latte",
	Base:     lipgloss.Color("#eff1f5"),
	Mantle:   lipgloss.Color("#e6e9ef"),
	Surface0: lipgloss.Color("#ccd0da"),
	Surface1: lipgloss.Color("#bcc0cc"),
	Surface2: lipgloss.Color("#acb0be"),
	Overlay:  lipgloss.Color("#8c8fa1"),
	Subtext:  lipgloss.Color("#6c6f85"),
	Text:     lipgloss.Color("#4c4f69"),
	Lavender: lipgloss.Color("#7287fd"),
	Blue:     lipgloss.Color("#1e66f5"),
	Sapphire: lipgloss.Color("#209fb5"),
	Sky:      lipgloss.Color("#04a5e5"),
	Teal:     lipgloss.Color("#179299"),
	Green:    lipgloss.Color("#40a02b"),
	Yellow:   lipgloss.Color("#df8e1d"),
	Peach:    lipgloss.Color("#fe640b"),
	Red:      lipgloss.Color("#d20f39"),
	Maroon:   lipgloss.Color("#e64553"),
	Mauve:    lipgloss.Color("#8839ef"),
	Pink:     lipgloss.Color("#ea76cb"),
	Primary:  lipgloss.Color("#1e66f5"),
	Info:     lipgloss.Color("#04a5e5"),
	Success:  lipgloss.Color("#40a02b"),
	Warning:  lipgloss.Color("#df8e1d"),
	Error:    lipgloss.Color("#d20f39"),
}

// Current returns the active theme. The CONCORD_THEME environment variable
// selects the palette and is re-read on every call so long-running views
// follow changes.
func Current() Theme {
	switch os.Getenv("CONCORD_THEME") {
	case "latte", "light":
		return CatppuccinLatte
	default:
		return CatppuccinMocha
	}
}

// ColorEnabled reports whether colored output should be produced. Both the
// conventional NO_COLOR and the app-specific CONCORD_NO_COLOR are honored,
// with "0" explicitly re-enabling color.
func ColorEnabled() bool {
	if v, ok := os.LookupEnv("CONCORD_NO_COLOR"); ok && v != "0" {
		return false
	}
	if v, ok := os.LookupEnv("NO_COLOR"); ok && v != "0" {
		return false
	}
	return true
}
