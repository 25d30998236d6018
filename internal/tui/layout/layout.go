// Package layout holds shared sizing rules for terminal surfaces.
package layout

import (
	"github.com/charmbracelet/x/ansi"
)

// DefaultTruncateSuffix marks trimmed text.
const DefaultTruncateSuffix = "…"

// TruncateWidth trims a string to max display cells and appends suffix if
// trimmed. It is ANSI-aware so styled text keeps its escape sequences intact.
func TruncateWidth(s string, max int, suffix string) string {
	if max <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= max {
		return s
	}
	return ansi.Truncate(s, max, suffix)
}

// TruncateWidthDefault trims with the standard ellipsis suffix.
func TruncateWidthDefault(s string, max int) string {
	return TruncateWidth(s, max, DefaultTruncateSuffix)
}
