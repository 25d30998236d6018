package styles

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/Dicklesworthstone/concord/internal/tui/theme"
)

func TestDefaultGradientUsesCurrentThemeColors(t *testing.T) {
	t.Setenv("CONCORD_THEME", "latte")

	got := defaultGradient()
	want := []string{
		string(theme.CatppuccinLatte.Blue),
		string(theme.CatppuccinLatte.Mauve),
		string(theme.CatppuccinLatte.Pink),
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("defaultGradient() = %v, want %v", got, want)
	}
}

func TestDefaultSurface1UsesCurrentThemeColor(t *testing.T) {
	t.Setenv("CONCORD_THEME", "latte")

	got := string(defaultSurface1())
	want := string(theme.CatppuccinLatte.Surface1)

	if got != want {
		t.Fatalf("defaultSurface1() = %s, want %s", got, want)
	}
}

func TestDefaultGradientFollowsThemeChange(t *testing.T) {
	t.Setenv("CONCORD_THEME", "mocha")

	got := defaultGradient()
	want := []string{
		string(theme.CatppuccinMocha.Blue),
		string(theme.CatppuccinMocha.Mauve),
		string(theme.CatppuccinMocha.Pink),
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("after theme change, defaultGradient() = %v, want %v", got, want)
	}
}

func TestBandBadgeLabels(t *testing.T) {
	tests := []struct {
		band string
		want string
	}{
		{"high", "HIGH"},
		{"medium", "MED"},
		{"low", "LOW"},
		{"very_low", "VLOW"},
	}

	for _, tt := range tests {
		t.Run(tt.band, func(t *testing.T) {
			badge := BandBadge(tt.band)
			if !strings.Contains(badge, tt.want) {
				t.Errorf("BandBadge(%q) = %q, missing label %q", tt.band, badge, tt.want)
			}
		})
	}
}

func TestTextBadgeFixedWidthPads(t *testing.T) {
	badge := TextBadge("OK", "", "", BadgeOptions{Style: BadgeStyleCompact, FixedWidth: 4})
	if !strings.Contains(badge, "OK  ") {
		t.Errorf("fixed-width badge should pad label, got %q", badge)
	}
}

func TestTextBadgeFixedWidthTruncates(t *testing.T) {
	badge := TextBadge("OVERLONG", "", "", BadgeOptions{Style: BadgeStyleCompact, FixedWidth: 4})
	if strings.Contains(badge, "OVERLONG") {
		t.Errorf("fixed-width badge should truncate label, got %q", badge)
	}
	if !strings.Contains(badge, "OVER") {
		t.Errorf("truncated badge should keep prefix, got %q", badge)
	}
}

// Ensure we don’t leak env between tests when running without -count=1.
func TestMain(m *testing.M) {
	code := m.Run()
	_ = os.Unsetenv("CONCORD_THEME")
	os.Exit(code)
}
