package textdiff

import (
	"strings"
	"testing"
)

func TestUnifiedIdenticalInputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"single line", "hello"},
		{"multi line", "one\ntwo\nthree"},
		{"trailing newline", "one\ntwo\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Unified(tc.text, tc.text); len(got) != 0 {
				t.Errorf("Unified(identical) = %d records, want 0: %v", len(got), got)
			}
		})
	}
}

func TestUnifiedSingleLineChange(t *testing.T) {
	t.Parallel()

	got := Unified("abc", "abd")
	// Two headers, one hunk header, one removal, one addition.
	if len(got) != 5 {
		t.Fatalf("Unified(abc, abd) = %d records, want 5: %v", len(got), got)
	}
	if got[0] != "--- a" || got[1] != "+++ b" {
		t.Errorf("headers = %q, %q, want %q, %q", got[0], got[1], "--- a", "+++ b")
	}
	if !strings.HasPrefix(got[2], "@@ ") {
		t.Errorf("record 2 = %q, want hunk header", got[2])
	}
	if got[3] != "-abc" {
		t.Errorf("removal = %q, want %q", got[3], "-abc")
	}
	if got[4] != "+abd" {
		t.Errorf("addition = %q, want %q", got[4], "+abd")
	}
}

func TestUnifiedContextWindow(t *testing.T) {
	t.Parallel()

	a := "one\ntwo\nthree\nfour\nfive\nsix\nseven"
	b := "one\ntwo\nthree\nFOUR\nfive\nsix\nseven"

	got := Unified(a, b)
	// Headers + hunk + 3 context + removal + addition + 3 context.
	if len(got) != 11 {
		t.Fatalf("Unified = %d records, want 11: %v", len(got), got)
	}
	if got[2] != "@@ -1,7 +1,7 @@" {
		t.Errorf("hunk header = %q, want %q", got[2], "@@ -1,7 +1,7 @@")
	}

	var removals, additions, context int
	for _, rec := range got[3:] {
		switch {
		case strings.HasPrefix(rec, "-"):
			removals++
		case strings.HasPrefix(rec, "+"):
			additions++
		case strings.HasPrefix(rec, " "):
			context++
		}
	}
	if removals != 1 || additions != 1 || context != 6 {
		t.Errorf("got %d removals, %d additions, %d context; want 1, 1, 6",
			removals, additions, context)
	}
}

func TestUnifiedSplitsDistantChanges(t *testing.T) {
	t.Parallel()

	lines := make([]string, 20)
	for i := range lines {
		lines[i] = strings.Repeat("x", i+1)
	}
	a := strings.Join(lines, "\n")

	changed := make([]string, 20)
	copy(changed, lines)
	changed[0] = "CHANGED-FIRST"
	changed[19] = "CHANGED-LAST"
	b := strings.Join(changed, "\n")

	got := Unified(a, b)
	hunks := 0
	for _, rec := range got {
		if strings.HasPrefix(rec, "@@ ") {
			hunks++
		}
	}
	if hunks != 2 {
		t.Errorf("got %d hunks, want 2 for changes 18 equal lines apart:\n%s",
			hunks, strings.Join(got, "\n"))
	}
}

func TestUnifiedDisjointInputs(t *testing.T) {
	t.Parallel()

	got := Unified("alpha\nbeta", "gamma\ndelta")
	if len(got) != 7 {
		t.Fatalf("Unified = %d records, want 7: %v", len(got), got)
	}
	want := []string{"--- a", "+++ b", "@@ -1,2 +1,2 @@", "-alpha", "-beta", "+gamma", "+delta"}
	for i, rec := range want {
		if got[i] != rec {
			t.Errorf("record %d = %q, want %q", i, got[i], rec)
		}
	}
}

func TestRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "hello world", "hello world", 1.0},
		{"both empty", "", "", 1.0},
		{"empty vs text", "", "abc", 0.0},
		{"no overlap", "aaa", "bbb", 0.0},
		{"one char differs", "abc", "abd", 2.0 * 2 / 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Ratio(tc.a, tc.b)
			if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Ratio(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestRatioBounds(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"the quick brown fox", "the slow brown fox"},
		{"completely different", "nothing shared at all except spaces"},
		{strings.Repeat("a", 500), strings.Repeat("a", 250) + strings.Repeat("b", 250)},
	}

	for _, p := range pairs {
		got := Ratio(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Ratio(%q, %q) = %v, want value in [0, 1]", p[0], p[1], got)
		}
	}
}
