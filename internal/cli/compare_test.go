package cli

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/Dicklesworthstone/concord/internal/output"
)

func TestSortRankings(t *testing.T) {
	t.Parallel()

	rankings := []output.ModelScoreResponse{
		{Model: "broken", Error: "provider unreachable"},
		{Model: "mid", Confidence: 0.7},
		{Model: "best", Confidence: 0.9},
		{Model: "worst", Confidence: 0.4},
	}

	sortRankings(rankings)

	wantOrder := []string{"best", "mid", "worst", "broken"}
	for i, want := range wantOrder {
		if rankings[i].Model != want {
			t.Fatalf("rankings[%d] = %q, want %q (full: %+v)", i, rankings[i].Model, want, rankings)
		}
	}
}

func TestCompareWinner(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		rankings []output.ModelScoreResponse
		want     string
	}{
		{
			name: "top model wins",
			rankings: []output.ModelScoreResponse{
				{Model: "best", Confidence: 0.9},
				{Model: "mid", Confidence: 0.7},
			},
			want: "best",
		},
		{
			name:     "no rankings",
			rankings: nil,
			want:     "",
		},
		{
			name: "all errored",
			rankings: []output.ModelScoreResponse{
				{Model: "a", Error: "x"},
				{Model: "b", Error: "y"},
			},
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			sortRankings(tc.rankings)
			if got := compareWinner(tc.rankings); got != tc.want {
				t.Errorf("compareWinner() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCompareSpread(t *testing.T) {
	t.Parallel()

	rankings := []output.ModelScoreResponse{
		{Model: "a", Confidence: 0.9},
		{Model: "b", Confidence: 0.55},
		{Model: "broken", Error: "x"},
	}
	if got := compareSpread(rankings); math.Abs(got-0.35) > 1e-9 {
		t.Errorf("compareSpread() = %v, want 0.35", got)
	}

	if got := compareSpread(rankings[:1]); got != 0 {
		t.Errorf("compareSpread() with one model = %v, want 0", got)
	}
	if got := compareSpread(nil); got != 0 {
		t.Errorf("compareSpread() with no models = %v, want 0", got)
	}
}

func TestRenderCompare(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderCompare(&buf, output.CompareResponse{
		TimestampedResponse: output.NewTimestamped(),
		Prompt:              "Explain CAP theorem",
		Samples:             3,
		Rankings: []output.ModelScoreResponse{
			{Model: "gpt-4o", Confidence: 0.91, Band: "high", Inconsistencies: 0},
			{Model: "gpt-4o-mini", Confidence: 0.72, Band: "medium", Inconsistencies: 2},
			{Model: "flaky-model", Error: "provider unreachable"},
		},
		Winner: "gpt-4o",
		Spread: 0.19,
	})

	out := buf.String()
	for _, want := range []string{
		"Explain CAP theorem", "gpt-4o", "0.91", "gpt-4o-mini", "0.72",
		"provider unreachable", "Winner: gpt-4o", "spread 0.19",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("compare output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCompareNoWinner(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderCompare(&buf, output.CompareResponse{
		TimestampedResponse: output.NewTimestamped(),
		Prompt:              "p",
		Samples:             3,
		Rankings: []output.ModelScoreResponse{
			{Model: "a", Error: "x"},
		},
	})

	if !strings.Contains(buf.String(), "No model produced a usable result") {
		t.Errorf("missing no-winner notice:\n%s", buf.String())
	}
}
