package analysis

import (
	"reflect"
	"sort"
	"testing"
)

func TestExtractConsensusIdenticalResponses(t *testing.T) {
	t.Parallel()

	samples := SampleSet{
		"def add(a, b):\n    return a + b",
		"def add(a, b):\n    return a + b",
		"def add(a, b):\n    return a + b",
	}

	got := ExtractConsensus(samples)
	if len(got) == 0 {
		t.Fatal("ExtractConsensus(identical) = empty, want at least one line")
	}

	want := []string{"    return a + b", "def add(a, b):"}
	sort.Strings(want)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractConsensus = %v, want %v", got, want)
	}
}

func TestExtractConsensusPartialOverlap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		samples SampleSet
		want    []string
	}{
		{
			name:    "empty set",
			samples: SampleSet{},
			want:    nil,
		},
		{
			name:    "single response returns own lines",
			samples: SampleSet{"alpha\nbeta"},
			want:    []string{"alpha", "beta"},
		},
		{
			name: "shared line survives",
			samples: SampleSet{
				"shared\nonly in first",
				"shared\nonly in second",
			},
			want: []string{"shared"},
		},
		{
			name: "no overlap",
			samples: SampleSet{
				"first response",
				"second response",
			},
			want: []string{},
		},
		{
			name: "duplicate lines collapse",
			samples: SampleSet{
				"x\nx\ny",
				"x\nz",
			},
			want: []string{"x"},
		},
		{
			name: "reordered lines still intersect",
			samples: SampleSet{
				"one\ntwo",
				"two\none",
			},
			want: []string{"one", "two"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ExtractConsensus(tc.samples)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ExtractConsensus(%v) = %v, want %v", tc.samples, got, tc.want)
			}
		})
	}
}

func TestExtractConsensusKeepsEmptyLines(t *testing.T) {
	t.Parallel()

	samples := SampleSet{
		"header\n\nbody",
		"header\n\nfooter",
	}

	got := ExtractConsensus(samples)
	foundEmpty := false
	for _, line := range got {
		if line == "" {
			foundEmpty = true
		}
	}
	if !foundEmpty {
		t.Errorf("ExtractConsensus = %v, want empty line preserved", got)
	}
}

func TestExtractConsensusSorted(t *testing.T) {
	t.Parallel()

	samples := SampleSet{
		"zebra\napple\nmango",
		"mango\nzebra\napple",
	}

	got := ExtractConsensus(samples)
	if !sort.StringsAreSorted(got) {
		t.Errorf("ExtractConsensus = %v, want sorted output", got)
	}
}
