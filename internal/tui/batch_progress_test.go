package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/concord/internal/output"
)

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func TestBatchProgressViewLoading(t *testing.T) {
	progress := NewBatchProgress(60)
	progress.SetData(BatchProgressData{
		Phase: BatchLoading,
		Total: 4,
	})

	view := progress.View()
	if !strings.Contains(view, "Loading prompts") {
		t.Errorf("expected loading label in view, got %q", view)
	}
	if !strings.Contains(view, "4 found") {
		t.Errorf("expected prompt count in view, got %q", view)
	}
}

func TestBatchProgressViewRunningIncludesLines(t *testing.T) {
	progress := NewBatchProgress(80)
	progress.SetData(BatchProgressData{
		Phase:   BatchRunning,
		Done:    1,
		Total:   3,
		Model:   "gpt-4o-mini",
		Samples: 5,
		Lines: []BatchLine{
			{Prompt: "Write a binary search in Python", Confidence: 0.91, Band: "high", Status: StatusPassed},
			{Prompt: "Explain quantum entanglement", Status: StatusRunning},
			{Prompt: "Summarize the meeting notes", Status: StatusPending},
		},
	})

	view := progress.View()
	if !strings.Contains(view, "1/3 done") {
		t.Errorf("expected done count in view, got %q", view)
	}
	if !strings.Contains(view, "gpt-4o-mini") {
		t.Errorf("expected model name in view, got %q", view)
	}
	if !strings.Contains(view, "0.91") {
		t.Errorf("expected confidence in view, got %q", view)
	}
	if !strings.Contains(view, "HIGH") {
		t.Errorf("expected band chip in view, got %q", view)
	}
	if !strings.Contains(view, "binary search") {
		t.Errorf("expected prompt text in view, got %q", view)
	}
}

func TestBatchProgressViewCompleteShowsResultPath(t *testing.T) {
	progress := NewBatchProgress(60)
	progress.SetData(BatchProgressData{
		Phase:      BatchComplete,
		ResultPath: "/tmp/batch.json",
		Summary: &output.BatchSummaryResponse{
			Total:          2,
			Passed:         1,
			Failed:         1,
			MeanConfidence: 0.7,
		},
	})

	view := progress.View()
	if !strings.Contains(view, "Batch complete") {
		t.Errorf("expected completion label, got %q", view)
	}
	if !strings.Contains(view, "/tmp/batch.json") {
		t.Errorf("expected result path in view, got %q", view)
	}
	if !strings.Contains(view, "1 passed") {
		t.Errorf("expected summary in view, got %q", view)
	}
}

func TestBatchProgressDefaultsToLoadingPhase(t *testing.T) {
	progress := NewBatchProgress(60)
	progress.SetData(BatchProgressData{})

	if progress.data.Phase != BatchLoading {
		t.Errorf("empty phase should default to loading, got %q", progress.data.Phase)
	}
}

func TestBatchProgressQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c", "esc"} {
		progress := NewBatchProgress(60)
		_, cmd := progress.Update(keyMsg(key))
		if cmd == nil {
			t.Errorf("key %q should produce a quit command", key)
		}
		if !progress.quitting {
			t.Errorf("key %q should mark the model as quitting", key)
		}
	}
}
