package cli

import "testing"

func TestIsInteractiveFalseUnderTest(t *testing.T) {
	t.Parallel()

	// Test binaries run with piped stdio, never a terminal on both ends.
	if isInteractive() {
		t.Error("isInteractive() = true under test harness")
	}
}

func TestTerminalWidthFallback(t *testing.T) {
	t.Parallel()

	w := terminalWidth()
	if w < 40 || w > 100 {
		t.Errorf("terminalWidth() = %d, want within [40, 100]", w)
	}
}
