package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestPromptRequiredError(t *testing.T) {
	t.Parallel()

	err := PromptRequiredError()
	if err.Code != "PROMPT_REQUIRED" {
		t.Errorf("Code = %q, want %q", err.Code, "PROMPT_REQUIRED")
	}
	if !strings.Contains(err.Error(), "prompt") {
		t.Errorf("Message should mention the prompt: %q", err.Error())
	}
	if err.Hint == "" {
		t.Error("Hint should not be empty")
	}
}

func TestAPIKeyMissingError(t *testing.T) {
	t.Parallel()

	err := APIKeyMissingError("OPENAI_API_KEY")
	if err.Code != "API_KEY_MISSING" {
		t.Errorf("Code = %q, want %q", err.Code, "API_KEY_MISSING")
	}
	if !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("Message should contain env var name: %q", err.Error())
	}
	if !strings.Contains(err.Hint, "OPENAI_API_KEY") {
		t.Errorf("Hint should show the export command: %q", err.Hint)
	}
}

func TestConfigLoadError(t *testing.T) {
	t.Parallel()

	err := ConfigLoadError("file not found")
	if err.Code != "CONFIG_ERROR" {
		t.Errorf("Code = %q, want %q", err.Code, "CONFIG_ERROR")
	}
	if err.Cause != "file not found" {
		t.Errorf("Cause = %q, want %q", err.Cause, "file not found")
	}
	if err.Hint == "" {
		t.Error("Hint should not be empty")
	}
}

func TestBatchFileError(t *testing.T) {
	t.Parallel()

	err := BatchFileError("prompts.txt", "permission denied")
	if err.Code != "BATCH_FILE_ERROR" {
		t.Errorf("Code = %q, want %q", err.Code, "BATCH_FILE_ERROR")
	}
	if !strings.Contains(err.Error(), "prompts.txt") {
		t.Errorf("Message should contain the path: %q", err.Error())
	}
	if err.Cause != "permission denied" {
		t.Errorf("Cause = %q, want %q", err.Cause, "permission denied")
	}
}

func TestInvalidFlagError(t *testing.T) {
	t.Parallel()

	err := InvalidFlagError("samples", "99", "an integer between 2 and 10")
	if err.Code != "INVALID_FLAG" {
		t.Errorf("Code = %q, want %q", err.Code, "INVALID_FLAG")
	}
	if !strings.Contains(err.Error(), "--samples") {
		t.Errorf("Message should contain flag name: %q", err.Error())
	}
	if !strings.Contains(err.Error(), "99") {
		t.Errorf("Message should contain bad value: %q", err.Error())
	}
	if !strings.Contains(err.Hint, "between 2 and 10") {
		t.Errorf("Hint should describe expected values: %q", err.Hint)
	}
}

func TestGateFailedError(t *testing.T) {
	t.Parallel()

	err := GateFailedError(0.45, 0.6)
	if err.Code != "GATE_FAILED" {
		t.Errorf("Code = %q, want %q", err.Code, "GATE_FAILED")
	}
	want := "Output confidence 0.45 is below required threshold 0.60"
	if err.Message != want {
		t.Errorf("Message = %q, want %q", err.Message, want)
	}
}

func TestCLIErrorRenderPlain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := &CLIError{
		Message: "something broke",
		Hint:    "try again",
		Cause:   "root cause",
	}
	err.Render(&buf, false)

	out := buf.String()
	if !strings.Contains(out, "Error: something broke") {
		t.Errorf("output missing error line: %q", out)
	}
	if !strings.Contains(out, "root cause") {
		t.Errorf("output missing cause: %q", out)
	}
	if !strings.Contains(out, "Hint: try again") {
		t.Errorf("output missing hint: %q", out)
	}
}

func TestCLIErrorToResponse(t *testing.T) {
	t.Parallel()

	err := &CLIError{Code: "X", Message: "m", Hint: "h"}
	resp := err.ToResponse()
	if resp.Code != "X" || resp.Error != "m" {
		t.Errorf("ToResponse() = %+v", resp)
	}
	if resp.Details != "h" {
		t.Errorf("Details should fall back to hint, got %q", resp.Details)
	}

	err.Cause = "c"
	if got := err.ToResponse().Details; got != "c" {
		t.Errorf("Details should prefer cause, got %q", got)
	}
}
