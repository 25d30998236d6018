package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/concord/internal/tui/theme"
)

// ErrGateFailed marks a run whose result was already rendered but whose
// confidence gate did not pass. Commands return it so the process exits
// nonzero without printing the failure twice.
var ErrGateFailed = errors.New("confidence gate failed")

// CLIError is a user-facing error with a stable code and a recovery hint.
type CLIError struct {
	Code    string
	Message string
	Hint    string
	Cause   string

	wrapped error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel this error wraps, if any.
func (e *CLIError) Unwrap() error {
	return e.wrapped
}

// Render writes the error to w, styled when color is enabled.
func (e *CLIError) Render(w io.Writer, color bool) {
	if !color {
		fmt.Fprintf(w, "Error: %s\n", e.Message)
		if e.Cause != "" {
			fmt.Fprintf(w, "  %s\n", e.Cause)
		}
		if e.Hint != "" {
			fmt.Fprintf(w, "Hint: %s\n", e.Hint)
		}
		return
	}

	t := theme.Current()
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)
	causeStyle := lipgloss.NewStyle().Foreground(t.Subtext)
	hintStyle := lipgloss.NewStyle().Foreground(t.Sky)

	fmt.Fprintln(w, errStyle.Render("Error: ")+e.Message)
	if e.Cause != "" {
		fmt.Fprintln(w, causeStyle.Render("  "+e.Cause))
	}
	if e.Hint != "" {
		fmt.Fprintln(w, hintStyle.Render("Hint: "+e.Hint))
	}
}

// ToResponse converts the error to its JSON form.
func (e *CLIError) ToResponse() ErrorResponse {
	details := e.Cause
	if details == "" {
		details = e.Hint
	}
	return ErrorResponse{Error: e.Message, Code: e.Code, Details: details}
}

// PromptRequiredError indicates a command was invoked without a prompt.
func PromptRequiredError() *CLIError {
	return &CLIError{
		Code:    "PROMPT_REQUIRED",
		Message: "a prompt is required",
		Hint:    "pass the prompt as an argument, or pipe it on stdin",
	}
}

// APIKeyMissingError indicates the provider credential is not set.
func APIKeyMissingError(envVar string) *CLIError {
	return &CLIError{
		Code:    "API_KEY_MISSING",
		Message: fmt.Sprintf("environment variable %s is not set", envVar),
		Hint:    fmt.Sprintf("export %s=<your key> or point base_url at a local endpoint", envVar),
	}
}

// ConfigLoadError indicates the config file could not be loaded.
func ConfigLoadError(cause string) *CLIError {
	return &CLIError{
		Code:    "CONFIG_ERROR",
		Message: "failed to load configuration",
		Cause:   cause,
		Hint:    "check the TOML syntax, or remove the file to use defaults",
	}
}

// PolicyLoadError indicates the gate policy file could not be loaded.
func PolicyLoadError(cause string) *CLIError {
	return &CLIError{
		Code:    "POLICY_ERROR",
		Message: "failed to load gate policy",
		Cause:   cause,
		Hint:    "check the YAML syntax and that every rule pattern compiles",
	}
}

// BatchFileError indicates the batch prompt file could not be read.
func BatchFileError(path, cause string) *CLIError {
	return &CLIError{
		Code:    "BATCH_FILE_ERROR",
		Message: fmt.Sprintf("failed to read prompts from %s", path),
		Cause:   cause,
		Hint:    "the file should contain one prompt per line, or a JSON array of strings",
	}
}

// SamplingFailedError indicates the completion provider returned an error.
func SamplingFailedError(cause string) *CLIError {
	return &CLIError{
		Code:    "SAMPLING_FAILED",
		Message: "failed to collect samples from the provider",
		Cause:   cause,
		Hint:    "verify the API key, model name, and network connectivity",
	}
}

// InvalidFlagError indicates a flag value is outside the accepted set.
func InvalidFlagError(flag, value, expected string) *CLIError {
	return &CLIError{
		Code:    "INVALID_FLAG",
		Message: fmt.Sprintf("invalid value %q for --%s", value, flag),
		Hint:    expected,
	}
}

// GateFailedError reports a confidence score below the enforced threshold.
// It wraps ErrGateFailed so callers can detect the condition with errors.Is.
func GateFailedError(score, threshold float64) *CLIError {
	return &CLIError{
		Code:    "GATE_FAILED",
		Message: fmt.Sprintf("Output confidence %.2f is below required threshold %.2f", score, threshold),
		Hint:    "regenerate with more samples, or lower --min-confidence if the threshold is too strict",
		wrapped: ErrGateFailed,
	}
}
