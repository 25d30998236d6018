package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	data := map[string]int{"count": 42}

	result, err := MarshalJSON(data, false)
	if err != nil {
		t.Fatalf("MarshalJSON(compact) error: %v", err)
	}
	if !strings.Contains(string(result), "count") {
		t.Error("compact JSON should contain key")
	}
	if strings.Contains(string(result), "\n") {
		t.Error("compact JSON should not contain newlines")
	}

	result, err = MarshalJSON(data, true)
	if err != nil {
		t.Fatalf("MarshalJSON(pretty) error: %v", err)
	}
	if !strings.Contains(string(result), "\n") {
		t.Error("pretty JSON should contain newlines")
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteJSON(&buf, NewSuccess("done")); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}

	var decoded SuccessResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if !decoded.Success || decoded.Message != "done" {
		t.Errorf("decoded = %+v", decoded)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("WriteJSON should end with a newline")
	}
}

func TestWriteJSONCompactSingleLine(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteJSONCompact(&buf, ReviewResponse{Prompt: "p", Band: "high"}); err != nil {
		t.Fatalf("WriteJSONCompact error: %v", err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Errorf("compact output should be one line, got %d newlines", got)
	}
}

func TestNewTimestampedIsUTC(t *testing.T) {
	t.Parallel()

	resp := NewTimestamped()
	if resp.GeneratedAt.Location() != time.UTC {
		t.Errorf("GeneratedAt location = %v, want UTC", resp.GeneratedAt.Location())
	}
	if resp.GeneratedAt.Nanosecond() != 0 {
		t.Error("GeneratedAt should be truncated to seconds")
	}
}

func TestFormatElapsed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d    time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{time.Second, "1.0s"},
		{2300 * time.Millisecond, "2.3s"},
	}

	for _, tt := range tests {
		if got := FormatElapsed(tt.d); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestNewErrorWithDetails(t *testing.T) {
	t.Parallel()

	resp := NewErrorWithDetails("something failed", "more info")
	if resp.Error != "something failed" {
		t.Errorf("Error = %q, want %q", resp.Error, "something failed")
	}
	if resp.Details != "more info" {
		t.Errorf("Details = %q, want %q", resp.Details, "more info")
	}
}
