package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// MarshalJSON serializes v, pretty-printed when pretty is true.
func MarshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WriteJSON writes v to w as indented JSON with a trailing newline.
func WriteJSON(w io.Writer, v any) error {
	data, err := MarshalJSON(v, true)
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// WriteJSONCompact writes v to w as single-line JSON with a trailing newline.
func WriteJSONCompact(w io.Writer, v any) error {
	data, err := MarshalJSON(v, false)
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// PrintJSON writes v to stdout as indented JSON.
func PrintJSON(v any) error {
	return WriteJSON(os.Stdout, v)
}

