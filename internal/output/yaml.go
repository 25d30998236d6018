package output

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteYAML writes v as YAML to w.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// PrintYAML writes v as YAML to stdout.
func PrintYAML(v any) error {
	return WriteYAML(os.Stdout, v)
}
