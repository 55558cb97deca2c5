package cmd

import (
	"fmt"
	"io"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/output"
)

// writeFields writes a flat descriptor in the requested output format.
func writeFields(w io.Writer, fields map[string]string) error {
	switch flagOutput {
	case "json":
		return output.WriteJSON(w, fields)
	case "yaml":
		return output.WriteYAML(w, fields)
	case "":
		return output.WriteAll(w, fields)
	default:
		return fmt.Errorf("unknown output format %q", flagOutput)
	}
}

// writeStructured writes v as JSON or YAML, or calls text for the default
// format.
func writeStructured(w io.Writer, v any, text func() error) error {
	switch flagOutput {
	case "json":
		return output.WriteJSON(w, v)
	case "yaml":
		return output.WriteYAML(w, v)
	case "":
		return text()
	default:
		return fmt.Errorf("unknown output format %q", flagOutput)
	}
}
