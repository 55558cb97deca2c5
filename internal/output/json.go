// Package output renders command results: documents, digests, reference
// descriptors, version listings and submodule trees.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// WriteJSON writes v as pretty-printed JSON to the writer.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling to JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON output: %w", err)
	}
	_, err = w.Write([]byte("\n"))
	return err
}

// WriteYAML writes v as YAML with two-space indentation to the writer.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("writing YAML output: %w", err)
	}
	return enc.Close()
}

// WriteField writes a single field value to the writer.
func WriteField(w io.Writer, fields map[string]string, name string) error {
	val, ok := fields[name]
	if !ok {
		return fmt.Errorf("unknown field %q", name)
	}
	_, err := fmt.Fprintln(w, val)
	return err
}

// WriteAll writes all fields as key=value pairs to the writer, sorted by key.
func WriteAll(w io.Writer, fields map[string]string) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, fields[k]); err != nil {
			return err
		}
	}
	return nil
}
