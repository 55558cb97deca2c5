package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/config"
)

// Decode parses a YAML or JSON document into its raw form. Mapping keys are
// normalized to strings so the result only holds JSON-compatible values.
func Decode(data []byte) (map[string]any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	raw, ok := normalize(doc).(map[string]any)
	if !ok {
		return nil, &ValidationError{Reason: fmt.Sprintf("expected an object at the document root, got %T", doc)}
	}
	return raw, nil
}

// LoadFromFile reads, decodes and validates a configuration file against the
// default registry.
func LoadFromFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes decodes and validates a configuration document against the
// default registry.
func LoadFromBytes(data []byte) (*config.Config, error) {
	raw, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Default.Validate(raw)
}

func normalize(v any) any {
	switch vv := v.(type) {
	case map[string]any:
		for k, item := range vv {
			vv[k] = normalize(item)
		}
		return vv
	case map[any]any:
		out := make(map[string]any, len(vv))
		for k, item := range vv {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		for i, item := range vv {
			vv[i] = normalize(item)
		}
		return vv
	default:
		return v
	}
}
