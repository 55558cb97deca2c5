package canonical

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/config"
)

// Format is a document serialization.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q", s)
	}
}

// keyOrder lists document keys in the order YAML output presents them. Other
// keys follow in lexical order.
var keyOrder = []string{
	"identifier", "apiVersion", "managed",
	"name", "plugin", "path", "url", "branchName",
	"masterBranchName", "developBranchName", "sourceSha",
	"developVersion", "masterVersion", "version", "upstream", "intermediate",
	"upstreams", "submodules", "features", "releases", "hotfixes", "supports",
	"included", "excluded", "templates", "commitTemplates", "tagTemplates",
	"message", "tag", "annotation",
	"tags", "integrations", "options", "dependencies", "labels", "annotations",
	"config",
}

// Marshal renders the canonical document of cfg.
func Marshal(cfg *config.Config, format Format, stamp bool) ([]byte, error) {
	doc := ToCanonical(cfg, stamp)

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding canonical json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		node, err := toNode(doc)
		if err != nil {
			return nil, fmt.Errorf("encoding canonical yaml: %w", err)
		}
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return nil, fmt.Errorf("encoding canonical yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding canonical yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// toNode builds a YAML node with mapping keys in keyOrder.
func toNode(v any) (*yaml.Node, error) {
	switch vv := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(vv))
		for k := range vv {
			keys = append(keys, k)
		}
		sortKeys(keys)

		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range keys {
			child, err := toNode(vv[k])
			if err != nil {
				return nil, err
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
			node.Content = append(node.Content, key, child)
		}
		return node, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range vv {
			child, err := toNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	default:
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, err
		}
		return node, nil
	}
}

func sortKeys(keys []string) {
	rank := func(k string) int {
		if i := slices.Index(keyOrder, k); i >= 0 {
			return i
		}
		return len(keyOrder)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		ri, rj := rank(keys[i]), rank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
}
