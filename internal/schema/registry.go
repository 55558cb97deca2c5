package schema

import (
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/config"
	"github.com/MyCarrier-DevOps/go-flowconfig/internal/semver"
)

// Registry holds the known document shapes, oldest first, together with the
// adapter that maps each vintage onto config.Config. A Registry is read-only
// after construction and safe for concurrent use.
type Registry struct {
	names    []string
	adapters []adaptFunc
}

// Default is the registry of every built-in document shape.
var Default = NewRegistry()

// NewRegistry returns a registry of the built-in shapes v0.0 through v0.4.
func NewRegistry() *Registry {
	return &Registry{
		names:    versionNames,
		adapters: []adaptFunc{adaptV00, adaptV01, adaptV02, adaptV03, adaptV04},
	}
}

// Latest returns the newest registered version, e.g. "v0.4".
func (r *Registry) Latest() string {
	return r.names[len(r.names)-1]
}

// Versions returns the registered versions, oldest first.
func (r *Registry) Versions() []string {
	return append([]string(nil), r.names...)
}

// Validate matches raw against the newest shape it satisfies and returns the
// adapted tree. Nested submodule configs pick their own shape. When no shape
// matches, the error is a *ValidationError describing the newest shape's first
// offending field.
func (r *Registry) Validate(raw map[string]any) (*config.Config, error) {
	return r.validate(raw, "")
}

// Detect returns the version of the newest shape raw satisfies, without
// adapting nested documents.
func (r *Registry) Detect(raw map[string]any) (string, error) {
	v, err := r.match(raw, "")
	if err != nil {
		return "", err
	}
	return r.names[v], nil
}

// ResolveAPIVersion normalizes the declared apiVersion of cfg, or
// config.DefaultAPIVersion when absent, to canonical SemVer form.
func (r *Registry) ResolveAPIVersion(cfg *config.Config) (string, error) {
	raw := config.DefaultAPIVersion
	if cfg.APIVersion != nil {
		raw = *cfg.APIVersion
	}
	v, err := semver.Coerce(raw)
	if err != nil {
		var fe *semver.FormatError
		if errors.As(err, &fe) {
			fe.Field = "apiVersion"
		}
		return "", err
	}
	return v, nil
}

func (r *Registry) validate(raw map[string]any, path string) (*config.Config, error) {
	v, err := r.match(raw, path)
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{}
	for i := 0; i <= v; i++ {
		if err := r.adapters[i](r, raw, cfg, path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (r *Registry) match(raw map[string]any, path string) (int, error) {
	if err := r.checkAPIVersion(raw, path); err != nil {
		return 0, err
	}

	var first error
	for v := len(r.names) - 1; v >= 0; v-- {
		err := check(v, configFields, raw, path)
		if err == nil {
			return v, nil
		}
		if first == nil {
			first = err
		}
	}
	return 0, first
}

// checkAPIVersion rejects documents declaring a version newer than the newest
// registered shape. Versions that cannot be coerced are left for
// ResolveAPIVersion to report.
func (r *Registry) checkAPIVersion(raw map[string]any, path string) error {
	declared, ok := raw["apiVersion"].(string)
	if !ok {
		return nil
	}
	cmp, err := semver.Compare(declared, r.Latest())
	if err != nil || cmp <= 0 {
		return nil
	}
	return &ValidationError{
		Path:   join(path, "apiVersion"),
		Reason: fmt.Sprintf("version %q is newer than the newest supported version %s", declared, r.Latest()),
	}
}

// check validates obj against the fields known at version v.
func check(v int, fields []Field, obj map[string]any, path string) error {
	for _, f := range fields {
		if f.Since > v {
			continue
		}
		fieldPath := join(path, f.Name)
		val, ok := obj[f.Name]
		if !ok || val == nil {
			if f.Required {
				return &ValidationError{Path: fieldPath, Reason: "required field is missing"}
			}
			continue
		}
		if err := checkValue(v, f, val, fieldPath); err != nil {
			return err
		}
	}
	return nil
}

func checkValue(v int, f Field, val any, path string) error {
	mismatch := func() error {
		return &ValidationError{Path: path, Reason: fmt.Sprintf("expected %s, got %T", f.Kind, val)}
	}

	switch f.Kind {
	case String:
		if _, ok := val.(string); !ok {
			return mismatch()
		}
	case Bool:
		if _, ok := val.(bool); !ok {
			return mismatch()
		}
	case Strings:
		items, ok := asList(val)
		if !ok {
			return mismatch()
		}
		for i, item := range items {
			if _, ok := item.(string); !ok {
				return &ValidationError{Path: index(path, i), Reason: fmt.Sprintf("expected string, got %T", item)}
			}
		}
	case Object:
		m, ok := val.(map[string]any)
		if !ok {
			return mismatch()
		}
		return check(v, f.Fields, m, path)
	case List:
		items, ok := asList(val)
		if !ok {
			return mismatch()
		}
		for i, item := range items {
			m, ok := item.(map[string]any)
			if !ok {
				return &ValidationError{Path: index(path, i), Reason: fmt.Sprintf("expected object, got %T", item)}
			}
			if err := check(v, f.Fields, m, index(path, i)); err != nil {
				return err
			}
		}
	case Map, Document:
		// Nested documents are matched on their own when adapted.
		if _, ok := val.(map[string]any); !ok {
			return mismatch()
		}
	case Dependencies:
		items, ok := asList(val)
		if !ok {
			return mismatch()
		}
		for i, item := range items {
			if err := checkDependency(item, index(path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkDependency(item any, path string) error {
	switch dep := item.(type) {
	case string, map[string]string:
		return nil
	case map[string]any:
		for name, version := range dep {
			if _, ok := version.(string); !ok {
				return &ValidationError{Path: join(path, name), Reason: fmt.Sprintf("expected string, got %T", version)}
			}
		}
		return nil
	default:
		return &ValidationError{Path: path, Reason: fmt.Sprintf("expected string or map, got %T", item)}
	}
}

func asList(val any) ([]any, bool) {
	switch items := val.(type) {
	case []any:
		return items, true
	case []string:
		out := make([]any, len(items))
		for i, s := range items {
			out[i] = s
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(items))
		for i, m := range items {
			out[i] = m
		}
		return out, true
	default:
		return nil, false
	}
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
