package config

import (
	"errors"
	"fmt"
	"slices"
)

// Builder constructs a Config by layering overrides on top of a base tree.
// The built tree shares no memory with the base or any layer.
type Builder struct {
	base   *Config
	layers []layer
}

type layer struct {
	cfg    *Config
	shadow bool
}

// NewBuilder creates a builder over base. A nil base starts from an empty
// Config.
func NewBuilder(base *Config) *Builder {
	if base == nil {
		base = &Config{}
	}
	return &Builder{base: base}
}

// Add adds an override layer. Layers are applied in order: later layers take
// precedence over earlier ones. Scalars replace when set, named entries
// replace same-named entries, and lists append values not already present.
func (b *Builder) Add(override *Config) *Builder {
	if override != nil {
		b.layers = append(b.layers, layer{cfg: override})
	}
	return b
}

// AddShadow adds a bookkeeping layer. Only its submodules, features, releases
// and hotfixes are applied; each is marked Shadow and appended, replacing an
// earlier shadow entry of the same name but never a persisted one.
func (b *Builder) AddShadow(override *Config) *Builder {
	if override != nil {
		b.layers = append(b.layers, layer{cfg: override, shadow: true})
	}
	return b
}

// Build applies all layers to a copy of the base and validates the result.
func (b *Builder) Build() (*Config, error) {
	cfg := b.base.Clone()

	for _, l := range b.layers {
		src := l.cfg.Clone()
		if l.shadow {
			mergeShadow(cfg, src)
			continue
		}
		mergeConfig(cfg, src)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeConfig applies set fields from src to dst. src must not be shared.
func mergeConfig(dst, src *Config) {
	if src.Identifier != "" {
		dst.Identifier = src.Identifier
	}
	if src.APIVersion != nil {
		dst.APIVersion = src.APIVersion
	}
	if src.Managed != nil {
		dst.Managed = src.Managed
	}
	if src.DevelopVersion != nil {
		dst.DevelopVersion = src.DevelopVersion
	}
	if src.MasterVersion != nil {
		dst.MasterVersion = src.MasterVersion
	}
	if src.Version != nil {
		dst.Version = src.Version
	}
	if src.MasterBranchName != nil {
		dst.MasterBranchName = src.MasterBranchName
	}
	if src.DevelopBranchName != nil {
		dst.DevelopBranchName = src.DevelopBranchName
	}

	dst.Upstreams = mergeNamed(dst.Upstreams, src.Upstreams, func(u Upstream) string { return u.Name })
	dst.Submodules = mergeNamed(dst.Submodules, src.Submodules, func(s Submodule) string { return s.Name })
	dst.Features = mergeNamed(dst.Features, src.Features, func(f Feature) string { return f.Name })
	dst.Releases = mergeNamed(dst.Releases, src.Releases, func(r Release) string { return r.Name })
	dst.Hotfixes = mergeNamed(dst.Hotfixes, src.Hotfixes, func(h Hotfix) string { return h.Name })
	dst.Supports = mergeNamed(dst.Supports, src.Supports, func(s Support) string { return s.Name })
	dst.CommitTemplates = mergeNamed(dst.CommitTemplates, src.CommitTemplates, func(t MessageTemplate) string { return t.Name })
	dst.TagTemplates = mergeNamed(dst.TagTemplates, src.TagTemplates, func(t TagTemplate) string { return t.Name })
	dst.Integrations = mergeNamed(dst.Integrations, src.Integrations, func(i Integration) string { return i.Plugin })

	dst.Included = appendUnique(dst.Included, src.Included)
	dst.Excluded = appendUnique(dst.Excluded, src.Excluded)
	dst.Tags = appendUnique(dst.Tags, src.Tags)
	if src.Dependencies != nil {
		dst.Dependencies = append(dst.Dependencies, src.Dependencies...)
	}

	dst.Templates = mergeTemplates(dst.Templates, src.Templates)
	dst.Labels = mergeLabels(dst.Labels, src.Labels)
	dst.Annotations = mergeLabels(dst.Annotations, src.Annotations)
}

func mergeShadow(dst, src *Config) {
	for _, s := range src.Submodules {
		s.Shadow = true
		dst.Submodules = putShadow(dst.Submodules, s, s.Name, func(e Submodule) bool { return e.Shadow }, func(e Submodule) string { return e.Name })
	}
	for _, f := range src.Features {
		f.Shadow = true
		dst.Features = putShadow(dst.Features, f, f.Name, func(e Feature) bool { return e.Shadow }, func(e Feature) string { return e.Name })
	}
	for _, r := range src.Releases {
		r.Shadow = true
		dst.Releases = putShadow(dst.Releases, r, r.Name, func(e Release) bool { return e.Shadow }, func(e Release) string { return e.Name })
	}
	for _, h := range src.Hotfixes {
		h.Shadow = true
		dst.Hotfixes = putShadow(dst.Hotfixes, h, h.Name, func(e Hotfix) bool { return e.Shadow }, func(e Hotfix) string { return e.Name })
	}
}

func mergeNamed[T any](dst, src []T, name func(T) string) []T {
	for _, item := range src {
		idx := slices.IndexFunc(dst, func(existing T) bool { return name(existing) == name(item) })
		if idx >= 0 {
			dst[idx] = item
			continue
		}
		dst = append(dst, item)
	}
	return dst
}

func putShadow[T any](dst []T, item T, key string, isShadow func(T) bool, name func(T) string) []T {
	idx := slices.IndexFunc(dst, func(existing T) bool { return isShadow(existing) && name(existing) == key })
	if idx >= 0 {
		dst[idx] = item
		return dst
	}
	return append(dst, item)
}

func appendUnique(dst, src []string) []string {
	for _, s := range src {
		if !slices.Contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}

func mergeTemplates(dst, src *Templates) *Templates {
	if src == nil {
		return dst
	}
	if dst == nil {
		return src
	}
	return &Templates{
		Feature: mergeKindTemplate(dst.Feature, src.Feature),
		Release: mergeKindTemplate(dst.Release, src.Release),
		Hotfix:  mergeKindTemplate(dst.Hotfix, src.Hotfix),
		Support: mergeKindTemplate(dst.Support, src.Support),
	}
}

func mergeKindTemplate(dst, src *KindTemplate) *KindTemplate {
	if src == nil {
		return dst
	}
	if dst == nil {
		return src
	}
	out := *dst
	if src.Message != nil {
		out.Message = src.Message
	}
	if src.Tag != nil {
		out.Tag = src.Tag
	}
	if src.Annotation != nil {
		out.Annotation = src.Annotation
	}
	return &out
}

func mergeLabels(dst, src Labels) Labels {
	if src == nil {
		return dst
	}
	if dst == nil {
		dst = make(Labels, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

var errSupportName = errors.New("support needs a name")

// validate checks the structural rules a built tree must satisfy.
func validate(cfg *Config) error {
	return Walk(cfg, func(path []string, node *Config) error {
		if node.Identifier == "" {
			return fmt.Errorf("config at %v: missing identifier", path)
		}
		for _, s := range node.Submodules {
			if s.Name == "" || s.Path == "" {
				return fmt.Errorf("config %q: submodule needs a name and a path", node.Identifier)
			}
		}
		if err := uniqueVisible(node.Identifier, "submodule", node.Submodules, func(s Submodule) (string, bool) { return s.Name, s.Shadow }); err != nil {
			return err
		}
		if err := validateLineage(node.Identifier, node.Features, node.Releases, node.Hotfixes); err != nil {
			return err
		}
		for _, s := range node.Supports {
			if s.Name == "" {
				return fmt.Errorf("config %q: %w", node.Identifier, errSupportName)
			}
			if err := validateLineage(node.Identifier+"/"+s.Name, s.Features, s.Releases, s.Hotfixes); err != nil {
				return err
			}
		}
		return nil
	})
}

func validateLineage(owner string, features []Feature, releases []Release, hotfixes []Hotfix) error {
	if err := uniqueVisible(owner, "feature", features, func(f Feature) (string, bool) { return f.Name, f.Shadow }); err != nil {
		return err
	}
	if err := uniqueVisible(owner, "release", releases, func(r Release) (string, bool) { return r.Name, r.Shadow }); err != nil {
		return err
	}
	return uniqueVisible(owner, "hotfix", hotfixes, func(h Hotfix) (string, bool) { return h.Name, h.Shadow })
}

func uniqueVisible[T any](owner, kind string, items []T, key func(T) (string, bool)) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		name, shadow := key(item)
		if name == "" {
			return fmt.Errorf("config %q: %s without a name", owner, kind)
		}
		if shadow {
			continue
		}
		if seen[name] {
			return fmt.Errorf("config %q: duplicate %s %q", owner, kind, name)
		}
		seen[name] = true
	}
	return nil
}
