package config

import (
	"fmt"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/reference"
)

// Match is the result of resolving an Element Reference against a tree.
// Element is set for features, releases and hotfixes; Support for support
// lines. Line names the support line that owns the element, or is empty for
// the root lineage. Intermediate is only ever true for releases and hotfixes.
type Match struct {
	Kind         reference.ElementKind
	Element      *Element
	Intermediate bool
	Support      *Support
	Line         string
}

// FindSubmodule returns the submodule with the given name.
func (c *Config) FindSubmodule(name string) (*Submodule, bool) {
	for i := range c.Submodules {
		if c.Submodules[i].Name == name {
			return &c.Submodules[i], true
		}
	}
	return nil, false
}

// FindFeature returns the root-lineage feature with the given name.
func (c *Config) FindFeature(name string) (*Feature, bool) {
	return findFeature(c.Features, name)
}

// FindRelease returns the root-lineage release with the given name.
func (c *Config) FindRelease(name string) (*Release, bool) {
	return findRelease(c.Releases, name)
}

// FindHotfix returns the root-lineage hotfix with the given name.
func (c *Config) FindHotfix(name string) (*Hotfix, bool) {
	return findHotfix(c.Hotfixes, name)
}

// FindSupport returns the support line with the given name.
func (c *Config) FindSupport(name string) (*Support, bool) {
	for i := range c.Supports {
		if c.Supports[i].Name == name {
			return &c.Supports[i], true
		}
	}
	return nil, false
}

// Lookup resolves an Element Reference against this Config, treating the
// qualifier as the element name. The root lineage is searched first, then each
// support line in order. Shadow entries never match. The returned pointers
// alias the tree and must be treated as read-only.
func (c *Config) Lookup(ref reference.ElementRef) (Match, error) {
	if ref.Kind == reference.KindSupport {
		if s, ok := c.FindSupport(ref.Qualifier); ok {
			return Match{Kind: ref.Kind, Support: s}, nil
		}
		return Match{}, fmt.Errorf("support %q not found in %q", ref.Qualifier, c.Identifier)
	}

	if e, intermediate := findElement(ref.Kind, ref.Qualifier, c.Features, c.Releases, c.Hotfixes); e != nil {
		return Match{Kind: ref.Kind, Element: e, Intermediate: intermediate}, nil
	}
	for i := range c.Supports {
		s := &c.Supports[i]
		if e, intermediate := findElement(ref.Kind, ref.Qualifier, s.Features, s.Releases, s.Hotfixes); e != nil {
			return Match{Kind: ref.Kind, Element: e, Intermediate: intermediate, Line: s.Name}, nil
		}
	}
	return Match{}, fmt.Errorf("%s %q not found in %q", ref.Kind, ref.Qualifier, c.Identifier)
}

func findElement(kind reference.ElementKind, name string, features []Feature, releases []Release, hotfixes []Hotfix) (*Element, bool) {
	switch kind {
	case reference.KindFeature:
		for i := range features {
			if features[i].Name == name && !features[i].Shadow {
				return &features[i].Element, false
			}
		}
	case reference.KindRelease:
		for i := range releases {
			if releases[i].Name == name && !releases[i].Shadow {
				return &releases[i].Element, releases[i].Intermediate
			}
		}
	case reference.KindHotfix:
		for i := range hotfixes {
			if hotfixes[i].Name == name && !hotfixes[i].Shadow {
				return &hotfixes[i].Element, hotfixes[i].Intermediate
			}
		}
	}
	return nil, false
}

func findFeature(in []Feature, name string) (*Feature, bool) {
	for i := range in {
		if in[i].Name == name {
			return &in[i], true
		}
	}
	return nil, false
}

func findRelease(in []Release, name string) (*Release, bool) {
	for i := range in {
		if in[i].Name == name {
			return &in[i], true
		}
	}
	return nil, false
}

func findHotfix(in []Hotfix, name string) (*Hotfix, bool) {
	for i := range in {
		if in[i].Name == name {
			return &in[i], true
		}
	}
	return nil, false
}
