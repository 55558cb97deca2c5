package config

// The Visible* accessors return the entries that take part in hashing and
// persistence, leaving out shadow entries. The returned slices are fresh; the
// elements are shallow copies.

func (c *Config) VisibleSubmodules() []Submodule {
	out := make([]Submodule, 0, len(c.Submodules))
	for _, s := range c.Submodules {
		if !s.Shadow {
			out = append(out, s)
		}
	}
	return out
}

func (c *Config) VisibleFeatures() []Feature  { return visibleFeatures(c.Features) }
func (c *Config) VisibleReleases() []Release  { return visibleReleases(c.Releases) }
func (c *Config) VisibleHotfixes() []Hotfix   { return visibleHotfixes(c.Hotfixes) }
func (s *Support) VisibleFeatures() []Feature { return visibleFeatures(s.Features) }
func (s *Support) VisibleReleases() []Release { return visibleReleases(s.Releases) }
func (s *Support) VisibleHotfixes() []Hotfix  { return visibleHotfixes(s.Hotfixes) }

// HasShadow reports whether the tree, including nested submodule trees and
// support lineages, contains any shadow entry.
func (c *Config) HasShadow() bool {
	found := false
	_ = Walk(c, func(_ []string, node *Config) error {
		if node.hasLocalShadow() {
			found = true
			return ErrStopWalk
		}
		return nil
	})
	return found
}

func (c *Config) hasLocalShadow() bool {
	for _, s := range c.Submodules {
		if s.Shadow {
			return true
		}
	}
	if hasShadowElements(c.Features, c.Releases, c.Hotfixes) {
		return true
	}
	for _, s := range c.Supports {
		if hasShadowElements(s.Features, s.Releases, s.Hotfixes) {
			return true
		}
	}
	return false
}

func hasShadowElements(features []Feature, releases []Release, hotfixes []Hotfix) bool {
	for _, f := range features {
		if f.Shadow {
			return true
		}
	}
	for _, r := range releases {
		if r.Shadow {
			return true
		}
	}
	for _, h := range hotfixes {
		if h.Shadow {
			return true
		}
	}
	return false
}

func visibleFeatures(in []Feature) []Feature {
	out := make([]Feature, 0, len(in))
	for _, f := range in {
		if !f.Shadow {
			out = append(out, f)
		}
	}
	return out
}

func visibleReleases(in []Release) []Release {
	out := make([]Release, 0, len(in))
	for _, r := range in {
		if !r.Shadow {
			out = append(out, r)
		}
	}
	return out
}

func visibleHotfixes(in []Hotfix) []Hotfix {
	out := make([]Hotfix, 0, len(in))
	for _, h := range in {
		if !h.Shadow {
			out = append(out, h)
		}
	}
	return out
}
