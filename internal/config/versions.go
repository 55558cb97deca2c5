package config

import (
	"fmt"
	"strings"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/semver"
)

// VersionEntry is one declared version found in a tree.
type VersionEntry struct {
	Path    []string `json:"path"`           // identifiers from the root down to the owning config
	Line    string   `json:"line,omitempty"` // owning support line, empty for the root lineage
	Kind    string   `json:"kind"`           // config, support, feature, release or hotfix
	Name    string   `json:"name"`           // identifier or element name
	Version string   `json:"version"`        // normalized version
}

// Versions resolves every declared version in the tree for branch: each
// config, each support line and each feature, release and hotfix, in
// declaration order. Shadow entries and undeclared versions are skipped. The
// first unparsable version aborts with a *semver.FormatError in the chain.
func (c *Config) Versions(branch semver.Branch) ([]VersionEntry, error) {
	var out []VersionEntry
	if err := c.collectVersions(nil, branch, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Config) collectVersions(parent []string, branch semver.Branch, out *[]VersionEntry) error {
	path := append(append([]string(nil), parent...), c.Identifier)
	where := strings.Join(path, "/")

	v, ok, err := c.ResolveVersion(branch)
	if err != nil {
		return fmt.Errorf("%s: %w", where, err)
	}
	if ok {
		*out = append(*out, VersionEntry{Path: path, Kind: "config", Name: c.Identifier, Version: v})
	}

	if err := collectElements(path, "", c.VisibleFeatures(), c.VisibleReleases(), c.VisibleHotfixes(), out); err != nil {
		return err
	}

	for i := range c.Supports {
		s := &c.Supports[i]
		v, ok, err := s.ResolveVersion(branch)
		if err != nil {
			return fmt.Errorf("%s/support/%s: %w", where, s.Name, err)
		}
		if ok {
			*out = append(*out, VersionEntry{Path: path, Line: s.Name, Kind: "support", Name: s.Name, Version: v})
		}
		if err := collectElements(path, s.Name, s.VisibleFeatures(), s.VisibleReleases(), s.VisibleHotfixes(), out); err != nil {
			return err
		}
	}

	for _, sub := range c.VisibleSubmodules() {
		if sub.Config == nil {
			continue
		}
		if err := sub.Config.collectVersions(path, branch, out); err != nil {
			return err
		}
	}
	return nil
}

func collectElements(path []string, line string, features []Feature, releases []Release, hotfixes []Hotfix, out *[]VersionEntry) error {
	add := func(kind string, e *Element) error {
		v, ok, err := e.ResolveVersion()
		if err != nil {
			return fmt.Errorf("%s/%s/%s: %w", strings.Join(path, "/"), kind, e.Name, err)
		}
		if ok {
			*out = append(*out, VersionEntry{Path: path, Line: line, Kind: kind, Name: e.Name, Version: v})
		}
		return nil
	}
	for i := range features {
		if err := add("feature", &features[i].Element); err != nil {
			return err
		}
	}
	for i := range releases {
		if err := add("release", &releases[i].Element); err != nil {
			return err
		}
	}
	for i := range hotfixes {
		if err := add("hotfix", &hotfixes[i].Element); err != nil {
			return err
		}
	}
	return nil
}
