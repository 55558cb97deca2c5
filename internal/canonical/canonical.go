// Package canonical renders a configuration tree as its minimal document:
// absent fields, empty collections, implicit defaults and shadow entries are
// left out, so the document validates back to a tree with the same digest.
package canonical

import (
	"github.com/MyCarrier-DevOps/go-flowconfig/internal/config"
	"github.com/MyCarrier-DevOps/go-flowconfig/internal/schema"
)

// ToCanonical returns the canonical document of cfg. With stamp set, every
// config in the tree carries the newest registered apiVersion; otherwise the
// declared value, if any, is kept. The result shares no memory with cfg.
func ToCanonical(cfg *config.Config, stamp bool) map[string]any {
	return document(cfg, stamp)
}

type doc map[string]any

func (d doc) str(key, value string) {
	if value != "" {
		d[key] = value
	}
}

func (d doc) opt(key string, value *string) {
	if value != nil {
		d[key] = *value
	}
}

func (d doc) strings(key string, values []string) {
	if len(values) == 0 {
		return
	}
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	d[key] = out
}

func (d doc) labels(key string, l config.Labels) {
	if len(l) > 0 {
		d[key] = map[string]any(l.Clone())
	}
}

func (d doc) list(key string, items []any) {
	if len(items) > 0 {
		d[key] = items
	}
}

func document(cfg *config.Config, stamp bool) map[string]any {
	d := doc{"identifier": cfg.Identifier}
	if stamp {
		d["apiVersion"] = schema.Default.Latest()
	} else {
		d.opt("apiVersion", cfg.APIVersion)
	}
	if !cfg.IsManaged() {
		d["managed"] = false
	}
	d.opt("developVersion", cfg.DevelopVersion)
	d.opt("masterVersion", cfg.MasterVersion)
	d.opt("version", cfg.Version)

	var upstreams []any
	for _, u := range cfg.Upstreams {
		upstreams = append(upstreams, map[string]any{"name": u.Name, "url": u.URL})
	}
	d.list("upstreams", upstreams)

	var submodules []any
	for _, s := range cfg.VisibleSubmodules() {
		submodules = append(submodules, submodule(s, stamp))
	}
	d.list("submodules", submodules)

	lineage(d, cfg.VisibleFeatures(), cfg.VisibleReleases(), cfg.VisibleHotfixes())

	var supports []any
	for i := range cfg.Supports {
		supports = append(supports, support(&cfg.Supports[i]))
	}
	d.list("supports", supports)

	d.strings("included", cfg.Included)
	d.strings("excluded", cfg.Excluded)
	templates(d, cfg)
	d.strings("tags", cfg.Tags)

	var integrations []any
	for _, in := range cfg.Integrations {
		entry := doc{"plugin": in.Plugin}
		entry.labels("options", in.Options)
		integrations = append(integrations, map[string]any(entry))
	}
	d.list("integrations", integrations)

	var dependencies []any
	for _, dep := range cfg.Dependencies {
		if !dep.IsMap() {
			dependencies = append(dependencies, dep.Spec)
			continue
		}
		versions := make(map[string]any, len(dep.Versions))
		for name, v := range dep.Versions {
			versions[name] = v
		}
		dependencies = append(dependencies, versions)
	}
	d.list("dependencies", dependencies)

	d.labels("labels", cfg.Labels)
	d.labels("annotations", cfg.Annotations)
	d.opt("masterBranchName", cfg.MasterBranchName)
	d.opt("developBranchName", cfg.DevelopBranchName)
	return d
}

func submodule(s config.Submodule, stamp bool) map[string]any {
	d := doc{"name": s.Name, "path": s.Path}
	d.opt("url", s.URL)
	d.strings("tags", s.Tags)
	d.labels("labels", s.Labels)
	d.labels("annotations", s.Annotations)
	if s.Config != nil {
		d["config"] = document(s.Config, stamp)
	}
	return d
}

func support(s *config.Support) map[string]any {
	d := doc{
		"name":              s.Name,
		"masterBranchName":  s.MasterBranchName,
		"developBranchName": s.DevelopBranchName,
	}
	d.str("sourceSha", s.SourceSha)
	d.opt("developVersion", s.DevelopVersion)
	d.opt("masterVersion", s.MasterVersion)
	d.opt("version", s.Version)
	d.opt("upstream", s.Upstream)
	lineage(d, s.VisibleFeatures(), s.VisibleReleases(), s.VisibleHotfixes())
	return d
}

func lineage(d doc, features []config.Feature, releases []config.Release, hotfixes []config.Hotfix) {
	var items []any
	for i := range features {
		items = append(items, element(&features[i].Element, false))
	}
	d.list("features", items)

	items = nil
	for i := range releases {
		items = append(items, element(&releases[i].Element, releases[i].Intermediate))
	}
	d.list("releases", items)

	items = nil
	for i := range hotfixes {
		items = append(items, element(&hotfixes[i].Element, hotfixes[i].Intermediate))
	}
	d.list("hotfixes", items)
}

func element(e *config.Element, intermediate bool) map[string]any {
	d := doc{"name": e.Name, "branchName": e.BranchName}
	d.str("sourceSha", e.SourceSha)
	d.opt("version", e.Version)
	d.opt("upstream", e.Upstream)
	if intermediate {
		d["intermediate"] = true
	}
	var tags []any
	for _, t := range e.Tags {
		tag := doc{"name": t.Name}
		tag.opt("annotation", t.Annotation)
		tags = append(tags, map[string]any(tag))
	}
	d.list("tags", tags)
	return d
}

func templates(d doc, cfg *config.Config) {
	if !cfg.Templates.IsEmpty() {
		kinds := doc{}
		for _, kind := range config.TemplateKinds {
			t := cfg.Templates.Kind(kind)
			if t.IsEmpty() {
				continue
			}
			entry := doc{}
			entry.opt("message", t.Message)
			entry.opt("tag", t.Tag)
			entry.opt("annotation", t.Annotation)
			kinds[kind] = map[string]any(entry)
		}
		d["templates"] = map[string]any(kinds)
	}

	var commit []any
	for _, t := range cfg.CommitTemplates {
		commit = append(commit, map[string]any{"name": t.Name, "message": t.Message})
	}
	d.list("commitTemplates", commit)

	var tag []any
	for _, t := range cfg.TagTemplates {
		entry := doc{"name": t.Name, "tag": t.Tag}
		entry.opt("annotation", t.Annotation)
		tag = append(tag, map[string]any(entry))
	}
	d.list("tagTemplates", tag)
}
