package schema

import (
	"github.com/MyCarrier-DevOps/go-flowconfig/internal/config"
)

// adaptFunc maps the fields introduced by one version onto cfg. Adapters run
// oldest first up to the matched version, each on an already validated
// document.
type adaptFunc func(r *Registry, doc map[string]any, cfg *config.Config, path string) error

func adaptV00(r *Registry, doc map[string]any, cfg *config.Config, path string) error {
	cfg.Identifier = str(doc, "identifier")
	cfg.APIVersion = optStr(doc, "apiVersion")
	cfg.Version = optStr(doc, "version")

	for _, u := range objects(doc, "upstreams") {
		cfg.Upstreams = append(cfg.Upstreams, config.Upstream{Name: str(u, "name"), URL: str(u, "url")})
	}

	for i, s := range objects(doc, "submodules") {
		sub := config.Submodule{Name: str(s, "name"), Path: str(s, "path")}
		if child, ok := s["config"].(map[string]any); ok {
			nested, err := r.validate(child, join(index(join(path, "submodules"), i), "config"))
			if err != nil {
				return err
			}
			sub.Config = nested
		}
		cfg.Submodules = append(cfg.Submodules, sub)
	}

	cfg.Features, cfg.Releases, cfg.Hotfixes = lineage(doc)
	for _, s := range objects(doc, "supports") {
		sup := config.Support{
			Name:              str(s, "name"),
			MasterBranchName:  str(s, "masterBranchName"),
			DevelopBranchName: str(s, "developBranchName"),
			SourceSha:         str(s, "sourceSha"),
			Version:           optStr(s, "version"),
		}
		sup.Features, sup.Releases, sup.Hotfixes = lineage(s)
		cfg.Supports = append(cfg.Supports, sup)
	}

	cfg.Included = strs(doc, "included")
	cfg.Excluded = strs(doc, "excluded")
	if t, ok := doc["templates"].(map[string]any); ok {
		cfg.Templates = &config.Templates{
			Feature: kindTemplate(t, "feature"),
			Release: kindTemplate(t, "release"),
			Hotfix:  kindTemplate(t, "hotfix"),
			Support: kindTemplate(t, "support"),
		}
	}
	return nil
}

// adaptV01 adds the split develop/master versions.
func adaptV01(_ *Registry, doc map[string]any, cfg *config.Config, _ string) error {
	cfg.DevelopVersion = optStr(doc, "developVersion")
	cfg.MasterVersion = optStr(doc, "masterVersion")
	for i, s := range objects(doc, "supports") {
		cfg.Supports[i].DevelopVersion = optStr(s, "developVersion")
		cfg.Supports[i].MasterVersion = optStr(s, "masterVersion")
	}
	return nil
}

// adaptV02 adds tags and labels.
func adaptV02(_ *Registry, doc map[string]any, cfg *config.Config, _ string) error {
	cfg.Tags = strs(doc, "tags")
	cfg.Labels = labels(doc, "labels")
	for i, s := range objects(doc, "submodules") {
		cfg.Submodules[i].Tags = strs(s, "tags")
		cfg.Submodules[i].Labels = labels(s, "labels")
	}
	eachElement(doc, cfg, func(raw map[string]any, e *config.Element, _ *bool) {
		for _, t := range objects(raw, "tags") {
			e.Tags = append(e.Tags, config.Tagging{Name: str(t, "name"), Annotation: optStr(t, "annotation")})
		}
	})
	return nil
}

// adaptV03 adds integrations, annotations, dependencies, the named template
// lists and submodule urls.
func adaptV03(_ *Registry, doc map[string]any, cfg *config.Config, _ string) error {
	for _, in := range objects(doc, "integrations") {
		integration := config.Integration{Plugin: str(in, "plugin")}
		if opts, ok := in["options"].(map[string]any); ok {
			integration.Options = config.Labels(opts).Clone()
		}
		cfg.Integrations = append(cfg.Integrations, integration)
	}
	cfg.Annotations = labels(doc, "annotations")
	cfg.Dependencies = dependencies(doc["dependencies"])

	for _, t := range objects(doc, "commitTemplates") {
		cfg.CommitTemplates = append(cfg.CommitTemplates, config.MessageTemplate{
			Name:    str(t, "name"),
			Message: str(t, "message"),
		})
	}
	for _, t := range objects(doc, "tagTemplates") {
		cfg.TagTemplates = append(cfg.TagTemplates, config.TagTemplate{
			Name:       str(t, "name"),
			Tag:        str(t, "tag"),
			Annotation: optStr(t, "annotation"),
		})
	}

	for i, s := range objects(doc, "submodules") {
		cfg.Submodules[i].URL = optStr(s, "url")
		cfg.Submodules[i].Annotations = labels(s, "annotations")
	}
	return nil
}

// adaptV04 adds the managed flag, branch-name overrides, element upstreams
// and the intermediate and shadow markers.
func adaptV04(_ *Registry, doc map[string]any, cfg *config.Config, _ string) error {
	cfg.Managed = optBool(doc, "managed")
	cfg.MasterBranchName = optStr(doc, "masterBranchName")
	cfg.DevelopBranchName = optStr(doc, "developBranchName")

	for i, s := range objects(doc, "submodules") {
		cfg.Submodules[i].Shadow = flag(s, "shadow")
	}
	for i, s := range objects(doc, "supports") {
		cfg.Supports[i].Upstream = optStr(s, "upstream")
	}
	eachElement(doc, cfg, func(raw map[string]any, e *config.Element, intermediate *bool) {
		e.Upstream = optStr(raw, "upstream")
		e.Shadow = flag(raw, "shadow")
		if intermediate != nil {
			*intermediate = flag(raw, "intermediate")
		}
	})
	return nil
}

func lineage(doc map[string]any) ([]config.Feature, []config.Release, []config.Hotfix) {
	var (
		features []config.Feature
		releases []config.Release
		hotfixes []config.Hotfix
	)
	for _, f := range objects(doc, "features") {
		features = append(features, config.Feature{Element: element(f)})
	}
	for _, r := range objects(doc, "releases") {
		releases = append(releases, config.Release{Element: element(r)})
	}
	for _, h := range objects(doc, "hotfixes") {
		hotfixes = append(hotfixes, config.Hotfix{Element: element(h)})
	}
	return features, releases, hotfixes
}

func element(raw map[string]any) config.Element {
	return config.Element{
		Name:       str(raw, "name"),
		BranchName: str(raw, "branchName"),
		SourceSha:  str(raw, "sourceSha"),
		Version:    optStr(raw, "version"),
	}
}

// eachElement calls fn for every feature, release and hotfix of the root
// lineage and of each support line, pairing the raw entry with the adapted
// one. intermediate is nil for features.
func eachElement(doc map[string]any, cfg *config.Config, fn func(raw map[string]any, e *config.Element, intermediate *bool)) {
	eachLineageElement(doc, cfg.Features, cfg.Releases, cfg.Hotfixes, fn)
	for i, s := range objects(doc, "supports") {
		sup := &cfg.Supports[i]
		eachLineageElement(s, sup.Features, sup.Releases, sup.Hotfixes, fn)
	}
}

func eachLineageElement(
	raw map[string]any,
	features []config.Feature,
	releases []config.Release,
	hotfixes []config.Hotfix,
	fn func(raw map[string]any, e *config.Element, intermediate *bool),
) {
	for i, f := range objects(raw, "features") {
		fn(f, &features[i].Element, nil)
	}
	for i, r := range objects(raw, "releases") {
		fn(r, &releases[i].Element, &releases[i].Intermediate)
	}
	for i, h := range objects(raw, "hotfixes") {
		fn(h, &hotfixes[i].Element, &hotfixes[i].Intermediate)
	}
}

func kindTemplate(templates map[string]any, kind string) *config.KindTemplate {
	raw, ok := templates[kind].(map[string]any)
	if !ok {
		return nil
	}
	return &config.KindTemplate{
		Message:    optStr(raw, "message"),
		Tag:        optStr(raw, "tag"),
		Annotation: optStr(raw, "annotation"),
	}
}

func dependencies(val any) []config.Dependency {
	items, ok := asList(val)
	if !ok {
		return nil
	}
	out := make([]config.Dependency, 0, len(items))
	for _, item := range items {
		switch dep := item.(type) {
		case string:
			out = append(out, config.Dependency{Spec: dep})
		case map[string]string:
			versions := make(map[string]string, len(dep))
			for k, v := range dep {
				versions[k] = v
			}
			out = append(out, config.Dependency{Versions: versions})
		case map[string]any:
			versions := make(map[string]string, len(dep))
			for k, v := range dep {
				versions[k], _ = v.(string)
			}
			out = append(out, config.Dependency{Versions: versions})
		}
	}
	return out
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func optStr(m map[string]any, key string) *string {
	if s, ok := m[key].(string); ok {
		return &s
	}
	return nil
}

func optBool(m map[string]any, key string) *bool {
	if b, ok := m[key].(bool); ok {
		return &b
	}
	return nil
}

func flag(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func strs(m map[string]any, key string) []string {
	items, ok := asList(m[key])
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func objects(m map[string]any, key string) []map[string]any {
	items, ok := asList(m[key])
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

func labels(m map[string]any, key string) config.Labels {
	raw, ok := m[key].(map[string]any)
	if !ok {
		return nil
	}
	return config.Labels(raw).Clone()
}
