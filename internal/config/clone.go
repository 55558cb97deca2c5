package config

// Clone returns a deep copy of the tree. The copy shares no memory with c,
// including nested submodule trees and composite label values.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := &Config{
		Identifier:        c.Identifier,
		APIVersion:        cloneString(c.APIVersion),
		Managed:           cloneBool(c.Managed),
		DevelopVersion:    cloneString(c.DevelopVersion),
		MasterVersion:     cloneString(c.MasterVersion),
		Version:           cloneString(c.Version),
		Upstreams:         cloneSlice(c.Upstreams),
		Included:          cloneSlice(c.Included),
		Excluded:          cloneSlice(c.Excluded),
		Templates:         c.Templates.clone(),
		CommitTemplates:   cloneSlice(c.CommitTemplates),
		Tags:              cloneSlice(c.Tags),
		Labels:            c.Labels.Clone(),
		Annotations:       c.Annotations.Clone(),
		MasterBranchName:  cloneString(c.MasterBranchName),
		DevelopBranchName: cloneString(c.DevelopBranchName),
	}
	if c.Submodules != nil {
		out.Submodules = make([]Submodule, len(c.Submodules))
		for i := range c.Submodules {
			out.Submodules[i] = c.Submodules[i].clone()
		}
	}
	out.Features = cloneFeatures(c.Features)
	out.Releases = cloneReleases(c.Releases)
	out.Hotfixes = cloneHotfixes(c.Hotfixes)
	if c.Supports != nil {
		out.Supports = make([]Support, len(c.Supports))
		for i := range c.Supports {
			out.Supports[i] = c.Supports[i].clone()
		}
	}
	if c.TagTemplates != nil {
		out.TagTemplates = make([]TagTemplate, len(c.TagTemplates))
		for i, t := range c.TagTemplates {
			out.TagTemplates[i] = TagTemplate{Name: t.Name, Tag: t.Tag, Annotation: cloneString(t.Annotation)}
		}
	}
	if c.Integrations != nil {
		out.Integrations = make([]Integration, len(c.Integrations))
		for i, in := range c.Integrations {
			out.Integrations[i] = Integration{Plugin: in.Plugin, Options: cloneMap(in.Options)}
		}
	}
	if c.Dependencies != nil {
		out.Dependencies = make([]Dependency, len(c.Dependencies))
		for i, d := range c.Dependencies {
			out.Dependencies[i] = Dependency{Spec: d.Spec}
			if d.Versions != nil {
				out.Dependencies[i].Versions = make(map[string]string, len(d.Versions))
				for k, v := range d.Versions {
					out.Dependencies[i].Versions[k] = v
				}
			}
		}
	}
	return out
}

// Clone returns a deep copy of the labels.
func (l Labels) Clone() Labels {
	if l == nil {
		return nil
	}
	return Labels(cloneMap(l))
}

func (s Submodule) clone() Submodule {
	return Submodule{
		Name:        s.Name,
		Path:        s.Path,
		URL:         cloneString(s.URL),
		Tags:        cloneSlice(s.Tags),
		Labels:      s.Labels.Clone(),
		Annotations: s.Annotations.Clone(),
		Shadow:      s.Shadow,
		Config:      s.Config.Clone(),
	}
}

func (s Support) clone() Support {
	return Support{
		Name:              s.Name,
		MasterBranchName:  s.MasterBranchName,
		DevelopBranchName: s.DevelopBranchName,
		SourceSha:         s.SourceSha,
		DevelopVersion:    cloneString(s.DevelopVersion),
		MasterVersion:     cloneString(s.MasterVersion),
		Version:           cloneString(s.Version),
		Upstream:          cloneString(s.Upstream),
		Features:          cloneFeatures(s.Features),
		Releases:          cloneReleases(s.Releases),
		Hotfixes:          cloneHotfixes(s.Hotfixes),
	}
}

func (e Element) clone() Element {
	out := Element{
		Name:       e.Name,
		BranchName: e.BranchName,
		SourceSha:  e.SourceSha,
		Version:    cloneString(e.Version),
		Upstream:   cloneString(e.Upstream),
		Shadow:     e.Shadow,
	}
	if e.Tags != nil {
		out.Tags = make([]Tagging, len(e.Tags))
		for i, t := range e.Tags {
			out.Tags[i] = Tagging{Name: t.Name, Annotation: cloneString(t.Annotation)}
		}
	}
	return out
}

func (t *Templates) clone() *Templates {
	if t == nil {
		return nil
	}
	return &Templates{
		Feature: t.Feature.clone(),
		Release: t.Release.clone(),
		Hotfix:  t.Hotfix.clone(),
		Support: t.Support.clone(),
	}
}

func (k *KindTemplate) clone() *KindTemplate {
	if k == nil {
		return nil
	}
	return &KindTemplate{
		Message:    cloneString(k.Message),
		Tag:        cloneString(k.Tag),
		Annotation: cloneString(k.Annotation),
	}
}

func cloneFeatures(in []Feature) []Feature {
	if in == nil {
		return nil
	}
	out := make([]Feature, len(in))
	for i, f := range in {
		out[i] = Feature{Element: f.Element.clone()}
	}
	return out
}

func cloneReleases(in []Release) []Release {
	if in == nil {
		return nil
	}
	out := make([]Release, len(in))
	for i, r := range in {
		out[i] = Release{Element: r.Element.clone(), Intermediate: r.Intermediate}
	}
	return out
}

func cloneHotfixes(in []Hotfix) []Hotfix {
	if in == nil {
		return nil
	}
	out := make([]Hotfix, len(in))
	for i, h := range in {
		out[i] = Hotfix{Element: h.Element.clone(), Intermediate: h.Intermediate}
	}
	return out
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	return stringPtr(*p)
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	return boolPtr(*p)
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch vv := v.(type) {
	case map[string]any:
		return cloneMap(vv)
	case Labels:
		return vv.Clone()
	case []any:
		out := make([]any, len(vv))
		for i, item := range vv {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return cloneSlice(vv)
	default:
		return v
	}
}
