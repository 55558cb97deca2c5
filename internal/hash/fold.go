package hash

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/config"
)

// managedFalse is fed for managed: false only, so documents written before
// the flag existed keep their digests.
const managedFalse = "managed:false"

// folder writes tokens into the running hash. Every token is its bytes
// followed by a NUL. A field is its name token then its value token; a
// collection is its name token, its length, then its items.
type folder struct {
	w   io.Writer
	err error
}

func (f *folder) token(s string) {
	_, _ = io.WriteString(f.w, s)
	_, _ = f.w.Write([]byte{0})
}

func (f *folder) field(name, value string) {
	f.token(name)
	f.token(value)
}

func (f *folder) optional(name string, value *string) {
	if value != nil {
		f.field(name, *value)
	}
}

func (f *folder) nonEmpty(name, value string) {
	if value != "" {
		f.field(name, value)
	}
}

func (f *folder) flag(name string, value bool) {
	if value {
		f.field(name, "true")
	}
}

func (f *folder) open(name string, n int) bool {
	if n == 0 {
		return false
	}
	f.token(name)
	f.token(strconv.Itoa(n))
	return true
}

func (f *folder) strings(name string, values []string) {
	if !f.open(name, len(values)) {
		return
	}
	for _, v := range values {
		f.token(v)
	}
}

// composite folds a free-form value through its JSON form, which sorts map
// keys.
func (f *folder) composite(name string, value any) {
	if f.err != nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		f.err = err
		return
	}
	f.field(name, string(data))
}

func (f *folder) labels(name string, l config.Labels) {
	if len(l) > 0 {
		f.composite(name, l)
	}
}

func (f *folder) config(c *config.Config) {
	f.field("identifier", c.Identifier)
	f.optional("apiVersion", c.APIVersion)
	if !c.IsManaged() {
		f.token(managedFalse)
	}
	f.optional("developVersion", c.DevelopVersion)
	f.optional("masterVersion", c.MasterVersion)
	f.optional("version", c.Version)

	if f.open("upstreams", len(c.Upstreams)) {
		for _, u := range c.Upstreams {
			f.field("name", u.Name)
			f.field("url", u.URL)
		}
	}
	f.strings("included", c.Included)
	f.strings("excluded", c.Excluded)

	submodules := c.VisibleSubmodules()
	if f.open("submodules", len(submodules)) {
		for i := range submodules {
			f.submodule(&submodules[i])
		}
	}
	f.lineage(c.VisibleFeatures(), c.VisibleReleases(), c.VisibleHotfixes())

	if f.open("supports", len(c.Supports)) {
		for i := range c.Supports {
			f.support(&c.Supports[i])
		}
	}

	f.templates(c)
	f.strings("tags", c.Tags)

	if f.open("integrations", len(c.Integrations)) {
		for _, in := range c.Integrations {
			f.field("plugin", in.Plugin)
			f.labels("options", in.Options)
		}
	}

	f.optional("masterBranchName", c.MasterBranchName)
	f.optional("developBranchName", c.DevelopBranchName)

	if f.open("dependencies", len(c.Dependencies)) {
		for _, d := range c.Dependencies {
			f.composite("dependency", d.Value())
		}
	}
	f.labels("labels", c.Labels)
	f.labels("annotations", c.Annotations)
}

func (f *folder) submodule(s *config.Submodule) {
	f.field("name", s.Name)
	f.field("path", s.Path)
	f.optional("url", s.URL)
	f.strings("tags", s.Tags)
	f.labels("labels", s.Labels)
	f.labels("annotations", s.Annotations)
	if s.Config != nil {
		f.token("config")
		f.config(s.Config)
		f.token("end")
	}
}

func (f *folder) support(s *config.Support) {
	f.field("name", s.Name)
	f.field("masterBranchName", s.MasterBranchName)
	f.field("developBranchName", s.DevelopBranchName)
	f.nonEmpty("sourceSha", s.SourceSha)
	f.optional("developVersion", s.DevelopVersion)
	f.optional("masterVersion", s.MasterVersion)
	f.optional("version", s.Version)
	f.optional("upstream", s.Upstream)
	f.lineage(s.VisibleFeatures(), s.VisibleReleases(), s.VisibleHotfixes())
}

func (f *folder) lineage(features []config.Feature, releases []config.Release, hotfixes []config.Hotfix) {
	if f.open("features", len(features)) {
		for i := range features {
			f.element(&features[i].Element)
		}
	}
	if f.open("releases", len(releases)) {
		for i := range releases {
			f.element(&releases[i].Element)
			f.flag("intermediate", releases[i].Intermediate)
		}
	}
	if f.open("hotfixes", len(hotfixes)) {
		for i := range hotfixes {
			f.element(&hotfixes[i].Element)
			f.flag("intermediate", hotfixes[i].Intermediate)
		}
	}
}

func (f *folder) element(e *config.Element) {
	f.field("name", e.Name)
	f.field("branchName", e.BranchName)
	f.nonEmpty("sourceSha", e.SourceSha)
	f.optional("version", e.Version)
	f.optional("upstream", e.Upstream)
	if f.open("tags", len(e.Tags)) {
		for _, t := range e.Tags {
			f.field("name", t.Name)
			f.optional("annotation", t.Annotation)
		}
	}
}

func (f *folder) templates(c *config.Config) {
	if !c.Templates.IsEmpty() {
		f.token("templates")
		for _, kind := range config.TemplateKinds {
			t := c.Templates.Kind(kind)
			if t.IsEmpty() {
				continue
			}
			f.token(kind)
			f.optional("message", t.Message)
			f.optional("tag", t.Tag)
			f.optional("annotation", t.Annotation)
		}
	}
	if f.open("commitTemplates", len(c.CommitTemplates)) {
		for _, t := range c.CommitTemplates {
			f.field("name", t.Name)
			f.field("message", t.Message)
		}
	}
	if f.open("tagTemplates", len(c.TagTemplates)) {
		for _, t := range c.TagTemplates {
			f.field("name", t.Name)
			f.field("tag", t.Tag)
			f.optional("annotation", t.Annotation)
		}
	}
}
