// Package config holds the in-memory entity model of a monorepo's Gitflow
// configuration: a Config per repository, owning its submodules (each of which
// may own a complete nested Config), branch lineages, templates and metadata.
//
// Trees are value objects. Nothing in this module mutates a tree after it has
// been built; use Clone or a Builder to derive a changed tree. Optional fields
// are pointers, nil meaning "not declared".
package config

// Config is the configuration of one repository in the monorepo tree.
type Config struct {
	Identifier string
	APIVersion *string
	Managed    *bool

	DevelopVersion *string
	MasterVersion  *string
	// Version is the single version field of the oldest document shape.
	Version *string

	Upstreams  []Upstream
	Submodules []Submodule
	Features   []Feature
	Releases   []Release
	Hotfixes   []Hotfix
	Supports   []Support

	Included []string
	Excluded []string

	Templates       *Templates
	CommitTemplates []MessageTemplate
	TagTemplates    []TagTemplate

	Tags         []string
	Integrations []Integration
	Labels       Labels
	Annotations  Labels
	Dependencies []Dependency

	MasterBranchName  *string
	DevelopBranchName *string
}

// Upstream is a named git remote.
type Upstream struct {
	Name string
	URL  string
}

// Labels maps keys to a string, a list of strings, or any other
// JSON-compatible value.
type Labels map[string]any

// Integration binds a plugin to its free-form options.
type Integration struct {
	Plugin  string
	Options map[string]any
}

// Dependency is either a plain string or a name to version map.
// Exactly one of Spec and Versions is set.
type Dependency struct {
	Spec     string
	Versions map[string]string
}

// IsMap reports whether the dependency was declared in map form.
func (d Dependency) IsMap() bool {
	return d.Versions != nil
}

// Value returns the dependency in its declared JSON-compatible form.
func (d Dependency) Value() any {
	if d.Versions != nil {
		return d.Versions
	}
	return d.Spec
}

// IsManaged reports whether the repository is managed. Absent means true.
func (c *Config) IsManaged() bool {
	return derefBool(c.Managed, DefaultManaged)
}

// MasterBranch returns the effective master branch name.
func (c *Config) MasterBranch() string {
	return derefString(c.MasterBranchName, DefaultMasterBranch)
}

// DevelopBranch returns the effective develop branch name.
func (c *Config) DevelopBranch() string {
	return derefString(c.DevelopBranchName, DefaultDevelopBranch)
}
