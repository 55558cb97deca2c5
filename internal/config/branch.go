package config

// Tagging is a tag to apply when an element's branch is finished.
type Tagging struct {
	Name       string
	Annotation *string
}

// Element holds the fields shared by features, releases and hotfixes.
type Element struct {
	Name       string
	BranchName string
	// SourceSha is the commit the branch was forked from.
	SourceSha string
	Version   *string
	Upstream  *string
	Tags      []Tagging
	// Shadow marks override bookkeeping entries. They are visible in memory
	// but never hashed or persisted.
	Shadow bool
}

// Feature is a short-lived feature branch.
type Feature struct {
	Element
}

// Release is a release branch. Intermediate releases are non-terminal
// staging branches.
type Release struct {
	Element
	Intermediate bool
}

// Hotfix is a hotfix branch. Intermediate hotfixes are non-terminal
// staging branches.
type Hotfix struct {
	Element
	Intermediate bool
}

// Support is a long-lived maintenance line with its own develop/master pair
// and a parallel feature/release/hotfix lineage.
type Support struct {
	Name              string
	MasterBranchName  string
	DevelopBranchName string
	SourceSha         string

	DevelopVersion *string
	MasterVersion  *string
	// Version is the single version field of the oldest document shape.
	Version  *string
	Upstream *string

	Features []Feature
	Releases []Release
	Hotfixes []Hotfix
}

// Submodule is a nested repository. Config, when set, is a complete
// configuration tree owned by this submodule.
type Submodule struct {
	Name        string
	Path        string
	URL         *string
	Tags        []string
	Labels      Labels
	Annotations Labels
	Shadow      bool
	Config      *Config
}
