package config

// Implicit values applied when a document leaves a field out.
const (
	DefaultMasterBranch  = "master"
	DefaultDevelopBranch = "develop"
	DefaultAPIVersion    = "v0.0"
	DefaultManaged       = true
)
