package config

import "github.com/MyCarrier-DevOps/go-flowconfig/internal/semver"

// ResolveVersion returns the normalized version declared for the given
// long-lived branch. Trees read from the oldest document shape carry a single
// Version, which answers for both branches. The boolean is false when no
// version is declared. Strings are only validated here, never at build time.
func (c *Config) ResolveVersion(branch semver.Branch) (string, bool, error) {
	return resolveLineVersion(branch, c.DevelopVersion, c.MasterVersion, c.Version)
}

// ResolveVersion returns the normalized version declared on the support line
// for the given branch, with the same fallback rules as Config.ResolveVersion.
func (s *Support) ResolveVersion(branch semver.Branch) (string, bool, error) {
	return resolveLineVersion(branch, s.DevelopVersion, s.MasterVersion, s.Version)
}

// ResolveVersion returns the normalized version of a feature, release or
// hotfix.
func (e *Element) ResolveVersion() (string, bool, error) {
	return resolveField("version", e.Version)
}

func resolveLineVersion(branch semver.Branch, develop, master, legacy *string) (string, bool, error) {
	switch {
	case branch == semver.BranchMaster && master != nil:
		return resolveField("masterVersion", master)
	case branch != semver.BranchMaster && develop != nil:
		return resolveField("developVersion", develop)
	default:
		return resolveField("version", legacy)
	}
}

func resolveField(field string, raw *string) (string, bool, error) {
	if raw == nil {
		return "", false, nil
	}
	v, err := semver.CleanField(field, *raw)
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}
