package config

import (
	"path"
	"strings"
)

// Includes reports whether a repository-relative path is covered by the
// Included and Excluded globs. An empty Included list covers every path;
// Excluded always wins. A pattern also covers everything below a directory
// it matches.
func (c *Config) Includes(p string) bool {
	p = strings.Trim(path.Clean(p), "/")
	if len(c.Included) > 0 && !matchAny(c.Included, p) {
		return false
	}
	return !matchAny(c.Excluded, p)
}

func matchAny(patterns []string, p string) bool {
	for _, pattern := range patterns {
		if matchPath(strings.Trim(pattern, "/"), p) {
			return true
		}
	}
	return false
}

func matchPath(pattern, p string) bool {
	for candidate := p; ; {
		if ok, err := path.Match(pattern, candidate); err == nil && ok {
			return true
		}
		i := strings.LastIndexByte(candidate, '/')
		if i < 0 {
			return false
		}
		candidate = candidate[:i]
	}
}
