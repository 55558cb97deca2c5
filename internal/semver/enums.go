// Package semver normalizes declared version strings to semantic-version form
// and names the long-lived Gitflow branches a version can be read for.
package semver

import (
	"fmt"
	"strings"
)

// Branch selects which long-lived branch line a version is resolved for.
type Branch int

const (
	BranchDevelop Branch = iota
	BranchMaster
)

func (b Branch) String() string {
	switch b {
	case BranchDevelop:
		return "develop"
	case BranchMaster:
		return "master"
	default:
		return "unknown"
	}
}

// ParseBranch parses a branch selector. Matching is case-insensitive and an
// empty string selects develop.
func ParseBranch(s string) (Branch, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "develop":
		return BranchDevelop, nil
	case "master":
		return BranchMaster, nil
	default:
		return BranchDevelop, fmt.Errorf("unknown branch %q: expected develop or master", s)
	}
}
