// Package git reads configuration documents out of a local git repository
// without touching its worktree.
package git

import (
	"errors"
	"strings"
	"time"
)

const (
	localBranchPrefix          = "refs/heads/"
	remoteTrackingBranchPrefix = "refs/remotes/"
)

// DefaultRemote is the remote whose tracking branches stand in for missing
// local branches.
const DefaultRemote = "origin"

// ErrNotFound is returned when a branch or a file on it does not exist.
var ErrNotFound = errors.New("not found")

// Commit is the commit a branch points at.
type Commit struct {
	Sha     string
	When    time.Time
	Message string
}

// ShortSha returns the first 7 characters of the SHA.
func (c Commit) ShortSha() string {
	if len(c.Sha) >= 7 {
		return c.Sha[:7]
	}
	return c.Sha
}

// ReferenceName represents a git reference with canonical and friendly forms.
type ReferenceName struct {
	Canonical     string // e.g., "refs/heads/main"
	Friendly      string // e.g., "main"
	WithoutRemote string // e.g., "main" (strips "origin/" from remote refs)
}

// NewReferenceName creates a ReferenceName from a canonical ref path.
func NewReferenceName(canonical string) ReferenceName {
	friendly := canonical
	withoutRemote := canonical

	switch {
	case strings.HasPrefix(canonical, localBranchPrefix):
		friendly = canonical[len(localBranchPrefix):]
		withoutRemote = friendly
	case strings.HasPrefix(canonical, remoteTrackingBranchPrefix):
		friendly = canonical[len(remoteTrackingBranchPrefix):]
		if idx := strings.Index(friendly, "/"); idx >= 0 {
			withoutRemote = friendly[idx+1:]
		} else {
			withoutRemote = friendly
		}
	}

	return ReferenceName{
		Canonical:     canonical,
		Friendly:      friendly,
		WithoutRemote: withoutRemote,
	}
}

// Remote returns the remote a tracking branch belongs to, or "" for local
// branches.
func (r ReferenceName) Remote() string {
	if !r.IsRemoteBranch() || r.Friendly == r.WithoutRemote {
		return ""
	}
	return strings.TrimSuffix(r.Friendly, "/"+r.WithoutRemote)
}

// IsRemoteBranch returns true if this reference is a remote tracking branch.
func (r ReferenceName) IsRemoteBranch() bool {
	return strings.HasPrefix(r.Canonical, remoteTrackingBranchPrefix)
}

// Branch is a local or remote tracking branch and its tip.
type Branch struct {
	Name     ReferenceName
	Tip      Commit
	IsRemote bool
}

// FriendlyName returns the friendly name of the branch.
func (b Branch) FriendlyName() string {
	return b.Name.Friendly
}
