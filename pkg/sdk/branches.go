package sdk

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/git"
	"github.com/MyCarrier-DevOps/go-flowconfig/internal/schema"
	"github.com/MyCarrier-DevOps/go-flowconfig/internal/settings"
)

// BranchDigest describes the document committed on one branch of a local
// repository.
type BranchDigest struct {
	Branch  string `json:"branch"`
	Remote  bool   `json:"remote,omitempty"`
	Head    bool   `json:"head,omitempty"`
	Commit  string `json:"commit"`
	Subject string `json:"subject"`
	// Identifier and Digest are empty when the branch has no document.
	Identifier string `json:"identifier,omitempty"`
	Digest     string `json:"digest,omitempty"`
	// Error is set when the document exists but cannot be loaded.
	Error string `json:"error,omitempty"`
}

// Branches reports the digest of the document committed on every local and
// remote tracking branch of the repository at opts.Path, sorted by branch
// name. Each branch is read at its own tip. Tracking branches of the default
// remote are named without the remote and left out when a local branch of
// the same name exists; tracking branches of other remotes keep their
// "remote/" prefix.
func Branches(ctx context.Context, opts Options, hashOpts HashOptions) ([]BranchDigest, error) {
	if opts.Owner != "" || opts.Repo != "" {
		return nil, errors.New("listing branches needs a local repository")
	}
	path := opts.Path
	if path == "" {
		path = "."
	}
	file := opts.File
	if file == "" {
		file = settings.DefaultFile
	}

	if _, err := Hash(&Config{}, hashOpts); err != nil {
		return nil, err
	}

	repo, err := git.Open(path)
	if err != nil {
		return nil, err
	}
	branches, err := repo.Branches()
	if err != nil {
		return nil, err
	}
	head, headErr := repo.Head()

	local := make(map[string]bool)
	for _, b := range branches {
		if !b.IsRemote {
			local[branchLabel(b)] = true
		}
	}

	var out []BranchDigest
	for _, b := range branches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := branchLabel(b)
		if b.IsRemote && local[name] {
			continue
		}

		entry := BranchDigest{
			Branch:  name,
			Remote:  b.IsRemote,
			Head:    headErr == nil && head.Name.Canonical == b.Name.Canonical,
			Commit:  b.Tip.ShortSha(),
			Subject: strings.TrimSpace(strings.SplitN(b.Tip.Message, "\n", 2)[0]),
		}
		data, err := repo.ReadFileAt(b.Tip.Sha, filepath.ToSlash(file))
		switch {
		case errors.Is(err, git.ErrNotFound):
		case err != nil:
			entry.Error = err.Error()
		default:
			if err := digestInto(&entry, data, hashOpts); err != nil {
				entry.Error = err.Error()
			}
		}
		out = append(out, entry)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Branch < out[j].Branch })
	return out, nil
}

// branchLabel names a branch in the report.
func branchLabel(b git.Branch) string {
	if remote := b.Name.Remote(); remote != "" && remote != git.DefaultRemote {
		return b.Name.Friendly
	}
	return b.Name.WithoutRemote
}

func digestInto(entry *BranchDigest, data []byte, hashOpts HashOptions) error {
	cfg, err := schema.LoadFromBytes(data)
	if err != nil {
		return err
	}
	sum, err := Hash(cfg, hashOpts)
	if err != nil {
		return fmt.Errorf("hashing: %w", err)
	}
	entry.Identifier = cfg.Identifier
	entry.Digest = sum
	return nil
}
