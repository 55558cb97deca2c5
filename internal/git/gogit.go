package git

import (
	"errors"
	"fmt"
	"path"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Compile-time check that GoGitRepository implements Repository.
var _ Repository = (*GoGitRepository)(nil)

// GoGitRepository implements Repository using go-git.
type GoGitRepository struct {
	repo    *gogit.Repository
	workDir string
	remote  string
}

// Open opens a git repository at the given path. Remote tracking branches are
// looked up under DefaultRemote.
func Open(path string) (*GoGitRepository, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	return &GoGitRepository{
		repo:    r,
		workDir: wt.Filesystem.Root(),
		remote:  DefaultRemote,
	}, nil
}

func (r *GoGitRepository) WorkingDirectory() string {
	return r.workDir
}

func (r *GoGitRepository) Head() (Branch, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return Branch{}, fmt.Errorf("getting HEAD: %w", err)
	}
	return r.branchFromRef(ref)
}

func (r *GoGitRepository) Branches() ([]Branch, error) {
	iter, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("listing references: %w", err)
	}

	var branches []Branch
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if !ref.Name().IsBranch() && !ref.Name().IsRemote() {
			return nil
		}
		b, err := r.branchFromRef(ref)
		if err != nil {
			return nil // skip branches we can't resolve
		}
		branches = append(branches, b)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating references: %w", err)
	}
	return branches, nil
}

func (r *GoGitRepository) ResolveBranch(name string) (Branch, error) {
	candidates := []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(name),
		plumbing.NewRemoteReferenceName(r.remote, name),
	}
	for _, candidate := range candidates {
		ref, err := r.repo.Reference(candidate, true)
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			continue
		}
		if err != nil {
			return Branch{}, fmt.Errorf("resolving branch %s: %w", name, err)
		}
		return r.branchFromRef(ref)
	}
	return Branch{}, fmt.Errorf("branch %s: %w", name, ErrNotFound)
}

func (r *GoGitRepository) ReadFile(branch, filePath string) ([]byte, error) {
	b, err := r.ResolveBranch(branch)
	if err != nil {
		return nil, err
	}
	return r.readAt(b.Tip.Sha, filePath, "branch "+branch)
}

func (r *GoGitRepository) ReadFileAt(sha, filePath string) ([]byte, error) {
	return r.readAt(sha, filePath, "commit "+Commit{Sha: sha}.ShortSha())
}

// readAt reads filePath from the tree of commit sha. where names the commit
// in error messages.
func (r *GoGitRepository) readAt(sha, filePath, where string) ([]byte, error) {
	commit, err := r.repo.CommitObject(plumbing.NewHash(sha))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", where, err)
	}

	name := strings.TrimPrefix(path.Clean("/"+filePath), "/")
	file, err := commit.File(name)
	if errors.Is(err, object.ErrFileNotFound) || errors.Is(err, object.ErrDirectoryNotFound) {
		return nil, fmt.Errorf("%s on %s: %w", name, where, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s on %s: %w", name, where, err)
	}

	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("reading %s on %s: %w", name, where, err)
	}
	return []byte(contents), nil
}

func (r *GoGitRepository) branchFromRef(ref *plumbing.Reference) (Branch, error) {
	c, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		return Branch{}, fmt.Errorf("loading commit %s: %w", ref.Hash().String(), err)
	}

	name := NewReferenceName(string(ref.Name()))
	return Branch{
		Name: name,
		Tip: Commit{
			Sha:     c.Hash.String(),
			When:    c.Committer.When,
			Message: c.Message,
		},
		IsRemote: name.IsRemoteBranch(),
	}, nil
}
