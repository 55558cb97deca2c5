package fetch

import (
	"context"
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/git"
	"github.com/MyCarrier-DevOps/go-flowconfig/internal/github"
	"github.com/MyCarrier-DevOps/go-flowconfig/internal/reference"
)

// BranchFetcher serves branch references from a local git repository by
// reading the committed config file at the tip of the named branch.
type BranchFetcher struct {
	repo git.Repository
	file string
}

// NewBranchFetcher creates a BranchFetcher reading file from repo.
func NewBranchFetcher(repo git.Repository, file string) *BranchFetcher {
	return &BranchFetcher{repo: repo, file: file}
}

func (f *BranchFetcher) Fetch(_ context.Context, ref reference.ConfigRef) ([]byte, error) {
	br, ok := ref.(reference.BranchRef)
	if !ok {
		return nil, unsupported(ref)
	}

	data, err := f.repo.ReadFile(br.BranchName, f.file)
	if err != nil {
		if errors.Is(err, git.ErrNotFound) {
			return nil, fmt.Errorf("reading %s on branch %s: %w", f.file, br.BranchName, ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s on branch %s: %w", f.file, br.BranchName, err)
	}
	return data, nil
}

// ContentsReader reads a committed file from a hosted repository.
// *github.Contents satisfies it.
type ContentsReader interface {
	ReadFile(ctx context.Context, ref, path string) ([]byte, error)
}

var _ ContentsReader = (*github.Contents)(nil)

// GitHubFetcher serves branch references from a repository hosted on
// GitHub, without a local clone.
type GitHubFetcher struct {
	contents ContentsReader
	file     string
}

// NewGitHubFetcher creates a GitHubFetcher reading file through contents.
func NewGitHubFetcher(contents ContentsReader, file string) *GitHubFetcher {
	return &GitHubFetcher{contents: contents, file: file}
}

func (f *GitHubFetcher) Fetch(ctx context.Context, ref reference.ConfigRef) ([]byte, error) {
	br, ok := ref.(reference.BranchRef)
	if !ok {
		return nil, unsupported(ref)
	}

	data, err := f.contents.ReadFile(ctx, br.BranchName, f.file)
	if err != nil {
		if errors.Is(err, github.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, err
	}
	return data, nil
}
