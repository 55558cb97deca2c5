package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	gh "github.com/google/go-github/v68/github"
)

// ErrNotFound is returned when the repository, ref or file does not exist.
var ErrNotFound = errors.New("not found on GitHub")

// Contents reads committed files of a single repository.
type Contents struct {
	client *gh.Client
	owner  string
	repo   string
}

// NewContents creates a Contents reader for owner/repo.
func NewContents(client *gh.Client, owner, repo string) *Contents {
	return &Contents{client: client, owner: owner, repo: repo}
}

// Repository returns "owner/repo".
func (c *Contents) Repository() string {
	return c.owner + "/" + c.repo
}

// ReadFile fetches the content of path at ref. An empty ref reads from the
// repository's default branch. Files too large for the contents API are
// downloaded through the raw endpoint instead.
func (c *Contents) ReadFile(ctx context.Context, ref, path string) ([]byte, error) {
	path = strings.TrimPrefix(path, "/")
	opts := &gh.RepositoryContentGetOptions{Ref: ref}

	file, _, _, err := c.client.Repositories.GetContents(ctx, c.owner, c.repo, path, opts)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, fmt.Errorf("fetching %s@%s from %s: %w", path, refName(ref), c.Repository(), ErrNotFound)
		}
		return nil, fmt.Errorf("fetching %s@%s from %s: %w", path, refName(ref), c.Repository(), err)
	}
	if file == nil {
		return nil, fmt.Errorf("fetching %s@%s from %s: path is a directory", path, refName(ref), c.Repository())
	}

	if file.GetEncoding() == "none" {
		return c.download(ctx, path, opts)
	}

	decoded, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return []byte(decoded), nil
}

func (c *Contents) download(ctx context.Context, path string, opts *gh.RepositoryContentGetOptions) ([]byte, error) {
	rc, _, err := c.client.Repositories.DownloadContents(ctx, c.owner, c.repo, path, opts)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, fmt.Errorf("downloading %s from %s: %w", path, c.Repository(), ErrNotFound)
		}
		return nil, fmt.Errorf("downloading %s from %s: %w", path, c.Repository(), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func refName(ref string) string {
	if ref == "" {
		return "HEAD"
	}
	return ref
}
