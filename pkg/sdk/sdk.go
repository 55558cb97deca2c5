// Package sdk provides a public Go API for loading monorepo Gitflow
// configuration trees and computing their identity. Documents can be read
// from local files, git branches (through a local clone or the GitHub API),
// HTTP endpoints and OCI registries.
//
// Basic usage:
//
//	cfg, err := sdk.Load(ctx, "branch://develop", sdk.Options{
//	    Path: "/path/to/repo",
//	})
//	digest, err := sdk.Hash(cfg, sdk.HashOptions{})
//	fmt.Println(digest) // "9f86d081..."
//
//	cfg, err := sdk.Load(ctx, "config://", sdk.Options{
//	    Owner: "myorg",
//	    Repo:  "mono",
//	    Token: os.Getenv("GITHUB_TOKEN"),
//	})
//	doc, err := sdk.Canonical(cfg, "yaml", true)
package sdk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/opencontainers/go-digest"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/canonical"
	"github.com/MyCarrier-DevOps/go-flowconfig/internal/config"
	"github.com/MyCarrier-DevOps/go-flowconfig/internal/fetch"
	"github.com/MyCarrier-DevOps/go-flowconfig/internal/git"
	"github.com/MyCarrier-DevOps/go-flowconfig/internal/hash"
	"github.com/MyCarrier-DevOps/go-flowconfig/internal/reference"
	"github.com/MyCarrier-DevOps/go-flowconfig/internal/schema"
	"github.com/MyCarrier-DevOps/go-flowconfig/internal/semver"
	"github.com/MyCarrier-DevOps/go-flowconfig/internal/settings"

	ghprovider "github.com/MyCarrier-DevOps/go-flowconfig/internal/github"
)

// Config is a validated configuration tree.
type Config = config.Config

// VersionEntry is one declared version found in a tree.
type VersionEntry = config.VersionEntry

// Match is the result of resolving an Element Reference against a tree.
type Match = config.Match

// Typed errors returned by this package. Use errors.As to inspect them.
type (
	ValidationError          = schema.ValidationError
	VersionFormatError       = semver.FormatError
	UnsupportedProtocolError = reference.UnsupportedProtocolError
	MalformedURIError        = reference.MalformedURIError
	UnsupportedRefError      = fetch.UnsupportedRefError
)

// ErrNotFound is returned by Load when the referenced document does not exist.
var ErrNotFound = fetch.ErrNotFound

// Options configures where and how documents are fetched.
type Options struct {
	// Path to the repository root. Defaults to "." if empty. Relative file
	// references resolve against it.
	Path string

	// File is the repository-relative path of the configuration document.
	// It is read for config:// and branch:// references. Defaults to
	// ".flowconfig/config.yml".
	File string

	// Owner and Repo select a GitHub repository. When both are set, branch
	// references are read through the GitHub API instead of the local clone.
	Owner string
	Repo  string

	// Token is a GitHub personal access token or GITHUB_TOKEN.
	Token string

	// AppID is the GitHub App ID for app authentication.
	AppID int64

	// AppKeyPath is the path to a GitHub App private key PEM file.
	AppKeyPath string

	// BaseURL is a custom GitHub API base URL for GitHub Enterprise.
	BaseURL string

	// Registry is the OCI registry used by glfs references without a
	// hostname.
	Registry string

	// PlainHTTP talks to OCI registries without TLS.
	PlainHTTP bool

	// HTTPToken is sent as a bearer token with http and https references.
	HTTPToken string

	// HTTPTimeout bounds each HTTP request. Zero means no timeout.
	HTTPTimeout time.Duration

	// CacheTTL caches fetched documents for the lifetime of a Client.
	// Zero disables caching.
	CacheTTL time.Duration

	// Logger receives debug output from the fetch layer. Nil disables it.
	Logger *slog.Logger
}

// Client loads documents using one set of Options. A Client is safe for
// concurrent use.
type Client struct {
	fetcher fetch.Fetcher
}

// New creates a Client. GitHub credentials are resolved here when Owner and
// Repo are set. Otherwise, when Path lies inside a git repository, config://
// reads File relative to the repository root and branch references read the
// local clone; outside a repository only branch references fail.
func New(ctx context.Context, opts Options) (*Client, error) {
	path := opts.Path
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path %s: %w", path, err)
	}
	file := opts.File
	if file == "" {
		file = settings.DefaultFile
	}

	router := &fetch.Router{
		File:   fetch.NewFileFetcher(osfs.New("/"), abs),
		Source: reference.FileRef{Path: file},
		HTTP:   fetch.NewHTTPFetcher(fetch.HTTPOptions{Token: opts.HTTPToken, Timeout: opts.HTTPTimeout}),
		GLFS:   fetch.NewGLFSFetcher(fetch.GLFSOptions{Registry: opts.Registry, PlainHTTP: opts.PlainHTTP}),
		Logger: opts.Logger,
	}

	switch {
	case opts.Owner != "" && opts.Repo != "":
		client, err := ghprovider.NewClient(ctx, ghprovider.ClientConfig{
			Token:      opts.Token,
			AppID:      opts.AppID,
			AppKeyPath: opts.AppKeyPath,
			BaseURL:    opts.BaseURL,
			Owner:      opts.Owner,
		})
		if err != nil {
			return nil, fmt.Errorf("creating GitHub client: %w", err)
		}
		router.Branch = fetch.NewGitHubFetcher(ghprovider.NewContents(client, opts.Owner, opts.Repo), file)
	case opts.Owner != "" || opts.Repo != "":
		return nil, errors.New("owner and repo must be set together")
	default:
		repo, err := git.Open(abs)
		if err != nil {
			router.Branch = fetch.Func(func(context.Context, reference.ConfigRef) ([]byte, error) {
				return nil, fmt.Errorf("branch references need a git repository: %w", err)
			})
			break
		}
		router.Branch = fetch.NewBranchFetcher(repo, file)
		if !filepath.IsAbs(file) {
			router.Source = reference.FileRef{Path: filepath.Join(repo.WorkingDirectory(), file)}
		}
	}

	var fetcher fetch.Fetcher = router
	if opts.CacheTTL > 0 {
		fetcher = fetch.NewCached(router, opts.CacheTTL, opts.Logger)
	}
	return &Client{fetcher: fetcher}, nil
}

// Load fetches, decodes and validates the document uri points at. A uri
// without a "://" separator is read as a file path.
func (c *Client) Load(ctx context.Context, uri string) (*Config, error) {
	ref, err := reference.ParseConfigRef(normalizeURI(uri))
	if err != nil {
		return nil, err
	}

	data, err := c.fetcher.Fetch(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", ref, err)
	}

	cfg, err := schema.LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", ref, err)
	}
	return cfg, nil
}

// Load creates a Client from opts and loads a single document.
func Load(ctx context.Context, uri string, opts Options) (*Config, error) {
	c, err := New(ctx, opts)
	if err != nil {
		return nil, err
	}
	return c.Load(ctx, uri)
}

// LoadBytes decodes and validates a document held in memory.
func LoadBytes(data []byte) (*Config, error) {
	return schema.LoadFromBytes(data)
}

// HashOptions selects the digest algorithm and encoding.
type HashOptions struct {
	// Algorithm is sha256 (default), sha384 or sha512.
	Algorithm string
	// Encoding is hex (default), base64 or digest.
	Encoding string
}

// Hash computes the content digest of cfg.
func Hash(cfg *Config, opts HashOptions) (string, error) {
	var hashOpts []hash.Option
	if opts.Algorithm != "" {
		hashOpts = append(hashOpts, hash.WithAlgorithm(digest.Algorithm(opts.Algorithm)))
	}
	if opts.Encoding != "" {
		enc, err := hash.ParseEncoding(opts.Encoding)
		if err != nil {
			return "", err
		}
		hashOpts = append(hashOpts, hash.WithEncoding(enc))
	}
	return hash.Compute(cfg, hashOpts...)
}

// Canonical renders the minimal document of cfg as "yaml" or "json". When
// stamp is set the newest schema version is written into apiVersion.
func Canonical(cfg *Config, format string, stamp bool) ([]byte, error) {
	f, err := canonical.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return canonical.Marshal(cfg, f, stamp)
}

// ResolveVersion returns the root version declared for branch, "develop"
// (the default when empty) or "master". The boolean is false when no version
// is declared.
func ResolveVersion(cfg *Config, branch string) (string, bool, error) {
	b, err := semver.ParseBranch(branch)
	if err != nil {
		return "", false, err
	}
	return cfg.ResolveVersion(b)
}

// ResolveVersions returns every declared version in the tree for branch.
func ResolveVersions(cfg *Config, branch string) ([]VersionEntry, error) {
	b, err := semver.ParseBranch(branch)
	if err != nil {
		return nil, err
	}
	return cfg.Versions(b)
}

// APIVersion returns the canonical semantic version of the schema cfg was
// declared against.
func APIVersion(cfg *Config) (string, error) {
	return schema.Default.ResolveAPIVersion(cfg)
}

// LatestAPIVersion returns the newest schema version this package reads.
func LatestAPIVersion() string {
	return schema.Default.Latest()
}

// Reference is a parsed Config or Element Reference.
type Reference struct {
	// Family is "config" or "element".
	Family string
	// URI is the reference re-rendered in canonical form.
	URI string
	// Fields is the flat descriptor, always including "type".
	Fields map[string]string
}

// ParseRef parses a Config Reference or an Element Reference. A uri without
// a "://" separator is read as a file path.
func ParseRef(uri string) (Reference, error) {
	cfgRef, elemRef, err := reference.Parse(normalizeURI(uri))
	if err != nil {
		return Reference{}, err
	}
	if elemRef != nil {
		return Reference{Family: "element", URI: elemRef.String(), Fields: elemRef.Fields()}, nil
	}
	return Reference{Family: "config", URI: cfgRef.String(), Fields: cfgRef.Fields()}, nil
}

// Lookup resolves an Element Reference such as "feature://login" against cfg.
func Lookup(cfg *Config, uri string) (Match, error) {
	ref, err := reference.ParseElementRef(uri)
	if err != nil {
		return Match{}, err
	}
	return cfg.Lookup(ref)
}

func normalizeURI(uri string) string {
	if strings.Contains(uri, "://") {
		return uri
	}
	return "file://" + uri
}
