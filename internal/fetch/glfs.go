package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content"
	"oras.land/oras-go/v2/errdef"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/reference"
)

const (
	// ArtifactType identifies configuration fragments pushed to a registry.
	ArtifactType = "application/vnd.flowconfig.fragment.v1"
	// MediaTypeDocument is the layer media type holding the document bytes.
	MediaTypeDocument = "application/vnd.flowconfig.document.v1+yaml"

	// DefaultTag is used when a glfs reference names no support line.
	DefaultTag = "latest"
)

// TargetFunc opens the repository a glfs reference resolves to.
type TargetFunc func(ctx context.Context, repository string) (oras.ReadOnlyTarget, error)

// GLFSOptions configures a GLFSFetcher.
type GLFSOptions struct {
	// Registry is used when a reference carries no hostname.
	Registry string
	// PlainHTTP talks to the registry without TLS.
	PlainHTTP bool
	// Target overrides how repositories are opened. Nil opens remote
	// registries using the docker credential store.
	Target TargetFunc
}

// GLFSFetcher serves glfs references from an OCI registry. A reference maps to
// the repository [hostname/]namespace/name and the tag named by its support
// line, or DefaultTag.
type GLFSFetcher struct {
	registry string
	target   TargetFunc
}

// NewGLFSFetcher creates a GLFSFetcher.
func NewGLFSFetcher(opts GLFSOptions) *GLFSFetcher {
	target := opts.Target
	if target == nil {
		target = remoteTarget(opts.PlainHTTP)
	}
	return &GLFSFetcher{registry: opts.Registry, target: target}
}

// Locate returns the repository and tag a reference resolves to.
func (f *GLFSFetcher) Locate(ref reference.GLFSRef) (repository, tag string, err error) {
	host := ref.Hostname
	if host == "" {
		host = f.registry
	}
	if host == "" {
		return "", "", &UnsupportedRefError{Ref: ref, Reason: "no hostname and no default registry configured"}
	}
	tag = ref.Support
	if tag == "" {
		tag = DefaultTag
	}
	return host + "/" + ref.Namespace + "/" + ref.Name, tag, nil
}

func (f *GLFSFetcher) Fetch(ctx context.Context, ref reference.ConfigRef) ([]byte, error) {
	gr, ok := ref.(reference.GLFSRef)
	if !ok {
		return nil, unsupported(ref)
	}
	repository, tag, err := f.Locate(gr)
	if err != nil {
		return nil, err
	}

	target, err := f.target(ctx, repository)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", repository, err)
	}

	desc, data, err := oras.FetchBytes(ctx, target, tag, oras.DefaultFetchBytesOptions)
	if err != nil {
		return nil, mapRegistryError(repository, tag, err)
	}
	if desc.MediaType != ocispec.MediaTypeImageManifest {
		return data, nil
	}

	var manifest ocispec.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("decoding manifest %s:%s: %w", repository, tag, err)
	}
	layer, err := documentLayer(manifest)
	if err != nil {
		return nil, fmt.Errorf("%s:%s: %w", repository, tag, err)
	}

	doc, err := content.FetchAll(ctx, target, layer)
	if err != nil {
		return nil, mapRegistryError(repository, tag, err)
	}
	return doc, nil
}

// documentLayer picks the document layer, falling back to the first layer.
func documentLayer(m ocispec.Manifest) (ocispec.Descriptor, error) {
	if len(m.Layers) == 0 {
		return ocispec.Descriptor{}, errors.New("manifest has no layers")
	}
	for _, l := range m.Layers {
		if l.MediaType == MediaTypeDocument {
			return l, nil
		}
	}
	return m.Layers[0], nil
}

func mapRegistryError(repository, tag string, err error) error {
	if errors.Is(err, errdef.ErrNotFound) {
		return fmt.Errorf("fetching %s:%s: %w", repository, tag, ErrNotFound)
	}
	return fmt.Errorf("fetching %s:%s: %w", repository, tag, err)
}

func remoteTarget(plainHTTP bool) TargetFunc {
	return func(_ context.Context, repository string) (oras.ReadOnlyTarget, error) {
		repo, err := remote.NewRepository(repository)
		if err != nil {
			return nil, err
		}
		repo.PlainHTTP = plainHTTP

		client := &auth.Client{
			Client: &http.Client{Transport: http.DefaultTransport},
			Cache:  auth.NewCache(),
		}
		if store, err := credentials.NewStoreFromDocker(credentials.StoreOptions{}); err == nil {
			client.Credential = credentials.Credential(store)
		}
		repo.Client = client
		return repo, nil
	}
}
