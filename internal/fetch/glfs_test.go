package fetch

import (
	"context"
	"errors"
	"testing"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/require"
	"oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/memory"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/reference"
)

// registry is an in-memory set of repositories keyed by full repository name.
type registry map[string]*memory.Store

func (r registry) target(_ context.Context, repository string) (oras.ReadOnlyTarget, error) {
	store, ok := r[repository]
	if !ok {
		return nil, errors.New("unknown repository " + repository)
	}
	return store, nil
}

func (r registry) pushFragment(t *testing.T, repository, tag, document string) {
	t.Helper()
	ctx := context.Background()
	store, ok := r[repository]
	if !ok {
		store = memory.New()
		r[repository] = store
	}

	layer, err := oras.PushBytes(ctx, store, MediaTypeDocument, []byte(document))
	require.NoError(t, err)

	manifest, err := oras.PackManifest(ctx, store, oras.PackManifestVersion1_1, ArtifactType, oras.PackManifestOptions{
		Layers: []ocispec.Descriptor{layer},
	})
	require.NoError(t, err)
	require.NoError(t, store.Tag(ctx, manifest, tag))
}

func TestGLFSFetcher_Locate(t *testing.T) {
	f := NewGLFSFetcher(GLFSOptions{Registry: "registry.example.com"})

	tests := []struct {
		uri        string
		repository string
		tag        string
	}{
		{"glfs://platform/base", "registry.example.com/platform/base", "latest"},
		{"glfs://ghcr.io/platform/base", "ghcr.io/platform/base", "latest"},
		{"glfs://ghcr.io/platform/v2/base", "ghcr.io/platform/base", "v2"},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			ref, err := reference.ParseConfigRef(tt.uri)
			require.NoError(t, err)
			repository, tag, err := f.Locate(ref.(reference.GLFSRef))
			require.NoError(t, err)
			require.Equal(t, tt.repository, repository)
			require.Equal(t, tt.tag, tag)
		})
	}
}

func TestGLFSFetcher_LocateWithoutRegistry(t *testing.T) {
	f := NewGLFSFetcher(GLFSOptions{})
	_, _, err := f.Locate(reference.GLFSRef{Namespace: "platform", Name: "base"})
	var unsupportedErr *UnsupportedRefError
	require.ErrorAs(t, err, &unsupportedErr)
	require.Contains(t, err.Error(), "no default registry")
}

func TestGLFSFetcher_Fetch(t *testing.T) {
	reg := registry{}
	reg.pushFragment(t, "registry.example.com/platform/base", "latest", "identifier: base\n")
	reg.pushFragment(t, "registry.example.com/platform/base", "v1", "identifier: base-v1\n")

	f := NewGLFSFetcher(GLFSOptions{Registry: "registry.example.com", Target: reg.target})

	data, err := f.Fetch(context.Background(), reference.GLFSRef{Namespace: "platform", Name: "base"})
	require.NoError(t, err)
	require.Equal(t, "identifier: base\n", string(data))

	data, err = f.Fetch(context.Background(), reference.GLFSRef{
		Hostname:  "registry.example.com",
		Namespace: "platform",
		Support:   "v1",
		Name:      "base",
	})
	require.NoError(t, err)
	require.Equal(t, "identifier: base-v1\n", string(data))
}

func TestGLFSFetcher_FetchBlob(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	blob, err := oras.PushBytes(ctx, store, MediaTypeDocument, []byte("identifier: raw\n"))
	require.NoError(t, err)
	require.NoError(t, store.Tag(ctx, blob, "latest"))

	f := NewGLFSFetcher(GLFSOptions{
		Registry: "localhost:5000",
		Target:   registry{"localhost:5000/platform/raw": store}.target,
	})

	data, err := f.Fetch(ctx, reference.GLFSRef{Namespace: "platform", Name: "raw"})
	require.NoError(t, err)
	require.Equal(t, "identifier: raw\n", string(data))
}

func TestGLFSFetcher_Errors(t *testing.T) {
	reg := registry{}
	reg.pushFragment(t, "registry.example.com/platform/base", "latest", "identifier: base\n")
	f := NewGLFSFetcher(GLFSOptions{Registry: "registry.example.com", Target: reg.target})

	t.Run("unknown tag", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), reference.GLFSRef{
			Hostname: "registry.example.com", Namespace: "platform", Support: "v9", Name: "base",
		})
		require.ErrorIs(t, err, ErrNotFound)
		require.Contains(t, err.Error(), "registry.example.com/platform/base:v9")
	})

	t.Run("unknown repository", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), reference.GLFSRef{Namespace: "platform", Name: "other"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "opening registry.example.com/platform/other")
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), reference.FileRef{Path: "x"})
		var unsupportedErr *UnsupportedRefError
		require.ErrorAs(t, err, &unsupportedErr)
	})
}

func TestDocumentLayer(t *testing.T) {
	other := ocispec.Descriptor{MediaType: "application/octet-stream"}
	doc := ocispec.Descriptor{MediaType: MediaTypeDocument}

	got, err := documentLayer(ocispec.Manifest{Layers: []ocispec.Descriptor{other, doc}})
	require.NoError(t, err)
	require.Equal(t, doc, got)

	got, err = documentLayer(ocispec.Manifest{Layers: []ocispec.Descriptor{other}})
	require.NoError(t, err)
	require.Equal(t, other, got)

	_, err = documentLayer(ocispec.Manifest{})
	require.Error(t, err)
}
