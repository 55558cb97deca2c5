package fetch

import (
	"context"
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/reference"
)

func newMemFS(t *testing.T, files map[string]string) *FileFetcher {
	t.Helper()
	fs := memfs.New()
	for name, content := range files {
		require.NoError(t, util.WriteFile(fs, name, []byte(content), 0o644))
	}
	return NewFileFetcher(fs, "/repo")
}

func TestFileFetcher(t *testing.T) {
	f := newMemFS(t, map[string]string{
		"/repo/.flowconfig/config.yml": "identifier: root\n",
		"/shared/base.yml":             "identifier: base\n",
	})

	tests := []struct {
		name string
		path string
		want string
	}{
		{"relative to dir", ".flowconfig/config.yml", "identifier: root\n"},
		{"absolute", "/shared/base.yml", "identifier: base\n"},
		{"parent escape", "../shared/base.yml", "identifier: base\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := f.Fetch(context.Background(), reference.FileRef{Path: tt.path})
			require.NoError(t, err)
			require.Equal(t, tt.want, string(data))
		})
	}
}

func TestFileFetcher_NotFound(t *testing.T) {
	f := newMemFS(t, nil)

	_, err := f.Fetch(context.Background(), reference.FileRef{Path: "missing.yml"})
	require.ErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), "/repo/missing.yml")
}

func TestFileFetcher_Unsupported(t *testing.T) {
	f := newMemFS(t, nil)

	_, err := f.Fetch(context.Background(), reference.BranchRef{BranchName: "main"})
	var unsupportedErr *UnsupportedRefError
	require.True(t, errors.As(err, &unsupportedErr))
	require.Equal(t, "cannot fetch branch://main: unsupported branch reference", err.Error())
}
