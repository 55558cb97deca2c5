package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/reference"
)

// FileFetcher serves file references from a billy filesystem. Relative paths
// are resolved against dir.
type FileFetcher struct {
	fs  billy.Filesystem
	dir string
}

// NewFileFetcher creates a FileFetcher over fs.
func NewFileFetcher(fs billy.Filesystem, dir string) *FileFetcher {
	return &FileFetcher{fs: fs, dir: dir}
}

func (f *FileFetcher) Fetch(_ context.Context, ref reference.ConfigRef) ([]byte, error) {
	fr, ok := ref.(reference.FileRef)
	if !ok {
		return nil, unsupported(ref)
	}

	p := fr.Path
	if !filepath.IsAbs(p) && f.dir != "" {
		p = filepath.Join(f.dir, p)
	}

	data, err := util.ReadFile(f.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", p, ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}
	return data, nil
}
