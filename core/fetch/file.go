package fetch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FileFetcher reads URLs as paths on a filesystem.
type FileFetcher struct {
	fs      afero.Fs
	baseDir string
}

// NewFileFetcher creates a fetcher rooted at baseDir. Absolute paths and file://
// URLs bypass baseDir.
func NewFileFetcher(fsys afero.Fs, baseDir string) *FileFetcher {
	return &FileFetcher{fs: fsys, baseDir: baseDir}
}

// Fetch reads the whole file.
func (f *FileFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := FilePath(f.baseDir, url)
	data, err := afero.ReadFile(f.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// FilePath maps a file URL or path to a filesystem path under baseDir.
func FilePath(baseDir, url string) string {
	path := strings.TrimPrefix(url, "file://")
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	return path
}
