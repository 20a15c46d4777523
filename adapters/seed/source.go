package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chunkinator/astroneer/ports"
)

// FileSource reads hydration files from a directory on disk.
type FileSource struct {
	dir string
}

// NewFileSource creates a source rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Open opens name relative to the source directory.
func (s *FileSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, name)
	}
	f, err := os.Open(path)
	if err != nil {
		// *fs.PathError keeps fs.ErrNotExist visible to errors.Is.
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// Describe returns the directory.
func (s *FileSource) Describe() string {
	return s.dir
}

var _ ports.SeedSource = (*FileSource)(nil)
