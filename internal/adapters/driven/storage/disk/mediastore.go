// Package disk provides the local filesystem MediaStore.
package disk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/motionsplit/internal/core/ports/driven"
)

// Ensure MediaStore implements the interface.
var _ driven.MediaStore = (*MediaStore)(nil)

// MediaStore reads and writes media files on the local filesystem.
type MediaStore struct {
	dirPerm  os.FileMode
	filePerm os.FileMode
}

// NewMediaStore creates a filesystem media store.
func NewMediaStore() *MediaStore {
	return &MediaStore{
		dirPerm:  0755,
		filePerm: 0644,
	}
}

// ReadFile returns the whole contents of a file.
func (s *MediaStore) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes data to path, creating parent directories.
// The data is written to a temporary file in the same directory and
// renamed into place, so readers never see a partial video.
func (s *MediaStore) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, s.dirPerm); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, s.filePerm); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Exists returns true if a regular file is present at path.
func (s *MediaStore) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
