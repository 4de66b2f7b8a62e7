package driven

import "context"

// MediaStore reads candidate files and writes extracted videos.
// It is the only I/O surface of an extraction.
type MediaStore interface {
	// ReadFile returns the whole contents of a file.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// WriteFile writes data to path, creating parent directories.
	WriteFile(ctx context.Context, path string, data []byte) error

	// Exists returns true if a file is present at path.
	Exists(path string) bool
}
