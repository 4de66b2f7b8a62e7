package memory

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/custodia-labs/motionsplit/internal/core/ports/driven"
)

// Ensure MediaStore implements the interface.
var _ driven.MediaStore = (*MediaStore)(nil)

// MediaStore is an in-memory implementation of driven.MediaStore.
// Paths are plain map keys; no directory structure is modelled.
type MediaStore struct {
	mu       sync.RWMutex
	files    map[string][]byte
	readErr  map[string]error
	writeErr map[string]error
}

// NewMediaStore creates a new in-memory media store.
func NewMediaStore() *MediaStore {
	return &MediaStore{
		files:    make(map[string][]byte),
		readErr:  make(map[string]error),
		writeErr: make(map[string]error),
	}
}

// Put stores a file directly.
func (s *MediaStore) Put(path string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = data
}

// FailRead makes every read of path fail with err.
func (s *MediaStore) FailRead(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr[path] = err
}

// FailWrite makes every write to path fail with err.
func (s *MediaStore) FailWrite(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr[path] = err
}

// Get returns a stored file.
func (s *MediaStore) Get(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[path]
	return data, ok
}

// ReadFile returns a copy of a stored file.
func (s *MediaStore) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err, ok := s.readErr[path]; ok {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	data, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", path, os.ErrNotExist)
	}
	return append([]byte(nil), data...), nil
}

// WriteFile stores a copy of data at path.
func (s *MediaStore) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.writeErr[path]; ok {
		return fmt.Errorf("write %s: %w", path, err)
	}
	s.files[path] = append([]byte(nil), data...)
	return nil
}

// Exists returns true if a file is stored at path.
func (s *MediaStore) Exists(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.files[path]
	return ok
}
