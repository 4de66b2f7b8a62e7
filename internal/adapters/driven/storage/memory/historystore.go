package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
	"github.com/custodia-labs/motionsplit/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
type HistoryStore struct {
	mu      sync.RWMutex
	records []domain.ExtractionRecord
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Save appends a record.
func (s *HistoryStore) Save(_ context.Context, record domain.ExtractionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// List returns the most recent records, newest first.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.ExtractionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.records)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]domain.ExtractionRecord, 0, n)
	for i := len(s.records) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, s.records[i])
	}
	return result, nil
}

// GetByPath returns the latest record for a source file.
func (s *HistoryStore) GetByPath(_ context.Context, sourcePath string) (*domain.ExtractionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].SourcePath == sourcePath {
			rec := s.records[i]
			return &rec, nil
		}
	}
	return nil, domain.ErrNotFound
}
