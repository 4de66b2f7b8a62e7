package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
	"github.com/custodia-labs/motionsplit/internal/core/ports/driven"
	"github.com/custodia-labs/motionsplit/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads past extraction records.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a new history service. The store may be nil.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Recent returns the latest records, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.ExtractionRecord, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: history store", domain.ErrNotConfigured)
	}
	return s.store.List(ctx, limit)
}

// Lookup returns the latest record for a source file.
func (s *HistoryService) Lookup(ctx context.Context, sourcePath string) (*domain.ExtractionRecord, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: history store", domain.ErrNotConfigured)
	}
	if sourcePath == "" {
		return nil, fmt.Errorf("%w: empty path", domain.ErrInvalidInput)
	}
	return s.store.GetByPath(ctx, sourcePath)
}
