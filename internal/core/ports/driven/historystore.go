package driven

import (
	"context"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
)

// HistoryStore persists extraction records.
type HistoryStore interface {
	// Save stores a record.
	Save(ctx context.Context, record domain.ExtractionRecord) error

	// List returns the most recent records, newest first.
	// A limit of zero or less returns every record.
	List(ctx context.Context, limit int) ([]domain.ExtractionRecord, error)

	// GetByPath returns the latest record for a source file.
	// Returns domain.ErrNotFound if the file was never processed.
	GetByPath(ctx context.Context, sourcePath string) (*domain.ExtractionRecord, error)
}
