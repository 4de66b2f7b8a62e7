package driving

import (
	"context"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
)

// HistoryService reads past extraction records.
type HistoryService interface {
	// Recent returns the latest records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.ExtractionRecord, error)

	// Lookup returns the latest record for a source file.
	Lookup(ctx context.Context, sourcePath string) (*domain.ExtractionRecord, error)
}
