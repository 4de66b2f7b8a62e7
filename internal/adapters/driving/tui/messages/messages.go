// Package messages defines Bubbletea message types for the TUI.
// Messages represent events that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/motionsplit/internal/core/domain"
)

// RecordProcessed is sent after each candidate completes.
type RecordProcessed struct {
	Record domain.ExtractionRecord
	Done   int
	Total  int
}

// Fraction returns the completed share of the batch in [0, 1].
func (m RecordProcessed) Fraction() float64 {
	if m.Total <= 0 {
		return 0
	}
	return float64(m.Done) / float64(m.Total)
}

// ExtractionCompleted carries the batch result back to the model.
type ExtractionCompleted struct {
	Summary *domain.BatchSummary
	Err     error
}
