// Package tui provides an interactive terminal progress view for batch extraction.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/motionsplit/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Extraction runs the batch.
	Extraction driving.ExtractionService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(extraction driving.ExtractionService) *Ports {
	return &Ports{Extraction: extraction}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Extraction == nil {
		return ErrMissingExtractionService
	}
	return nil
}
