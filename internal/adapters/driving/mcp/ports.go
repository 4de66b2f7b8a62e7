package mcp

import (
	"github.com/custodia-labs/motionsplit/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Extraction classifies and splits motion photos.
	Extraction driving.ExtractionService

	// Settings supplies the stored extraction defaults.
	Settings driving.SettingsService

	// History reads past extraction records.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Settings and History are optional.
func (p *Ports) Validate() error {
	if p.Extraction == nil {
		return ErrMissingExtractionService
	}
	return nil
}
