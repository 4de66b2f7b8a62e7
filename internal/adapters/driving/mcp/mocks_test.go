package mcp

import (
	"context"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
	"github.com/custodia-labs/motionsplit/internal/core/ports/driving"
)

// mockExtractionService is a mock implementation of driving.ExtractionService.
type mockExtractionService struct {
	classification *driving.Classification
	record         *domain.ExtractionRecord
	err            error

	// Captured arguments.
	path      string
	outputDir string
	settings  domain.ExtractSettings
}

func (m *mockExtractionService) Classify(
	_ context.Context,
	path string,
	settings domain.ExtractSettings,
) (*driving.Classification, error) {
	m.path = path
	m.settings = settings
	return m.classification, m.err
}

func (m *mockExtractionService) ExtractFile(
	_ context.Context,
	path, outputDir string,
	settings domain.ExtractSettings,
) (*domain.ExtractionRecord, error) {
	m.path = path
	m.outputDir = outputDir
	m.settings = settings
	return m.record, m.err
}

func (m *mockExtractionService) ExtractAll(
	_ context.Context,
	_ string,
	_ domain.ExtractSettings,
	_ driving.ProgressFunc,
) (*domain.BatchSummary, error) {
	return nil, m.err
}

func (m *mockExtractionService) Watch(
	_ context.Context,
	_ string,
	_ domain.ExtractSettings,
	_ func(domain.ExtractionRecord),
) error {
	return m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error {
	return m.err
}

func (m *mockSettingsService) Set(_, _ string) error {
	return m.err
}

func (m *mockSettingsService) SetFFmpegPath(_ string) error {
	return m.err
}

func (m *mockSettingsService) Keys() []string {
	return nil
}

func (m *mockSettingsService) Validate() error {
	return m.err
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	records []domain.ExtractionRecord
	err     error
	limit   int
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.ExtractionRecord, error) {
	m.limit = limit
	return m.records, m.err
}

func (m *mockHistoryService) Lookup(_ context.Context, _ string) (*domain.ExtractionRecord, error) {
	if len(m.records) == 0 {
		return nil, domain.ErrNotFound
	}
	return &m.records[0], m.err
}
