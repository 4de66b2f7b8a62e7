package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/motionsplit/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/motionsplit/internal/core/domain"
	"github.com/custodia-labs/motionsplit/internal/core/ports/driving"
	"github.com/custodia-labs/motionsplit/internal/core/services"
)

// mockExtractionService implements driving.ExtractionService for testing.
type mockExtractionService struct {
	classification *driving.Classification
	summary        *domain.BatchSummary
	records        []domain.ExtractionRecord
	err            error

	// Captured arguments.
	root     string
	settings domain.ExtractSettings
}

func (m *mockExtractionService) Classify(
	_ context.Context, path string, settings domain.ExtractSettings,
) (*driving.Classification, error) {
	m.root = path
	m.settings = settings
	return m.classification, m.err
}

func (m *mockExtractionService) ExtractFile(
	_ context.Context, _, _ string, _ domain.ExtractSettings,
) (*domain.ExtractionRecord, error) {
	return nil, m.err
}

func (m *mockExtractionService) ExtractAll(
	_ context.Context, root string, settings domain.ExtractSettings, progress driving.ProgressFunc,
) (*domain.BatchSummary, error) {
	m.root = root
	m.settings = settings
	if m.summary != nil && progress != nil {
		for i, rec := range m.summary.Records {
			progress(rec, i+1, m.summary.Total)
		}
	}
	return m.summary, m.err
}

func (m *mockExtractionService) Watch(
	_ context.Context, root string, settings domain.ExtractSettings, onRecord func(domain.ExtractionRecord),
) error {
	m.root = root
	m.settings = settings
	for _, rec := range m.records {
		onRecord(rec)
	}
	return m.err
}

// mockFrameService implements driving.FrameService for testing.
type mockFrameService struct {
	set      *domain.FrameSet
	err      error
	located  string
	lookErr  error
	sampled  []string
	settings domain.FrameSettings
}

func (m *mockFrameService) Sample(
	_ context.Context, videoPath string, settings domain.FrameSettings,
) (*domain.FrameSet, error) {
	m.sampled = append(m.sampled, videoPath)
	m.settings = settings
	return m.set, m.err
}

func (m *mockFrameService) Locate(_ string) (string, error) {
	return m.located, m.lookErr
}

// mockHistoryService implements driving.HistoryService for testing.
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
	return nil, domain.ErrNotFound
}

// setupServices swaps in the given services and restores the previous ones on cleanup.
// A nil settings service is replaced with one over an in-memory store.
func setupServices(t *testing.T, s Services) {
	t.Helper()

	old := Services{
		Extraction: extractionService,
		Settings:   settingsService,
		Frames:     frameService,
		History:    historyService,
	}
	if s.Settings == nil {
		s.Settings = services.NewSettingsService(memory.NewConfigStore())
	}
	SetServices(s)
	t.Cleanup(func() { SetServices(old) })
}

// execute runs the root command with args and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag in the tree to its default so values
// do not leak between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
