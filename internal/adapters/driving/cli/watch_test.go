package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
)

func TestWatchCmd_PrintsRecords(t *testing.T) {
	mock := &mockExtractionService{records: []domain.ExtractionRecord{
		{SourcePath: "/photos/a.jpg", OutputPath: "/photos/_extracted_videos/a.mp4", Outcome: domain.OutcomeSuccess},
		{SourcePath: "/photos/b.jpg", OutputPath: "/photos/_extracted_videos/b.mp4", Outcome: domain.OutcomeSuccess, Unchanged: true},
		{SourcePath: "/photos/c.jpg", Outcome: domain.OutcomeNoContainerFound},
		{SourcePath: "/photos/d.jpg", Error: "output file exists"},
	}}
	setupServices(t, Services{Extraction: mock})

	out, err := execute(t, "watch", "/photos", "--recursive")

	require.NoError(t, err)
	assert.Equal(t, "/photos", mock.root)
	assert.True(t, mock.settings.Recursive)
	assert.Contains(t, out, "Watching /photos for motion photos.")
	assert.Contains(t, out, "✓ a.jpg -> /photos/_extracted_videos/a.mp4")
	assert.Contains(t, out, "= b.jpg (unchanged)")
	assert.Contains(t, out, "- c.jpg: "+domain.OutcomeNoContainerFound.Description())
	assert.Contains(t, out, "✗ d.jpg: output file exists")
	assert.Contains(t, out, "Stopped. Extracted 1 files.")
}

func TestWatchCmd_DefaultsToCurrentDirectory(t *testing.T) {
	mock := &mockExtractionService{}
	setupServices(t, Services{Extraction: mock})

	_, err := execute(t, "watch")

	require.NoError(t, err)
	assert.Equal(t, ".", mock.root)
}

func TestWatchCmd_Errors(t *testing.T) {
	t.Run("watcher fails", func(t *testing.T) {
		setupServices(t, Services{Extraction: &mockExtractionService{err: errors.New("too many open files")}})

		_, err := execute(t, "watch", "/photos")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "watch failed")
	})

	t.Run("service not configured", func(t *testing.T) {
		setupServices(t, Services{})

		_, err := execute(t, "watch", "/photos")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "extraction service not configured")
	})
}
