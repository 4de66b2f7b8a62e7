// Package cli provides the cobra command tree for motionsplit.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
	"github.com/custodia-labs/motionsplit/internal/core/ports/driving"
	"github.com/custodia-labs/motionsplit/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services wired by main. Commands check for nil before use.
var (
	extractionService driving.ExtractionService
	settingsService   driving.SettingsService
	frameService      driving.FrameService
	historyService    driving.HistoryService
)

// Services holds the driving ports the commands call.
type Services struct {
	Extraction driving.ExtractionService
	Settings   driving.SettingsService
	Frames     driving.FrameService
	History    driving.HistoryService
}

var rootCmd = &cobra.Command{
	Use:   "motionsplit",
	Short: "Split motion photos into still images and videos",
	Long: `motionsplit finds JPEG motion photos (Google Pixel, Samsung and others)
and writes the video embedded after the image to a separate .mp4 file.

The original photos are never modified.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err == nil {
			logger.SetVerbose(verbose)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print per-file diagnostics")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices sets the services used by the commands.
func SetServices(s Services) {
	extractionService = s.Extraction
	settingsService = s.Settings
	frameService = s.Frames
	historyService = s.History
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadSettings returns the stored settings, or the defaults when no
// settings service is wired.
func loadSettings() (*domain.AppSettings, error) {
	if settingsService == nil {
		defaults := domain.DefaultAppSettings()
		return &defaults, nil
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}
