package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Extract motion photos as they appear in a directory",
	Long: `Watches a directory and extracts the video from each new or updated JPEG.
Processing is throttled by the watch.rate and watch.burst settings.

Runs until interrupted with Ctrl+C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

var watchOpts extractFlags

func init() {
	watchOpts.bind(watchCmd, flagRequireMotion, flagTailWindow, flagOutput, flagRecursive, flagOverwrite)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if extractionService == nil {
		return errors.New("extraction service not configured")
	}

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if err := watchOpts.apply(cmd, &settings.Extract); err != nil {
		return err
	}

	cmd.Printf("Watching %s for motion photos. Press Ctrl+C to stop.\n", dir)

	extracted := 0
	err = extractionService.Watch(cmd.Context(), dir, settings.Extract, func(rec domain.ExtractionRecord) {
		name := filepath.Base(rec.SourcePath)
		switch {
		case rec.Error != "":
			cmd.Printf("✗ %s: %s\n", name, rec.Error)
		case rec.Unchanged:
			cmd.Printf("= %s (unchanged)\n", name)
		case rec.Extracted():
			extracted++
			cmd.Printf("✓ %s -> %s\n", name, rec.OutputPath)
		default:
			cmd.Printf("- %s: %s\n", name, rec.Outcome.Description())
		}
	})
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	cmd.Printf("Stopped. Extracted %d files.\n", extracted)
	return nil
}
