package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/motionsplit/internal/adapters/driving/tui"
	"github.com/custodia-labs/motionsplit/internal/core/domain"
	"github.com/custodia-labs/motionsplit/internal/logger"
)

var extractCmd = &cobra.Command{
	Use:   "extract [dir]",
	Short: "Extract videos from the motion photos in a directory",
	Long: `Scans a directory for JPEG files, locates the video appended after each
image and writes it to <dir>/_extracted_videos/<name>.mp4.

Files without an embedded video are skipped. Stored settings apply unless
overridden by flags; see 'motionsplit settings'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

var (
	extractOpts   extractFlags
	extractFrames bool
	extractTUI    bool
)

// runProgram runs a bubbletea model. Tests replace it.
var runProgram = func(ctx context.Context, model tea.Model) error {
	_, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}

func init() {
	extractOpts.bind(extractCmd,
		flagRequireMotion, flagTailWindow, flagWorkers, flagOutput, flagRecursive, flagOverwrite)
	extractCmd.Flags().BoolVar(&extractFrames, "frames", false, "sample still frames from each extracted video")
	extractCmd.Flags().BoolVar(&extractTUI, "tui", false, "show an interactive progress view")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if extractionService == nil {
		return errors.New("extraction service not configured")
	}

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	} else {
		cmd.Println("No directory given, using the current directory.")
		cmd.Println("Usage: motionsplit extract <dir>")
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if err := extractOpts.apply(cmd, &settings.Extract); err != nil {
		return err
	}

	ctx := cmd.Context()

	var summary *domain.BatchSummary
	if extractTUI {
		summary, err = extractWithTUI(ctx, dir, settings.Extract)
	} else {
		summary, err = extractWithProgress(ctx, cmd, dir, settings.Extract)
	}
	if summary == nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	printSummary(cmd, summary)

	if err != nil {
		return fmt.Errorf("extraction stopped: %w", err)
	}

	if extractFrames {
		sampleExtracted(ctx, cmd, summary, settings.Frames)
	}

	return nil
}

// extractWithProgress runs the batch while printing a running count.
func extractWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	dir string,
	settings domain.ExtractSettings,
) (*domain.BatchSummary, error) {
	showProgress := !logger.IsVerbose()

	summary, err := extractionService.ExtractAll(ctx, dir, settings,
		func(_ domain.ExtractionRecord, done, total int) {
			if showProgress {
				cmd.Printf("\rProcessing... %d/%d files", done, total)
			}
		})

	if showProgress && summary != nil && summary.Total > 0 {
		cmd.Println()
	}
	return summary, err
}

// extractWithTUI runs the batch behind the progress view.
func extractWithTUI(ctx context.Context, dir string, settings domain.ExtractSettings) (*domain.BatchSummary, error) {
	app, err := tui.NewApp(tui.NewPorts(extractionService), dir, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	if err := runProgram(ctx, app); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return nil, fmt.Errorf("TUI error: %w", err)
	}

	if !app.Finished() {
		return nil, context.Canceled
	}
	return app.Summary(), app.Err()
}

// printSummary prints the batch result.
func printSummary(cmd *cobra.Command, summary *domain.BatchSummary) {
	cmd.Printf("Done. Extracted %d / %d files.\n", summary.Extracted, summary.Total)
	cmd.Printf("Output folder: %s\n", summary.OutputDir)

	var written int64
	unchanged := 0
	for i := range summary.Records {
		rec := &summary.Records[i]
		if !rec.Extracted() {
			continue
		}
		if rec.Unchanged {
			unchanged++
			continue
		}
		written += rec.VideoSize
	}
	if written > 0 {
		cmd.Printf("Wrote %s of video.\n", humanize.Bytes(uint64(written)))
	}
	if unchanged > 0 {
		cmd.Printf("%d videos were already up to date.\n", unchanged)
	}

	if skipped := summary.SkippedTotal(); skipped > 0 {
		cmd.Printf("Skipped %d:\n", skipped)
		outcomes := make([]domain.Outcome, 0, len(summary.Skipped))
		for o := range summary.Skipped {
			outcomes = append(outcomes, o)
		}
		sort.Slice(outcomes, func(i, j int) bool { return outcomes[i] < outcomes[j] })
		for _, o := range outcomes {
			cmd.Printf("  %s: %d\n", o.Description(), summary.Skipped[o])
		}
	}

	if summary.Failed > 0 {
		cmd.Printf("Failed %d:\n", summary.Failed)
		for _, err := range summary.Errors {
			cmd.Printf("  %v\n", err)
		}
	}
}

// sampleExtracted samples frames from every video the batch produced.
// Failures are reported and do not stop the remaining videos.
func sampleExtracted(ctx context.Context, cmd *cobra.Command, summary *domain.BatchSummary, settings domain.FrameSettings) {
	if frameService == nil {
		cmd.Println("Warning: frame sampling is not available.")
		return
	}

	for i := range summary.Records {
		rec := &summary.Records[i]
		if !rec.Extracted() || rec.OutputPath == "" {
			continue
		}
		set, err := frameService.Sample(ctx, rec.OutputPath, settings)
		if err != nil {
			cmd.Printf("Warning: %v\n", err)
			continue
		}
		cmd.Printf("Sampled %d frames into %s\n", len(set.Frames), set.Dir)
	}
}
