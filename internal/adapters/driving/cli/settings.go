package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure extraction, frame sampling and watch settings.

Settings are stored in ~/.motionsplit/config.toml. Flags on individual
commands override them for a single run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsFFmpegCmd = &cobra.Command{
	Use:   "ffmpeg",
	Short: "Configure frame sampling",
	Long: `Interactively set the ffmpeg executable and the still image format.
Nothing is saved unless you confirm at the end.`,
	RunE: runSettingsFFmpeg,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single setting",
	Long: `Set a single setting by key, for example:

  motionsplit settings set extract.require_motion_flag true
  motionsplit settings set extract.tail_window 4194304
  motionsplit settings set frames.fps 2`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

// stdin and isInteractive are replaced in tests.
var (
	stdin         io.Reader = os.Stdin
	isInteractive           = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsFFmpegCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Extract]")
	cmd.Printf("  Require motion flag: %s\n", yesNo(settings.Extract.RequireMotionFlag))
	if settings.Extract.TailWindow == domain.Unbounded {
		cmd.Println("  Tail window: whole file")
	} else {
		cmd.Printf("  Tail window: last %d bytes\n", settings.Extract.TailWindow)
	}
	cmd.Printf("  Workers: %d\n", settings.Extract.Workers)
	cmd.Printf("  Output directory: %s\n", settings.Extract.OutputDir)
	cmd.Printf("  Recursive: %s\n", yesNo(settings.Extract.Recursive))
	cmd.Printf("  Overwrite: %s\n", yesNo(settings.Extract.Overwrite))
	cmd.Println()

	cmd.Println("[Frames]")
	cmd.Printf("  ffmpeg: %s\n", settings.Frames.FFmpegPath)
	cmd.Printf("  Frames per second: %g\n", settings.Frames.FPS)
	cmd.Printf("  Format: %s\n", settings.Frames.Format.Description())
	cmd.Println()

	cmd.Println("[Watch]")
	cmd.Printf("  Rate: %g files/s\n", settings.Watch.Rate)
	cmd.Printf("  Burst: %d\n", settings.Watch.Burst)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'motionsplit settings set <key> <value>' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsFFmpeg(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if !isInteractive() {
		return errors.New("settings ffmpeg needs an interactive terminal; " +
			"use 'motionsplit settings set frames.ffmpeg_path <path>'")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	reader := bufio.NewReader(stdin)

	cmd.Printf("Path to ffmpeg [%s]: ", settings.Frames.FFmpegPath)
	path := readLine(reader)
	if path == "" {
		path = settings.Frames.FFmpegPath
	}

	if frameService != nil {
		resolved, err := frameService.Locate(path)
		if err != nil {
			cmd.Printf("Warning: %v\n", err)
		} else {
			cmd.Printf("Found: %s\n", resolved)
		}
	}

	cmd.Println()
	cmd.Println("Select Frame Format")
	formats := domain.AllFrameFormats()
	current := 1
	for i, f := range formats {
		cmd.Printf("  %d. %s\n", i+1, f.Description())
		if f == settings.Frames.Format {
			current = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	format := formats[parseChoice(readLine(reader), len(formats), current)-1]

	cmd.Printf("\nSave ffmpeg %q with %s stills? [y/N]: ", path, format)
	if !confirmed(readLine(reader)) {
		cmd.Println("Settings not saved.")
		return nil
	}

	if err := settingsService.SetFFmpegPath(path); err != nil {
		return fmt.Errorf("failed to set ffmpeg path: %w", err)
	}
	if err := settingsService.Set("frames.format", format.String()); err != nil {
		return fmt.Errorf("failed to set frame format: %w", err)
	}

	cmd.Println("Settings saved.")
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrUnsupportedType) {
			cmd.Println("Valid keys:")
			for _, k := range settingsService.Keys() {
				cmd.Printf("  %s\n", k)
			}
		}
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("%s = %s\n", key, value)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func confirmed(input string) bool {
	switch strings.ToLower(input) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
