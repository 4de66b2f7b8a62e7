package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
)

var framesCmd = &cobra.Command{
	Use:   "frames <video>",
	Short: "Sample still frames from an extracted video",
	Long: `Runs ffmpeg to write still images from a video into a sibling
<name>_frames directory.

The executable, rate and image format come from the frames.* settings
unless overridden by flags.`,
	Args: cobra.ExactArgs(1),
	RunE: runFrames,
}

var (
	framesFPS    float64
	framesFormat string
	framesFFmpeg string
)

func init() {
	framesCmd.Flags().Float64Var(&framesFPS, "fps", 0, "frames sampled per second of video")
	framesCmd.Flags().StringVar(&framesFormat, "format", "", "still format: jpg or png")
	framesCmd.Flags().StringVar(&framesFFmpeg, "ffmpeg", "", "path to the ffmpeg executable")
	rootCmd.AddCommand(framesCmd)
}

func runFrames(cmd *cobra.Command, args []string) error {
	if frameService == nil {
		return errors.New("frame service not configured")
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	frames := settings.Frames
	flags := cmd.Flags()
	if flags.Changed("fps") {
		frames.FPS = framesFPS
	}
	if flags.Changed("format") {
		frames.Format = domain.FrameFormat(framesFormat)
	}
	if flags.Changed("ffmpeg") {
		frames.FFmpegPath = framesFFmpeg
	}

	set, err := frameService.Sample(cmd.Context(), args[0], frames)
	if err != nil {
		if errors.Is(err, domain.ErrExecutableNotFound) {
			cmd.Println("Run 'motionsplit settings ffmpeg' to configure the executable.")
		}
		return fmt.Errorf("frame sampling failed: %w", err)
	}

	cmd.Printf("Sampled %d frames into %s\n", len(set.Frames), set.Dir)
	return nil
}
