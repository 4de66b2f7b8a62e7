package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
	"github.com/custodia-labs/motionsplit/internal/core/ports/driving"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <file>",
	Short: "Inspect one JPEG without writing anything",
	Long: `Reports whether a JPEG carries an embedded video, where the image ends,
where the video starts and which container signatures appear after the image.

Output formats:
  text - human-readable (default)
  json - machine-readable JSON
  yaml - machine-readable YAML`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

var (
	classifyOpts   extractFlags
	classifyFormat string
)

func init() {
	classifyOpts.bind(classifyCmd, flagRequireMotion, flagTailWindow)
	classifyCmd.Flags().StringVarP(&classifyFormat, "format", "f", "text", "output format: text, json or yaml")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	if extractionService == nil {
		return errors.New("extraction service not configured")
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if err := classifyOpts.apply(cmd, &settings.Extract); err != nil {
		return err
	}

	c, err := extractionService.Classify(cmd.Context(), args[0], settings.Extract)
	if err != nil {
		return fmt.Errorf("classify failed: %w", err)
	}

	switch classifyFormat {
	case "json":
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		cmd.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		cmd.Print(string(data))
	case "text", "":
		printClassification(cmd, c, settings.Extract.RequireMotionFlag)
	default:
		return fmt.Errorf("%w: unknown format %q", domain.ErrInvalidInput, classifyFormat)
	}

	return nil
}

func printClassification(cmd *cobra.Command, c *driving.Classification, motionCheck bool) {
	cmd.Printf("File:    %s\n", c.Path)
	cmd.Printf("Size:    %s (%d bytes)\n", humanize.Bytes(uint64(c.FileSize)), c.FileSize)
	cmd.Printf("Outcome: %s\n", c.Outcome.Description())

	if c.Outcome == domain.OutcomeNotAJpeg {
		return
	}

	cmd.Printf("Image ends at offset %d\n", c.Boundary)
	if motionCheck {
		cmd.Printf("XMP packets: %d\n", c.XMPPackets)
	}
	if c.Outcome == domain.OutcomeSuccess {
		cmd.Printf("Video starts at offset %d (%s)\n", c.ContainerOffset, humanize.Bytes(uint64(c.VideoSize)))
	}

	cmd.Printf("Tail: %d bytes after image\n", c.Probe.Remaining)
	for _, hit := range c.Probe.Hits {
		cmd.Printf("  %s at +%d\n", hit.Signature, hit.Offset)
	}
}
