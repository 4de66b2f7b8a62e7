package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
)

// Extraction flag names.
const (
	flagRequireMotion = "require-motion"
	flagTailWindow    = "tail-window"
	flagWorkers       = "workers"
	flagOutput        = "output"
	flagRecursive     = "recursive"
	flagOverwrite     = "overwrite"
)

// extractFlags holds per-run overrides of the stored extraction settings.
type extractFlags struct {
	requireMotion bool
	tailWindow    int
	workers       int
	output        string
	recursive     bool
	overwrite     bool
}

// bind registers the named flags on cmd.
func (o *extractFlags) bind(cmd *cobra.Command, names ...string) {
	fs := cmd.Flags()
	for _, name := range names {
		switch name {
		case flagRequireMotion:
			fs.BoolVar(&o.requireMotion, name, false, "only accept files whose XMP marks them as motion photos")
		case flagTailWindow:
			fs.IntVar(&o.tailWindow, name, 0, "search only the last N bytes for the video (0 = whole tail)")
		case flagWorkers:
			fs.IntVarP(&o.workers, name, "w", 0, "number of files processed concurrently")
		case flagOutput:
			fs.StringVarP(&o.output, name, "o", "", "output directory (relative paths are inside the input directory)")
		case flagRecursive:
			fs.BoolVarP(&o.recursive, name, "r", false, "descend into subdirectories")
		case flagOverwrite:
			fs.BoolVar(&o.overwrite, name, false, "replace existing videos with different content")
		}
	}
}

// apply copies the flags set on the command line over s.
func (o *extractFlags) apply(cmd *cobra.Command, s *domain.ExtractSettings) error {
	fs := cmd.Flags()

	if fs.Changed(flagRequireMotion) {
		s.RequireMotionFlag = o.requireMotion
	}
	if fs.Changed(flagTailWindow) {
		if o.tailWindow < 0 {
			return fmt.Errorf("%w: --%s must not be negative", domain.ErrInvalidInput, flagTailWindow)
		}
		s.TailWindow = o.tailWindow
	}
	if fs.Changed(flagWorkers) {
		if o.workers < 1 {
			return fmt.Errorf("%w: --%s must be at least 1", domain.ErrInvalidInput, flagWorkers)
		}
		s.Workers = o.workers
	}
	if fs.Changed(flagOutput) {
		s.OutputDir = o.output
	}
	if fs.Changed(flagRecursive) {
		s.Recursive = o.recursive
	}
	if fs.Changed(flagOverwrite) {
		s.Overwrite = o.overwrite
	}
	return nil
}
