package driven

import (
	"context"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
)

// FrameSampler samples still frames from a video with an external executable.
type FrameSampler interface {
	// SampleFrames writes numbered stills into the sibling "<stem>_frames"
	// directory of videoPath.
	// Returns domain.ErrExecutableNotFound if the executable is missing and
	// domain.ErrFrameSampling if it exits with an error.
	SampleFrames(ctx context.Context, videoPath string, opts domain.FrameSettings) (*domain.FrameSet, error)

	// LookPath resolves the executable, returning its absolute path.
	LookPath(path string) (string, error)
}
