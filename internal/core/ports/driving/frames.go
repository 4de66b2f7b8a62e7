package driving

import (
	"context"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
)

// FrameService samples still frames from extracted videos.
type FrameService interface {
	// Sample writes stills for one video using the given settings.
	Sample(ctx context.Context, videoPath string, settings domain.FrameSettings) (*domain.FrameSet, error)

	// Locate resolves the configured executable.
	Locate(path string) (string, error)
}
