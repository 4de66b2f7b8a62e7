package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
	"github.com/custodia-labs/motionsplit/internal/core/ports/driven"
	"github.com/custodia-labs/motionsplit/internal/core/ports/driving"
	"github.com/custodia-labs/motionsplit/internal/logger"
)

// Ensure FrameService implements the interface.
var _ driving.FrameService = (*FrameService)(nil)

// FrameService samples still frames from extracted videos.
type FrameService struct {
	sampler driven.FrameSampler
}

// NewFrameService creates a new frame service. The sampler may be nil.
func NewFrameService(sampler driven.FrameSampler) *FrameService {
	return &FrameService{sampler: sampler}
}

// Sample writes stills for one video.
func (s *FrameService) Sample(ctx context.Context, videoPath string, settings domain.FrameSettings) (*domain.FrameSet, error) {
	if s.sampler == nil {
		return nil, fmt.Errorf("%w: frame sampler", domain.ErrNotConfigured)
	}
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: frame settings (ffmpeg %q, fps %g, format %q)",
			domain.ErrInvalidInput, settings.FFmpegPath, settings.FPS, settings.Format)
	}

	set, err := s.sampler.SampleFrames(ctx, videoPath, settings)
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", videoPath, err)
	}

	logger.Info("sampled %d frames into %s", len(set.Frames), set.Dir)
	return set, nil
}

// Locate resolves the executable.
func (s *FrameService) Locate(path string) (string, error) {
	if s.sampler == nil {
		return "", fmt.Errorf("%w: frame sampler", domain.ErrNotConfigured)
	}
	return s.sampler.LookPath(path)
}
