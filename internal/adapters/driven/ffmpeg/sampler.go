// Package ffmpeg samples still frames from videos by running the ffmpeg executable.
package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
	"github.com/custodia-labs/motionsplit/internal/core/ports/driven"
	"github.com/custodia-labs/motionsplit/internal/logger"
)

// Ensure Sampler implements the interface.
var _ driven.FrameSampler = (*Sampler)(nil)

// framePattern is the numbered output name passed to ffmpeg.
const framePattern = "frame_%04d"

// Sampler implements driven.FrameSampler with ffmpeg.
type Sampler struct {
	lookPath func(string) (string, error)
	command  func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewSampler creates a sampler that resolves executables on PATH.
func NewSampler() *Sampler {
	return &Sampler{
		lookPath: exec.LookPath,
		command:  exec.CommandContext,
	}
}

// Args returns the ffmpeg arguments that sample videoPath into dir.
func Args(videoPath, dir string, opts domain.FrameSettings) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-i", videoPath,
		"-vf", "fps=" + strconv.FormatFloat(opts.FPS, 'f', -1, 64),
		filepath.Join(dir, framePattern+"."+opts.Format.String()),
	}
}

// LookPath resolves the executable.
func (s *Sampler) LookPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: empty path", domain.ErrExecutableNotFound)
	}
	resolved, err := s.lookPath(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrExecutableNotFound, path, err)
	}
	return resolved, nil
}

// SampleFrames writes numbered stills into the sibling "<stem>_frames" directory.
func (s *Sampler) SampleFrames(ctx context.Context, videoPath string, opts domain.FrameSettings) (*domain.FrameSet, error) {
	if !opts.IsConfigured() {
		return nil, fmt.Errorf("%w: frame settings", domain.ErrInvalidInput)
	}

	exe, err := s.LookPath(opts.FFmpegPath)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(videoPath); err != nil {
		return nil, fmt.Errorf("read %s: %w", videoPath, err)
	}

	dir := domain.FrameDir(videoPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	args := Args(videoPath, dir, opts)
	logger.Debug("ffmpeg: %s %s", exe, strings.Join(args, " "))

	cmd := s.command(ctx, exe, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: exit status %d: %s",
				domain.ErrFrameSampling, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrFrameSampling, err)
	}

	frames, err := filepath.Glob(filepath.Join(dir, "frame_*."+opts.Format.String()))
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	sort.Strings(frames)

	return &domain.FrameSet{
		VideoPath: videoPath,
		Dir:       dir,
		Frames:    frames,
	}, nil
}
