package domain

import (
	"path/filepath"
	"runtime"
	"strings"
)

const unknownDescription = "Unknown"

// Unbounded is the tail window value that searches the whole tail after the image.
const Unbounded = 0

// DefaultOutputDirName is the output directory created inside the input directory.
const DefaultOutputDirName = "_extracted_videos"

// FrameFormat is the image format of sampled frames.
type FrameFormat string

// Available frame formats.
const (
	// FrameFormatJPG writes JPEG stills.
	FrameFormatJPG FrameFormat = "jpg"

	// FrameFormatPNG writes lossless PNG stills.
	FrameFormatPNG FrameFormat = "png"
)

// IsValid returns true if the frame format is recognised.
func (f FrameFormat) IsValid() bool {
	switch f {
	case FrameFormatJPG, FrameFormatPNG:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f FrameFormat) String() string {
	return string(f)
}

// Description returns a human-readable description of the format.
func (f FrameFormat) Description() string {
	switch f {
	case FrameFormatJPG:
		return "JPEG (small, lossy)"
	case FrameFormatPNG:
		return "PNG (large, lossless)"
	default:
		return unknownDescription
	}
}

// AllFrameFormats returns all available frame formats.
func AllFrameFormats() []FrameFormat {
	return []FrameFormat{
		FrameFormatJPG,
		FrameFormatPNG,
	}
}

// ExtractSettings holds batch extraction configuration.
type ExtractSettings struct {
	// RequireMotionFlag enables the XMP motion marker check.
	// When false, any JPEG with an appended container is extracted.
	RequireMotionFlag bool

	// TailWindow bounds the container search to the last N bytes of the file.
	// Unbounded (0) searches the whole tail after the image.
	TailWindow int

	// Workers is the number of files classified concurrently.
	Workers int

	// OutputDir is where videos are written. A relative path is
	// resolved against the input directory.
	OutputDir string

	// Recursive descends into subdirectories of the input directory.
	Recursive bool

	// Overwrite replaces existing output files with different content.
	Overwrite bool
}

// ResolveOutputDir returns the absolute-or-joined output directory for an input root.
func (e ExtractSettings) ResolveOutputDir(root string) string {
	dir := e.OutputDir
	if dir == "" {
		dir = DefaultOutputDirName
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

// FrameSettings holds frame sampling configuration.
type FrameSettings struct {
	// FFmpegPath is the media executable used to sample frames.
	FFmpegPath string

	// FPS is the number of frames sampled per second of video.
	FPS float64

	// Format is the still image format.
	Format FrameFormat
}

// IsConfigured returns true if frame sampling can run.
func (f FrameSettings) IsConfigured() bool {
	return strings.TrimSpace(f.FFmpegPath) != "" && f.FPS > 0 && f.Format.IsValid()
}

// WatchSettings holds watch mode throttling configuration.
type WatchSettings struct {
	// Rate is the sustained number of files processed per second.
	Rate float64

	// Burst is the maximum number of files processed back to back.
	Burst int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Extract holds batch extraction settings.
	Extract ExtractSettings

	// Frames holds frame sampling settings.
	Frames FrameSettings

	// Watch holds watch mode settings.
	Watch WatchSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The motion flag check is off because many cameras omit the XMP tags.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Extract: ExtractSettings{
			RequireMotionFlag: false,
			TailWindow:        Unbounded,
			Workers:           runtime.NumCPU(),
			OutputDir:         DefaultOutputDirName,
			Recursive:         false,
			Overwrite:         false,
		},
		Frames: FrameSettings{
			FFmpegPath: "ffmpeg",
			FPS:        1,
			Format:     FrameFormatJPG,
		},
		Watch: WatchSettings{
			Rate:  5,
			Burst: 10,
		},
	}
}
