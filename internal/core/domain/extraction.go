package domain

import (
	"errors"
	"path/filepath"
	"strings"
	"time"
)

// jpegExtensions lists accepted candidate extensions, lower-cased.
var jpegExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
}

// IsJPEGPath returns true if the path has a JPEG extension, ignoring case.
func IsJPEGPath(path string) bool {
	return jpegExtensions[strings.ToLower(filepath.Ext(path))]
}

// VideoName returns the output file name for a candidate: its stem plus ".mp4".
func VideoName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".mp4"
}

// VideoPath returns where the video for source is written. The source's
// directory relative to root is recreated under outputDir, so files with the
// same name in different subdirectories do not collide. Sources outside root
// go directly into outputDir.
func VideoPath(root, outputDir, source string) string {
	name := VideoName(source)
	rel, err := filepath.Rel(root, filepath.Dir(source))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Join(outputDir, name)
	}
	return filepath.Join(outputDir, rel, name)
}

// Candidate is a JPEG file found by a candidate source.
type Candidate struct {
	// Path is the location of the file on disk.
	Path string

	// Size is the file size in bytes, if known at enumeration time.
	Size int64

	// ModTime is the last modification time, if known.
	ModTime time.Time
}

// ExtractionRecord describes the result of processing one candidate.
type ExtractionRecord struct {
	// ID uniquely identifies this record.
	ID string

	// RunID groups records produced by the same batch or watch session.
	RunID string

	// SourcePath is the candidate JPEG.
	SourcePath string

	// OutputPath is the written video. Empty unless Outcome is OutcomeSuccess.
	OutputPath string

	// Outcome is the classification result.
	Outcome Outcome

	// FileSize is the size of the candidate in bytes.
	FileSize int64

	// Boundary is the offset just past the JPEG end-of-image marker.
	Boundary int

	// ContainerOffset is the start of the appended container.
	ContainerOffset int

	// VideoSize is the number of bytes written.
	VideoSize int64

	// Digest is the hex BLAKE3 digest of the video bytes.
	Digest string

	// XMPPackets is the number of XMP packets found when the motion check ran.
	XMPPackets int

	// Unchanged is true when an identical output already existed and was kept.
	Unchanged bool

	// Error holds the I/O failure message, if any.
	Error string

	// ProcessedAt is when the candidate was processed.
	ProcessedAt time.Time
}

// Extracted returns true if a video was produced or already present.
func (r ExtractionRecord) Extracted() bool {
	return r.Outcome == OutcomeSuccess && r.Error == ""
}

// BatchSummary aggregates the results of one extraction run.
type BatchSummary struct {
	// RunID identifies the run.
	RunID string

	// Root is the input directory.
	Root string

	// OutputDir is where videos were written.
	OutputDir string

	// Total is the number of candidates processed.
	Total int

	// Extracted is the number of candidates that yielded a video.
	Extracted int

	// Skipped counts non-success outcomes by kind.
	Skipped map[Outcome]int

	// Failed is the number of candidates with I/O errors.
	Failed int

	// Records holds every per-file record in completion order.
	Records []ExtractionRecord

	// Errors holds per-file I/O errors.
	Errors []error

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time
}

// SkippedTotal returns the number of candidates skipped for any outcome.
func (s *BatchSummary) SkippedTotal() int {
	n := 0
	for _, c := range s.Skipped {
		n += c
	}
	return n
}

// Err joins the per-file errors, or returns nil if every file was read and written.
func (s *BatchSummary) Err() error {
	return errors.Join(s.Errors...)
}

// Duration returns how long the run took.
func (s *BatchSummary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// FrameSet describes stills sampled from a video.
type FrameSet struct {
	// VideoPath is the sampled video.
	VideoPath string

	// Dir is the sibling directory holding the stills.
	Dir string

	// Frames lists the still paths in order.
	Frames []string
}

// FrameDir returns the sibling frame directory for a video: "<stem>_frames".
func FrameDir(videoPath string) string {
	dir := filepath.Dir(videoPath)
	base := filepath.Base(videoPath)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+"_frames")
}
