package driving

import (
	"context"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
	"github.com/custodia-labs/motionsplit/internal/motionphoto"
)

// ExtractionService splits motion photos into videos.
type ExtractionService interface {
	// Classify reads one file and reports its outcome without writing anything.
	Classify(ctx context.Context, path string, settings domain.ExtractSettings) (*Classification, error)

	// ExtractFile classifies one file and writes its video into outputDir on success.
	// A non-success outcome is returned in the record, not as an error.
	ExtractFile(ctx context.Context, path, outputDir string, settings domain.ExtractSettings) (*domain.ExtractionRecord, error)

	// ExtractAll processes every candidate under root with a bounded worker pool.
	// Returns an error only if root cannot be enumerated or ctx is cancelled.
	// Returns domain.ErrExtractionInProgress if root is already being processed.
	ExtractAll(ctx context.Context, root string, settings domain.ExtractSettings, progress ProgressFunc) (*domain.BatchSummary, error)

	// Watch extracts files as they appear under root until ctx is cancelled.
	Watch(ctx context.Context, root string, settings domain.ExtractSettings, onRecord func(domain.ExtractionRecord)) error
}

// ProgressFunc is called after each candidate completes.
// Calls are serialised.
type ProgressFunc func(record domain.ExtractionRecord, done, total int)

// Classification is the result of classifying a single file.
type Classification struct {
	// Path is the classified file.
	Path string `json:"path" yaml:"path"`

	// FileSize is the file size in bytes.
	FileSize int `json:"file_size" yaml:"file_size"`

	// Outcome is the classification result.
	Outcome domain.Outcome `json:"outcome" yaml:"outcome"`

	// Boundary is the offset just past the end-of-image marker.
	Boundary int `json:"boundary" yaml:"boundary"`

	// ContainerOffset is the start of the appended container, if found.
	ContainerOffset int `json:"container_offset,omitempty" yaml:"container_offset,omitempty"`

	// VideoSize is the number of container bytes, if found.
	VideoSize int `json:"video_size,omitempty" yaml:"video_size,omitempty"`

	// XMPPackets is the number of XMP packets scanned.
	XMPPackets int `json:"xmp_packets" yaml:"xmp_packets"`

	// Probe describes the bytes after the boundary.
	Probe motionphoto.TailProbe `json:"probe" yaml:"probe"`
}
