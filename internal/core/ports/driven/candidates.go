package driven

import (
	"context"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
)

// ScanOptions controls which files a candidate source reports.
type ScanOptions struct {
	// Recursive descends into subdirectories of the root.
	Recursive bool

	// SkipDirs lists directories that are never entered, such as the
	// output directory.
	SkipDirs []string
}

// CandidateSource finds candidate JPEG files under a directory.
type CandidateSource interface {
	// Enumerate streams every JPEG file under root.
	// Hidden files and directories are skipped.
	// The error channel carries at most one error: the root could not be read.
	// Both channels are closed when enumeration finishes or ctx is cancelled.
	Enumerate(ctx context.Context, root string, opts ScanOptions) (<-chan domain.Candidate, <-chan error)
}

// CandidateWatcher reports JPEG files as they appear under a directory.
type CandidateWatcher interface {
	// Watch streams JPEG files created or written under root until ctx
	// is cancelled. Delivery is throttled to the configured rate.
	// Returns an error if root cannot be watched.
	Watch(ctx context.Context, root string, opts ScanOptions) (<-chan domain.Candidate, error)
}
