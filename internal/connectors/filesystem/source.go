package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
	"github.com/custodia-labs/motionsplit/internal/core/ports/driven"
	"github.com/custodia-labs/motionsplit/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.CandidateSource = (*Source)(nil)

// Source enumerates JPEG files in a directory tree.
type Source struct{}

// NewSource creates a filesystem candidate source.
func NewSource() *Source {
	return &Source{}
}

// Enumerate streams every JPEG file under root in lexical order.
func (s *Source) Enumerate(ctx context.Context, root string, opts driven.ScanOptions) (<-chan domain.Candidate, <-chan error) {
	candidates := make(chan domain.Candidate)
	errs := make(chan error, 1)

	go func() {
		defer close(candidates)
		defer close(errs)

		absRoot, err := filepath.Abs(root)
		if err != nil {
			errs <- fmt.Errorf("resolve %s: %w", root, err)
			return
		}
		info, err := os.Stat(absRoot)
		if err != nil {
			errs <- fmt.Errorf("read %s: %w", root, err)
			return
		}
		if !info.IsDir() {
			errs <- fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, root)
			return
		}

		skipDirs := absAll(opts.SkipDirs)
		walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				if path == absRoot {
					return err
				}
				logger.Warn("skipping %s: %v", path, err)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				if path == absRoot {
					return nil
				}
				if !opts.Recursive || isHidden(relativeTo(absRoot, path)) || skipped(path, skipDirs) {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() || !domain.IsJPEGPath(path) || isHidden(relativeTo(absRoot, path)) {
				return nil
			}

			candidate := domain.Candidate{Path: path}
			if fi, err := d.Info(); err == nil {
				candidate.Size = fi.Size()
				candidate.ModTime = fi.ModTime()
			}

			select {
			case candidates <- candidate:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if walkErr != nil {
			errs <- walkErr
		}
	}()

	return candidates, errs
}
