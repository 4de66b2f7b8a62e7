package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
	"github.com/custodia-labs/motionsplit/internal/core/ports/driven"
	"github.com/custodia-labs/motionsplit/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.CandidateWatcher = (*Watcher)(nil)

// DefaultSettleDelay is how long a file must go without events before it
// is delivered. Cameras and sync clients write in several chunks.
const DefaultSettleDelay = 500 * time.Millisecond

// Watcher reports JPEG files as they are created or written.
type Watcher struct {
	limiter     *RateLimiter
	settleDelay time.Duration
}

// NewWatcher creates a watcher that delivers at most cfg files per second.
func NewWatcher(cfg RateLimitConfig) *Watcher {
	return &Watcher{
		limiter:     NewRateLimiter(cfg),
		settleDelay: DefaultSettleDelay,
	}
}

// WithSettleDelay overrides the quiet period required before delivery.
func (w *Watcher) WithSettleDelay(d time.Duration) *Watcher {
	w.settleDelay = d
	return w
}

// Watch streams JPEG files created or written under root until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, root string, opts driven.ScanOptions) (<-chan domain.Candidate, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, root)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	scope := watchScope{root: absRoot, recursive: opts.Recursive, skipDirs: absAll(opts.SkipDirs)}
	if err := scope.addTree(fw, absRoot); err != nil {
		fw.Close()
		return nil, err
	}

	ready := make(chan string, 64)
	out := make(chan domain.Candidate)

	go w.collect(ctx, fw, scope, ready)
	go w.deliver(ctx, ready, out)

	return out, nil
}

// collect turns fsnotify events into settled paths.
func (w *Watcher) collect(ctx context.Context, fw *fsnotify.Watcher, scope watchScope, ready chan<- string) {
	defer fw.Close()

	var mu sync.Mutex
	pending := make(map[string]*time.Timer)
	defer func() {
		mu.Lock()
		for _, t := range pending {
			t.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if scope.isNewDir(event) {
				if err := scope.addTree(fw, event.Name); err != nil {
					logger.Warn("watch %s: %v", event.Name, err)
				}
				continue
			}
			path, ok := scope.filterEvent(event)
			if !ok {
				continue
			}

			mu.Lock()
			if t, exists := pending[path]; exists {
				t.Reset(w.settleDelay)
			} else {
				pending[path] = time.AfterFunc(w.settleDelay, func() {
					mu.Lock()
					delete(pending, path)
					mu.Unlock()
					select {
					case ready <- path:
					case <-ctx.Done():
					}
				})
			}
			mu.Unlock()

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// deliver throttles settled paths and sends them as candidates.
func (w *Watcher) deliver(ctx context.Context, ready <-chan string, out chan<- domain.Candidate) {
	defer close(out)

	for {
		select {
		case <-ctx.Done():
			return
		case path := <-ready:
			if err := w.limiter.Wait(ctx); err != nil {
				return
			}
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				logger.Debug("watch: %s vanished before processing", path)
				continue
			}
			candidate := domain.Candidate{Path: path, Size: info.Size(), ModTime: info.ModTime()}
			select {
			case out <- candidate:
			case <-ctx.Done():
				return
			}
		}
	}
}

// watchScope decides which directories are watched and which events matter.
type watchScope struct {
	root      string
	recursive bool
	skipDirs  []string
}

// excluded returns true if a directory below root must not be watched.
func (s watchScope) excluded(dir string) bool {
	return isHidden(relativeTo(s.root, dir)) || skipped(dir, s.skipDirs)
}

// addTree watches dir and, when recursive, every eligible directory below it.
func (s watchScope) addTree(fw *fsnotify.Watcher, dir string) error {
	if !s.recursive {
		return fw.Add(dir)
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != s.root && s.excluded(path) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// isNewDir returns true if event created a directory that must be watched.
func (s watchScope) isNewDir(event fsnotify.Event) bool {
	if !s.recursive || !event.Has(fsnotify.Create) {
		return false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return false
	}
	return !s.excluded(event.Name)
}

// filterEvent returns the file path of a create or write event on a
// visible JPEG outside the skip directories.
func (s watchScope) filterEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	path := event.Name
	if !domain.IsJPEGPath(path) || isHidden(relativeTo(s.root, path)) || skipped(path, s.skipDirs) {
		return "", false
	}
	return path, true
}
