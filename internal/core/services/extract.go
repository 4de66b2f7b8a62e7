package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
	"github.com/custodia-labs/motionsplit/internal/core/ports/driven"
	"github.com/custodia-labs/motionsplit/internal/core/ports/driving"
	"github.com/custodia-labs/motionsplit/internal/logger"
	"github.com/custodia-labs/motionsplit/internal/motionphoto"
)

// Ensure ExtractionService implements the interface.
var _ driving.ExtractionService = (*ExtractionService)(nil)

// ExtractionService splits motion photos into videos.
type ExtractionService struct {
	source  driven.CandidateSource
	watcher driven.CandidateWatcher
	media   driven.MediaStore
	history driven.HistoryStore

	now func() time.Time

	// Directories with a batch in progress
	mu     sync.RWMutex
	active map[string]bool
}

// NewExtractionService creates a new extraction service.
// The watcher and history store are optional; if nil, watch mode is
// unavailable and nothing is recorded.
func NewExtractionService(
	source driven.CandidateSource,
	watcher driven.CandidateWatcher,
	media driven.MediaStore,
	history driven.HistoryStore,
) *ExtractionService {
	return &ExtractionService{
		source:  source,
		watcher: watcher,
		media:   media,
		history: history,
		now:     time.Now,
		active:  make(map[string]bool),
	}
}

// Classify reads one file and reports its outcome without writing anything.
func (s *ExtractionService) Classify(ctx context.Context, path string, settings domain.ExtractSettings) (*driving.Classification, error) {
	data, err := s.media.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	res := motionphoto.Classify(data, classifyOptions(settings))

	c := &driving.Classification{
		Path:            path,
		FileSize:        len(data),
		Outcome:         res.Outcome,
		Boundary:        res.Boundary,
		ContainerOffset: res.ContainerOffset,
		XMPPackets:      res.XMPPackets,
	}
	if res.Outcome == domain.OutcomeSuccess {
		c.VideoSize = len(data) - res.ContainerOffset
	}
	if res.Outcome != domain.OutcomeNotAJpeg {
		c.Probe = motionphoto.ProbeTail(data, res.Boundary)
	}

	return c, nil
}

// ExtractFile classifies one file and writes its video into outputDir on success.
func (s *ExtractionService) ExtractFile(ctx context.Context, path, outputDir string, settings domain.ExtractSettings) (*domain.ExtractionRecord, error) {
	return s.extract(ctx, uuid.NewString(), path, filepath.Join(outputDir, domain.VideoName(path)), settings)
}

// ExtractAll processes every candidate under root with a bounded worker pool.
func (s *ExtractionService) ExtractAll(ctx context.Context, root string, settings domain.ExtractSettings, progress driving.ProgressFunc) (*domain.BatchSummary, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}

	if !s.begin(absRoot) {
		return nil, fmt.Errorf("%w: %s", domain.ErrExtractionInProgress, absRoot)
	}
	defer s.end(absRoot)

	outputDir := settings.ResolveOutputDir(absRoot)

	candidates, err := s.enumerate(ctx, absRoot, settings, outputDir)
	if err != nil {
		return nil, err
	}

	summary := &domain.BatchSummary{
		RunID:     uuid.NewString(),
		Root:      absRoot,
		OutputDir: outputDir,
		Total:     len(candidates),
		Skipped:   make(map[domain.Outcome]int),
		StartedAt: s.now(),
	}

	workers := max(settings.Workers, 1)
	logger.Section("extract " + absRoot)
	logger.Info("Processing %d candidates in %s with %d workers", len(candidates), absRoot, workers)

	names := newOutputNames(absRoot, outputDir)
	planned := make([]job, len(candidates))
	for i, c := range candidates {
		planned[i] = job{path: c.Path, out: names.assign(c.Path)}
	}

	jobs := make(chan job)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				rec, err := s.extract(ctx, summary.RunID, j.path, j.out, settings)

				mu.Lock()
				tally(summary, *rec, err)
				done++
				if progress != nil {
					progress(*rec, done, summary.Total)
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for _, j := range planned {
		select {
		case jobs <- j:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	summary.FinishedAt = s.now()
	logger.Info("Extracted %d of %d files in %s", summary.Extracted, summary.Total, summary.Duration())

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// Watch extracts files as they appear under root until ctx is cancelled.
func (s *ExtractionService) Watch(ctx context.Context, root string, settings domain.ExtractSettings, onRecord func(domain.ExtractionRecord)) error {
	if s.watcher == nil {
		return fmt.Errorf("%w: watcher", domain.ErrNotConfigured)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", root, err)
	}
	outputDir := settings.ResolveOutputDir(absRoot)

	candidates, err := s.watcher.Watch(ctx, absRoot, driven.ScanOptions{
		Recursive: settings.Recursive,
		SkipDirs:  []string{outputDir},
	})
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger.Section("watch " + absRoot)
	logger.Info("Watching %s (run %s)", absRoot, runID)

	names := newOutputNames(absRoot, outputDir)
	for c := range candidates {
		rec, _ := s.extract(ctx, runID, c.Path, names.assign(c.Path), settings)
		if onRecord != nil {
			onRecord(*rec)
		}
	}

	return nil
}

// enumerate drains the candidate source so the batch size is known up front.
func (s *ExtractionService) enumerate(ctx context.Context, root string, settings domain.ExtractSettings, outputDir string) ([]domain.Candidate, error) {
	candidatesCh, errsCh := s.source.Enumerate(ctx, root, driven.ScanOptions{
		Recursive: settings.Recursive,
		SkipDirs:  []string{outputDir},
	})

	var candidates []domain.Candidate
	for c := range candidatesCh {
		candidates = append(candidates, c)
	}
	if err := <-errsCh; err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("enumerate %s: %w", root, err)
	}
	return candidates, nil
}

// extract processes one file and writes its video to outPath on success.
// A non-nil error is always an I/O failure and is also recorded in the
// returned record.
func (s *ExtractionService) extract(ctx context.Context, runID, path, outPath string, settings domain.ExtractSettings) (*domain.ExtractionRecord, error) {
	rec := &domain.ExtractionRecord{
		ID:          uuid.NewString(),
		RunID:       runID,
		SourcePath:  path,
		ProcessedAt: s.now(),
	}

	err := s.process(ctx, rec, outPath, settings)
	if err != nil {
		rec.Error = err.Error()
		logger.Error("%s: %v", filepath.Base(path), err)
	}
	s.record(ctx, rec)
	return rec, err
}

func (s *ExtractionService) process(ctx context.Context, rec *domain.ExtractionRecord, outPath string, settings domain.ExtractSettings) error {
	data, err := s.media.ReadFile(ctx, rec.SourcePath)
	if err != nil {
		return err
	}

	name := filepath.Base(rec.SourcePath)
	logger.Debug("%s: size %d bytes", name, len(data))

	res := motionphoto.Classify(data, classifyOptions(settings))
	rec.FileSize = int64(len(data))
	rec.Outcome = res.Outcome
	rec.Boundary = res.Boundary
	rec.ContainerOffset = res.ContainerOffset
	rec.XMPPackets = res.XMPPackets

	diagnose(name, data, res, settings)

	if res.Outcome != domain.OutcomeSuccess {
		logger.Info("skipped %s: %s", rec.SourcePath, res.Outcome.Description())
		return nil
	}

	video := res.Container(data)
	rec.VideoSize = int64(len(video))
	rec.Digest = digest(video)

	if s.media.Exists(outPath) {
		existing, err := s.media.ReadFile(ctx, outPath)
		if err == nil && digest(existing) == rec.Digest {
			rec.OutputPath = outPath
			rec.Unchanged = true
			logger.Info("unchanged %s", outPath)
			return nil
		}
		if !settings.Overwrite {
			return fmt.Errorf("write %s: %w", outPath, domain.ErrOutputExists)
		}
	}

	if err := s.media.WriteFile(ctx, outPath, video); err != nil {
		return err
	}
	rec.OutputPath = outPath
	logger.Info("extracted %s (%d bytes)", outPath, len(video))
	return nil
}

// record saves a record to history. Failures are logged only.
func (s *ExtractionService) record(ctx context.Context, rec *domain.ExtractionRecord) {
	if s.history == nil {
		return
	}
	if err := s.history.Save(ctx, *rec); err != nil {
		logger.Warn("saving history for %s: %v", rec.SourcePath, err)
	}
}

func (s *ExtractionService) begin(root string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active[root] {
		return false
	}
	s.active[root] = true
	return true
}

func (s *ExtractionService) end(root string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, root)
}

// tally folds one record into the summary. Caller must hold the summary lock.
func tally(summary *domain.BatchSummary, rec domain.ExtractionRecord, err error) {
	summary.Records = append(summary.Records, rec)
	switch {
	case err != nil:
		summary.Failed++
		summary.Errors = append(summary.Errors, err)
	case rec.Outcome == domain.OutcomeSuccess:
		summary.Extracted++
	default:
		summary.Skipped[rec.Outcome]++
	}
}

// diagnose logs why a file was or was not extracted. Workers log
// concurrently, so every line carries the file name.
func diagnose(name string, data []byte, res motionphoto.Result, settings domain.ExtractSettings) {
	if !logger.IsVerbose() {
		return
	}
	if res.Outcome == domain.OutcomeNotAJpeg {
		logger.Debug("%s: no end-of-image marker", name)
		return
	}
	logger.Debug("%s: end of image at offset %d", name, res.Boundary)

	if settings.RequireMotionFlag {
		logger.Debug("%s: XMP packets: %d", name, res.XMPPackets)
	}

	switch res.Outcome {
	case domain.OutcomeNotFlaggedAsMotion:
		for i, packet := range motionphoto.ScanMetadata(data) {
			logger.Debug("%s: XMP packet %d: %s", name, i+1, motionphoto.Preview(packet))
		}
	case domain.OutcomeNoContainerFound:
		probe := motionphoto.ProbeTail(data, res.Boundary)
		logger.Debug("%s: %d bytes after image", name, probe.Remaining)
		for _, hit := range probe.Hits {
			logger.Debug("%s: found %q at tail offset %d", name, hit.Signature, hit.Offset)
		}
	case domain.OutcomeSuccess:
		logger.Debug("%s: container at offset %d", name, res.ContainerOffset)
	}
}

// job is one candidate and the video path reserved for it.
type job struct {
	path string
	out  string
}

// outputNames reserves a distinct video path for each source in a run.
// Sources that would map to the same path, such as IMG.jpg and IMG.jpeg in
// one directory, get a numeric suffix in assignment order. Not safe for
// concurrent use.
type outputNames struct {
	root      string
	outputDir string
	bySource  map[string]string
	taken     map[string]bool
}

func newOutputNames(root, outputDir string) *outputNames {
	return &outputNames{
		root:      root,
		outputDir: outputDir,
		bySource:  make(map[string]string),
		taken:     make(map[string]bool),
	}
}

func (n *outputNames) assign(source string) string {
	if out, ok := n.bySource[source]; ok {
		return out
	}
	out := domain.VideoPath(n.root, n.outputDir, source)
	stem := strings.TrimSuffix(out, filepath.Ext(out))
	for i := 2; n.taken[out]; i++ {
		out = fmt.Sprintf("%s-%d.mp4", stem, i)
	}
	n.taken[out] = true
	n.bySource[source] = out
	return out
}

func classifyOptions(settings domain.ExtractSettings) motionphoto.Options {
	return motionphoto.Options{
		CheckMotionFlag: settings.RequireMotionFlag,
		TailWindow:      settings.TailWindow,
	}
}

// digest returns the hex BLAKE3 digest of data.
func digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
