package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
	"github.com/custodia-labs/motionsplit/internal/core/ports/driven"
)

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

const recordColumns = `id, run_id, source_path, output_path, outcome, file_size, boundary,
	container_offset, video_size, digest, xmp_packets, unchanged, error, processed_at`

// Save stores a record.
func (s *historyStore) Save(ctx context.Context, record domain.ExtractionRecord) error {
	if record.ID == "" {
		return fmt.Errorf("%w: record id is required", domain.ErrInvalidInput)
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO extraction_records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.RunID, record.SourcePath, nullString(record.OutputPath),
		record.Outcome.String(), record.FileSize, record.Boundary,
		record.ContainerOffset, record.VideoSize, nullString(record.Digest),
		record.XMPPackets, boolToInt(record.Unchanged), nullString(record.Error),
		record.ProcessedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("saving extraction record: %w", err)
	}
	return nil
}

// List returns the most recent records, newest first.
func (s *historyStore) List(ctx context.Context, limit int) ([]domain.ExtractionRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM extraction_records
		ORDER BY rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying extraction records: %w", err)
	}
	defer rows.Close()

	var records []domain.ExtractionRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating extraction records: %w", err)
	}

	return records, nil
}

// GetByPath returns the latest record for a source file.
func (s *historyStore) GetByPath(ctx context.Context, sourcePath string) (*domain.ExtractionRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM extraction_records
		WHERE source_path = ?
		ORDER BY rowid DESC
		LIMIT 1
	`, sourcePath)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rec, err
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*domain.ExtractionRecord, error) {
	var (
		rec         domain.ExtractionRecord
		outputPath  sql.NullString
		outcome     string
		digest      sql.NullString
		unchanged   int
		errMsg      sql.NullString
		processedAt string
	)

	err := row.Scan(&rec.ID, &rec.RunID, &rec.SourcePath, &outputPath, &outcome,
		&rec.FileSize, &rec.Boundary, &rec.ContainerOffset, &rec.VideoSize,
		&digest, &rec.XMPPackets, &unchanged, &errMsg, &processedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning extraction record: %w", err)
	}

	parsed, ok := domain.ParseOutcome(outcome)
	if !ok {
		return nil, fmt.Errorf("%w: stored outcome %q", domain.ErrInvalidInput, outcome)
	}
	rec.Outcome = parsed
	rec.OutputPath = outputPath.String
	rec.Digest = digest.String
	rec.Unchanged = unchanged != 0
	rec.Error = errMsg.String

	if t, err := time.Parse(time.RFC3339Nano, processedAt); err == nil {
		rec.ProcessedAt = t
	}

	return &rec, nil
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
