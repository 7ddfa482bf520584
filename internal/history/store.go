package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"audioconv/internal/batch"
	"audioconv/internal/conversion"
)

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database and applies migrations.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dataSourceName(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect sqlite db: %w", err)
	}

	store := &Store{db: db, path: dbPath}
	if err := migrate(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// dataSourceName applies the pragmas on every pooled connection.
func dataSourceName(dbPath string) string {
	pragmas := []string{
		"journal_mode(WAL)",
		"foreign_keys(1)",
		"busy_timeout(5000)",
	}
	query := make(url.Values)
	for _, pragma := range pragmas {
		query.Add("_pragma", pragma)
	}
	return "file:" + dbPath + "?" + query.Encode()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores a finished batch and each of its file results.
func (s *Store) Record(ctx context.Context, summary batch.Summary) error {
	if summary.RunID == "" {
		return errors.New("record run: missing run id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `INSERT INTO runs (
		id, format, input_dir, output_dir, total, succeeded, failed, started_at, finished_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID,
		string(summary.Format),
		summary.InputDir,
		summary.OutputDir,
		summary.Total,
		summary.Succeeded,
		summary.Failed,
		formatTime(summary.StartedAt),
		formatTime(summary.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_files (
		run_id, input_path, output_path, state, diagnostic, duration_ms
	) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare file insert: %w", err)
	}
	defer stmt.Close()

	for _, result := range summary.Results {
		if _, err := stmt.ExecContext(ctx,
			summary.RunID,
			result.Task.Input,
			result.Task.Output,
			string(result.State),
			nullableString(result.Diagnostic()),
			result.Duration.Milliseconds(),
		); err != nil {
			return fmt.Errorf("insert file result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, format, input_dir, output_dir, total, succeeded, failed, started_at, finished_at
		FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run               Run
			started, finished string
		)
		if err := rows.Scan(&run.ID, &run.Format, &run.InputDir, &run.OutputDir,
			&run.Total, &run.Succeeded, &run.Failed, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = parseTime(started)
		run.FinishedAt, _ = parseTime(finished)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Files returns the recorded file results of a run in completion order.
func (s *Store) Files(ctx context.Context, runID string) ([]FileResult, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT run_id, input_path, output_path, state, diagnostic, duration_ms
		FROM run_files WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run files: %w", err)
	}
	defer rows.Close()

	var files []FileResult
	for rows.Next() {
		var (
			file       FileResult
			state      string
			diagnostic sql.NullString
			durationMS int64
		)
		if err := rows.Scan(&file.RunID, &file.Input, &file.Output, &state, &diagnostic, &durationMS); err != nil {
			return nil, fmt.Errorf("scan run file: %w", err)
		}
		file.State = conversion.State(state)
		file.Diagnostic = diagnostic.String
		file.Duration = time.Duration(durationMS) * time.Millisecond
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run files: %w", err)
	}
	return files, nil
}
