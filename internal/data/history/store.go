package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const (
	driverName  = "sqlite"
	maxAttempts = 5

	// Fixed width so stored timestamps order correctly as text.
	timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func normalizeProject(projectKey string) string {
	projectKey = strings.TrimSpace(projectKey)
	if projectKey == "" {
		return "default"
	}
	return projectKey
}

// SaveRun stores run and its signatures in one transaction. Saving the same
// run ID again replaces the earlier rows.
func (s *Store) SaveRun(projectKey string, run Run, rows []SignatureRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(run.RunID) == "" {
		return fmt.Errorf("run id must not be empty")
	}
	run.ProjectKey = normalizeProject(projectKey)
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	return s.withRetry("save run", func() error {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if err := saveRunTx(tx, run, rows); err != nil {
			_ = tx.Rollback()
			return err
		}
		return tx.Commit()
	})
}

func saveRunTx(tx *sql.Tx, run Run, rows []SignatureRow) error {
	if _, err := tx.Exec(`DELETE FROM signatures WHERE run_id = ?`, run.RunID); err != nil {
		return err
	}
	if _, err := tx.Exec(`
INSERT INTO runs (run_id, project_key, started_at_utc, duration_ms, file_count, signature_count, failure_count)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(run_id) DO UPDATE SET
  project_key=excluded.project_key,
  started_at_utc=excluded.started_at_utc,
  duration_ms=excluded.duration_ms,
  file_count=excluded.file_count,
  signature_count=excluded.signature_count,
  failure_count=excluded.failure_count
`,
		run.RunID,
		run.ProjectKey,
		run.StartedAt.UTC().Format(timestampLayout),
		run.Duration.Milliseconds(),
		run.FileCount,
		run.SignatureCount,
		run.FailureCount,
	); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
INSERT OR REPLACE INTO signatures (run_id, file, line, col, function, class, namespace, doc_tag, return_types, type_count)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(
			run.RunID,
			row.File,
			row.Line,
			row.Column,
			row.Function,
			row.Class,
			row.Namespace,
			row.DocTag,
			row.ReturnTypes,
			row.TypeCount,
		); err != nil {
			return fmt.Errorf("insert signature %s:%d: %w", row.File, row.Line, err)
		}
	}
	return nil
}

// LoadRuns returns the runs of projectKey started at or after since, oldest
// first. A zero since returns every run.
func (s *Store) LoadRuns(projectKey string, since time.Time) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := `
SELECT run_id, project_key, started_at_utc, duration_ms, file_count, signature_count, failure_count
FROM runs
WHERE project_key = ?`
	args := []any{normalizeProject(projectKey)}
	if !since.IsZero() {
		base += " AND started_at_utc >= ?"
		args = append(args, since.UTC().Format(timestampLayout))
	}
	base += " ORDER BY started_at_utc ASC, run_id ASC"

	var rows *sql.Rows
	err := s.withRetry("load runs", func() error {
		var qErr error
		rows, qErr = s.db.Query(base, args...)
		return qErr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var (
			run        Run
			startedRaw string
			durationMS int64
		)
		if err := rows.Scan(
			&run.RunID,
			&run.ProjectKey,
			&startedRaw,
			&durationMS,
			&run.FileCount,
			&run.SignatureCount,
			&run.FailureCount,
		); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		started, err := time.Parse(timestampLayout, startedRaw)
		if err != nil {
			return nil, fmt.Errorf("parse run timestamp %q: %w", startedRaw, err)
		}
		run.StartedAt = started.UTC()
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run rows: %w", err)
	}
	return runs, nil
}

// LoadSignatures returns the signatures recorded for runID ordered by file
// and position.
func (s *Store) LoadSignatures(runID string) ([]SignatureRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows *sql.Rows
	err := s.withRetry("load signatures", func() error {
		var qErr error
		rows, qErr = s.db.Query(`
SELECT file, line, col, function, class, namespace, doc_tag, return_types, type_count
FROM signatures
WHERE run_id = ?
ORDER BY file ASC, line ASC, col ASC, function ASC`, runID)
		return qErr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SignatureRow, 0)
	for rows.Next() {
		var row SignatureRow
		if err := rows.Scan(
			&row.File,
			&row.Line,
			&row.Column,
			&row.Function,
			&row.Class,
			&row.Namespace,
			&row.DocTag,
			&row.ReturnTypes,
			&row.TypeCount,
		); err != nil {
			return nil, fmt.Errorf("scan signature row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate signature rows: %w", err)
	}
	return out, nil
}

func (s *Store) withRetry(op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isLockError(err) || attempt == maxAttempts {
			break
		}
		time.Sleep(time.Duration(attempt*25) * time.Millisecond)
	}
	return fmt.Errorf("%s: %w", op, lastErr)
}

func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}

func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func IsCorruptError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "malformed") || strings.Contains(msg, "not a database") || errors.Is(err, os.ErrInvalid)
}
