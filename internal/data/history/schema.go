package history

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the latest migration version this package applies.
const SchemaVersion = 2

type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS runs (
  run_id TEXT PRIMARY KEY,
  project_key TEXT NOT NULL DEFAULT 'default',
  started_at_utc TEXT NOT NULL,
  duration_ms INTEGER NOT NULL DEFAULT 0,
  file_count INTEGER NOT NULL DEFAULT 0,
  signature_count INTEGER NOT NULL DEFAULT 0,
  failure_count INTEGER NOT NULL DEFAULT 0,
  created_at_utc TEXT NOT NULL DEFAULT (CURRENT_TIMESTAMP)
);
CREATE INDEX IF NOT EXISTS idx_runs_project_started ON runs(project_key, started_at_utc);

CREATE TABLE IF NOT EXISTS signatures (
  run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
  file TEXT NOT NULL,
  line INTEGER NOT NULL,
  function TEXT NOT NULL,
  class TEXT NOT NULL DEFAULT '',
  namespace TEXT NOT NULL DEFAULT '',
  doc_tag TEXT NOT NULL DEFAULT '',
  return_types TEXT NOT NULL DEFAULT '',
  type_count INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY (run_id, file, line, function)
);
CREATE INDEX IF NOT EXISTS idx_signatures_function ON signatures(function);
`,
	},
	{
		// Methods of different classes, or several declarations on one
		// minified line, share file+line+function.
		version: 2,
		sql: `
CREATE TABLE signatures_v2 (
  run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
  file TEXT NOT NULL,
  line INTEGER NOT NULL,
  col INTEGER NOT NULL DEFAULT 0,
  function TEXT NOT NULL,
  class TEXT NOT NULL DEFAULT '',
  namespace TEXT NOT NULL DEFAULT '',
  doc_tag TEXT NOT NULL DEFAULT '',
  return_types TEXT NOT NULL DEFAULT '',
  type_count INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY (run_id, file, line, col, class, function)
);
INSERT INTO signatures_v2 (run_id, file, line, function, class, namespace, doc_tag, return_types, type_count)
SELECT run_id, file, line, function, class, namespace, doc_tag, return_types, type_count FROM signatures;
DROP TABLE signatures;
ALTER TABLE signatures_v2 RENAME TO signatures;
CREATE INDEX IF NOT EXISTS idx_signatures_function ON signatures(function);
`,
	},
}

func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  applied_at_utc TEXT NOT NULL DEFAULT (CURRENT_TIMESTAMP)
);
`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	var current int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("read schema_migrations version: %w", err)
	}
	if current > SchemaVersion {
		return fmt.Errorf("schema version %d is newer than supported version %d", current, SchemaVersion)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.version, err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %d: %w", m.version, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version) VALUES (?)`, m.version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.version, err)
		}
	}

	return nil
}
