// Package history keeps a SQLite ledger of sync runs and their per-page outcomes.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shortcut-sensei/sitesync/pkg/templating"
)

// SetupSchema creates the ledger tables. It is idempotent.
func SetupSchema(db *sql.DB) error {

	const (
		schemaRuns = `
CREATE TABLE IF NOT EXISTS sync_runs (
    run_id      INTEGER PRIMARY KEY,
    mode        TEXT NOT NULL,
    site_dir    TEXT NOT NULL,
    started_at  INTEGER NOT NULL,
    finished_at INTEGER NOT NULL,
    updated     INTEGER NOT NULL DEFAULT 0,
    skipped     INTEGER NOT NULL DEFAULT 0,
    failed      INTEGER NOT NULL DEFAULT 0,
    total       INTEGER NOT NULL DEFAULT 0
);
`
		schemaFiles = `
CREATE TABLE IF NOT EXISTS sync_files (
    run_id INTEGER NOT NULL,
    path   TEXT NOT NULL,
    status TEXT NOT NULL,
    error  TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (run_id, path)
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaRuns); err != nil {
		return fmt.Errorf("could not create runs schema: %w", err)
	}
	if _, err = tx.Exec(schemaFiles); err != nil {
		return fmt.Errorf("could not create files schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// Run is one recorded sync run.
type Run struct {
	ID       int64
	Mode     string
	SiteDir  string
	Started  time.Time
	Finished time.Time
	Updated  int
	Skipped  int
	Failed   int
	Total    int
}

// FileRecord is the outcome of one page within a run.
type FileRecord struct {
	RunID  int64
	Path   string
	Status string
	Error  string
}

// Store reads and writes the ledger through prepared statements.
type Store struct {
	db             *sql.DB
	stmtInsertRun  *sql.Stmt
	stmtInsertFile *sql.Stmt
	stmtRecentRuns *sql.Stmt
	stmtRunFiles   *sql.Stmt
}

// NewStore prepares the ledger statements. The schema must already exist.
func NewStore(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	var err error

	if s.stmtInsertRun, err = db.Prepare(`
INSERT INTO sync_runs (mode, site_dir, started_at, finished_at, updated, skipped, failed, total)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to prepare insert run statement: %w", err)
	}
	if s.stmtInsertFile, err = db.Prepare(`
INSERT OR REPLACE INTO sync_files (run_id, path, status, error) VALUES (?, ?, ?, ?)`); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to prepare insert file statement: %w", err)
	}
	if s.stmtRecentRuns, err = db.Prepare(`
SELECT run_id, mode, site_dir, started_at, finished_at, updated, skipped, failed, total
FROM sync_runs ORDER BY run_id DESC LIMIT ?`); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to prepare recent runs statement: %w", err)
	}
	if s.stmtRunFiles, err = db.Prepare(`
SELECT run_id, path, status, error FROM sync_files WHERE run_id = ? ORDER BY path`); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to prepare run files statement: %w", err)
	}
	return s, nil
}

// Close releases the prepared statements. The database is left open.
func (s *Store) Close() {
	for _, stmt := range []*sql.Stmt{s.stmtInsertRun, s.stmtInsertFile, s.stmtRecentRuns, s.stmtRunFiles} {
		if stmt != nil {
			_ = stmt.Close()
		}
	}
}

// RecordRun stores summary and its per-page results in one transaction and
// returns the new run id.
func (s *Store) RecordRun(ctx context.Context, siteDir string, summary *templating.Summary) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	res, err := tx.StmtContext(ctx, s.stmtInsertRun).ExecContext(ctx,
		string(summary.Mode), siteDir,
		summary.Started.UnixMilli(), summary.Finished.UnixMilli(),
		summary.Updated, summary.Skipped, summary.Failed, summary.Total)
	if err != nil {
		return 0, fmt.Errorf("could not insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("could not read run id: %w", err)
	}

	insertFile := tx.StmtContext(ctx, s.stmtInsertFile)
	for _, f := range summary.Files {
		var msg string
		if f.Err != nil {
			msg = f.Err.Error()
		}
		if _, err = insertFile.ExecContext(ctx, runID, f.Path, string(f.Status), msg); err != nil {
			return 0, fmt.Errorf("could not insert file record for %s: %w", f.Path, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("could not commit transaction: %w", err)
	}
	return runID, nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.stmtRecentRuns.QueryContext(ctx, limit)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished int64
		if err = rows.Scan(&r.ID, &r.Mode, &r.SiteDir, &started, &finished,
			&r.Updated, &r.Skipped, &r.Failed, &r.Total); err != nil {
			return nil, err
		}
		r.Started = time.UnixMilli(started)
		r.Finished = time.UnixMilli(finished)
		runs = append(runs, r)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// RunFiles returns the per-page records of one run, ordered by path.
func (s *Store) RunFiles(ctx context.Context, runID int64) ([]FileRecord, error) {
	rows, err := s.stmtRunFiles.QueryContext(ctx, runID)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var files []FileRecord
	for rows.Next() {
		var f FileRecord
		if err = rows.Scan(&f.RunID, &f.Path, &f.Status, &f.Error); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return files, nil
}
