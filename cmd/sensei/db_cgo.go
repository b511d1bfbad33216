//go:build cgo_sqlite

package main

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// openHistoryDB opens the run ledger with the cgo driver.
func openHistoryDB(path string) (*sql.DB, error) {
	if err := ensureParentDir(path); err != nil {
		return nil, err
	}
	return sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
}
