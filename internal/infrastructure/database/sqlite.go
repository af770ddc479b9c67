package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSchema is the authoritative quote request schema for the SQLite store.
// Tests and the migrate command both apply it.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS quote_requests (
	id                  TEXT PRIMARY KEY,
	workshop_id         TEXT NOT NULL,
	motorist_account_id TEXT NOT NULL DEFAULT '',
	motorist_name       TEXT NOT NULL DEFAULT '',
	motorist_email      TEXT NOT NULL DEFAULT '',
	motorist_phone      TEXT NOT NULL DEFAULT '',
	vehicle_id          TEXT NOT NULL DEFAULT '',
	vehicle_brand       TEXT NOT NULL DEFAULT '',
	vehicle_model       TEXT NOT NULL DEFAULT '',
	vehicle_year        INTEGER NOT NULL DEFAULT 0,
	vehicle_plate       TEXT NOT NULL DEFAULT '',
	service_type        TEXT NOT NULL,
	description         TEXT NOT NULL,
	urgency             TEXT NOT NULL,
	images              TEXT NOT NULL DEFAULT '[]',
	status              TEXT NOT NULL CHECK (status IN ('pending', 'responded', 'accepted', 'rejected', 'cancelled')),
	workshop_response   TEXT,
	estimated_price     REAL,
	estimated_days      INTEGER,
	responded_at        TEXT,
	created_at          TEXT NOT NULL,
	updated_at          TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_quote_requests_workshop ON quote_requests (workshop_id, status, created_at);
CREATE INDEX IF NOT EXISTS idx_quote_requests_motorist_email ON quote_requests (motorist_email, created_at);
CREATE INDEX IF NOT EXISTS idx_quote_requests_motorist_account ON quote_requests (motorist_account_id, created_at);
`

// OpenSQLite opens (creating when needed) the SQLite quote store at path and
// applies the schema. ":memory:" is accepted for tests.
func OpenSQLite(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("database: create sqlite dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("database: open sqlite: %w", err)
	}
	// SQLite allows one writer; an in-memory database also only exists on a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(SQLiteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("database: apply sqlite schema: %w", err)
	}
	return db, nil
}
