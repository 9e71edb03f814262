package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/daleelhq/daleel/pkg/contact"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps contacts in a local SQLite database. WAL mode plus
// busy_timeout serialize concurrent appends, which upgrades the contract's
// at-least-one-insert race to safe interleaving at the row level (the
// dedup check against a stale snapshot can still let a duplicate through).
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) the database at path and ensures the
// contacts table exists.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite %s: %v", ErrUnavailable, path, err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS contacts (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		company_name TEXT NOT NULL DEFAULT '',
		name         TEXT NOT NULL,
		mobile       TEXT NOT NULL DEFAULT '',
		email        TEXT NOT NULL DEFAULT ''
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create contacts table: %v", ErrUnavailable, err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LoadAll returns all rows in insertion (id) order.
func (s *SQLiteStore) LoadAll(ctx context.Context) ([]contact.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT company_name, name, mobile, email FROM contacts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: query contacts: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var records []contact.Record
	for rows.Next() {
		var r contact.Record
		if err := rows.Scan(&r.Company, &r.Name, &r.Mobile, &r.Email); err != nil {
			return nil, fmt.Errorf("%w: scan contact: %v", ErrCorrupt, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate contacts: %v", ErrUnavailable, err)
	}
	return records, nil
}

// Append inserts one row.
func (s *SQLiteStore) Append(ctx context.Context, r contact.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (company_name, name, mobile, email) VALUES (?, ?, ?, ?)`,
		r.Company, r.Name, r.Mobile, r.Email)
	if err != nil {
		return fmt.Errorf("%w: insert contact: %v", ErrWrite, err)
	}
	return nil
}
