// Package store defines the record-store contract and its backends.
//
// A Store hands out a fresh snapshot per command and appends one row at a
// time. There is no update/delete in the contract and no cross-command
// cache: every inbound command re-reads the source, so freshness beats
// throughput. Concurrent appends of would-be duplicates can both land
// (at-least-one-insert); callers needing strict dedup must serialize at
// the backend.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/daleelhq/daleel/pkg/contact"
)

// Sentinel errors for the backend failure taxonomy. Backends wrap these
// with detail; callers test with errors.Is.
var (
	// ErrUnavailable: the backing source cannot be reached at all.
	ErrUnavailable = errors.New("store unavailable")
	// ErrCorrupt: the source was reached but its data cannot be parsed
	// into the four-column shape. Missing columns are NOT corrupt; they
	// load as empty fields.
	ErrCorrupt = errors.New("store data corrupt")
	// ErrWrite: an append failed.
	ErrWrite = errors.New("store write failed")
)

// Store is the persistence contract for contact records.
type Store interface {
	// LoadAll fetches the complete current record set in insertion order.
	LoadAll(ctx context.Context) ([]contact.Record, error)
	// Append adds one record as a new row.
	Append(ctx context.Context, r contact.Record) error
}

// Config selects and configures a backend.
type Config struct {
	Backend string `yaml:"backend"` // "csv", "sqlite", "sheet"

	CSV struct {
		Path      string `yaml:"path"`
		Delimiter string `yaml:"delimiter"`
		Encoding  string `yaml:"encoding"`
	} `yaml:"csv"`

	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`

	Sheet struct {
		BaseURL  string `yaml:"base_url"`
		TokenEnv string `yaml:"token_env"`
	} `yaml:"sheet"`
}

// Open builds the configured backend.
func Open(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", "csv":
		path := cfg.CSV.Path
		if path == "" {
			path = "contacts.csv"
		}
		s := NewCSVStore(CSVOptions{
			Path:      path,
			Delimiter: cfg.CSV.Delimiter,
			Encoding:  cfg.CSV.Encoding,
		})
		if err := s.ensureHeader(); err != nil {
			return nil, err
		}
		return s, nil
	case "sqlite":
		path := cfg.SQLite.Path
		if path == "" {
			path = "contacts.db"
		}
		return OpenSQLiteStore(path)
	case "sheet":
		return NewSheetStore(SheetOptions{
			BaseURL:  cfg.Sheet.BaseURL,
			TokenEnv: cfg.Sheet.TokenEnv,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
