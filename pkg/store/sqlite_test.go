package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/daleelhq/daleel/pkg/contact"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "contacts.db"))
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	recs := []contact.Record{
		{Company: "STC Solutions", Name: "Ali", Mobile: "0555000001", Email: "ali@stc.sa"},
		{Company: "", Name: "Omar", Mobile: "", Email: ""},
		{Company: "Acme", Name: "Sara", Mobile: "0555000002", Email: "sara@acme.sa"},
	}
	for _, r := range recs {
		if err := s.Append(ctx, r); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(got) != len(recs) {
		t.Fatalf("loaded %d records, want %d", len(got), len(recs))
	}
	// Insertion order must survive the round trip.
	for i := range recs {
		if got[i] != recs[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], recs[i])
		}
	}
}

func TestSQLiteStoreEmpty(t *testing.T) {
	s := openTestSQLite(t)
	got, err := s.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("loaded %d records from fresh db, want 0", len(got))
	}
}

func TestSQLiteStoreReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contacts.db")
	ctx := context.Background()

	s, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	if err := s.Append(ctx, contact.Record{Name: "Ali"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	s.Close()

	s2, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, err := s2.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll after reopen: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Ali" {
		t.Errorf("got %+v, want the persisted Ali record", got)
	}
}
