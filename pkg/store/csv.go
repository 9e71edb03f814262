package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/daleelhq/daleel/pkg/contact"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Column headers of the tabular file, in canonical order.
var csvColumns = []string{"company_name", "name", "mobile", "email"}

// CSVOptions configure a local tabular-file backend.
type CSVOptions struct {
	Path string
	// Delimiter is a single rune; empty means comma.
	Delimiter string
	// Encoding is an IANA charset name for non-UTF-8 files (e.g.
	// "windows-1256"). Empty or utf-8 means no transcoding. Only reads
	// are transcoded; appends always write UTF-8.
	Encoding string
}

// CSVStore reads and appends a local CSV file wholesale.
type CSVStore struct {
	opts CSVOptions
}

// NewCSVStore builds a CSV-file backend. LoadAll requires the file to
// exist; Open seeds a fresh deployment via ensureHeader.
func NewCSVStore(opts CSVOptions) *CSVStore {
	return &CSVStore{opts: opts}
}

// ensureHeader creates the file with a header row when absent, so a
// fresh deployment serves its first add without hand-seeding the file.
func (s *CSVStore) ensureHeader() error {
	f, err := os.OpenFile(s.opts.Path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("%w: create %s: %v", ErrWrite, s.opts.Path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if d := s.opts.Delimiter; d != "" {
		w.Comma = []rune(d)[0]
	}
	w.Write(csvColumns)
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: write header %s: %v", ErrWrite, s.opts.Path, err)
	}
	return nil
}

// LoadAll reads every row in file order.
func (s *CSVStore) LoadAll(_ context.Context) ([]contact.Record, error) {
	f, err := os.Open(s.opts.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrUnavailable, s.opts.Path, err)
	}
	defer f.Close()

	var reader io.Reader = f
	if enc := s.opts.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("%w: unsupported encoding %q: %v", ErrCorrupt, enc, err)
		}
		reader = transform.NewReader(f, e.NewDecoder())
	}

	r := csv.NewReader(reader)
	if d := s.opts.Delimiter; d != "" {
		r.Comma = []rune(d)[0]
	}
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrCorrupt, err)
	}

	// Resolve column positions by header name. A missing column loads as
	// empty fields; only a header with none of the four columns is corrupt.
	idx := make(map[string]int, len(csvColumns))
	for i, h := range header {
		idx[strings.TrimSpace(strings.ToLower(h))] = i
	}
	known := 0
	for _, col := range csvColumns {
		if _, ok := idx[col]; ok {
			known++
		}
	}
	if known == 0 {
		return nil, fmt.Errorf("%w: no known columns in header %v", ErrCorrupt, header)
	}

	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []contact.Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read row: %v", ErrCorrupt, err)
		}
		records = append(records, contact.Record{
			Company: cell(row, "company_name"),
			Name:    cell(row, "name"),
			Mobile:  cell(row, "mobile"),
			Email:   cell(row, "email"),
		})
	}
	return records, nil
}

// Append writes one row. The file is created with a header when absent.
// Uses O_APPEND with a single Write so concurrent appenders interleave
// at row granularity, not byte granularity.
func (s *CSVStore) Append(_ context.Context, rec contact.Record) error {
	writeHeader := false
	if _, err := os.Stat(s.opts.Path); os.IsNotExist(err) {
		writeHeader = true
	}

	f, err := os.OpenFile(s.opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrWrite, s.opts.Path, err)
	}
	defer f.Close()

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if d := s.opts.Delimiter; d != "" {
		w.Comma = []rune(d)[0]
	}
	if writeHeader {
		w.Write(csvColumns)
	}
	w.Write([]string{rec.Company, rec.Name, rec.Mobile, rec.Email})
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: encode row: %v", ErrWrite, err)
	}

	if _, err := f.WriteString(sb.String()); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrWrite, s.opts.Path, err)
	}
	return nil
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
