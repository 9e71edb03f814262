package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/daleelhq/daleel/pkg/contact"
)

// SheetOptions configure the hosted-spreadsheet backend.
type SheetOptions struct {
	// BaseURL is the sheet endpoint; the store calls GET {BaseURL}/values
	// and POST {BaseURL}/values:append.
	BaseURL string
	// TokenEnv names the env var holding the bearer token.
	// Empty means SHEET_API_TOKEN.
	TokenEnv string
	// Client overrides the HTTP client (tests). Nil gets a 30s-timeout client.
	Client *http.Client
}

// SheetStore reads and appends rows of a remote hosted spreadsheet via
// its authenticated values API. The first row is the header; rows map
// positionally to company_name, name, mobile, email.
type SheetStore struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewSheetStore builds the remote backend.
func NewSheetStore(opts SheetOptions) (*SheetStore, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("sheet store: base_url is required")
	}
	tokenEnv := opts.TokenEnv
	if tokenEnv == "" {
		tokenEnv = "SHEET_API_TOKEN"
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &SheetStore{
		baseURL: opts.BaseURL,
		token:   os.Getenv(tokenEnv),
		client:  client,
	}, nil
}

type sheetValues struct {
	Values [][]string `json:"values"`
}

// LoadAll fetches all rows. Transient failures are retried three times
// with exponential backoff before reporting the store unavailable.
func (s *SheetStore) LoadAll(ctx context.Context) ([]contact.Record, error) {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
			case <-time.After(backoff):
			}
		}

		body, err := s.get(ctx, s.baseURL+"/values")
		if err != nil {
			lastErr = err
			continue
		}

		var vals sheetValues
		if err := json.Unmarshal(body, &vals); err != nil {
			return nil, fmt.Errorf("%w: decode values: %v", ErrCorrupt, err)
		}
		return rowsToRecords(vals.Values), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

// Append posts one row to the append endpoint. No retry: a timed-out
// append may still have landed, and retrying would double the row.
func (s *SheetStore) Append(ctx context.Context, r contact.Record) error {
	payload, err := json.Marshal(sheetValues{
		Values: [][]string{{r.Company, r.Name, r.Mobile, r.Email}},
	})
	if err != nil {
		return fmt.Errorf("%w: encode row: %v", ErrWrite, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/values:append", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrWrite, err)
	}
	req.Header.Set("Content-Type", "application/json")
	s.authorize(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%w: HTTP %d from append", ErrWrite, resp.StatusCode)
	}
	return nil
}

func (s *SheetStore) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	s.authorize(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

func (s *SheetStore) authorize(req *http.Request) {
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
}

// rowsToRecords maps sheet rows positionally, skipping the header row.
// Short rows load as empty trailing fields.
func rowsToRecords(rows [][]string) []contact.Record {
	if len(rows) <= 1 {
		return nil
	}
	cell := func(row []string, i int) string {
		if i >= len(row) {
			return ""
		}
		return row[i]
	}
	records := make([]contact.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, contact.Record{
			Company: cell(row, 0),
			Name:    cell(row, 1),
			Mobile:  cell(row, 2),
			Email:   cell(row, 3),
		})
	}
	return records
}
