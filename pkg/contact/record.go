// Package contact holds the core contact-record domain: the record type,
// comparison-key normalization, duplicate detection, and substring search.
// Everything here is pure; persistence lives in pkg/store.
package contact

import (
	"fmt"
	"strings"
)

// Record is one contact row. Mobile and email are strings, never nil:
// an absent value is the empty string and compares as such.
type Record struct {
	Company string `json:"company_name" yaml:"company_name"`
	Name    string `json:"name" yaml:"name"`
	Mobile  string `json:"mobile" yaml:"mobile"`
	Email   string `json:"email" yaml:"email"`
}

// NormalizeField coerces a raw cell value to its string form.
// Nil (absent) becomes the empty string. No trimming here; callers that
// need trimmed input (the command parser, the importer) trim themselves.
func NormalizeField(raw any) string {
	if raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok {
		return s
	}
	return fmt.Sprint(raw)
}

// Validate reports whether the record can be inserted. Only the name is
// required; company, mobile and email may all be empty.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("contact: name is required")
	}
	return nil
}

// Line renders the record in the reply-list format used by the search
// command: "name - mobile - email".
func (r Record) Line() string {
	return r.Name + " - " + r.Mobile + " - " + r.Email
}
