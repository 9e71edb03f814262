package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/daleelhq/daleel/pkg/contact"
)

const extractSystem = `You extract contact details from unstructured text
(email signatures, chat exports, business cards). Respond with a single
JSON object with exactly these string keys:
  company_name, name, mobile, email
Use "" for any field not present. If the text contains no confident
external contact (internal colleagues and mailing-list noise do not
count), respond with an empty JSON object: {}`

const interpretSystem = `You route free-form requests about a contact
directory. Respond with a single JSON object:
  {"action": "retrieve"|"insert"|"update"|"delete",
   "query": "<search text, for retrieve>",
   "contact": {"company_name": "", "name": "", "mobile": "", "email": ""}}
Omit "contact" when no contact fields are mentioned. If the request is
not about contacts at all, use {"action": ""}.`

// Action is the interpreted intent of a free-form chat request.
type Action string

const (
	ActionNone     Action = ""
	ActionRetrieve Action = "retrieve"
	ActionInsert   Action = "insert"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

// Intent is the structured interpretation of a free-form request.
type Intent struct {
	Action  Action          `json:"action"`
	Query   string          `json:"query,omitempty"`
	Contact *contact.Record `json:"contact,omitempty"`
}

// Extractor turns unstructured text into contact records and intents.
type Extractor struct {
	provider Provider
}

// NewExtractor wraps a provider.
func NewExtractor(p Provider) *Extractor {
	return &Extractor{provider: p}
}

// Extract pulls the four contact fields out of raw text. ok is false when
// the model found no confident external contact; the caller then skips
// the insert path entirely.
func (e *Extractor) Extract(ctx context.Context, text string) (rec contact.Record, ok bool, err error) {
	raw, err := e.provider.Complete(ctx, text, CompletionOpts{
		System:    extractSystem,
		Format:    "json",
		MaxTokens: 512,
	})
	if err != nil {
		return contact.Record{}, false, fmt.Errorf("extract completion: %w", err)
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(stripFences(raw)), &fields); err != nil {
		return contact.Record{}, false, fmt.Errorf("extract response is not JSON: %w", err)
	}
	if len(fields) == 0 {
		return contact.Record{}, false, nil
	}

	rec = contact.Record{
		Company: strings.TrimSpace(contact.NormalizeField(fields["company_name"])),
		Name:    strings.TrimSpace(contact.NormalizeField(fields["name"])),
		Mobile:  strings.TrimSpace(contact.NormalizeField(fields["mobile"])),
		Email:   strings.TrimSpace(contact.NormalizeField(fields["email"])),
	}
	if rec == (contact.Record{}) {
		return contact.Record{}, false, nil
	}
	return rec, true, nil
}

// Interpret maps a free-form chat request onto the action vocabulary.
func (e *Extractor) Interpret(ctx context.Context, text string) (Intent, error) {
	raw, err := e.provider.Complete(ctx, text, CompletionOpts{
		System:    interpretSystem,
		Format:    "json",
		MaxTokens: 512,
	})
	if err != nil {
		return Intent{}, fmt.Errorf("interpret completion: %w", err)
	}

	var intent Intent
	if err := json.Unmarshal([]byte(stripFences(raw)), &intent); err != nil {
		return Intent{}, fmt.Errorf("interpret response is not JSON: %w", err)
	}
	switch intent.Action {
	case ActionNone, ActionRetrieve, ActionInsert, ActionUpdate, ActionDelete:
		return intent, nil
	default:
		return Intent{}, fmt.Errorf("unknown action %q from model", intent.Action)
	}
}

// stripFences removes a ```json ... ``` wrapper some models add even in
// JSON mode.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
