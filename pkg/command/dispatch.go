package command

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/daleelhq/daleel/pkg/contact"
	"github.com/daleelhq/daleel/pkg/store"
)

// Outcome is the typed result class of a dispatched command.
type Outcome string

const (
	OutcomeAdded       Outcome = "added"
	OutcomeDuplicate   Outcome = "duplicate"
	OutcomeResults     Outcome = "results"
	OutcomeNoResults   Outcome = "no_results"
	OutcomeUsage       Outcome = "usage"
	OutcomeHelp        Outcome = "help"
	OutcomeUnknown     Outcome = "unknown"
	OutcomeUnsupported Outcome = "unsupported"
	OutcomeFailure     Outcome = "failure"
)

// Reply is the single result of handling one command. Text is never empty.
type Reply struct {
	Text    string  `json:"reply"`
	Outcome Outcome `json:"outcome"`
}

// Dispatcher wires the parser, dedup, search and store together. One
// Handle call loads one fresh snapshot, uses it, and discards it.
type Dispatcher struct {
	store    store.Store
	parser   *Parser
	detector *contact.Detector
	searcher *contact.Searcher
	replies  Replies
	logger   *slog.Logger
}

// Config assembles a Dispatcher.
type Config struct {
	Store    store.Store
	Keywords Keywords
	Replies  Replies
	Dedupe   contact.DedupeOptions
	Search   contact.SearchOptions
	Logger   *slog.Logger
}

// NewDispatcher builds a dispatcher. Store is required; everything else
// has working defaults.
func NewDispatcher(cfg Config) *Dispatcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		store:    cfg.Store,
		parser:   NewParser(cfg.Keywords),
		detector: contact.NewDetector(cfg.Dedupe),
		searcher: contact.NewSearcher(cfg.Search),
		replies:  cfg.Replies.withDefaults(),
		logger:   logger,
	}
}

// Handle runs one inbound command end to end and always returns a reply.
// Only the add branch mutates the store.
func (d *Dispatcher) Handle(ctx context.Context, text string) Reply {
	cmd, err := d.parser.Parse(text)
	switch {
	case errors.Is(err, ErrMalformedAdd):
		return Reply{Text: d.replies.UsageAdd, Outcome: OutcomeUsage}
	case errors.Is(err, ErrEmptyQuery):
		return Reply{Text: d.replies.UsageSearch, Outcome: OutcomeUsage}
	case err != nil:
		d.logger.Error("parse command", "error", err)
		return Reply{Text: d.replies.failure(err.Error()), Outcome: OutcomeFailure}
	}

	switch cmd.Kind {
	case KindAdd:
		return d.handleAdd(ctx, cmd.Record)
	case KindSearch:
		return d.handleSearch(ctx, cmd.Query)
	case KindHelp:
		return Reply{Text: d.replies.Help, Outcome: OutcomeHelp}
	default:
		return Reply{Text: d.replies.Unknown, Outcome: OutcomeUnknown}
	}
}

func (d *Dispatcher) handleAdd(ctx context.Context, rec contact.Record) Reply {
	added, err := d.Insert(ctx, rec)
	if err != nil {
		d.logger.Error("add contact", "name", rec.Name, "error", err)
		return Reply{Text: d.replies.failure(shortDiag(err)), Outcome: OutcomeFailure}
	}
	if !added {
		return Reply{Text: d.replies.Duplicate, Outcome: OutcomeDuplicate}
	}
	return Reply{Text: d.replies.Added, Outcome: OutcomeAdded}
}

func (d *Dispatcher) handleSearch(ctx context.Context, query string) Reply {
	results, err := d.Find(ctx, query)
	if err != nil {
		d.logger.Error("search contacts", "query", query, "error", err)
		return Reply{Text: d.replies.failure(shortDiag(err)), Outcome: OutcomeFailure}
	}
	if len(results) == 0 {
		return Reply{Text: d.replies.NoResults, Outcome: OutcomeNoResults}
	}
	return Reply{Text: d.replies.results(results), Outcome: OutcomeResults}
}

// Retrieve runs the search branch for a request that arrives already
// classified, such as an interpreted chat turn. A blank query gets the
// search usage hint.
func (d *Dispatcher) Retrieve(ctx context.Context, query string) Reply {
	query = strings.TrimSpace(query)
	if query == "" {
		return Reply{Text: d.replies.UsageSearch, Outcome: OutcomeUsage}
	}
	return d.handleSearch(ctx, query)
}

// Add runs the add branch for an already-classified record. An invalid
// record (no name) gets the add usage hint instead of a store failure.
func (d *Dispatcher) Add(ctx context.Context, rec contact.Record) Reply {
	if err := rec.Validate(); err != nil {
		return Reply{Text: d.replies.UsageAdd, Outcome: OutcomeUsage}
	}
	return d.handleAdd(ctx, rec)
}

// Unsupported is the fixed reply for recognized actions the directory
// does not serve yet (update, delete).
func (d *Dispatcher) Unsupported() Reply {
	return Reply{Text: d.replies.NotSupported, Outcome: OutcomeUnsupported}
}

// Fallback is the unknown-command reply, for requests that could not be
// mapped to any directory action.
func (d *Dispatcher) Fallback() Reply {
	return Reply{Text: d.replies.Unknown, Outcome: OutcomeUnknown}
}

// Insert loads a fresh snapshot, runs the duplicate check, and appends on
// a miss. Returns false when the candidate already exists. This is the
// single insert path; the webhook add command, the LLM extraction flow,
// the bulk importer and the MCP tool all go through it.
func (d *Dispatcher) Insert(ctx context.Context, rec contact.Record) (bool, error) {
	if err := rec.Validate(); err != nil {
		return false, err
	}
	existing, err := d.store.LoadAll(ctx)
	if err != nil {
		return false, err
	}
	if d.detector.IsDuplicate(rec, existing) {
		return false, nil
	}
	if err := d.store.Append(ctx, rec); err != nil {
		return false, err
	}
	return true, nil
}

// Find loads a fresh snapshot and searches it.
func (d *Dispatcher) Find(ctx context.Context, query string) ([]contact.Record, error) {
	existing, err := d.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return d.searcher.Search(query, existing), nil
}

// Snapshot exposes a fresh load for read-only consumers (list endpoint).
func (d *Dispatcher) Snapshot(ctx context.Context) ([]contact.Record, error) {
	return d.store.LoadAll(ctx)
}

// shortDiag maps store failures to a compact diagnostic for the reply.
func shortDiag(err error) string {
	switch {
	case errors.Is(err, store.ErrUnavailable):
		return "تعذر الوصول إلى السجل"
	case errors.Is(err, store.ErrCorrupt):
		return "بيانات السجل غير صالحة"
	case errors.Is(err, store.ErrWrite):
		return "تعذر حفظ السجل"
	default:
		return err.Error()
	}
}
