// Package command classifies inbound free-text commands and dispatches
// them against the record store, producing exactly one reply string per
// command. Nothing in here ever escapes as a transport fault: all
// failures become replies at the dispatch boundary.
package command

import (
	"errors"
	"strings"

	"github.com/daleelhq/daleel/pkg/contact"
)

// Kind is the command verb class.
type Kind string

const (
	KindAdd     Kind = "add"
	KindSearch  Kind = "search"
	KindHelp    Kind = "help"
	KindUnknown Kind = "unknown"
)

// User-correctable parse failures. The dispatcher turns these into
// usage-hint replies without touching the store.
var (
	ErrMalformedAdd = errors.New("malformed add command")
	ErrEmptyQuery   = errors.New("empty search query")
)

// Keywords are the recognized verb tokens. Add and Search match as
// prefixes (keyword + space for Add); Help matches anywhere in the text.
type Keywords struct {
	Add    []string `yaml:"add"`
	Search []string `yaml:"search"`
	Help   []string `yaml:"help"`
}

// DefaultKeywords returns the Arabic verbs of the original bot plus
// English aliases.
func DefaultKeywords() Keywords {
	return Keywords{
		Add:    []string{"أضف", "add"},
		Search: []string{"ابحث", "search"},
		Help:   []string{"مساعدة", "help"},
	}
}

func (k Keywords) withDefaults() Keywords {
	def := DefaultKeywords()
	if len(k.Add) == 0 {
		k.Add = def.Add
	}
	if len(k.Search) == 0 {
		k.Search = def.Search
	}
	if len(k.Help) == 0 {
		k.Help = def.Help
	}
	return k
}

// Command is one classified inbound instruction.
type Command struct {
	Kind   Kind
	Record contact.Record // set for KindAdd
	Query  string         // set for KindSearch
}

// Parser is a state-free classifier over trimmed, case-folded input.
type Parser struct {
	keywords Keywords
	fold     contact.Normalizer
}

// NewParser builds a parser. Zero-value keyword lists fall back to the
// defaults.
func NewParser(keywords Keywords) *Parser {
	return &Parser{keywords: keywords.withDefaults(), fold: contact.Fold}
}

// Parse classifies input in priority order: add, search, help, unknown.
// Casing is folded only for keyword matching; the argument payload keeps
// its original casing so stored records do too.
func (p *Parser) Parse(input string) (Command, error) {
	text := strings.TrimSpace(input)
	folded := p.fold(text)

	for _, kw := range p.keywords.Add {
		if rest, ok := stripPrefix(text, folded, p.fold(kw)+" "); ok {
			return p.parseAdd(rest)
		}
	}
	for _, kw := range p.keywords.Search {
		fkw := p.fold(kw)
		if rest, ok := stripPrefix(text, folded, fkw+" "); ok {
			return p.parseSearch(rest)
		}
		if folded == fkw {
			return Command{}, ErrEmptyQuery
		}
	}
	for _, kw := range p.keywords.Help {
		if strings.Contains(folded, p.fold(kw)) {
			return Command{Kind: KindHelp}, nil
		}
	}
	return Command{Kind: KindUnknown}, nil
}

// parseAdd splits the payload on commas into exactly four trimmed,
// non-empty parts: company, name, mobile, email. Anything else is
// malformed and no partial insert is attempted.
func (p *Parser) parseAdd(payload string) (Command, error) {
	parts := strings.Split(payload, ",")
	if len(parts) != 4 {
		return Command{}, ErrMalformedAdd
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return Command{}, ErrMalformedAdd
		}
	}
	return Command{
		Kind: KindAdd,
		Record: contact.Record{
			Company: parts[0],
			Name:    parts[1],
			Mobile:  parts[2],
			Email:   parts[3],
		},
	}, nil
}

func (p *Parser) parseSearch(payload string) (Command, error) {
	query := strings.TrimSpace(payload)
	if query == "" {
		return Command{}, ErrEmptyQuery
	}
	return Command{Kind: KindSearch, Query: query}, nil
}

// stripPrefix returns the original-cased remainder after a folded prefix.
func stripPrefix(text, folded, prefix string) (string, bool) {
	if !strings.HasPrefix(folded, prefix) {
		return "", false
	}
	return text[len(prefix):], true
}
