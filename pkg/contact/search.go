package contact

import "strings"

// SearchOptions configure the search engine.
type SearchOptions struct {
	// Normalize is applied to the query and each field. Nil means Fold.
	Normalize Normalizer
	// Names and Emails extend matching beyond company_name.
	Names  bool
	Emails bool
}

// Searcher matches a query against a record snapshot by folded substring.
type Searcher struct {
	opts SearchOptions
}

// NewSearcher builds a Searcher with the given options.
func NewSearcher(opts SearchOptions) *Searcher {
	if opts.Normalize == nil {
		opts.Normalize = Fold
	}
	return &Searcher{opts: opts}
}

// Search returns every record whose company name contains the folded
// query, in the snapshot's original insertion order. Records with an
// empty company name never match on company. An empty result is a
// normal outcome, not an error.
func (s *Searcher) Search(query string, existing []Record) []Record {
	q := s.opts.Normalize(query)
	if q == "" {
		return nil
	}

	var results []Record
	for _, r := range existing {
		if s.matches(q, r) {
			results = append(results, r)
		}
	}
	return results
}

func (s *Searcher) matches(q string, r Record) bool {
	if r.Company != "" && strings.Contains(s.opts.Normalize(r.Company), q) {
		return true
	}
	if s.opts.Names && r.Name != "" && strings.Contains(s.opts.Normalize(r.Name), q) {
		return true
	}
	if s.opts.Emails && r.Email != "" && strings.Contains(s.opts.Normalize(r.Email), q) {
		return true
	}
	return false
}
