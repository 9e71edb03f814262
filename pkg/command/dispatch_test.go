package command

import (
	"context"
	"strings"
	"testing"

	"github.com/daleelhq/daleel/pkg/contact"
	"github.com/daleelhq/daleel/pkg/store"
)

// memStore is an in-memory Store for dispatcher tests.
type memStore struct {
	records   []contact.Record
	loadErr   error
	appendErr error
}

func (m *memStore) LoadAll(context.Context) ([]contact.Record, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]contact.Record(nil), m.records...), nil
}

func (m *memStore) Append(_ context.Context, r contact.Record) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.records = append(m.records, r)
	return nil
}

func newTestDispatcher(st store.Store) *Dispatcher {
	return NewDispatcher(Config{Store: st})
}

func TestAddThenDuplicate(t *testing.T) {
	st := &memStore{}
	d := newTestDispatcher(st)
	ctx := context.Background()

	r1 := d.Handle(ctx, "أضف Acme, Ali, 0555000001, ali@acme.sa")
	if r1.Outcome != OutcomeAdded {
		t.Fatalf("first add outcome = %q (%q), want added", r1.Outcome, r1.Text)
	}

	r2 := d.Handle(ctx, "أضف Acme, Ali, 0555000001, ali@acme.sa")
	if r2.Outcome != OutcomeDuplicate {
		t.Fatalf("second add outcome = %q, want duplicate", r2.Outcome)
	}

	if len(st.records) != 1 {
		t.Errorf("store size = %d, want exactly 1", len(st.records))
	}
}

// A candidate sharing only the mobile number with an existing record is
// still a duplicate.
func TestAddDuplicateByMobileOnly(t *testing.T) {
	st := &memStore{records: []contact.Record{
		{Company: "STC", Name: "Ali", Mobile: "0555000001", Email: "ali@stc.sa"},
	}}
	d := newTestDispatcher(st)

	r := d.Handle(context.Background(), "أضف Other, Sara, 0555000001, sara@other.sa")
	if r.Outcome != OutcomeDuplicate {
		t.Errorf("outcome = %q, want duplicate on mobile match", r.Outcome)
	}
	if len(st.records) != 1 {
		t.Errorf("store size = %d, want 1", len(st.records))
	}
}

func TestAddDuplicateByNameCaseInsensitive(t *testing.T) {
	st := &memStore{records: []contact.Record{{Name: "ali", Mobile: "1", Email: "a@b.sa"}}}
	d := newTestDispatcher(st)

	r := d.Handle(context.Background(), "أضف Acme, Ali, 2, x@y.sa")
	if r.Outcome != OutcomeDuplicate {
		t.Errorf("outcome = %q, want duplicate (name case-fold)", r.Outcome)
	}
}

func TestMalformedAddLeavesStoreUnchanged(t *testing.T) {
	st := &memStore{}
	d := newTestDispatcher(st)

	r := d.Handle(context.Background(), "أضف Acme, Ali")
	if r.Outcome != OutcomeUsage {
		t.Fatalf("outcome = %q, want usage", r.Outcome)
	}
	if r.Text != DefaultReplies().UsageAdd {
		t.Errorf("reply = %q, want the add usage hint", r.Text)
	}
	if len(st.records) != 0 {
		t.Errorf("store size = %d, want 0 (no partial insert)", len(st.records))
	}
}

func TestSearchReplyFormat(t *testing.T) {
	st := &memStore{records: []contact.Record{
		{Company: "STC Solutions", Name: "Ali", Mobile: "0555000001", Email: "ali@stc.sa"},
		{Company: "Acme", Name: "Sara", Mobile: "0555000002", Email: "sara@acme.sa"},
	}}
	d := newTestDispatcher(st)

	r := d.Handle(context.Background(), "ابحث stc")
	if r.Outcome != OutcomeResults {
		t.Fatalf("outcome = %q, want results", r.Outcome)
	}
	if !strings.Contains(r.Text, "Ali - 0555000001 - ali@stc.sa") {
		t.Errorf("reply missing result line: %q", r.Text)
	}
	if strings.Contains(r.Text, "Sara") {
		t.Errorf("reply contains non-matching record: %q", r.Text)
	}
}

func TestSearchNoResults(t *testing.T) {
	d := newTestDispatcher(&memStore{})
	r := d.Handle(context.Background(), "ابحث xyz")
	if r.Outcome != OutcomeNoResults || r.Text != DefaultReplies().NoResults {
		t.Errorf("reply = (%q, %q), want the no-results reply", r.Outcome, r.Text)
	}
}

func TestHelpAndUnknownReplies(t *testing.T) {
	d := newTestDispatcher(&memStore{})
	ctx := context.Background()

	if r := d.Handle(ctx, "please help me"); r.Outcome != OutcomeHelp || r.Text != DefaultReplies().Help {
		t.Errorf("help reply = (%q, %q)", r.Outcome, r.Text)
	}
	if r := d.Handle(ctx, "xyz123"); r.Outcome != OutcomeUnknown || r.Text != DefaultReplies().Unknown {
		t.Errorf("unknown reply = (%q, %q)", r.Outcome, r.Text)
	}
}

// Store failures surface as a reply, never as an empty result or panic.
func TestStoreFailureBecomesReply(t *testing.T) {
	d := newTestDispatcher(&memStore{loadErr: store.ErrUnavailable})
	ctx := context.Background()

	for _, input := range []string{"ابحث stc", "أضف Acme, Ali, 055, a@b.sa"} {
		r := d.Handle(ctx, input)
		if r.Outcome != OutcomeFailure {
			t.Errorf("Handle(%q) outcome = %q, want failure", input, r.Outcome)
		}
		if r.Text == "" {
			t.Errorf("Handle(%q) produced an empty reply", input)
		}
	}
}

func TestAppendFailureBecomesReply(t *testing.T) {
	d := newTestDispatcher(&memStore{appendErr: store.ErrWrite})
	r := d.Handle(context.Background(), "أضف Acme, Ali, 055, a@b.sa")
	if r.Outcome != OutcomeFailure {
		t.Errorf("outcome = %q, want failure", r.Outcome)
	}
}

// Already-classified requests (interpreted chat) reach the same branches
// as parsed commands, with usage hints for blank or invalid payloads.
func TestClassifiedActionBranches(t *testing.T) {
	st := &memStore{records: []contact.Record{
		{Company: "Acme", Name: "Ali", Mobile: "055", Email: "a@b.sa"},
	}}
	d := newTestDispatcher(st)
	ctx := context.Background()

	if r := d.Retrieve(ctx, "acme"); r.Outcome != OutcomeResults {
		t.Errorf("Retrieve outcome = %q (%q), want results", r.Outcome, r.Text)
	}
	if r := d.Retrieve(ctx, "  "); r.Outcome != OutcomeUsage || r.Text != DefaultReplies().UsageSearch {
		t.Errorf("blank Retrieve = (%q, %q), want the search usage hint", r.Outcome, r.Text)
	}

	if r := d.Add(ctx, contact.Record{Company: "STC", Name: "Sara", Mobile: "056", Email: "s@stc.sa"}); r.Outcome != OutcomeAdded {
		t.Errorf("Add outcome = %q (%q), want added", r.Outcome, r.Text)
	}
	if r := d.Add(ctx, contact.Record{Company: "Other"}); r.Outcome != OutcomeUsage {
		t.Errorf("nameless Add outcome = %q, want usage", r.Outcome)
	}
	if len(st.records) != 2 {
		t.Errorf("store size = %d, want 2 (nameless record not stored)", len(st.records))
	}

	if r := d.Unsupported(); r.Outcome != OutcomeUnsupported || r.Text != DefaultReplies().NotSupported {
		t.Errorf("Unsupported = (%q, %q)", r.Outcome, r.Text)
	}
	if r := d.Fallback(); r.Outcome != OutcomeUnknown || r.Text != DefaultReplies().Unknown {
		t.Errorf("Fallback = (%q, %q)", r.Outcome, r.Text)
	}
}

func TestInsertValidatesName(t *testing.T) {
	d := newTestDispatcher(&memStore{})
	_, err := d.Insert(context.Background(), contact.Record{Company: "Acme"})
	if err == nil {
		t.Error("expected validation error for empty name")
	}
}

// Every branch yields exactly one non-empty reply.
func TestNoBranchYieldsEmptyReply(t *testing.T) {
	d := newTestDispatcher(&memStore{})
	ctx := context.Background()

	inputs := []string{
		"أضف Acme, Ali, 055, a@b.sa",
		"أضف Acme, Ali, 055, a@b.sa", // duplicate
		"أضف broken",
		"ابحث acme",
		"ابحث nothing-here",
		"ابحث",
		"مساعدة",
		"gibberish",
		"",
	}
	for _, input := range inputs {
		if r := d.Handle(ctx, input); r.Text == "" {
			t.Errorf("Handle(%q) produced an empty reply", input)
		}
	}
}
