package command

import (
	"errors"
	"testing"

	"github.com/daleelhq/daleel/pkg/contact"
)

func TestParseAdd(t *testing.T) {
	p := NewParser(Keywords{})

	tests := []struct {
		input string
		want  contact.Record
	}{
		{
			input: "أضف Acme, Ali, 0555000001, ali@acme.sa",
			want:  contact.Record{Company: "Acme", Name: "Ali", Mobile: "0555000001", Email: "ali@acme.sa"},
		},
		{
			input: "add STC Solutions,Sara,0555000002,sara@stc.sa",
			want:  contact.Record{Company: "STC Solutions", Name: "Sara", Mobile: "0555000002", Email: "sara@stc.sa"},
		},
		{
			// Keyword match is case-folded; payload casing is preserved.
			input: "ADD Acme, ALI, 055, Ali@Acme.SA",
			want:  contact.Record{Company: "Acme", Name: "ALI", Mobile: "055", Email: "Ali@Acme.SA"},
		},
	}
	for _, tt := range tests {
		cmd, err := p.Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.input, err)
		}
		if cmd.Kind != KindAdd {
			t.Fatalf("Parse(%q) kind = %q, want add", tt.input, cmd.Kind)
		}
		if cmd.Record != tt.want {
			t.Errorf("Parse(%q) record = %+v, want %+v", tt.input, cmd.Record, tt.want)
		}
	}
}

func TestParseAddMalformed(t *testing.T) {
	p := NewParser(Keywords{})

	inputs := []string{
		"أضف Acme, Ali",                      // two parts
		"أضف Acme, Ali, 055, a@b.sa, extra",  // five parts
		"أضف Acme, , 055, a@b.sa",            // empty segment
		"add ,,,",
	}
	for _, input := range inputs {
		_, err := p.Parse(input)
		if !errors.Is(err, ErrMalformedAdd) {
			t.Errorf("Parse(%q) err = %v, want ErrMalformedAdd", input, err)
		}
	}
}

func TestParseSearch(t *testing.T) {
	p := NewParser(Keywords{})

	tests := []struct {
		input, query string
	}{
		{"ابحث stc", "stc"},
		{"search Acme Trading", "Acme Trading"},
		{"ابحث   شركة الاتصالات  ", "شركة الاتصالات"},
	}
	for _, tt := range tests {
		cmd, err := p.Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.input, err)
		}
		if cmd.Kind != KindSearch || cmd.Query != tt.query {
			t.Errorf("Parse(%q) = (%q, %q), want (search, %q)", tt.input, cmd.Kind, cmd.Query, tt.query)
		}
	}
}

func TestParseSearchEmptyQuery(t *testing.T) {
	for _, input := range []string{"ابحث", "ابحث   ", "search", "search  "} {
		_, err := NewParser(Keywords{}).Parse(input)
		if !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("Parse(%q) err = %v, want ErrEmptyQuery", input, err)
		}
	}
}

// The help token matches anywhere in the text, not just as a prefix.
func TestParseHelpAnywhere(t *testing.T) {
	p := NewParser(Keywords{})

	for _, input := range []string{"مساعدة", "please help me", "أحتاج مساعدة من فضلك", "HELP"} {
		cmd, err := p.Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		if cmd.Kind != KindHelp {
			t.Errorf("Parse(%q) kind = %q, want help", input, cmd.Kind)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	p := NewParser(Keywords{})

	for _, input := range []string{"xyz123", "", "   ", "احذف Ali"} {
		cmd, err := p.Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		if cmd.Kind != KindUnknown {
			t.Errorf("Parse(%q) kind = %q, want unknown", input, cmd.Kind)
		}
	}
}

// Add has priority over help: an add command whose payload happens to
// contain a help token is still an add.
func TestParsePriority(t *testing.T) {
	p := NewParser(Keywords{})
	cmd, err := p.Parse("أضف Helpdesk Co, Ali, 055, a@b.sa")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd.Kind != KindAdd {
		t.Errorf("kind = %q, want add (priority over help)", cmd.Kind)
	}
}

func TestCustomKeywords(t *testing.T) {
	p := NewParser(Keywords{Add: []string{"new"}, Search: []string{"find"}, Help: []string{"sos"}})

	cmd, err := p.Parse("find acme")
	if err != nil || cmd.Kind != KindSearch {
		t.Errorf("Parse(find acme) = (%v, %v), want search", cmd.Kind, err)
	}
	// Default keywords are replaced, not merged.
	cmd, _ = p.Parse("ابحث acme")
	if cmd.Kind != KindUnknown {
		t.Errorf("default keyword still active with custom set: %q", cmd.Kind)
	}
}
