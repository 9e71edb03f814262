package contact

import "testing"

func existingSet() []Record {
	return []Record{
		{Company: "STC Solutions", Name: "Ali", Mobile: "0555000001", Email: "ali@stc.sa"},
		{Company: "Acme", Name: "Sara", Mobile: "0555000002", Email: "sara@acme.sa"},
		{Company: "", Name: "Omar", Mobile: "", Email: ""},
	}
}

func TestFieldLevelORMatching(t *testing.T) {
	d := NewDetector(DedupeOptions{})

	tests := []struct {
		name      string
		candidate Record
		dup       bool
		field     MatchField
	}{
		{
			name:      "all new",
			candidate: Record{Company: "NewCo", Name: "Huda", Mobile: "0555000009", Email: "huda@newco.sa"},
			dup:       false,
			field:     MatchNone,
		},
		{
			name:      "same mobile only",
			candidate: Record{Company: "Other", Name: "Totally New", Mobile: "0555000001", Email: "new@other.sa"},
			dup:       true,
			field:     MatchMobile,
		},
		{
			name:      "same email only, different case",
			candidate: Record{Company: "Other", Name: "Someone", Mobile: "0555000010", Email: "SARA@ACME.SA"},
			dup:       true,
			field:     MatchEmail,
		},
		{
			name:      "same name only, different case",
			candidate: Record{Company: "Other", Name: "ali", Mobile: "0555000011", Email: "x@y.sa"},
			dup:       true,
			field:     MatchName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, field := d.FindDuplicate(tt.candidate, existingSet())
			if (field != MatchNone) != tt.dup {
				t.Fatalf("FindDuplicate dup = %v, want %v", field != MatchNone, tt.dup)
			}
			if field != tt.field {
				t.Errorf("matched field = %q, want %q", field, tt.field)
			}
			if tt.dup && idx < 0 {
				t.Errorf("index = %d, want >= 0 for a duplicate", idx)
			}
		})
	}
}

// The reference behavior treats two empty emails (or mobiles) as equal.
func TestEmptyMatchesEmptyByDefault(t *testing.T) {
	d := NewDetector(DedupeOptions{})
	candidate := Record{Company: "NewCo", Name: "Huda", Mobile: "", Email: "h@n.sa"}

	if !d.IsDuplicate(candidate, existingSet()) {
		t.Error("expected empty mobile to match the existing empty-mobile record")
	}
}

func TestSkipEmptyExemptsEmptyFields(t *testing.T) {
	d := NewDetector(DedupeOptions{SkipEmpty: true})
	candidate := Record{Company: "NewCo", Name: "Huda", Mobile: "", Email: ""}

	if d.IsDuplicate(candidate, existingSet()) {
		t.Error("SkipEmpty: empty mobile/email must not match")
	}

	// Non-empty fields still match.
	candidate.Mobile = "0555000002"
	if !d.IsDuplicate(candidate, existingSet()) {
		t.Error("SkipEmpty: non-empty mobile must still match")
	}
}

func TestFirstMatchShortCircuits(t *testing.T) {
	d := NewDetector(DedupeOptions{})
	// Candidate collides with record 0 on name and record 1 on mobile;
	// the scan reports the first record hit.
	candidate := Record{Name: "ALI", Mobile: "0555000002", Email: "unique@x.sa"}

	idx, field := d.FindDuplicate(candidate, existingSet())
	if idx != 0 || field != MatchName {
		t.Errorf("FindDuplicate = (%d, %q), want (0, name)", idx, field)
	}
}
