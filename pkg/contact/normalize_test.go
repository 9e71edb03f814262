package contact

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"STC Solutions", "stc solutions"},
		{"ALI", "ali"},
		{"شركة الاتصالات", "شركة الاتصالات"},
		{"José", "josé"},
		{"", ""},
	}
	for _, tt := range tests {
		got := Fold(tt.input)
		if got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFoldASCII(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"José", "jose"},
		{"Élodie", "elodie"},
		{"naïve", "naive"},
		{"ACME", "acme"},
		{"", ""},
	}
	for _, tt := range tests {
		got := FoldASCII(tt.input)
		if got != tt.want {
			t.Errorf("FoldASCII(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGetNormalizer(t *testing.T) {
	tests := []struct {
		mode, input, want string
	}{
		{"lowercase_utf8", "José", "josé"},
		{"lowercase_ascii", "José", "jose"},
		{"none", "José", "José"},
		{"", "ABC", "abc"},        // default is lowercase_utf8
		{"bogus-mode", "ABC", "abc"},
	}
	for _, tt := range tests {
		got := GetNormalizer(tt.mode)(tt.input)
		if got != tt.want {
			t.Errorf("GetNormalizer(%q)(%q) = %q, want %q", tt.mode, tt.input, got, tt.want)
		}
	}
}

func TestNormalizeField(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{nil, ""},
		{"hello", "hello"},
		{"", ""},
		{555000001, "555000001"},
		{3.5, "3.5"},
	}
	for _, tt := range tests {
		got := NormalizeField(tt.input)
		if got != tt.want {
			t.Errorf("NormalizeField(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
