package contact

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer transforms a field value into its comparison key.
// Stored records keep their original casing; only keys are folded.
type Normalizer func(string) string

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldASCII lowercases and strips accents (José -> jose).
func FoldASCII(s string) string {
	result, _, _ := transform.String(stripAccents, strings.ToLower(s))
	return result
}

// Fold lowercases but preserves accents and non-Latin scripts.
// This is the default for duplicate detection and search, since most of
// the directory is Arabic-script and accent stripping buys nothing there.
func Fold(s string) string {
	return strings.ToLower(s)
}

// FoldNone returns the value unchanged (exact comparison).
func FoldNone(s string) string {
	return s
}

// GetNormalizer returns the normalizer for the given mode.
// Default is lowercase_utf8.
func GetNormalizer(mode string) Normalizer {
	switch mode {
	case "lowercase_ascii":
		return FoldASCII
	case "none":
		return FoldNone
	case "lowercase_utf8":
		return Fold
	default:
		return Fold
	}
}
