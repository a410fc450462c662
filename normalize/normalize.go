// Package normalize folds free text into the canonical form used by every
// lookup in the reference snapshot.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Text lower-cases s, trims it, strips combining accents and collapses
// internal whitespace runs into a single space.
func Text(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(strings.ToLower(FoldAccents(s))), " ")
}

// FoldAccents removes diacritics ("Paracétamol" -> "Paracetamol").
// Input that cannot be transformed is returned unchanged.
func FoldAccents(s string) string {
	if isASCII(s) {
		return s
	}
	// Chains keep internal state, so one is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Key turns a display label into the slug form used for symptom keys:
// "Chest Pain" -> "chest_pain".
func Key(s string) string {
	return strings.ReplaceAll(Text(s), " ", "_")
}

// Tokens splits normalized text on whitespace.
func Tokens(s string) []string {
	return strings.Fields(s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
