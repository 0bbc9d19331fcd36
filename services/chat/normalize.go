package chat

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases text and strips diacritics so the heuristic matchers
// are accent- and case-insensitive ("Mañana" -> "manana"). Empty input yields
// the empty string; the function is total and idempotent.
func Normalize(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	// NFD decomposition, drop combining marks, recompose.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
