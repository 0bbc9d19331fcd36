package chat

import (
	"regexp"
	"strings"
)

const maxPreferenceTextLen = 400

var (
	prefPhraseRE = regexp.MustCompile(`(?i)(?:me gusta|me encant(?:a|o)|prefiero|mi preferencia es|mi preferencia:|me gustaria|me gustaría)\s+([a-zA-ZñÑáéíóúÁÉÍÓÚ0-9\s\-]{1,80})`)
	prefLabelRE  = regexp.MustCompile(`(?i)(?:preferencias?:|mis preferencias son)\s*([a-zA-Z0-9ñÑáéíóúÁÉÍÓÚ.,;:\s\-]{1,200})`)

	// prefKeywords gate the loose fallback: if any appears in the normalized
	// text, the whole message is kept as a best-effort preference capture.
	prefKeywords = []string{"prefe", "me gust", "me encanta", "odio", "preferir"}
)

// ExtractPreferences pulls taste/likes/dislikes signal out of free text.
// Explicit phrases ("me gusta X", "preferencias: X") capture their
// complement; failing that, any preference keyword in the text causes the
// entire original text (bounded) to be returned, so loosely-phrased signal is
// not dropped silently. Returns "" only when no keyword evidence exists.
func ExtractPreferences(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	var found []string
	for _, m := range prefPhraseRE.FindAllStringSubmatch(text, -1) {
		if v := strings.TrimSpace(m[1]); v != "" {
			found = append(found, v)
		}
	}
	if m := prefLabelRE.FindStringSubmatch(text); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			found = append(found, v)
		}
	}

	if len(found) == 0 {
		if !HasPreferenceKeywords(text) {
			return ""
		}
		// fallback: keep the full message as the captured signal
		return truncateRunes(strings.TrimSpace(text), maxPreferenceTextLen)
	}

	var out []string
	seen := make(map[string]bool)
	for _, f := range found {
		v := spacesRE.ReplaceAllString(f, " ")
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return strings.Join(out, "; ")
}

// HasPreferenceKeywords reports whether the text plausibly talks about
// preferences at all. Used both for the fallback capture above and to gate
// scanning the assistant's own raw response in HandleTurn.
func HasPreferenceKeywords(text string) bool {
	lower := Normalize(text)
	for _, kw := range prefKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
