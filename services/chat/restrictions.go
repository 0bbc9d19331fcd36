package chat

import (
	"regexp"
	"strings"

	"central/models"
)

// ---------- package-level compiled regexes ----------

// explicitRestrictionREs match phrases that count as a dietary restriction on
// their own. They run against normalized text, so no accent variants needed.
// Kept as an ordered list on purpose: each pattern is individually testable
// and the dislike/allergy passes below have their own suppression rules.
var explicitRestrictionREs = []*regexp.Regexp{
	regexp.MustCompile(`\bsin\s+gluten\b`),
	regexp.MustCompile(`\b(?:contiene|con|tiene)\s+gluten\b`),
	regexp.MustCompile(`\balerg(?:ia|ico)[a-z\s]*gluten\b`),
	regexp.MustCompile(`\bno\s+come\s+gluten\b`),
	regexp.MustCompile(`\bsin\s+lacteos?\b`),
	regexp.MustCompile(`\b(?:no\s+como|no\s+consumo)\b`),
	regexp.MustCompile(`\b(?:vegetarian[oa]|vegan[oa])\b`),
	regexp.MustCompile(`\balerg(?:ia|ico|icos)\b`),
}

var (
	dislikeRE = regexp.MustCompile(`(?i)\b(?:no me gusta mucho|no me gusta|odio|no me agrada)\s+([a-zA-ZñÑáéíóúÁÉÍÓÚ0-9\s\-]{1,60})`)
	allergyRE = regexp.MustCompile(`(?i)\balerg(?:ia|ico|ica|icos|icas)\s+(?:a\s+)?([a-zA-ZñÑáéíóúÁÉÍÓÚ0-9\s\-]{1,80})`)
	glutenRE  = regexp.MustCompile(`\bgluten\b`)
	spacesRE  = regexp.MustCompile(`\s+`)

	containsGlutenRE = regexp.MustCompile(`\b(?:contiene|con|tiene)\s+gluten\b`)

	// noneAnswerRE recognizes a "no restrictions" answer ("no", "ninguna",
	// "no tengo", ...). Only honored when the assistant just asked for
	// restrictions; see HandleTurn.
	noneAnswerRE = regexp.MustCompile(`\b(?:no|ninguna|ninguno|ningun|ningunas|sin|no tengo)\b`)
)

// ExtractRestrictions pulls dietary/allergy phrases out of raw user text and
// returns them deduplicated and semicolon-joined as canonical tokens. Returns
// "" when nothing is found.
//
// A dislike phrase ("no me gusta X", "odio X") contributes its complement,
// except when the complement mentions gluten: vague dislike language is not
// treated as evidence of a gluten restriction. Explicit allergy language
// ("alergia al gluten") is always trusted.
func ExtractRestrictions(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	var found []string
	lower := Normalize(text)

	for _, re := range explicitRestrictionREs {
		for _, m := range re.FindAllString(lower, -1) {
			if strings.TrimSpace(m) != "" {
				found = append(found, strings.TrimSpace(m))
			}
		}
	}

	for _, m := range dislikeRE.FindAllStringSubmatch(text, -1) {
		candidate := strings.TrimSpace(m[1])
		if glutenRE.MatchString(Normalize(candidate)) {
			// don't infer a gluten restriction from a bare dislike
			continue
		}
		found = append(found, candidate)
	}

	for _, m := range allergyRE.FindAllStringSubmatch(text, -1) {
		candidate := strings.TrimSpace(m[1])
		if candidate != "" {
			// keep the allergy framing so the token reads as a restriction
			found = append(found, "alergia a "+candidate)
		}
	}

	if len(found) == 0 {
		return ""
	}

	var tokens []string
	seen := make(map[string]bool)
	hasSpecificAllergy := false
	for _, f := range found {
		tok := NormalizeRestrictionToken(f)
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		tokens = append(tokens, tok)
		if tok != "alergia" && strings.HasPrefix(tok, "alergia") {
			hasSpecificAllergy = true
		}
	}

	// a bare "alergia" adds nothing next to a specific allergy token
	if hasSpecificAllergy {
		filtered := tokens[:0]
		for _, tok := range tokens {
			if tok != "alergia" {
				filtered = append(filtered, tok)
			}
		}
		tokens = filtered
	}
	return strings.Join(tokens, "; ")
}

// MergeRestrictions unions two semicolon-joined restriction strings,
// canonicalizing and deduplicating each token. The explicit "none" marker is
// dropped as soon as a real restriction arrives. Returns "" when the union
// is empty.
func MergeRestrictions(existing, incoming string) string {
	var parts []string
	parts = append(parts, splitRestrictionParts(existing)...)
	parts = append(parts, splitRestrictionParts(incoming)...)

	var tokens []string
	seen := make(map[string]bool)
	for _, p := range parts {
		tok := NormalizeRestrictionToken(p)
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		tokens = append(tokens, tok)
	}

	if len(tokens) > 1 {
		filtered := tokens[:0]
		for _, tok := range tokens {
			if tok != models.NoRestrictions {
				filtered = append(filtered, tok)
			}
		}
		tokens = filtered
	}

	return strings.Join(tokens, "; ")
}

func splitRestrictionParts(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, p := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == ',' || r == '/' || r == '|' || r == '.'
	}) {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeRestrictionToken maps known restriction variants onto a fixed
// canonical vocabulary; anything unknown is normalized and trimmed of
// punctuation. Canonical tokens map to themselves.
func NormalizeRestrictionToken(tok string) string {
	if strings.TrimSpace(tok) == "" {
		return ""
	}

	x := Normalize(tok)
	x = spacesRE.ReplaceAllString(x, " ")

	switch {
	case strings.Contains(x, "sin gluten"):
		return "sin gluten"
	case containsGlutenRE.MatchString(x):
		return "contiene gluten"
	case strings.Contains(x, "alerg") && strings.Contains(x, "gluten"):
		return "alergia al gluten"
	case strings.Contains(x, "sin lacteo"):
		return "sin lactosa"
	case strings.Contains(x, "vegetar"):
		return "vegetariano"
	case strings.Contains(x, "vegano") || strings.Contains(x, "vegana"):
		return "vegano"
	case x == "alergia" || x == "alergico" || x == "alergica":
		return "alergia"
	}

	if strings.HasPrefix(x, "no me gusta") {
		x = strings.Replace(x, "no me gusta mucho ", "no me gusta ", 1)
	}

	return strings.Trim(strings.TrimSpace(x), ",;.:-")
}
