package chat

import (
	"regexp"
	"strings"
)

// ContactInfo is the heuristic contact extraction result. Any field may be
// empty; ExtractContact returns nil when all three are.
type ContactInfo struct {
	Name       string
	DocumentID string
	Phone      string
}

var (
	// DNI: an 8-digit run, optionally with a label in front.
	dniRE = regexp.MustCompile(`(?i)\b(?:dni[:\s]*|documento[:\s]*|doc[:\s]*)?(\d{8})\b`)

	// Phone: +51 with optional separators, or a bare 9-digit mobile.
	phoneRE    = regexp.MustCompile(`(\+?51[\s\-]?9?[\s\-]?\d{3}[\s\-]?\d{3}[\s\-]?\d{3}|\b9\d{8}\b)`)
	phoneSepRE = regexp.MustCompile(`[\s\-]`)

	// Name: "me llamo X", "mi nombre es X", "soy X" with up to 4 tokens.
	nameRE      = regexp.MustCompile(`(?i)(?:me llamo|mi nombre es|soy)\s+([A-ZÑÁÉÍÓÚ][\wñáéíóúÁÉÍÓÚ\-]+(?:\s+[A-ZÑÁÉÍÓÚ][\wñáéíóúÁÉÍÓÚ\-]+){0,3})`)
	nameLabelRE = regexp.MustCompile(`(?i)(?:nombre(?: a nombre)?:|nombre completo:)\s*([a-zA-ZÁÉÍÓÚáéíóúñÑ0-9\s\-]+)`)
)

// ExtractContact pulls name / document id / phone number out of free text.
// Callers must never assume presence: nil means nothing was found.
func ExtractContact(text string) *ContactInfo {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var info ContactInfo

	if m := dniRE.FindStringSubmatch(text); m != nil {
		info.DocumentID = m[1]
	}

	if m := phoneRE.FindStringSubmatch(text); m != nil {
		info.Phone = phoneSepRE.ReplaceAllString(m[1], "")
	}

	if m := nameRE.FindStringSubmatch(text); m != nil {
		info.Name = strings.TrimSpace(m[1])
	}
	if info.Name == "" {
		if m := nameLabelRE.FindStringSubmatch(text); m != nil {
			info.Name = strings.TrimSpace(m[1])
		}
	}
	if info.Name != "" {
		info.Name = spacesRE.ReplaceAllString(info.Name, " ")
	}

	if info.Name == "" && info.DocumentID == "" && info.Phone == "" {
		return nil
	}
	return &info
}
