package nlu

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"central/models"
	"central/services/chat"
)

const jsonMarker = "---JSON---"

var trailingJSONRE = regexp.MustCompile(`(?s)\{.*\}`)

// splitReply separates the conversational reply from the structured block.
// Models do not always honor the marker, so when it is missing we fall back
// to the last {...} region of the text.
func splitReply(full string) (reply, jsonPart string) {
	if idx := strings.Index(full, jsonMarker); idx >= 0 {
		reply = strings.TrimSpace(full[:idx])
		jsonPart = strings.TrimSpace(full[idx+len(jsonMarker):])
		return reply, jsonPart
	}
	if m := trailingJSONRE.FindStringIndex(full); m != nil {
		reply = strings.TrimSpace(full[:m[0]])
		jsonPart = strings.TrimSpace(full[m[0]:m[1]])
		return reply, jsonPart
	}
	return strings.TrimSpace(full), ""
}

type structuredPayload struct {
	Dia           string          `json:"dia"`
	Hora          string          `json:"hora"`
	Personas      json.RawMessage `json:"personas"`
	Experiencia   json.RawMessage `json:"experiencia"`
	Restricciones string          `json:"restricciones"`
	Nombre        string          `json:"nombre"`
	DNI           json.RawMessage `json:"dni"`
	Telefono      json.RawMessage `json:"telefono"`
	Confidence    float64         `json:"confidence"`
}

// parseStructured fills res from the JSON block. Malformed JSON is retried
// against the trailing {...} region; if that also fails the structured
// fields stay empty and only the reply survives.
func parseStructured(jsonPart string, res *models.NLUResult) {
	if jsonPart == "" {
		return
	}
	var p structuredPayload
	if err := json.Unmarshal([]byte(jsonPart), &p); err != nil {
		m := trailingJSONRE.FindString(jsonPart)
		if m == "" || json.Unmarshal([]byte(m), &p) != nil {
			return
		}
	}
	res.Day = strings.TrimSpace(p.Dia)
	res.Time = strings.TrimSpace(p.Hora)
	res.Restrictions = strings.TrimSpace(p.Restricciones)
	res.ClientName = strings.TrimSpace(p.Nombre)
	res.ClientDNI = rawToString(p.DNI)
	res.ClientPhone = rawToString(p.Telefono)
	res.Confidence = p.Confidence
	if n, ok := rawToInt(p.Personas); ok && n > 0 {
		res.PartySize = n
	}
	applyExperience(p.Experiencia, res)
}

// applyExperience accepts both shapes the contract allows: a two-digit
// code string ("01") or a bare numeric id.
func applyExperience(raw json.RawMessage, res *models.NLUResult) {
	s := rawToString(raw)
	if s == "" {
		return
	}
	if strings.HasPrefix(s, "0") {
		res.ExperienceCode = s
		return
	}
	if n, err := strconv.Atoi(s); err == nil {
		res.ExperienceID = n
		return
	}
	res.ExperienceCode = s
}

// rawToString tolerates string, number and null encodings of a field.
func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.Itoa(int(n))
	}
	return ""
}

func rawToInt(raw json.RawMessage) (int, bool) {
	s := rawToString(raw)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

var restrictionKeywords = []string{
	"sin gluten", "celiac", "sin lactosa", "vegetarian", "vegan",
	"alergia", "maris", "frutos secos",
}

// applyTextHeuristics is the safety net for models that answer in prose and
// skip the JSON block entirely: scan the full text for experience and
// restriction hints, but never overwrite fields the JSON already set.
func applyTextHeuristics(full string, res *models.NLUResult) {
	lower := chat.Normalize(full)
	if res.ExperienceCode == "" && res.ExperienceID == 0 {
		switch {
		case strings.Contains(lower, "degust"):
			res.ExperienceCode = "01"
		case strings.Contains(lower, "inmers"):
			res.ExperienceCode = "02"
		case strings.Contains(lower, "theobrom") || strings.Contains(lower, "cacao"):
			res.ExperienceCode = "03"
		}
	}
	if res.Restrictions == "" {
		var found []string
		for _, kw := range restrictionKeywords {
			if strings.Contains(lower, kw) {
				found = append(found, kw)
			}
		}
		if len(found) > 0 {
			res.Restrictions = strings.Join(found, "; ")
		}
	}
}

// extractResponseText digs the generated text out of whatever envelope the
// provider returned. Cohere has shipped several response shapes; we try the
// known paths and fall back to the first long string value.
func extractResponseText(body []byte) string {
	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return string(body)
	}
	if s := digString(doc, "text"); s != "" {
		return s
	}
	if s := digString(doc, "response"); s != "" {
		return s
	}
	if out, ok := doc["output"].([]interface{}); ok && len(out) > 0 {
		if item, ok := out[0].(map[string]interface{}); ok {
			if content, ok := item["content"].([]interface{}); ok && len(content) > 0 {
				if c, ok := content[0].(map[string]interface{}); ok {
					if s := digString(c, "text"); s != "" {
						return s
					}
				}
			}
		}
	}
	if choices, ok := doc["choices"].([]interface{}); ok && len(choices) > 0 {
		if choice, ok := choices[0].(map[string]interface{}); ok {
			if msg, ok := choice["message"].(map[string]interface{}); ok {
				if s := digString(msg, "content"); s != "" {
					return s
				}
			}
			if s := digString(choice, "text"); s != "" {
				return s
			}
		}
	}
	if s := firstLongString(doc); s != "" {
		return s
	}
	return string(body)
}

func digString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func firstLongString(v interface{}) string {
	switch t := v.(type) {
	case string:
		if len(t) > 20 {
			return t
		}
	case map[string]interface{}:
		for _, child := range t {
			if s := firstLongString(child); s != "" {
				return s
			}
		}
	case []interface{}:
		for _, child := range t {
			if s := firstLongString(child); s != "" {
				return s
			}
		}
	}
	return ""
}

// parseModelOutput is the shared tail of both clients: split the reply from
// the JSON block, decode the structured fields, and run the prose fallbacks.
func parseModelOutput(full string, rawBody string) *models.NLUResult {
	reply, jsonPart := splitReply(full)
	if reply == "" {
		reply = "[Sin respuesta del asistente]"
	}
	res := &models.NLUResult{Reply: reply, RawResponse: rawBody}
	parseStructured(jsonPart, res)
	applyTextHeuristics(full, res)
	return res
}
