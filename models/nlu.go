package models

// NLUResult is one external model call's output: the assistant's natural
// language reply plus best-effort structured field extraction. Zero values
// mean the field was not extracted.
type NLUResult struct {
	Reply string `json:"reply"`

	Day            string `json:"day,omitempty"`
	Time           string `json:"time,omitempty"`
	PartySize      int    `json:"partySize,omitempty"`
	ExperienceCode string `json:"experienceCode,omitempty"`
	ExperienceID   int    `json:"experienceId,omitempty"`
	Restrictions   string `json:"restrictions,omitempty"`

	ClientName  string `json:"clientName,omitempty"`
	ClientDNI   string `json:"clientDni,omitempty"`
	ClientPhone string `json:"clientPhone,omitempty"`

	// RawResponse keeps the full API response for logging and for the
	// orchestrator's heuristic fallback scanning.
	RawResponse string  `json:"rawResponse,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
}
