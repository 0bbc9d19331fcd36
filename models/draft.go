package models

// Step is the single next question the assistant must ask, derived from
// draft completeness. StepDone is the only terminal value.
type Step string

const (
	StepAskExperience   Step = "ask_experience"
	StepAskPartySize    Step = "ask_party_size"
	StepAskRestrictions Step = "ask_restrictions"
	StepAskDay          Step = "ask_day"
	StepAskTime         Step = "ask_time"
	StepAskName         Step = "ask_name"
	StepAskDocumentID   Step = "ask_document_id"
	StepAskPhone        Step = "ask_phone"
	StepAskPreferences  Step = "ask_preferences"
	StepDone            Step = "done"
)

// NoRestrictions is the reserved restrictions token recorded when the user
// explicitly answers that they have none. An empty Restrictions field means
// the question has not been answered yet.
const NoRestrictions = "ninguna"

// ReservationDraft is the in-progress reservation built up over a multi-turn
// conversation. Day and Time stay free text until parsed at summary time.
// Step is always recomputed from the other fields after a merge, never
// trusted if stale.
type ReservationDraft struct {
	Day       string `json:"day,omitempty"`
	Time      string `json:"time,omitempty"`
	PartySize int    `json:"partySize"`

	// ExperienceID references the experience catalog; 0 means not chosen yet.
	ExperienceID int `json:"experienceId,omitempty"`

	// Restrictions is a semicolon-joined set of canonical restriction tokens.
	Restrictions string `json:"restrictions,omitempty"`

	UserName   string `json:"userName,omitempty"`
	DocumentID string `json:"documentId,omitempty"`
	Phone      string `json:"phone,omitempty"`

	// PreferencesJSON holds the serialized free-form preference payload.
	// Its mere presence marks the preferences question as answered.
	PreferencesJSON string `json:"preferencesJson,omitempty"`

	Step Step `json:"step"`

	// FromInitialForm marks drafts prefilled from the pre-chat questionnaire.
	FromInitialForm bool `json:"fromInitialForm"`
}

// PreferencePayload is the minimal stable schema serialized into
// ReservationDraft.PreferencesJSON. Free-form preference text is deliberately
// kept opaque beyond this envelope.
type PreferencePayload struct {
	Text       string `json:"text"`
	CapturedAt string `json:"capturedAt"`
	Source     string `json:"source"`
	Detected   bool   `json:"detected,omitempty"`
}
