package models

// ChatRequest is the payload coming from the frontend into /api/chat/message.
type ChatRequest struct {
	ConversationID string `json:"conversationId"`
	Text           string `json:"text"`
}

// ChatAction is a single button/card action offered when the draft completes.
type ChatAction struct {
	Label  string `json:"label"`
	Action string `json:"action"` // "confirm", "edit", "more_info", "save_preferences"
}

// ReservationSummary is the priced summary built when the draft reaches the
// terminal step. It is not persisted; confirmation persists the reservation.
type ReservationSummary struct {
	Text           string  `json:"text"`
	ExperienceID   int     `json:"experienceId"`
	ExperienceName string  `json:"experienceName"`
	DateTime       string  `json:"dateTime"`
	UnitPrice      float64 `json:"unitPrice"`
	Total          float64 `json:"total"`
	UnitPriceText  string  `json:"unitPriceText"`
	TotalText      string  `json:"totalText"`
}

// TurnResult is what one chat turn returns to the frontend: the natural
// language reply plus the draft snapshot, and summary/actions once done.
type TurnResult struct {
	Reply   string              `json:"bot"`
	Draft   ReservationDraft    `json:"draft"`
	Done    bool                `json:"done"`
	Summary *ReservationSummary `json:"summary,omitempty"`
	Actions []ChatAction        `json:"actions,omitempty"`
}
