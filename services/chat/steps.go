package chat

import "central/models"

// NextStep computes the single next unanswered question for a draft, in a
// fixed priority order. The ordering is a design contract: the conversation
// converges in at most nine field-filling turns and there is never a race
// between simultaneously-unanswered fields.
//
// NextStep is a pure function of the draft. It must be recomputed after every
// merge; a stored Step value is a snapshot for clients, never an input.
func NextStep(d models.ReservationDraft) models.Step {
	switch {
	case d.ExperienceID == 0:
		return models.StepAskExperience
	case d.PartySize <= 0:
		return models.StepAskPartySize
	case d.Restrictions == "":
		return models.StepAskRestrictions
	case d.Day == "":
		return models.StepAskDay
	case d.Time == "":
		return models.StepAskTime
	case d.UserName == "":
		return models.StepAskName
	case d.DocumentID == "":
		return models.StepAskDocumentID
	case d.Phone == "":
		return models.StepAskPhone
	case d.PreferencesJSON == "":
		return models.StepAskPreferences
	default:
		return models.StepDone
	}
}
