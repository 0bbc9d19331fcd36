package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"central/models"

	"go.uber.org/zap"
)

// maxPromptLines bounds the conversation window sent to the NLU model.
const maxPromptLines = 40

// HandleTurn runs one full conversation turn: it calls the external model
// seeded with the known draft fields, merges the structured result and the
// heuristic extractions into the draft (structured fields win, heuristics
// only fill gaps), recomputes the next step, and builds the priced summary
// once the draft is complete.
//
// On NLU failure or cancellation the draft is left untouched.
func (s *DefaultChatService) HandleTurn(ctx context.Context, conversationID string, ident Identity, userText string) (*models.TurnResult, error) {
	if strings.TrimSpace(userText) == "" {
		return nil, errors.New("empty user text")
	}

	conv, err := s.Sessions.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	stored, err := s.Sessions.GetDraft(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	draft := models.ReservationDraft{}
	if stored != nil {
		draft = *stored
	}

	// The step the assistant was on before this turn's merge decides how to
	// read a bare "no" (restrictions) and a direct preferences answer.
	stepBefore := NextStep(draft)

	conv = append(conv, "Usuario: "+userText)
	promptContext := buildPromptContext(draft, conv)

	result, err := s.NLU.Converse(ctx, promptContext, userText)
	if err != nil {
		// gRPC-backed providers surface a caller abort as a status error
		// that does not unwrap to context.Canceled, so check the context too.
		if errors.Is(err, context.Canceled) || ctx.Err() == context.Canceled {
			s.Logger.Warn("nlu call cancelled", zap.String("conversationId", conversationID))
			return nil, NewCancelledError(err)
		}
		s.Logger.Error("nlu call failed", zap.String("conversationId", conversationID), zap.Error(err))
		return nil, NewRetryableError("nlu service unavailable", err)
	}

	reply := strings.TrimSpace(result.Reply)
	if reply == "" {
		reply = "[Sin respuesta]"
	}
	conv = append(conv, "Bot: "+reply)

	s.mergeStructured(ctx, &draft, result)
	s.mergeRestrictions(&draft, userText, stepBefore)
	s.mergeContact(&draft, result, userText, ident)
	s.mergePreferences(&draft, result, userText, stepBefore)

	draft.Step = NextStep(draft)

	if err := s.Sessions.SaveConversation(ctx, conversationID, conv); err != nil {
		// history loss is recoverable, don't fail the turn
		s.Logger.Warn("failed to save conversation", zap.String("conversationId", conversationID), zap.Error(err))
	}
	if err := s.Sessions.SaveDraft(ctx, conversationID, &draft); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	turn := &models.TurnResult{
		Reply: reply,
		Draft: draft,
		Done:  draft.Step == models.StepDone,
	}
	if turn.Done {
		turn.Summary, turn.Actions = s.buildSummary(ctx, &draft, ident)
	}
	return turn, nil
}

// buildPromptContext prefixes the rolling conversation window with the
// already-known draft fields so the model doesn't re-ask for known data.
func buildPromptContext(draft models.ReservationDraft, conv []string) string {
	var known []string
	if draft.UserName != "" {
		known = append(known, "NombreUsuario: "+draft.UserName)
	}
	if draft.PartySize > 0 {
		known = append(known, fmt.Sprintf("Personas: %d", draft.PartySize))
	}
	if draft.ExperienceID > 0 {
		known = append(known, fmt.Sprintf("ExperienciaId: %d", draft.ExperienceID))
	}
	if draft.Restrictions != "" {
		known = append(known, "Restricciones: "+draft.Restrictions)
	}
	if draft.PreferencesJSON != "" {
		known = append(known, "Preferencias: "+draft.PreferencesJSON)
	}

	window := conv
	if len(window) > maxPromptLines {
		window = window[len(window)-maxPromptLines:]
	}

	prefix := ""
	if len(known) > 0 {
		prefix = "INFORMACION_INICIAL: " + strings.Join(known, " ; ") + "\n\n"
	}
	return prefix + strings.Join(window, "\n")
}

// mergeStructured merges the model's structured fields into the draft.
// Structured fields take priority over the heuristic passes that follow, but
// only ever fill currently-empty fields: a user-confirmed value is never
// overwritten by a later guess.
func (s *DefaultChatService) mergeStructured(ctx context.Context, draft *models.ReservationDraft, result *models.NLUResult) {
	if draft.Day == "" && strings.TrimSpace(result.Day) != "" {
		draft.Day = strings.TrimSpace(result.Day)
	}
	if draft.Time == "" && strings.TrimSpace(result.Time) != "" {
		draft.Time = strings.TrimSpace(result.Time)
	}
	if draft.PartySize <= 0 && result.PartySize > 0 {
		draft.PartySize = result.PartySize
	}
	if draft.ExperienceID == 0 && result.ExperienceID > 0 {
		draft.ExperienceID = result.ExperienceID
	}
	if draft.ExperienceID == 0 && result.ExperienceCode != "" {
		if n, err := strconv.Atoi(strings.TrimLeft(result.ExperienceCode, "0")); err == nil && n > 0 {
			draft.ExperienceID = n
		} else if exp, err := s.Catalog.GetByCode(ctx, result.ExperienceCode); err == nil && exp != nil {
			draft.ExperienceID = exp.ID
		}
	}
}

// mergeRestrictions extracts restrictions from the user's text only (never
// from the assistant's reply, which could echo its own suggestions). A bare
// "no" answer becomes the explicit none marker, but only when restrictions
// were the question being asked.
func (s *DefaultChatService) mergeRestrictions(draft *models.ReservationDraft, userText string, stepBefore models.Step) {
	if extracted := ExtractRestrictions(userText); extracted != "" {
		draft.Restrictions = MergeRestrictions(draft.Restrictions, extracted)
		return
	}
	if stepBefore == models.StepAskRestrictions && noneAnswerRE.MatchString(Normalize(userText)) {
		draft.Restrictions = models.NoRestrictions
	}
}

// mergeContact fills contact fields: structured NLU fields first, heuristic
// extraction for the remaining gaps, and the authenticated display name as a
// last resort for the user name only.
func (s *DefaultChatService) mergeContact(draft *models.ReservationDraft, result *models.NLUResult, userText string, ident Identity) {
	if draft.UserName == "" && strings.TrimSpace(result.ClientName) != "" {
		draft.UserName = strings.TrimSpace(result.ClientName)
	}
	if draft.DocumentID == "" && strings.TrimSpace(result.ClientDNI) != "" {
		draft.DocumentID = strings.TrimSpace(result.ClientDNI)
	}
	if draft.Phone == "" && strings.TrimSpace(result.ClientPhone) != "" {
		draft.Phone = strings.TrimSpace(result.ClientPhone)
	}

	if info := ExtractContact(userText); info != nil {
		if draft.UserName == "" && info.Name != "" {
			draft.UserName = info.Name
		}
		if draft.DocumentID == "" && info.DocumentID != "" {
			draft.DocumentID = info.DocumentID
		}
		if draft.Phone == "" && info.Phone != "" {
			draft.Phone = info.Phone
		}
	}

	if draft.UserName == "" && ident.Authenticated() {
		draft.UserName = ident.DisplayName
	}
}

// mergePreferences captures taste signal. A direct answer to the preferences
// question is stored verbatim; otherwise automatic detection runs on the
// user's text first, and only then on the model's raw response, gated on
// explicit preference keywords so the assistant's own suggestions aren't
// captured as if the user said them.
func (s *DefaultChatService) mergePreferences(draft *models.ReservationDraft, result *models.NLUResult, userText string, stepBefore models.Step) {
	now := time.Now().UTC().Format(time.RFC3339)

	if stepBefore == models.StepAskPreferences {
		payload := models.PreferencePayload{
			Text:       strings.TrimSpace(userText),
			CapturedAt: now,
			Source:     "user",
		}
		if b, err := json.Marshal(payload); err == nil {
			draft.PreferencesJSON = string(b)
		}
		return
	}

	if draft.PreferencesJSON != "" {
		return
	}

	detected := ExtractPreferences(userText)
	if detected == "" && result.RawResponse != "" && HasPreferenceKeywords(result.RawResponse) {
		detected = ExtractPreferences(result.RawResponse)
	}
	if detected == "" {
		return
	}

	payload := models.PreferencePayload{
		Text:       detected,
		CapturedAt: now,
		Source:     "detected",
		Detected:   true,
	}
	if b, err := json.Marshal(payload); err == nil {
		draft.PreferencesJSON = string(b)
	}
}

// ClearSession drops all conversation state.
func (s *DefaultChatService) ClearSession(ctx context.Context, conversationID string) error {
	return s.Sessions.Clear(ctx, conversationID)
}
