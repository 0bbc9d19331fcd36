package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"central/models"

	"go.uber.org/zap"
)

// savedPreferenceData is the subset of the persisted preference blob used to
// prefill a fresh draft.
type savedPreferenceData struct {
	PartySize    int    `json:"partySize"`
	ExperienceID int    `json:"experienceId"`
	Restrictions string `json:"restrictions"`
	UserName     string `json:"userName"`
}

// Greeting opens or resumes a conversation. For authenticated users with no
// active draft the stored preferences prefill a new one, and the greeting
// summarizes what is already known.
func (s *DefaultChatService) Greeting(ctx context.Context, conversationID string, ident Identity) (string, *models.ReservationDraft, error) {
	conv, err := s.Sessions.GetConversation(ctx, conversationID)
	if err != nil {
		return "", nil, fmt.Errorf("load conversation: %w", err)
	}
	draft, err := s.Sessions.GetDraft(ctx, conversationID)
	if err != nil {
		return "", nil, fmt.Errorf("load draft: %w", err)
	}

	if draft == nil && ident.Authenticated() && s.Preferences != nil {
		draft = s.prefillFromPreferences(ctx, conversationID, ident)
	}

	if len(conv) > 0 {
		last := conv[len(conv)-1]
		return strings.TrimPrefix(last, "Bot: "), draft, nil
	}

	initial := "¡Hola! Soy el asistente de Central. ¿Qué experiencia te interesa o para qué día quieres reservar?"
	if draft != nil && (draft.FromInitialForm || draft.PartySize > 0 || draft.ExperienceID > 0 || draft.Restrictions != "") {
		name := draft.UserName
		if name == "" {
			name = "amigo"
		}
		var parts []string
		if draft.PartySize > 0 {
			parts = append(parts, fmt.Sprintf("%d comensales", draft.PartySize))
		}
		if draft.ExperienceID > 0 {
			parts = append(parts, fmt.Sprintf("experiencia #%d", draft.ExperienceID))
		}
		if draft.Restrictions != "" {
			parts = append(parts, "restricciones: "+draft.Restrictions)
		}
		initial = fmt.Sprintf("¡Hola %s! Ya tengo algunos detalles: %s. "+
			"¿Deseas que te ayude a reservar ahora? (Responde 'sí' para continuar o 'no' para volver al perfil).",
			name, strings.Join(parts, ", "))
	}

	if err := s.Sessions.SaveConversation(ctx, conversationID, []string{"Bot: " + initial}); err != nil {
		s.Logger.Warn("failed to save greeting", zap.String("conversationId", conversationID), zap.Error(err))
	}
	return initial, draft, nil
}

// prefillFromPreferences loads the user's saved preference blob into a fresh
// draft. Any failure is logged and treated as "no preferences".
func (s *DefaultChatService) prefillFromPreferences(ctx context.Context, conversationID string, ident Identity) *models.ReservationDraft {
	pref, err := s.Preferences.GetByUser(ctx, ident.UserID)
	if err != nil || pref == nil || strings.TrimSpace(pref.DataJSON) == "" {
		if err != nil {
			s.Logger.Warn("could not load user preferences", zap.String("userId", ident.UserID), zap.Error(err))
		}
		return nil
	}

	var data savedPreferenceData
	if err := json.Unmarshal([]byte(pref.DataJSON), &data); err != nil {
		s.Logger.Warn("stored preference blob is malformed",
			zap.String("userId", ident.UserID), zap.Error(err))
		return nil
	}

	draft := &models.ReservationDraft{
		PartySize:       data.PartySize,
		ExperienceID:    data.ExperienceID,
		Restrictions:    data.Restrictions,
		UserName:        data.UserName,
		FromInitialForm: false,
	}
	draft.Step = NextStep(*draft)

	if err := s.Sessions.SaveDraft(ctx, conversationID, draft); err != nil {
		s.Logger.Warn("failed to save prefilled draft", zap.String("conversationId", conversationID), zap.Error(err))
	}
	return draft
}
