package reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"central/models"
	"central/services/chat"

	"go.uber.org/zap"
)

var (
	// ErrNoDraft means the conversation has nothing to confirm.
	ErrNoDraft = errors.New("no active reservation draft")
	// ErrNoPendingDraft means no draft was parked for post-login confirmation.
	ErrNoPendingDraft = errors.New("no pending reservation draft")
)

const defaultDinnerHour = 19

// draftFeatures is the features blob logged with each booking; the
// recommender reads the same shape back when scoring.
type draftFeatures struct {
	PartySize    int    `json:"personas"`
	Restrictions string `json:"restricciones"`
}

// Confirm books the conversation's draft. Anonymous callers get the draft
// moved to the pending slot so it survives the login round-trip.
func (s *DefaultReservationService) Confirm(ctx context.Context, conversationID string, ident chat.Identity) (*ConfirmResult, error) {
	draft, err := s.Sessions.GetDraft(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	if draft == nil {
		return nil, ErrNoDraft
	}

	if !ident.Authenticated() {
		if err := s.Sessions.SavePendingDraft(ctx, conversationID, draft); err != nil {
			return nil, fmt.Errorf("park pending draft: %w", err)
		}
		return &ConfirmResult{
			NeedLogin: true,
			Message:   "Para confirmar tu reserva necesitas iniciar sesión. Tus datos quedan guardados.",
		}, nil
	}
	return s.confirmDraft(ctx, conversationID, ident, draft)
}

// ConfirmPending books the draft parked by an earlier anonymous Confirm.
func (s *DefaultReservationService) ConfirmPending(ctx context.Context, conversationID string, ident chat.Identity) (*ConfirmResult, error) {
	if !ident.Authenticated() {
		return nil, errors.New("authentication required")
	}
	draft, err := s.Sessions.GetPendingDraft(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load pending draft: %w", err)
	}
	if draft == nil {
		return nil, ErrNoPendingDraft
	}

	result, err := s.confirmDraft(ctx, conversationID, ident, draft)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.ClearPendingDraft(ctx, conversationID); err != nil {
		s.Logger.Warn("failed to clear pending draft",
			zap.String("conversationId", conversationID), zap.Error(err))
	}
	return result, nil
}

// confirmDraft materializes a reservation from the draft, logs the
// recommendation features, schedules the reminder and drops the session.
// Only the reservation insert itself is fatal.
func (s *DefaultReservationService) confirmDraft(ctx context.Context, conversationID string, ident chat.Identity, draft *models.ReservationDraft) (*ConfirmResult, error) {
	expID := draft.ExperienceID
	if expID == 0 && s.Recommender != nil {
		predicted, err := s.Recommender.Predict(ctx, draft.PartySize, restrictionFeature(draft.Restrictions))
		if err != nil {
			s.Logger.Debug("recommender unavailable for confirmation", zap.Error(err))
		} else {
			expID = predicted
		}
	}
	if expID == 0 {
		expID = 1
	}

	partySize := draft.PartySize
	if partySize < 1 {
		partySize = 1
	}

	res := models.Reservation{
		UserID:       ident.UserID,
		Name:         displayName(draft, ident),
		PartySize:    partySize,
		ExperienceID: expID,
		Restrictions: restrictionFeature(draft.Restrictions),
		DateTime:     reservationTime(draft),
		Status:       "confirmed",
	}

	id, err := s.Repo.Create(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}
	res.ID = id

	features, _ := json.Marshal(draftFeatures{
		PartySize:    partySize,
		Restrictions: res.Restrictions,
	})
	if err := s.Repo.CreateLog(ctx, models.RecommendationLog{
		UserID:        ident.UserID,
		ReservationID: id,
		ExperienceID:  expID,
		FeaturesJSON:  string(features),
	}); err != nil {
		s.Logger.Warn("failed to write recommendation log",
			zap.String("reservationId", id), zap.Error(err))
	}

	s.scheduleReminder(res)

	if err := s.Sessions.Clear(ctx, conversationID); err != nil {
		s.Logger.Warn("failed to clear session after confirmation",
			zap.String("conversationId", conversationID), zap.Error(err))
	}

	return &ConfirmResult{
		Reservation: &res,
		Message: fmt.Sprintf("¡Reserva confirmada para %d persona(s) el %s! Te esperamos.",
			res.PartySize, formatSpanishDate(res.DateTime)),
	}, nil
}

// SavePreferences stores the draft's reusable fields as the user's defaults.
func (s *DefaultReservationService) SavePreferences(ctx context.Context, conversationID string, ident chat.Identity) error {
	if !ident.Authenticated() {
		return errors.New("authentication required")
	}
	draft, err := s.Sessions.GetDraft(ctx, conversationID)
	if err != nil {
		return fmt.Errorf("load draft: %w", err)
	}
	if draft == nil {
		return ErrNoDraft
	}

	blob, err := json.Marshal(map[string]interface{}{
		"partySize":    draft.PartySize,
		"experienceId": draft.ExperienceID,
		"restrictions": restrictionFeature(draft.Restrictions),
		"userName":     draft.UserName,
		"preferences":  json.RawMessage(orNullJSON(draft.PreferencesJSON)),
	})
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := s.Prefs.Upsert(ctx, ident.UserID, string(blob)); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

const maxSlotDays = 14

// AvailableSlots returns the future dinner seatings over the next N days,
// today included, capped at two weeks.
func (s *DefaultReservationService) AvailableSlots(ctx context.Context, days int) ([]Slot, error) {
	return availableSlotsFrom(time.Now(), days), nil
}

func availableSlotsFrom(now time.Time, days int) []Slot {
	if days < 1 {
		days = 7
	}
	if days > maxSlotDays {
		days = maxSlotDays
	}
	hours := []int{18, 19, 20}

	slots := make([]Slot, 0, days*len(hours))
	for d := 0; d < days; d++ {
		day := now.AddDate(0, 0, d)
		for _, h := range hours {
			at := time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, day.Location())
			if !at.After(now) {
				continue
			}
			slots = append(slots, Slot{
				Date:    at.Format("2006-01-02"),
				Time:    at.Format("15:04"),
				Display: formatSpanishDate(at),
			})
		}
	}
	return slots
}

// ListByUser returns the caller's reservations, newest first.
func (s *DefaultReservationService) ListByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	return s.Repo.GetByUser(ctx, userID)
}

// reservationTime parses the draft's day/time, defaulting to tomorrow's
// dinner seating when the text never resolved to a timestamp.
func reservationTime(draft *models.ReservationDraft) time.Time {
	if t := chat.ParseDateTime(draft.Day, draft.Time); !t.IsZero() {
		return t
	}
	tomorrow := time.Now().AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(),
		defaultDinnerHour, 0, 0, 0, tomorrow.Location())
}

// displayName builds the label stored on the reservation, folding in DNI and
// phone when captured.
func displayName(draft *models.ReservationDraft, ident chat.Identity) string {
	name := strings.TrimSpace(draft.UserName)
	if name == "" {
		name = strings.TrimSpace(ident.DisplayName)
	}
	if name == "" {
		name = "Invitado"
	}
	var extras []string
	if draft.DocumentID != "" {
		extras = append(extras, "DNI: "+draft.DocumentID)
	}
	if draft.Phone != "" {
		extras = append(extras, "Tel: "+draft.Phone)
	}
	if len(extras) > 0 {
		name += " (" + strings.Join(extras, ", ") + ")"
	}
	return name
}

// restrictionFeature drops the "no restrictions" sentinel for persistence.
func restrictionFeature(restrictions string) string {
	if restrictions == models.NoRestrictions {
		return ""
	}
	return restrictions
}

func orNullJSON(s string) string {
	if strings.TrimSpace(s) == "" {
		return "null"
	}
	return s
}

var spanishWeekdays = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

var spanishMonths = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}

// formatSpanishDate renders a timestamp the way the chat speaks: "viernes 20
// de octubre, 19:00".
func formatSpanishDate(t time.Time) string {
	return fmt.Sprintf("%s %d de %s, %s",
		spanishWeekdays[t.Weekday()], t.Day(), spanishMonths[t.Month()-1], t.Format("15:04"))
}
