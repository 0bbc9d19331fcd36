package reservation

import (
	"context"

	preferenceRepo "central/database/repository/preference"
	reservationRepo "central/database/repository/reservation"
	"central/models"
	"central/services/chat"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ConfirmResult is the outcome of a confirmation attempt. When the caller is
// anonymous the draft is parked as pending and NeedLogin is set instead of
// creating a reservation.
type ConfirmResult struct {
	Reservation *models.Reservation `json:"reservation,omitempty"`
	NeedLogin   bool                `json:"needLogin,omitempty"`
	Message     string              `json:"message"`
}

// Slot is a bookable table time offered by the slots endpoint.
type Slot struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Time    string `json:"time"` // HH:MM
	Display string `json:"display"`
}

// ReservationService turns completed chat drafts into persisted reservations.
type ReservationService interface {
	// Confirm books the conversation's completed draft. Anonymous callers get
	// the draft parked as pending plus NeedLogin.
	Confirm(ctx context.Context, conversationID string, ident chat.Identity) (*ConfirmResult, error)

	// ConfirmPending books the draft parked by an earlier anonymous Confirm,
	// now that the caller is authenticated.
	ConfirmPending(ctx context.Context, conversationID string, ident chat.Identity) (*ConfirmResult, error)

	// SavePreferences persists the current draft's reusable fields as the
	// user's defaults for future conversations.
	SavePreferences(ctx context.Context, conversationID string, ident chat.Identity) error

	// AvailableSlots lists the dinner seatings for the next N days.
	AvailableSlots(ctx context.Context, days int) ([]Slot, error)

	// ListByUser returns the caller's reservations, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Reservation, error)
}

// DefaultReservationService is the production implementation.
type DefaultReservationService struct {
	Repo        reservationRepo.ReservationRepository
	Prefs       preferenceRepo.PreferenceRepository
	Sessions    chat.SessionStore
	Recommender chat.Recommender
	Queue       *asynq.Client
	Logger      *zap.Logger
}
