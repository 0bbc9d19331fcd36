package reservation

import (
	"encoding/json"
	"fmt"
	"time"

	"central/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeReservationReminder is the asynq task type for reservation reminders.
const TypeReservationReminder = "reservation:reminder"

const reminderLead = 24 * time.Hour

// NewReminderTask builds the asynq task carrying a reminder payload.
func NewReminderTask(payload models.ReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode reminder payload: %w", err)
	}
	return asynq.NewTask(TypeReservationReminder, data), nil
}

// scheduleReminder enqueues a reminder one day before the seating. Bookings
// inside the lead window or with no queue configured are skipped silently.
func (s *DefaultReservationService) scheduleReminder(res models.Reservation) {
	if s.Queue == nil {
		return
	}
	fireAt := res.DateTime.Add(-reminderLead)
	if fireAt.Before(time.Now()) {
		return
	}

	task, err := NewReminderTask(models.ReminderPayload{
		ReservationID: res.ID,
		UserID:        res.UserID,
		Title:         "Recordatorio de reserva",
		Body: fmt.Sprintf("Tu reserva para %d persona(s) es el %s.",
			res.PartySize, formatSpanishDate(res.DateTime)),
		FireDate: fireAt.Format(time.RFC3339),
	})
	if err != nil {
		s.Logger.Warn("failed to build reminder task",
			zap.String("reservationId", res.ID), zap.Error(err))
		return
	}
	if _, err := s.Queue.Enqueue(task, asynq.ProcessAt(fireAt)); err != nil {
		s.Logger.Warn("failed to enqueue reminder",
			zap.String("reservationId", res.ID), zap.Error(err))
	}
}
