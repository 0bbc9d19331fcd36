// Package cron runs the background asynq worker that delivers reservation
// reminders when their scheduled time arrives.
package cron

import (
	"context"
	"encoding/json"
	"fmt"

	"central/config"
	"central/models"
	"central/services/reservation"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderWorker consumes scheduled reminder tasks from the queue.
type ReminderWorker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

func NewReminderWorker(logger *zap.Logger) *ReminderWorker {
	server := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		},
		asynq.Config{Concurrency: 2},
	)

	w := &ReminderWorker{
		server: server,
		mux:    asynq.NewServeMux(),
		logger: logger.Named("reminders"),
	}
	w.mux.HandleFunc(reservation.TypeReservationReminder, w.handleReminder)
	return w
}

// Run blocks consuming tasks until Shutdown is called.
func (w *ReminderWorker) Run() {
	if err := w.server.Run(w.mux); err != nil {
		w.logger.Error("reminder worker stopped", zap.Error(err))
	}
}

func (w *ReminderWorker) Shutdown() {
	w.server.Shutdown()
}

// handleReminder delivers one reminder. Delivery is a log line until a push
// or mail channel is wired; a malformed payload is dropped, not retried.
func (w *ReminderWorker) handleReminder(ctx context.Context, t *asynq.Task) error {
	var payload models.ReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode reminder payload: %v: %w", err, asynq.SkipRetry)
	}

	w.logger.Info("reservation reminder due",
		zap.String("reservationId", payload.ReservationID),
		zap.String("userId", payload.UserID),
		zap.String("title", payload.Title),
		zap.String("body", payload.Body),
		zap.String("fireDate", payload.FireDate),
	)
	return nil
}
