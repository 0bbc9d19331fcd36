package models

import "time"

// Reservation is the persisted record created when a completed draft is
// confirmed by the user.
type Reservation struct {
	ID           string    `json:"id" bson:"id"`
	UserID       string    `json:"userId" bson:"userId"`
	Name         string    `json:"name" bson:"name"` // display label, includes DNI/phone when present
	PartySize    int       `json:"partySize" bson:"partySize"`
	ExperienceID int       `json:"experienceId" bson:"experienceId"`
	Restrictions string    `json:"restrictions,omitempty" bson:"restrictions,omitempty"`
	DateTime     time.Time `json:"dateTime" bson:"dateTime"`
	Status       string    `json:"status" bson:"status"` // "pending", "confirmed", "cancelled"
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// RecommendationLog records which experience was suggested/booked for a
// reservation, with the draft features that produced it. Non-critical.
type RecommendationLog struct {
	ID            string    `json:"id" bson:"id"`
	UserID        string    `json:"userId" bson:"userId"`
	ReservationID string    `json:"reservationId" bson:"reservationId"`
	ExperienceID  int       `json:"experienceId" bson:"experienceId"`
	FeaturesJSON  string    `json:"featuresJson,omitempty" bson:"featuresJson,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// ReminderPayload is the asynq task payload for reservation reminders.
type ReminderPayload struct {
	ReservationID string `json:"reservationId"`
	UserID        string `json:"userId"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	FireDate      string `json:"fireDate"`
}
