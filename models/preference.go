package models

import "time"

// Preference stores a user's saved reservation defaults and taste signal as
// an opaque JSON blob, one document per user.
type Preference struct {
	ID        string    `json:"id" bson:"id"`
	UserID    string    `json:"userId" bson:"userId"`
	DataJSON  string    `json:"dataJson" bson:"dataJson"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
