package models

import "time"

// User is a registered customer account. Accounts stay inactive until the
// email verification token is redeemed.
type User struct {
	ID           string    `json:"id" bson:"id"`
	Email        string    `json:"email" bson:"email"`
	Name         string    `json:"name" bson:"name"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	Verified     bool      `json:"verified" bson:"verified"`
	VerifyToken  string    `json:"-" bson:"verifyToken,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}
