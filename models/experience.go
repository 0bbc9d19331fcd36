package models

import "time"

// Experience is a bookable dining experience from the restaurant's catalog.
type Experience struct {
	ID          int       `json:"id" bson:"id"`
	Code        string    `json:"code" bson:"code"` // short menu code, e.g. "01"
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64   `json:"price" bson:"price"` // per person
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
