package reservationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"central/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new reservation and returns its ID.
func (r *mongoReservationRepo) Create(ctx context.Context, res models.Reservation) (string, error) {
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	res.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, res)
	if err != nil {
		return "", fmt.Errorf("failed to create reservation: %w", err)
	}
	return res.ID, nil
}

// GetByID returns a reservation by its ID.
func (r *mongoReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	var res models.Reservation
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&res)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("reservation %s not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to fetch reservation %s: %w", id, err)
	}
	return &res, nil
}

// GetByUser fetches all reservations for a user, newest first.
func (r *mongoReservationRepo) GetByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations for %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var results []models.Reservation
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return results, nil
}

// UpdateStatus transitions a reservation between pending/confirmed/cancelled.
func (r *mongoReservationRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to update reservation %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return errors.New("reservation not found")
	}
	return nil
}

// CreateLog records the recommendation features behind a booking.
func (r *mongoReservationRepo) CreateLog(ctx context.Context, logEntry models.RecommendationLog) error {
	if logEntry.ID == "" {
		logEntry.ID = uuid.New().String()
	}
	logEntry.CreatedAt = time.Now()

	if _, err := r.logs.InsertOne(ctx, logEntry); err != nil {
		return fmt.Errorf("failed to create recommendation log: %w", err)
	}
	return nil
}

// ListLogs returns the most recent recommendation logs, up to limit.
func (r *mongoReservationRepo) ListLogs(ctx context.Context, limit int64) ([]models.RecommendationLog, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := r.logs.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendation logs: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.RecommendationLog
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode recommendation logs: %w", err)
	}
	return results, nil
}
