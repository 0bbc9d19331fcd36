package preferenceRepo

import (
	"context"
	"fmt"
	"time"

	"central/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Upsert stores the user's preference blob, one document per user.
func (r *mongoPreferenceRepo) Upsert(ctx context.Context, userID, dataJSON string) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"dataJson":  dataJSON,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"id":        uuid.New().String(),
			"userId":    userID,
			"createdAt": now,
		},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, update,
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert preferences for %s: %w", userID, err)
	}
	return nil
}

// GetByUser returns the stored preferences, or (nil, nil) when none exist.
func (r *mongoPreferenceRepo) GetByUser(ctx context.Context, userID string) (*models.Preference, error) {
	var pref models.Preference
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&pref)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch preferences for %s: %w", userID, err)
	}
	return &pref, nil
}
