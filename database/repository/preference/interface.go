package preferenceRepo

import (
	"context"

	"central/database"
	"central/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type PreferenceRepository interface {
	Upsert(ctx context.Context, userID, dataJSON string) error
	GetByUser(ctx context.Context, userID string) (*models.Preference, error)
}

type mongoPreferenceRepo struct {
	coll *mongo.Collection
}

// NewMongoPreferenceRepo returns a PreferenceRepository backed by MongoDB.
func NewMongoPreferenceRepo() PreferenceRepository {
	return &mongoPreferenceRepo{
		coll: database.DB().Collection("preferences"),
	}
}
