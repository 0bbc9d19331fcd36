package experienceRepo

import (
	"context"

	"central/database"
	"central/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ExperienceRepository interface {
	GetByID(ctx context.Context, id int) (*models.Experience, error)
	GetByCode(ctx context.Context, code string) (*models.Experience, error)
	List(ctx context.Context) ([]models.Experience, error)
	SeedDefaults(ctx context.Context) error
}

type mongoExperienceRepo struct {
	coll *mongo.Collection
}

// NewMongoExperienceRepo returns an ExperienceRepository backed by MongoDB.
func NewMongoExperienceRepo() ExperienceRepository {
	return &mongoExperienceRepo{
		coll: database.DB().Collection("experiences"),
	}
}
