package experienceRepo

import (
	"context"
	"fmt"
	"time"

	"central/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID returns the experience with the given numeric id.
func (r *mongoExperienceRepo) GetByID(ctx context.Context, id int) (*models.Experience, error) {
	var exp models.Experience
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&exp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("experience %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to fetch experience %d: %w", id, err)
	}
	return &exp, nil
}

// GetByCode returns the experience with the given menu code ("01", "02"...).
func (r *mongoExperienceRepo) GetByCode(ctx context.Context, code string) (*models.Experience, error) {
	var exp models.Experience
	err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&exp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("experience code %q not found: %w", code, err)
		}
		return nil, fmt.Errorf("failed to fetch experience code %q: %w", code, err)
	}
	return &exp, nil
}

// List returns the full catalog ordered by id.
func (r *mongoExperienceRepo) List(ctx context.Context) ([]models.Experience, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}
	defer cursor.Close(ctx)

	var exps []models.Experience
	if err := cursor.All(ctx, &exps); err != nil {
		return nil, fmt.Errorf("failed to decode experiences: %w", err)
	}
	return exps, nil
}

// SeedDefaults upserts the restaurant's standing menu so a fresh database
// can serve the chat flow immediately.
func (r *mongoExperienceRepo) SeedDefaults(ctx context.Context) error {
	defaults := []models.Experience{
		{ID: 1, Code: "01", Name: "Mundo en Degustación", Description: "Menú degustación de temporada", Price: 150},
		{ID: 2, Code: "02", Name: "Inmersión Costa Sierra Selva", Description: "Recorrido por los ecosistemas del Perú", Price: 190},
		{ID: 3, Code: "03", Name: "Theobroma", Description: "Experiencia centrada en el cacao", Price: 120},
	}
	for _, exp := range defaults {
		exp.CreatedAt = time.Now()
		_, err := r.coll.UpdateOne(ctx,
			bson.M{"id": exp.ID},
			bson.M{"$setOnInsert": exp},
			options.Update().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("failed to seed experience %d: %w", exp.ID, err)
		}
	}
	return nil
}
