package userRepo

import (
	"context"
	"fmt"
	"time"

	"central/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new user and returns its ID.
func (r *mongoUserRepo) Create(ctx context.Context, user models.User) (string, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}
	return user.ID, nil
}

// GetByID returns a user by ID.
func (r *mongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user %s not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", id, err)
	}
	return &user, nil
}

// GetByEmail returns a user by email, or (nil, nil) when none exists.
func (r *mongoUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	return &user, nil
}

// MarkVerified redeems a verification token and activates the account.
func (r *mongoUserRepo) MarkVerified(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"verifyToken": token},
		bson.M{"$set": bson.M{"verified": true}, "$unset": bson.M{"verifyToken": ""}},
	).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("verification token not found: %w", err)
		}
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}
	user.Verified = true
	return &user, nil
}
