package reservationRepo

import (
	"context"

	"central/database"
	"central/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ReservationRepository interface {
	Create(ctx context.Context, res models.Reservation) (string, error)
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	GetByUser(ctx context.Context, userID string) ([]models.Reservation, error)
	UpdateStatus(ctx context.Context, id, status string) error
	CreateLog(ctx context.Context, logEntry models.RecommendationLog) error
	ListLogs(ctx context.Context, limit int64) ([]models.RecommendationLog, error)
}

type mongoReservationRepo struct {
	coll *mongo.Collection
	logs *mongo.Collection
}

// NewMongoReservationRepo returns a ReservationRepository backed by MongoDB.
func NewMongoReservationRepo() ReservationRepository {
	db := database.DB()
	return &mongoReservationRepo{
		coll: db.Collection("reservations"),
		logs: db.Collection("recommendation_logs"),
	}
}
