package recommend

import (
	"context"

	"central/models"

	"go.uber.org/zap"
)

// RecommendService suggests an experience id from draft features by scoring
// past recommendation logs.
type RecommendService interface {
	Predict(ctx context.Context, partySize int, restrictions string) (int, error)
}

// LogSource is the slice of the reservation repository the recommender reads.
type LogSource interface {
	ListLogs(ctx context.Context, limit int64) ([]models.RecommendationLog, error)
}

// DefaultRecommendService scores historical bookings against the current
// draft features and returns the best-matching experience.
type DefaultRecommendService struct {
	Logs   LogSource
	Logger *zap.Logger
}
