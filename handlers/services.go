package handlers

import (
	"context"
	"log"
	"time"

	"central/config"
	experienceRepo "central/database/repository/experience"
	preferenceRepo "central/database/repository/preference"
	reservationRepo "central/database/repository/reservation"
	userRepo "central/database/repository/user"
	"central/services/chat"
	"central/services/nlu"
	"central/services/recommend"
	"central/services/reservation"
	"central/services/user"
	"central/utils"

	"github.com/hibiken/asynq"
)

var (
	ChatService        chat.ChatService
	ReservationService reservation.ReservationService
	UserService        user.UserService
	Catalog            experienceRepo.ExperienceRepository
	QueueClient        *asynq.Client
)

const sessionTTL = 24 * time.Hour

// InitServices wires the service graph. Must run after config, logging,
// Redis and MongoDB are initialized.
func InitServices(ctx context.Context) {
	logger := utils.GetLogger()

	nluClient, err := nlu.NewClient(ctx, &config.AppConfig)
	if err != nil {
		log.Fatalf("failed to initialize NLU client: %v", err)
	}

	Catalog = experienceRepo.NewCachedExperienceRepo(
		experienceRepo.NewMongoExperienceRepo(), utils.GetCacheClient(), logger.Named("catalog"))
	if err := Catalog.SeedDefaults(ctx); err != nil {
		logger.Sugar().Warnf("failed to seed experience catalog: %v", err)
	}

	resRepo := reservationRepo.NewMongoReservationRepo()
	prefRepo := preferenceRepo.NewMongoPreferenceRepo()
	sessions := chat.NewRedisSessionStore(utils.GetSessionCacheClient(), sessionTTL, logger)
	recommender := &recommend.DefaultRecommendService{Logs: resRepo, Logger: logger.Named("recommend")}

	QueueClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ChatService = &chat.DefaultChatService{
		NLU:         nluClient,
		Sessions:    sessions,
		Catalog:     Catalog,
		Recommender: recommender,
		Preferences: prefRepo,
		Logger:      logger.Named("chat"),
	}
	ReservationService = &reservation.DefaultReservationService{
		Repo:        resRepo,
		Prefs:       prefRepo,
		Sessions:    sessions,
		Recommender: recommender,
		Queue:       QueueClient,
		Logger:      logger.Named("reservation"),
	}
	UserService = &user.DefaultUserService{
		Repo:   userRepo.NewMongoUserRepo(),
		Logger: logger.Named("user"),
	}
}
