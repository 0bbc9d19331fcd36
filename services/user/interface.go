package user

import (
	"context"

	userRepo "central/database/repository/user"
	"central/models"

	"go.uber.org/zap"
)

// AuthResult carries the session token issued at login.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UserService manages customer accounts and sessions.
type UserService interface {
	Register(ctx context.Context, email, name, password string) (*models.User, error)
	VerifyEmail(ctx context.Context, token string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Logger *zap.Logger
}
