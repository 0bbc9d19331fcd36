package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"central/models"
	"central/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("account not verified")
)

const sessionDuration = 72 * time.Hour

// Register creates an inactive account and issues a verification token. The
// token would normally travel by email; it is logged until a mail provider
// is wired.
func (s *DefaultUserService) Register(ctx context.Context, email, name, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check existing account: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// Only the hash is stored; the raw token travels to the user.
	rawToken := uuid.New().String()
	u := models.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		Verified:     false,
		VerifyToken:  utils.HashToken(rawToken),
	}
	id, err := s.Repo.Create(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	u.ID = id

	s.Logger.Info("verification token issued",
		zap.String("email", email), zap.String("token", rawToken))
	return &u, nil
}

// VerifyEmail redeems a verification token and activates the account.
func (s *DefaultUserService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("verification token is required")
	}
	u, err := s.Repo.MarkVerified(ctx, utils.HashToken(token))
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks the credentials and issues a signed session token.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("fetch account: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.Verified {
		return nil, ErrNotVerified
	}

	token, err := utils.GenerateToken(u.ID, u.Email, u.Name, sessionDuration)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}
	return &AuthResult{Token: token, User: u}, nil
}
