package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dropsync/core/security"
	"dropsync/feature/auth/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service errors. The handler maps them to HTTP statuses.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrUserNotFound       = errors.New("user not found")
)

// RegisterInput is the data needed to create a user.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

// Service handles user accounts and credentials.
type Service struct {
	db     *gorm.DB
	tokens *security.TokenManager
	logger *zap.Logger
}

// NewService creates a new auth service.
func NewService(db *gorm.DB, tokens *security.TokenManager, logger *zap.Logger) *Service {
	return &Service{db: db, tokens: tokens, logger: logger}
}

// Register creates a free-trial user and returns a signed access token.
func (s *Service) Register(ctx context.Context, input RegisterInput) (string, error) {
	var existing models.User
	err := s.db.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		return "", ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        input.Email,
		PasswordHash: hash,
		FullName:     input.FullName,
		Plan:         models.PlanFreeTrial,
		MaxAccounts:  models.DefaultMaxAccounts,
		MaxListings:  models.DefaultMaxListings,
		MaxFeeds:     models.DefaultMaxFeeds,
		IsActive:     true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.Uint("user_id", user.ID))
	return s.tokens.Generate(user.ID)
}

// Login checks credentials and returns a signed access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	if !security.CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", ErrAccountDisabled
	}

	if err := s.db.Model(&user).Update("last_login_at", time.Now()).Error; err != nil {
		return "", fmt.Errorf("failed to record login: %w", err)
	}

	s.logger.Info("User logged in", zap.Uint("user_id", user.ID))
	return s.tokens.Generate(user.ID)
}

// User loads an active user by ID. Disabled and missing users are both
// ErrUserNotFound so callers cannot tell them apart.
func (s *Service) User(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUserNotFound
	}
	return &user, nil
}
