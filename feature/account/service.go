package account

import (
	"context"
	"errors"
	"fmt"

	"dropsync/feature/account/models"
	authmodels "dropsync/feature/auth/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrAccountNotFound is returned when an account does not exist or
// belongs to another user.
var ErrAccountNotFound = errors.New("account not found")

// LimitError is returned when connecting another account would exceed
// the user's plan limit.
type LimitError struct {
	Limit int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("account limit reached (%d)", e.Limit)
}

// CreateInput is the data needed to connect an eBay account.
type CreateInput struct {
	StoreName     string
	AppID         string
	DevID         string
	CertID        string
	UserToken     string
	SyncFrequency string
	SyncTime      string
}

// Service handles connected eBay accounts.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new account service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// List returns the user's active accounts.
func (s *Service) List(ctx context.Context, userID uint) ([]models.EbayAccount, error) {
	var accounts []models.EbayAccount
	err := s.db.Where("user_id = ? AND is_active = ?", userID, true).Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// Create connects an eBay account, enforcing the owner's plan limit on
// active accounts.
func (s *Service) Create(ctx context.Context, userID uint, input CreateInput) (*models.EbayAccount, error) {
	var user authmodels.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	var count int64
	err := s.db.Model(&models.EbayAccount{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}
	if count >= int64(user.MaxAccounts) {
		return nil, &LimitError{Limit: user.MaxAccounts}
	}

	if input.SyncFrequency == "" {
		input.SyncFrequency = "daily"
	}
	if input.SyncTime == "" {
		input.SyncTime = "06:00"
	}

	account := models.EbayAccount{
		UserID:        userID,
		StoreName:     input.StoreName,
		AccessToken:   input.UserToken,
		AppID:         input.AppID,
		DevID:         input.DevID,
		CertID:        input.CertID,
		SyncEnabled:   true,
		SyncFrequency: input.SyncFrequency,
		SyncTime:      input.SyncTime,
		QuantityMode:  models.QuantityModeBinary,
		IsActive:      true,
	}
	if err := s.db.Create(&account).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("eBay account connected",
		zap.Uint("user_id", userID),
		zap.Uint("account_id", account.ID),
		zap.String("store_name", account.StoreName))
	return &account, nil
}

// Delete soft-deletes an account. Historic sync jobs keep pointing at
// the row, so it is never removed.
func (s *Service) Delete(ctx context.Context, userID, accountID uint) error {
	var account models.EbayAccount
	err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAccountNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load account: %w", err)
	}

	if err := s.db.Model(&account).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.logger.Info("eBay account deleted",
		zap.Uint("user_id", userID),
		zap.Uint("account_id", accountID))
	return nil
}
