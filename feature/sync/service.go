package sync

import (
	"context"
	"errors"
	"fmt"

	accountmodels "dropsync/feature/account/models"
	"dropsync/feature/sync/models"
	suppliermodels "dropsync/feature/supplier/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultJobsLimit caps job listings when the caller does not set one.
const DefaultJobsLimit = 50

// Service errors. The handler maps them to HTTP statuses.
var (
	// ErrNotOwned covers both a missing account and a missing feed so the
	// response does not reveal which one exists.
	ErrNotOwned    = errors.New("account or feed not found")
	ErrJobNotFound = errors.New("job not found")
)

// launcher starts background sync runs.
type launcher interface {
	Launch(accountID, feedID uint)
}

// Service validates sync triggers and reads job history.
type Service struct {
	db     *gorm.DB
	runner launcher
	logger *zap.Logger
}

// NewService creates a new sync service.
func NewService(db *gorm.DB, runner *Runner, logger *zap.Logger) *Service {
	return &Service{db: db, runner: runner, logger: logger}
}

// Trigger verifies the caller owns both the account and the feed, then
// launches the run in the background.
func (s *Service) Trigger(ctx context.Context, userID, accountID, feedID uint) error {
	var account accountmodels.EbayAccount
	err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotOwned
	}
	if err != nil {
		return fmt.Errorf("failed to load account: %w", err)
	}

	var feedRow suppliermodels.SupplierFeed
	err = s.db.Where("id = ? AND user_id = ?", feedID, userID).First(&feedRow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotOwned
	}
	if err != nil {
		return fmt.Errorf("failed to load feed: %w", err)
	}

	s.logger.Info("Sync triggered",
		zap.Uint("user_id", userID),
		zap.Uint("account_id", accountID),
		zap.Uint("feed_id", feedID))
	s.runner.Launch(accountID, feedID)
	return nil
}

// Jobs returns the newest jobs across the caller's accounts. A non-zero
// accountID narrows to one account.
func (s *Service) Jobs(ctx context.Context, userID, accountID uint, limit int) ([]models.SyncJob, error) {
	if limit <= 0 {
		limit = DefaultJobsLimit
	}

	query := s.db.Model(&models.SyncJob{}).
		Select("sync_jobs.*").
		Joins("JOIN ebay_accounts ON ebay_accounts.id = sync_jobs.account_id").
		Where("ebay_accounts.user_id = ?", userID)
	if accountID > 0 {
		query = query.Where("sync_jobs.account_id = ?", accountID)
	}

	var jobs []models.SyncJob
	err := query.Order("sync_jobs.created_at DESC").Limit(limit).Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// Job returns one job of the caller's.
func (s *Service) Job(ctx context.Context, userID, jobID uint) (*models.SyncJob, error) {
	var job models.SyncJob
	err := s.db.Model(&models.SyncJob{}).
		Select("sync_jobs.*").
		Joins("JOIN ebay_accounts ON ebay_accounts.id = sync_jobs.account_id").
		Where("sync_jobs.id = ? AND ebay_accounts.user_id = ?", jobID, userID).
		First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	return &job, nil
}
