package dashboard

import (
	"context"
	"errors"
	"fmt"

	accountmodels "dropsync/feature/account/models"
	suppliermodels "dropsync/feature/supplier/models"
	syncmodels "dropsync/feature/sync/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Stats summarizes a user's sync position.
type Stats struct {
	TotalAccounts int64
	TotalFeeds    int64
	// LastSync is the newest job across the user's accounts, nil when
	// nothing has run yet.
	LastSync *syncmodels.SyncJob
}

// Service reads aggregated dashboard numbers.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new dashboard service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Stats aggregates the caller's active accounts, active feeds, and the
// latest sync job.
func (s *Service) Stats(ctx context.Context, userID uint) (Stats, error) {
	var stats Stats

	err := s.db.Model(&accountmodels.EbayAccount{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&stats.TotalAccounts).Error
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count accounts: %w", err)
	}

	err = s.db.Model(&suppliermodels.SupplierFeed{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&stats.TotalFeeds).Error
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count feeds: %w", err)
	}

	var latest syncmodels.SyncJob
	err = s.db.Model(&syncmodels.SyncJob{}).
		Select("sync_jobs.*").
		Joins("JOIN ebay_accounts ON ebay_accounts.id = sync_jobs.account_id").
		Where("ebay_accounts.user_id = ?", userID).
		Order("sync_jobs.created_at DESC").
		Take(&latest).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No sync has run yet.
	case err != nil:
		return Stats{}, fmt.Errorf("failed to load latest job: %w", err)
	default:
		stats.LastSync = &latest
	}

	return stats, nil
}
