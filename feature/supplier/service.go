package supplier

import (
	"context"
	"errors"
	"fmt"
	"io"

	"dropsync/core/feed"
	"dropsync/core/storage"
	authmodels "dropsync/feature/auth/models"
	"dropsync/feature/supplier/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service errors. The handler maps them to HTTP statuses.
var (
	ErrFeedNotFound    = errors.New("feed not found")
	ErrInvalidFeedType = errors.New("invalid feed type")
	ErrArchiveDisabled = errors.New("snapshot archive not configured")
)

// LimitError is returned when adding another feed would exceed the
// user's plan limit.
type LimitError struct {
	Limit int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("feed limit reached (%d)", e.Limit)
}

// CreateInput is the data needed to add a supplier feed.
type CreateInput struct {
	Name           string
	FeedURL        string
	FeedType       string
	SKUColumn      string
	QuantityColumn string
}

// Service handles supplier feeds and their archived snapshots. The
// archiver is nil when object storage is disabled.
type Service struct {
	db       *gorm.DB
	archiver *storage.Archiver
	logger   *zap.Logger
}

// NewService creates a new supplier service.
func NewService(db *gorm.DB, archiver *storage.Archiver, logger *zap.Logger) *Service {
	return &Service{db: db, archiver: archiver, logger: logger}
}

// List returns the user's active feeds.
func (s *Service) List(ctx context.Context, userID uint) ([]models.SupplierFeed, error) {
	var feeds []models.SupplierFeed
	err := s.db.Where("user_id = ? AND is_active = ?", userID, true).Find(&feeds).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list feeds: %w", err)
	}
	return feeds, nil
}

// Create adds a supplier feed, enforcing the owner's plan limit on
// active feeds. The feed type is validated up front so a typo cannot
// produce a feed every sync run chokes on.
func (s *Service) Create(ctx context.Context, userID uint, input CreateInput) (*models.SupplierFeed, error) {
	if _, err := feed.ParseType(input.FeedType); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFeedType, err)
	}

	var user authmodels.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	var count int64
	err := s.db.Model(&models.SupplierFeed{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count feeds: %w", err)
	}
	if count >= int64(user.MaxFeeds) {
		return nil, &LimitError{Limit: user.MaxFeeds}
	}

	if input.SKUColumn == "" {
		input.SKUColumn = models.DefaultSKUColumn
	}
	if input.QuantityColumn == "" {
		input.QuantityColumn = models.DefaultQuantityColumn
	}

	row := models.SupplierFeed{
		UserID:         userID,
		Name:           input.Name,
		FeedURL:        input.FeedURL,
		FeedType:       input.FeedType,
		SKUColumn:      input.SKUColumn,
		QuantityColumn: input.QuantityColumn,
		IsActive:       true,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to create feed: %w", err)
	}

	s.logger.Info("Supplier feed added",
		zap.Uint("user_id", userID),
		zap.Uint("feed_id", row.ID),
		zap.String("feed_type", row.FeedType))
	return &row, nil
}

// Delete soft-deletes a feed.
func (s *Service) Delete(ctx context.Context, userID, feedID uint) error {
	row, err := s.feed(ctx, userID, feedID)
	if err != nil {
		return err
	}

	if err := s.db.Model(row).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to delete feed: %w", err)
	}

	s.logger.Info("Supplier feed deleted",
		zap.Uint("user_id", userID),
		zap.Uint("feed_id", feedID))
	return nil
}

// Snapshots lists the archived CSVs of an owned feed, newest first.
func (s *Service) Snapshots(ctx context.Context, userID, feedID uint) ([]storage.Snapshot, error) {
	if s.archiver == nil {
		return nil, ErrArchiveDisabled
	}
	if _, err := s.feed(ctx, userID, feedID); err != nil {
		return nil, err
	}
	return s.archiver.List(ctx, feedID)
}

// OpenSnapshot streams one archived CSV of an owned feed. The caller
// closes the reader.
func (s *Service) OpenSnapshot(ctx context.Context, userID, feedID uint, name string) (io.ReadCloser, error) {
	if s.archiver == nil {
		return nil, ErrArchiveDisabled
	}
	if _, err := s.feed(ctx, userID, feedID); err != nil {
		return nil, err
	}
	return s.archiver.Open(ctx, feedID, name)
}

// RemoveSnapshot deletes one archived CSV of an owned feed.
func (s *Service) RemoveSnapshot(ctx context.Context, userID, feedID uint, name string) error {
	if s.archiver == nil {
		return ErrArchiveDisabled
	}
	if _, err := s.feed(ctx, userID, feedID); err != nil {
		return err
	}
	if err := s.archiver.Remove(ctx, feedID, name); err != nil {
		return err
	}

	s.logger.Info("Feed snapshot deleted",
		zap.Uint("feed_id", feedID),
		zap.String("snapshot", name))
	return nil
}

// feed loads a feed row scoped to its owner.
func (s *Service) feed(ctx context.Context, userID, feedID uint) (*models.SupplierFeed, error) {
	var row models.SupplierFeed
	err := s.db.Where("id = ? AND user_id = ?", feedID, userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFeedNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}
	return &row, nil
}
