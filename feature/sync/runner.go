package sync

import (
	"context"
	"encoding/json"
	"strconv"
	stdsync "sync"
	"time"

	"dropsync/core/engine"
	"dropsync/core/feed"
	"dropsync/core/storage"
	"dropsync/core/trading"
	accountmodels "dropsync/feature/account/models"
	"dropsync/feature/sync/models"
	suppliermodels "dropsync/feature/supplier/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Runner executes sync runs in the background and persists their
// outcome. Runs are deduplicated per account: a trigger landing while
// that account is already syncing joins the in-flight run instead of
// starting a second one, so remote quantity updates stay serialized per
// account while separate accounts sync concurrently.
type Runner struct {
	db       *gorm.DB
	archiver *storage.Archiver
	logger   *zap.Logger

	group singleflight.Group
	wg    stdsync.WaitGroup

	// runEngine is swapped out by tests.
	runEngine func(ctx context.Context, spec engine.Spec) engine.Result
}

// NewRunner creates a new sync runner. The archiver may be nil when
// object storage is disabled; runs then skip feed snapshots.
func NewRunner(db *gorm.DB, archiver *storage.Archiver, logger *zap.Logger) *Runner {
	return &Runner{
		db:        db,
		archiver:  archiver,
		logger:    logger,
		runEngine: engine.Run,
	}
}

// Launch starts a sync for the account/feed pair in the background and
// returns immediately. Concurrent launches for the same account share
// one run and one job row.
func (r *Runner) Launch(accountID, feedID uint) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(accountID, feedID)
	}()
}

// run executes through the singleflight group so one account never has
// two overlapping runs.
func (r *Runner) run(accountID, feedID uint) {
	key := strconv.FormatUint(uint64(accountID), 10)
	r.group.Do(key, func() (any, error) {
		r.execute(context.Background(), accountID, feedID)
		return nil, nil
	})
}

// Wait blocks until all launched runs have finished. Used by graceful
// shutdown so a sync is never cut off mid-batch.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// execute performs one full run: insert a running job row, run the
// engine, persist the result. It logs instead of returning errors
// because nothing upstream can act on them.
func (r *Runner) execute(ctx context.Context, accountID, feedID uint) {
	var account accountmodels.EbayAccount
	if err := r.db.First(&account, accountID).Error; err != nil {
		r.logger.Error("Sync run aborted, account gone",
			zap.Uint("account_id", accountID), zap.Error(err))
		return
	}
	var feedRow suppliermodels.SupplierFeed
	if err := r.db.First(&feedRow, feedID).Error; err != nil {
		r.logger.Error("Sync run aborted, feed gone",
			zap.Uint("feed_id", feedID), zap.Error(err))
		return
	}

	started := time.Now()
	job := models.SyncJob{
		AccountID:   accountID,
		Status:      models.StatusRunning,
		TriggeredBy: models.TriggeredManual,
		StartedAt:   &started,
	}
	if err := r.db.Create(&job).Error; err != nil {
		r.logger.Error("Failed to create sync job", zap.Error(err))
		return
	}

	l := r.logger.With(
		zap.Uint("job_id", job.ID),
		zap.Uint("account_id", accountID),
		zap.Uint("feed_id", feedID),
	)
	l.Info("Sync job started", zap.String("store_name", account.StoreName))

	feedType, err := feed.ParseType(feedRow.FeedType)
	if err != nil {
		// The row predates feed type validation or was edited by hand.
		r.finish(&job, &account, &feedRow, engine.Result{
			Status:       engine.StatusFailed,
			ErrorKind:    engine.KindInternal,
			ErrorMessage: err.Error(),
		}, l)
		return
	}

	mode, err := feed.ParseMode(account.QuantityMode)
	if err != nil {
		l.Warn("Unknown quantity mode, using binary",
			zap.String("quantity_mode", account.QuantityMode))
		mode = feed.ModeBinary
	}

	spec := engine.Spec{
		FeedURL:  feedRow.FeedURL,
		FeedType: feedType,
		Columns: feed.ColumnMapping{
			SKUColumn:      feedRow.SKUColumn,
			QuantityColumn: feedRow.QuantityColumn,
		},
		Mode: mode,
		Credentials: trading.Credentials{
			AppID:     account.AppID,
			DevID:     account.DevID,
			CertID:    account.CertID,
			AuthToken: account.AccessToken,
		},
		Logger: l,
	}
	if r.archiver != nil {
		spec.Snapshot = func(ctx context.Context, data []byte) {
			if _, err := r.archiver.Archive(ctx, feedID, data); err != nil {
				l.Warn("Feed snapshot failed", zap.Error(err))
			}
		}
	}

	r.finish(&job, &account, &feedRow, r.runEngine(ctx, spec), l)
}

// finish writes the run outcome to the job row and updates the account
// and feed bookkeeping.
func (r *Runner) finish(job *models.SyncJob, account *accountmodels.EbayAccount, feedRow *suppliermodels.SupplierFeed, result engine.Result, l *zap.Logger) {
	completed := time.Now()

	err := r.db.Model(job).Updates(map[string]any{
		"status":                 result.Status,
		"total_listings_checked": result.TotalListingsChecked,
		"items_updated":          result.ItemsUpdated,
		"items_failed":           result.ItemsFailed,
		"items_out_of_stock":     result.ItemsOutOfStock,
		"completed_at":           completed,
		"duration_seconds":       result.DurationSeconds,
		"error_message":          result.ErrorMessage,
		"log_summary":            logSummary(feedRow.ID, result),
	}).Error
	if err != nil {
		l.Error("Failed to persist sync job", zap.Error(err))
	}

	if err := r.db.Model(account).Update("last_sync_at", completed).Error; err != nil {
		l.Error("Failed to update account sync time", zap.Error(err))
	}

	if result.Status == engine.StatusCompleted {
		err := r.db.Model(feedRow).Updates(map[string]any{
			"total_skus":      result.FeedSKUs,
			"last_fetched_at": completed,
		}).Error
		if err != nil {
			l.Error("Failed to update feed bookkeeping", zap.Error(err))
		}
	}

	l.Info("Sync job finished",
		zap.String("status", result.Status),
		zap.Int("items_updated", result.ItemsUpdated),
		zap.Int("items_failed", result.ItemsFailed),
	)
}

// logSummary builds the job's diagnostic JSON. Counts only, no SKU
// listings, so the column stays small no matter the feed size.
func logSummary(feedID uint, result engine.Result) string {
	summary, err := json.Marshal(struct {
		FeedID          uint             `json:"feed_id"`
		ErrorKind       engine.ErrorKind `json:"error_kind,omitempty"`
		UnmatchedSKUs   int              `json:"unmatched_skus"`
		ItemsOutOfStock int              `json:"items_out_of_stock"`
	}{
		FeedID:          feedID,
		ErrorKind:       result.ErrorKind,
		UnmatchedSKUs:   result.UnmatchedSKUs,
		ItemsOutOfStock: result.ItemsOutOfStock,
	})
	if err != nil {
		return ""
	}
	return string(summary)
}
