package sync

import (
	"context"
	"strings"
	stdsync "sync"
	"sync/atomic"
	"testing"
	"time"

	"dropsync/core/engine"
	"dropsync/core/feed"
	"dropsync/core/storage"
	"dropsync/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func accountRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "store_name", "access_token", "app_id", "dev_id", "cert_id", "quantity_mode",
	}).AddRow(5, 3, "My Store", "v^1.1#tok", "app-id", "dev-id", "cert-id", "binary")
}

func feedRows(feedType string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "name", "feed_url", "feed_type", "sku_column", "quantity_column",
	}).AddRow(7, 3, "AzureGreen", "https://supplier.example.com/stock.csv", feedType, "NUMBER", "UNITS")
}

func expectRunReads(dbMock sqlmock.Sqlmock, feedType string) {
	dbMock.ExpectQuery("SELECT \\* FROM `ebay_accounts` WHERE `ebay_accounts`.`id`").
		WillReturnRows(accountRows())
	dbMock.ExpectQuery("SELECT \\* FROM `supplier_feeds` WHERE `supplier_feeds`.`id`").
		WillReturnRows(feedRows(feedType))
}

func expectJobInsert(dbMock sqlmock.Sqlmock, jobID int64) {
	dbMock.ExpectBegin()
	dbMock.ExpectExec("INSERT INTO `sync_jobs`").WillReturnResult(sqlmock.NewResult(jobID, 1))
	dbMock.ExpectCommit()
}

func expectJobUpdate(dbMock sqlmock.Sqlmock) {
	dbMock.ExpectBegin()
	dbMock.ExpectExec("UPDATE `sync_jobs` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectCommit()
}

func expectAccountTouch(dbMock sqlmock.Sqlmock) {
	dbMock.ExpectBegin()
	dbMock.ExpectExec("UPDATE `ebay_accounts` SET `last_sync_at`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectCommit()
}

func expectFeedTouch(dbMock sqlmock.Sqlmock) {
	dbMock.ExpectBegin()
	dbMock.ExpectExec("UPDATE `supplier_feeds` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectCommit()
}

func TestRunner_Execute(t *testing.T) {
	t.Run("PersistsCompletedRun", func(t *testing.T) {
		db, dbMock := setupMockDB(t)
		r := NewRunner(db, nil, zap.NewNop())

		var captured engine.Spec
		r.runEngine = func(ctx context.Context, spec engine.Spec) engine.Result {
			captured = spec
			return engine.Result{
				Status:               engine.StatusCompleted,
				TotalListingsChecked: 120,
				ItemsUpdated:         6,
				ItemsFailed:          1,
				ItemsOutOfStock:      2,
				UnmatchedSKUs:        3,
				DurationSeconds:      1.5,
				FeedSKUs:             4200,
			}
		}

		expectRunReads(dbMock, "azuregreen")
		expectJobInsert(dbMock, 11)
		expectJobUpdate(dbMock)
		expectAccountTouch(dbMock)
		expectFeedTouch(dbMock)

		r.execute(context.Background(), 5, 7)

		assert.NoError(t, dbMock.ExpectationsWereMet())
		assert.Equal(t, "https://supplier.example.com/stock.csv", captured.FeedURL)
		assert.Equal(t, feed.TypeAzureGreen, captured.FeedType)
		assert.Equal(t, feed.ModeBinary, captured.Mode)
		assert.Equal(t, "app-id", captured.Credentials.AppID)
		assert.Equal(t, "dev-id", captured.Credentials.DevID)
		assert.Equal(t, "cert-id", captured.Credentials.CertID)
		assert.Equal(t, "v^1.1#tok", captured.Credentials.AuthToken)
		assert.Equal(t, "NUMBER", captured.Columns.SKUColumn)
		assert.Nil(t, captured.Snapshot)
	})

	t.Run("FailedRunSkipsFeedBookkeeping", func(t *testing.T) {
		db, dbMock := setupMockDB(t)
		r := NewRunner(db, nil, zap.NewNop())

		r.runEngine = func(ctx context.Context, spec engine.Spec) engine.Result {
			return engine.Result{
				Status:          engine.StatusFailed,
				DurationSeconds: 0.4,
				ErrorKind:       engine.KindFeedFetch,
				ErrorMessage:    "fetch feed: connection refused",
			}
		}

		expectRunReads(dbMock, "azuregreen")
		expectJobInsert(dbMock, 12)
		expectJobUpdate(dbMock)
		expectAccountTouch(dbMock)
		// No supplier_feeds update on a failed run.

		r.execute(context.Background(), 5, 7)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("UnknownFeedTypeFailsWithoutEngine", func(t *testing.T) {
		db, dbMock := setupMockDB(t)
		r := NewRunner(db, nil, zap.NewNop())

		engineCalled := false
		r.runEngine = func(ctx context.Context, spec engine.Spec) engine.Result {
			engineCalled = true
			return engine.Result{Status: engine.StatusCompleted}
		}

		expectRunReads(dbMock, "shopify")
		expectJobInsert(dbMock, 13)
		expectJobUpdate(dbMock)
		expectAccountTouch(dbMock)

		r.execute(context.Background(), 5, 7)

		assert.False(t, engineCalled)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("AccountGoneAbortsBeforeJobRow", func(t *testing.T) {
		db, dbMock := setupMockDB(t)
		r := NewRunner(db, nil, zap.NewNop())
		r.runEngine = func(ctx context.Context, spec engine.Spec) engine.Result {
			t.Fatal("engine must not run without an account")
			return engine.Result{}
		}

		dbMock.ExpectQuery("SELECT \\* FROM `ebay_accounts` WHERE `ebay_accounts`.`id`").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		r.execute(context.Background(), 5, 7)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("ArchivesSnapshotWhenStorageEnabled", func(t *testing.T) {
		db, dbMock := setupMockDB(t)
		client := new(mocks.Client)
		r := NewRunner(db, storage.NewArchiver(client, "test-feeds", zap.NewNop()), zap.NewNop())

		r.runEngine = func(ctx context.Context, spec engine.Spec) engine.Result {
			require.NotNil(t, spec.Snapshot)
			spec.Snapshot(ctx, []byte("NUMBER,UNITS\nAG1,4\n"))
			return engine.Result{Status: engine.StatusCompleted, FeedSKUs: 1}
		}

		expectRunReads(dbMock, "azuregreen")
		expectJobInsert(dbMock, 14)
		expectJobUpdate(dbMock)
		expectAccountTouch(dbMock)
		expectFeedTouch(dbMock)

		client.On("PutObject", mock.Anything, "test-feeds",
			mock.MatchedBy(func(name string) bool {
				return strings.HasPrefix(name, "feeds/7/") && strings.HasSuffix(name, ".csv")
			}),
			mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil)
		emptyStream := make(chan minio.ObjectInfo)
		close(emptyStream)
		client.On("ListObjects", mock.Anything, "test-feeds", mock.Anything).
			Return((<-chan minio.ObjectInfo)(emptyStream))

		r.execute(context.Background(), 5, 7)

		client.AssertExpectations(t)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestRunner_Launch_DeduplicatesConcurrentTriggers(t *testing.T) {
	db, dbMock := setupMockDB(t)
	dbMock.MatchExpectationsInOrder(false)
	r := NewRunner(db, nil, zap.NewNop())

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	r.runEngine = func(ctx context.Context, spec engine.Spec) engine.Result {
		calls.Add(1)
		started <- struct{}{}
		<-release
		return engine.Result{Status: engine.StatusCompleted}
	}

	// Expectations for exactly one run.
	expectRunReads(dbMock, "azuregreen")
	expectJobInsert(dbMock, 15)
	expectJobUpdate(dbMock)
	expectAccountTouch(dbMock)
	expectFeedTouch(dbMock)

	r.Launch(5, 7)
	<-started // the first run now holds the account's singleflight key

	var joiners stdsync.WaitGroup
	for i := 0; i < 2; i++ {
		joiners.Add(1)
		go func() {
			defer joiners.Done()
			r.run(5, 7)
		}()
	}
	// Give the joiners time to reach the singleflight group before the
	// first run finishes.
	time.Sleep(20 * time.Millisecond)
	close(release)

	joiners.Wait()
	r.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestLogSummary(t *testing.T) {
	t.Run("CompletedRun", func(t *testing.T) {
		summary := logSummary(7, engine.Result{
			Status:          engine.StatusCompleted,
			UnmatchedSKUs:   3,
			ItemsOutOfStock: 2,
		})
		assert.JSONEq(t, `{"feed_id":7,"unmatched_skus":3,"items_out_of_stock":2}`, summary)
	})

	t.Run("FailedRunCarriesErrorKind", func(t *testing.T) {
		summary := logSummary(7, engine.Result{
			Status:    engine.StatusFailed,
			ErrorKind: engine.KindRemoteProtocol,
		})
		assert.JSONEq(t, `{"feed_id":7,"error_kind":"remote_protocol","unmatched_skus":0,"items_out_of_stock":0}`, summary)
	})
}
