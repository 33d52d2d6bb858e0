package sync

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mw "dropsync/core/middleware/auth"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupSyncApp wires the handler against a recording launcher so no
// background run ever starts.
func setupSyncApp(t *testing.T, userID uint, fake *fakeLauncher) (*fiber.App, sqlmock.Sqlmock) {
	db, dbMock := setupMockDB(t)
	svc := &Service{db: db, runner: fake, logger: zap.NewNop()}
	handler := NewHandler(svc)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(mw.LocalsUserID, userID)
		return c.Next()
	})
	handler.RegisterRoutes(app)

	return app, dbMock
}

func TestHandleTrigger(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		fake := &fakeLauncher{}
		app, dbMock := setupSyncApp(t, 3, fake)

		dbMock.ExpectQuery("SELECT \\* FROM `ebay_accounts` WHERE id").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(5, 3))
		dbMock.ExpectQuery("SELECT \\* FROM `supplier_feeds` WHERE id").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(7, 3))

		req := httptest.NewRequest("POST", "/api/sync/trigger",
			strings.NewReader(`{"account_id":5,"feed_id":7}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Sync triggered successfully", body["message"])
		assert.Equal(t, "running", body["status"])
		assert.Equal(t, [][2]uint{{5, 7}}, fake.launches)
	})

	t.Run("NotOwned", func(t *testing.T) {
		fake := &fakeLauncher{}
		app, dbMock := setupSyncApp(t, 3, fake)

		dbMock.ExpectQuery("SELECT \\* FROM `ebay_accounts` WHERE id").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		req := httptest.NewRequest("POST", "/api/sync/trigger",
			strings.NewReader(`{"account_id":5,"feed_id":7}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Account or feed not found", body["error"])
		assert.Empty(t, fake.launches)
	})

	t.Run("MissingIDs", func(t *testing.T) {
		app, _ := setupSyncApp(t, 3, &fakeLauncher{})

		req := httptest.NewRequest("POST", "/api/sync/trigger",
			strings.NewReader(`{"account_id":5}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestHandleListJobs(t *testing.T) {
	app, dbMock := setupSyncApp(t, 3, &fakeLauncher{})

	now := time.Now()
	dbMock.ExpectQuery("SELECT sync_jobs\\.\\* FROM `sync_jobs` JOIN ebay_accounts").
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "status", "triggered_by", "items_updated", "completed_at"}).
			AddRow(12, 5, "completed", "manual", 6, now))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/sync/jobs", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body []map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	require.Len(t, body, 1)
	assert.Equal(t, float64(12), body[0]["id"])
	assert.Equal(t, float64(5), body[0]["account_id"])
	assert.Equal(t, "completed", body[0]["status"])
	assert.Equal(t, float64(6), body[0]["items_updated"])

	// The list view never includes the log summary.
	_, hasSummary := body[0]["log_summary"]
	assert.False(t, hasSummary)
}

func TestHandleGetJob(t *testing.T) {
	t.Run("IncludesStructuredSummary", func(t *testing.T) {
		app, dbMock := setupSyncApp(t, 3, &fakeLauncher{})

		dbMock.ExpectQuery("SELECT sync_jobs\\.\\* FROM `sync_jobs` JOIN ebay_accounts").
			WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "status", "log_summary"}).
				AddRow(12, 5, "completed", `{"feed_id":7,"unmatched_skus":3,"items_out_of_stock":2}`))

		resp, err := app.Test(httptest.NewRequest("GET", "/api/sync/jobs/12", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		summary, ok := body["log_summary"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(7), summary["feed_id"])
		assert.Equal(t, float64(3), summary["unmatched_skus"])
	})

	t.Run("RunningJobHasNullSummary", func(t *testing.T) {
		app, dbMock := setupSyncApp(t, 3, &fakeLauncher{})

		dbMock.ExpectQuery("SELECT sync_jobs\\.\\* FROM `sync_jobs` JOIN ebay_accounts").
			WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "status", "log_summary"}).
				AddRow(13, 5, "running", ""))

		resp, err := app.Test(httptest.NewRequest("GET", "/api/sync/jobs/13", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Nil(t, body["log_summary"])
	})

	t.Run("NotFound", func(t *testing.T) {
		app, dbMock := setupSyncApp(t, 3, &fakeLauncher{})

		dbMock.ExpectQuery("SELECT sync_jobs\\.\\* FROM `sync_jobs` JOIN ebay_accounts").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		resp, err := app.Test(httptest.NewRequest("GET", "/api/sync/jobs/99", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Job not found", body["error"])
	})
}
