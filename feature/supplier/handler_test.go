package supplier

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mw "dropsync/core/middleware/auth"
	"dropsync/core/storage"
	"dropsync/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupSupplierApp skips the token middleware and injects the user ID
// directly, the way the bearer-token middleware would.
func setupSupplierApp(t *testing.T, userID uint, archiver *storage.Archiver) (*fiber.App, sqlmock.Sqlmock) {
	db, dbMock := setupMockDB(t)
	feature := NewFeature(db, archiver, zap.NewNop())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(mw.LocalsUserID, userID)
		return c.Next()
	})
	require.NoError(t, feature.Load(app))

	return app, dbMock
}

func TestHandleList(t *testing.T) {
	app, dbMock := setupSupplierApp(t, 3, nil)

	dbMock.ExpectQuery("SELECT \\* FROM `supplier_feeds` WHERE user_id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "feed_type", "feed_url", "total_skus"}).
			AddRow(7, 3, "AzureGreen", "azuregreen", "https://supplier.example.com/stock.csv", 4200))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/feeds", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body []map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	require.Len(t, body, 1)
	assert.Equal(t, "AzureGreen", body[0]["name"])
	assert.Equal(t, float64(4200), body[0]["total_skus"])
}

func TestHandleCreate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		app, dbMock := setupSupplierApp(t, 3, nil)

		dbMock.ExpectQuery("SELECT \\* FROM `users` WHERE `users`.`id`").
			WillReturnRows(sqlmock.NewRows([]string{"id", "max_feeds"}).AddRow(3, 2))
		dbMock.ExpectQuery("SELECT count\\(\\*\\) FROM `supplier_feeds`").
			WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
		dbMock.ExpectBegin()
		dbMock.ExpectExec("INSERT INTO `supplier_feeds`").WillReturnResult(sqlmock.NewResult(9, 1))
		dbMock.ExpectCommit()

		req := httptest.NewRequest("POST", "/api/feeds", strings.NewReader(
			`{"name":"AzureGreen","feed_url":"https://supplier.example.com/stock.csv","feed_type":"azuregreen"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, float64(9), body["id"])
		assert.Equal(t, "Supplier feed added successfully", body["message"])
	})

	t.Run("UnknownFeedType", func(t *testing.T) {
		app, _ := setupSupplierApp(t, 3, nil)

		req := httptest.NewRequest("POST", "/api/feeds", strings.NewReader(
			`{"name":"Shop","feed_url":"https://supplier.example.com/stock.csv","feed_type":"shopify"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Invalid feed type. Use azuregreen, diecast or custom.", body["error"])
	})

	t.Run("LimitReached", func(t *testing.T) {
		app, dbMock := setupSupplierApp(t, 3, nil)

		dbMock.ExpectQuery("SELECT \\* FROM `users` WHERE `users`.`id`").
			WillReturnRows(sqlmock.NewRows([]string{"id", "max_feeds"}).AddRow(3, 2))
		dbMock.ExpectQuery("SELECT count\\(\\*\\) FROM `supplier_feeds`").
			WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))

		req := httptest.NewRequest("POST", "/api/feeds", strings.NewReader(
			`{"name":"AzureGreen","feed_url":"https://supplier.example.com/stock.csv","feed_type":"azuregreen"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 403, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Feed limit reached (2). Upgrade your plan.", body["error"])
	})
}

func TestHandleDelete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		app, dbMock := setupSupplierApp(t, 3, nil)

		expectOwnedFeed(dbMock, 7, 3)
		dbMock.ExpectBegin()
		dbMock.ExpectExec("UPDATE `supplier_feeds` SET `is_active`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectCommit()

		resp, err := app.Test(httptest.NewRequest("DELETE", "/api/feeds/7", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Feed deleted", body["message"])
	})

	t.Run("NotFound", func(t *testing.T) {
		app, dbMock := setupSupplierApp(t, 3, nil)

		dbMock.ExpectQuery("SELECT \\* FROM `supplier_feeds` WHERE id").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		resp, err := app.Test(httptest.NewRequest("DELETE", "/api/feeds/99", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Feed not found", body["error"])
	})
}

func TestHandleListSnapshots(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client := new(mocks.Client)
		archiver := storage.NewArchiver(client, "test-feeds", zap.NewNop())
		app, dbMock := setupSupplierApp(t, 3, archiver)

		expectOwnedFeed(dbMock, 7, 3)
		client.On("ListObjects", mock.Anything, "test-feeds", mock.Anything).
			Return(objectStream(
				minio.ObjectInfo{Key: "feeds/7/20240102T060000Z.csv", Size: 12, LastModified: time.Now()},
			))

		resp, err := app.Test(httptest.NewRequest("GET", "/api/feeds/7/snapshots", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body []map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		require.Len(t, body, 1)
		assert.Equal(t, "20240102T060000Z.csv", body[0]["name"])
	})

	t.Run("ArchiveDisabled", func(t *testing.T) {
		app, _ := setupSupplierApp(t, 3, nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/api/feeds/7/snapshots", nil))
		require.NoError(t, err)
		assert.Equal(t, 503, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Snapshot archive not configured", body["error"])
	})
}

func TestHandleDownloadSnapshot(t *testing.T) {
	client := new(mocks.Client)
	archiver := storage.NewArchiver(client, "test-feeds", zap.NewNop())
	app, dbMock := setupSupplierApp(t, 3, archiver)

	expectOwnedFeed(dbMock, 7, 3)
	client.On("GetObject", mock.Anything, "test-feeds", "feeds/7/20240102T060000Z.csv", mock.Anything).
		Return(io.NopCloser(strings.NewReader("NUMBER,UNITS\nAG1,4\n")), nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/feeds/7/snapshots/20240102T060000Z.csv", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "AG1,4")
}

func TestHandleDeleteSnapshot(t *testing.T) {
	client := new(mocks.Client)
	archiver := storage.NewArchiver(client, "test-feeds", zap.NewNop())
	app, dbMock := setupSupplierApp(t, 3, archiver)

	expectOwnedFeed(dbMock, 7, 3)
	client.On("RemoveObject", mock.Anything, "test-feeds", "feeds/7/20240102T060000Z.csv", mock.Anything).
		Return(nil)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/feeds/7/snapshots/20240102T060000Z.csv", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "Snapshot deleted", body["message"])
}
