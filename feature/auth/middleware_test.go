package auth

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	mw "dropsync/core/middleware/auth"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupGateApp(t *testing.T, userID uint) (*fiber.App, sqlmock.Sqlmock) {
	db, mock := setupMockDB(t)
	svc := NewService(db, testTokens(), zap.NewNop())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(mw.LocalsUserID, userID)
		return c.Next()
	})
	app.Use(RequireActiveUser(svc))
	app.Get("/guarded", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	return app, mock
}

func TestRequireActiveUser(t *testing.T) {
	t.Run("ActiveUserPasses", func(t *testing.T) {
		app, mock := setupGateApp(t, 3)

		mock.ExpectQuery("SELECT \\* FROM `users` WHERE `users`.`id`").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "is_active"}).
				AddRow(3, "user@example.com", true))

		resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("DeletedUserBlocked", func(t *testing.T) {
		app, mock := setupGateApp(t, 404)

		mock.ExpectQuery("SELECT \\* FROM `users` WHERE `users`.`id`").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "User not found", body["error"])
	})

	t.Run("DisabledUserBlocked", func(t *testing.T) {
		app, mock := setupGateApp(t, 3)

		mock.ExpectQuery("SELECT \\* FROM `users` WHERE `users`.`id`").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "is_active"}).
				AddRow(3, "user@example.com", false))

		resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})
}
