package dashboard

import (
	"dropsync/core/logger"
	mw "dropsync/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the dashboard.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the dashboard endpoints.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/api/dashboard/stats", h.HandleStats)
}

// HandleStats returns the caller's aggregated numbers.
// @Summary Dashboard stats
// @Description Aggregated account and feed counts plus the latest sync outcome.
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{} "Dashboard stats"
// @Security BearerAuth
// @Router /api/dashboard/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	stats, err := h.service.Stats(c.Context(), mw.UserID(c))
	if err != nil {
		l.Error("Stats aggregation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load stats"})
	}

	var lastSyncAt, lastStatus any
	itemsUpdated := 0
	if stats.LastSync != nil {
		lastSyncAt = stats.LastSync.CompletedAt
		lastStatus = stats.LastSync.Status
		itemsUpdated = stats.LastSync.ItemsUpdated
	}

	return c.JSON(fiber.Map{
		"total_accounts":          stats.TotalAccounts,
		"total_feeds":             stats.TotalFeeds,
		"last_sync_at":            lastSyncAt,
		"last_sync_status":        lastStatus,
		"last_sync_items_updated": itemsUpdated,
	})
}
