package supplier

import (
	"errors"
	"fmt"
	"time"

	"dropsync/core/logger"
	mw "dropsync/core/middleware/auth"
	"dropsync/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for supplier feeds.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the feed endpoints.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/feeds")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Delete("/:id", h.HandleDelete)
	group.Get("/:id/snapshots", h.HandleListSnapshots)
	group.Get("/:id/snapshots/:name", h.HandleDownloadSnapshot)
	group.Delete("/:id/snapshots/:name", h.HandleDeleteSnapshot)
}

type createFeedRequest struct {
	Name           string `json:"name"`
	FeedURL        string `json:"feed_url"`
	FeedType       string `json:"feed_type"`
	SKUColumn      string `json:"sku_column"`
	QuantityColumn string `json:"quantity_column"`
}

type feedResponse struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	FeedType      string     `json:"feed_type"`
	FeedURL       string     `json:"feed_url"`
	TotalSKUs     int        `json:"total_skus"`
	LastFetchedAt *time.Time `json:"last_fetched_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// HandleList returns the caller's active feeds.
// @Summary List feeds
// @Description List the caller's supplier feeds.
// @Tags feeds
// @Produce json
// @Success 200 {array} feedResponse "Supplier feeds"
// @Security BearerAuth
// @Router /api/feeds [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	feeds, err := h.service.List(c.Context(), mw.UserID(c))
	if err != nil {
		l.Error("Feed listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list feeds"})
	}

	resp := make([]feedResponse, 0, len(feeds))
	for _, f := range feeds {
		resp = append(resp, feedResponse{
			ID:            f.ID,
			Name:          f.Name,
			FeedType:      f.FeedType,
			FeedURL:       f.FeedURL,
			TotalSKUs:     f.TotalSKUs,
			LastFetchedAt: f.LastFetchedAt,
			CreatedAt:     f.CreatedAt,
		})
	}
	return c.JSON(resp)
}

// HandleCreate adds a supplier feed.
// @Summary Add feed
// @Description Add a supplier stock feed with its column mapping.
// @Tags feeds
// @Accept json
// @Produce json
// @Param body body createFeedRequest true "Feed definition"
// @Success 200 {object} map[string]interface{} "Created feed ID"
// @Failure 400 {object} map[string]string "Invalid feed type"
// @Failure 403 {object} map[string]string "Plan limit reached"
// @Security BearerAuth
// @Router /api/feeds [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req createFeedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" || req.FeedURL == "" || req.FeedType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name, feed URL and feed type are required"})
	}

	row, err := h.service.Create(c.Context(), mw.UserID(c), CreateInput{
		Name:           req.Name,
		FeedURL:        req.FeedURL,
		FeedType:       req.FeedType,
		SKUColumn:      req.SKUColumn,
		QuantityColumn: req.QuantityColumn,
	})
	if err != nil {
		var limitErr *LimitError
		switch {
		case errors.Is(err, ErrInvalidFeedType):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid feed type. Use azuregreen, diecast or custom."})
		case errors.As(err, &limitErr):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": fmt.Sprintf("Feed limit reached (%d). Upgrade your plan.", limitErr.Limit),
			})
		default:
			l.Error("Feed creation failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add feed"})
		}
	}

	return c.JSON(fiber.Map{"id": row.ID, "message": "Supplier feed added successfully"})
}

// HandleDelete removes a feed.
// @Summary Remove feed
// @Description Soft-delete a supplier feed.
// @Tags feeds
// @Produce json
// @Param id path int true "Feed ID"
// @Success 200 {object} map[string]string "Deletion confirmation"
// @Failure 404 {object} map[string]string "Feed not found"
// @Security BearerAuth
// @Router /api/feeds/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid feed ID"})
	}

	if err := h.service.Delete(c.Context(), mw.UserID(c), uint(id)); err != nil {
		if errors.Is(err, ErrFeedNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Feed not found"})
		}
		l.Error("Feed deletion failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete feed"})
	}

	return c.JSON(fiber.Map{"message": "Feed deleted"})
}

// HandleListSnapshots lists the archived CSVs of a feed.
// @Summary List feed snapshots
// @Description List the raw feed CSVs captured by past sync runs, newest first.
// @Tags feeds
// @Produce json
// @Param id path int true "Feed ID"
// @Success 200 {array} storage.Snapshot "Archived snapshots"
// @Failure 404 {object} map[string]string "Feed not found"
// @Failure 503 {object} map[string]string "Archive disabled"
// @Security BearerAuth
// @Router /api/feeds/{id}/snapshots [get]
func (h *Handler) HandleListSnapshots(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid feed ID"})
	}

	snapshots, err := h.service.Snapshots(c.Context(), mw.UserID(c), uint(id))
	if err != nil {
		return h.snapshotError(c, l, err, "Snapshot listing failed")
	}
	return c.JSON(snapshots)
}

// HandleDownloadSnapshot streams one archived CSV.
// @Summary Download feed snapshot
// @Description Download the raw CSV captured by a past sync run.
// @Tags feeds
// @Produce text/csv
// @Param id path int true "Feed ID"
// @Param name path string true "Snapshot name"
// @Success 200 {string} string "CSV content"
// @Failure 404 {object} map[string]string "Feed not found"
// @Failure 503 {object} map[string]string "Archive disabled"
// @Security BearerAuth
// @Router /api/feeds/{id}/snapshots/{name} [get]
func (h *Handler) HandleDownloadSnapshot(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid feed ID"})
	}
	name := c.Params("name")

	rc, err := h.service.OpenSnapshot(c.Context(), mw.UserID(c), uint(id), name)
	if err != nil {
		return h.snapshotError(c, l, err, "Snapshot download failed")
	}

	// fasthttp closes the stream after the response is written.
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.SendStream(rc)
}

// HandleDeleteSnapshot deletes one archived CSV.
// @Summary Delete feed snapshot
// @Description Delete one archived feed CSV.
// @Tags feeds
// @Produce json
// @Param id path int true "Feed ID"
// @Param name path string true "Snapshot name"
// @Success 200 {object} map[string]string "Deletion confirmation"
// @Failure 404 {object} map[string]string "Feed not found"
// @Failure 503 {object} map[string]string "Archive disabled"
// @Security BearerAuth
// @Router /api/feeds/{id}/snapshots/{name} [delete]
func (h *Handler) HandleDeleteSnapshot(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid feed ID"})
	}

	if err := h.service.RemoveSnapshot(c.Context(), mw.UserID(c), uint(id), c.Params("name")); err != nil {
		return h.snapshotError(c, l, err, "Snapshot deletion failed")
	}
	return c.JSON(fiber.Map{"message": "Snapshot deleted"})
}

// snapshotError maps snapshot service errors shared by the three
// snapshot endpoints.
func (h *Handler) snapshotError(c *fiber.Ctx, l *zap.Logger, err error, logMsg string) error {
	switch {
	case errors.Is(err, ErrArchiveDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Snapshot archive not configured"})
	case errors.Is(err, ErrFeedNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Feed not found"})
	case errors.Is(err, storage.ErrInvalidSnapshotName):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid snapshot name"})
	default:
		l.Error(logMsg, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Snapshot archive error"})
	}
}
