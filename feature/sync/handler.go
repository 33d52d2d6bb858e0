package sync

import (
	"encoding/json"
	"errors"
	"time"

	"dropsync/core/logger"
	mw "dropsync/core/middleware/auth"
	"dropsync/feature/sync/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for sync jobs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync endpoints.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/sync")
	group.Post("/trigger", h.HandleTrigger)
	group.Get("/jobs", h.HandleListJobs)
	group.Get("/jobs/:id", h.HandleGetJob)
}

type triggerRequest struct {
	AccountID uint `json:"account_id"`
	FeedID    uint `json:"feed_id"`
}

type jobResponse struct {
	ID                   uint       `json:"id"`
	AccountID            uint       `json:"account_id"`
	Status               string     `json:"status"`
	TriggeredBy          string     `json:"triggered_by"`
	TotalListingsChecked int        `json:"total_listings_checked"`
	ItemsUpdated         int        `json:"items_updated"`
	ItemsFailed          int        `json:"items_failed"`
	ItemsOutOfStock      int        `json:"items_out_of_stock"`
	StartedAt            *time.Time `json:"started_at"`
	CompletedAt          *time.Time `json:"completed_at"`
	DurationSeconds      float64    `json:"duration_seconds"`
	ErrorMessage         string     `json:"error_message"`
}

func toJobResponse(job models.SyncJob) jobResponse {
	return jobResponse{
		ID:                   job.ID,
		AccountID:            job.AccountID,
		Status:               job.Status,
		TriggeredBy:          job.TriggeredBy,
		TotalListingsChecked: job.TotalListingsChecked,
		ItemsUpdated:         job.ItemsUpdated,
		ItemsFailed:          job.ItemsFailed,
		ItemsOutOfStock:      job.ItemsOutOfStock,
		StartedAt:            job.StartedAt,
		CompletedAt:          job.CompletedAt,
		DurationSeconds:      job.DurationSeconds,
		ErrorMessage:         job.ErrorMessage,
	}
}

// HandleTrigger starts a sync run in the background.
// @Summary Trigger sync
// @Description Start a sync run for an account/feed pair. Returns immediately; poll the jobs endpoints for the outcome.
// @Tags sync
// @Accept json
// @Produce json
// @Param body body triggerRequest true "Account and feed to sync"
// @Success 200 {object} map[string]string "Trigger confirmation"
// @Failure 404 {object} map[string]string "Account or feed not found"
// @Security BearerAuth
// @Router /api/sync/trigger [post]
func (h *Handler) HandleTrigger(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req triggerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.AccountID == 0 || req.FeedID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Account ID and feed ID are required"})
	}

	if err := h.service.Trigger(c.Context(), mw.UserID(c), req.AccountID, req.FeedID); err != nil {
		if errors.Is(err, ErrNotOwned) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Account or feed not found"})
		}
		l.Error("Sync trigger failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to trigger sync"})
	}

	return c.JSON(fiber.Map{"message": "Sync triggered successfully", "status": "running"})
}

// HandleListJobs returns the caller's job history, newest first.
// @Summary List sync jobs
// @Description List sync jobs across the caller's accounts, newest first.
// @Tags sync
// @Produce json
// @Param account_id query int false "Narrow to one account"
// @Param limit query int false "Maximum rows (default 50)"
// @Success 200 {array} jobResponse "Sync jobs"
// @Security BearerAuth
// @Router /api/sync/jobs [get]
func (h *Handler) HandleListJobs(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	accountID := c.QueryInt("account_id")
	if accountID < 0 {
		accountID = 0
	}

	jobs, err := h.service.Jobs(c.Context(), mw.UserID(c), uint(accountID), c.QueryInt("limit"))
	if err != nil {
		l.Error("Job listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list jobs"})
	}

	resp := make([]jobResponse, 0, len(jobs))
	for _, job := range jobs {
		resp = append(resp, toJobResponse(job))
	}
	return c.JSON(resp)
}

// HandleGetJob returns one job with its diagnostic summary.
// @Summary Get sync job
// @Description Get one sync job, including the log summary recorded by the run.
// @Tags sync
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} map[string]interface{} "Sync job"
// @Failure 404 {object} map[string]string "Job not found"
// @Security BearerAuth
// @Router /api/sync/jobs/{id} [get]
func (h *Handler) HandleGetJob(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job ID"})
	}

	job, err := h.service.Job(c.Context(), mw.UserID(c), uint(id))
	if err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job not found"})
		}
		l.Error("Job lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load job"})
	}

	// log_summary is stored as JSON text; return it structured.
	var summary any
	if job.LogSummary != "" {
		summary = json.RawMessage(job.LogSummary)
	}

	resp := toJobResponse(*job)
	return c.JSON(fiber.Map{
		"id":                     resp.ID,
		"account_id":             resp.AccountID,
		"status":                 resp.Status,
		"triggered_by":           resp.TriggeredBy,
		"total_listings_checked": resp.TotalListingsChecked,
		"items_updated":          resp.ItemsUpdated,
		"items_failed":           resp.ItemsFailed,
		"items_out_of_stock":     resp.ItemsOutOfStock,
		"started_at":             resp.StartedAt,
		"completed_at":           resp.CompletedAt,
		"duration_seconds":       resp.DurationSeconds,
		"error_message":          resp.ErrorMessage,
		"log_summary":            summary,
	})
}
