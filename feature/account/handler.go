package account

import (
	"errors"
	"fmt"
	"time"

	"dropsync/core/logger"
	mw "dropsync/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for eBay accounts.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the account endpoints.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/accounts")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Delete("/:id", h.HandleDelete)
}

type createAccountRequest struct {
	StoreName     string `json:"store_name"`
	AppID         string `json:"app_id"`
	DevID         string `json:"dev_id"`
	CertID        string `json:"cert_id"`
	UserToken     string `json:"user_token"`
	SyncFrequency string `json:"sync_frequency"`
	SyncTime      string `json:"sync_time"`
}

type accountResponse struct {
	ID            uint       `json:"id"`
	StoreName     string     `json:"store_name"`
	SyncEnabled   bool       `json:"sync_enabled"`
	SyncFrequency string     `json:"sync_frequency"`
	LastSyncAt    *time.Time `json:"last_sync_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// HandleList returns the caller's active accounts.
// @Summary List accounts
// @Description List the caller's connected eBay accounts.
// @Tags accounts
// @Produce json
// @Success 200 {array} accountResponse "Connected accounts"
// @Security BearerAuth
// @Router /api/accounts [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	accounts, err := h.service.List(c.Context(), mw.UserID(c))
	if err != nil {
		l.Error("Account listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list accounts"})
	}

	resp := make([]accountResponse, 0, len(accounts))
	for _, acc := range accounts {
		resp = append(resp, accountResponse{
			ID:            acc.ID,
			StoreName:     acc.StoreName,
			SyncEnabled:   acc.SyncEnabled,
			SyncFrequency: acc.SyncFrequency,
			LastSyncAt:    acc.LastSyncAt,
			CreatedAt:     acc.CreatedAt,
		})
	}
	return c.JSON(resp)
}

// HandleCreate connects a new eBay account.
// @Summary Connect account
// @Description Connect an eBay seller account with its Trading API credentials.
// @Tags accounts
// @Accept json
// @Produce json
// @Param body body createAccountRequest true "Account credentials"
// @Success 200 {object} map[string]interface{} "Created account ID"
// @Failure 400 {object} map[string]string "Missing fields"
// @Failure 403 {object} map[string]string "Plan limit reached"
// @Security BearerAuth
// @Router /api/accounts [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req createAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.StoreName == "" || req.AppID == "" || req.DevID == "" || req.CertID == "" || req.UserToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Store name and credentials are required"})
	}

	account, err := h.service.Create(c.Context(), mw.UserID(c), CreateInput{
		StoreName:     req.StoreName,
		AppID:         req.AppID,
		DevID:         req.DevID,
		CertID:        req.CertID,
		UserToken:     req.UserToken,
		SyncFrequency: req.SyncFrequency,
		SyncTime:      req.SyncTime,
	})
	if err != nil {
		var limitErr *LimitError
		if errors.As(err, &limitErr) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": fmt.Sprintf("Account limit reached (%d). Upgrade your plan.", limitErr.Limit),
			})
		}
		l.Error("Account creation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to connect account"})
	}

	return c.JSON(fiber.Map{"id": account.ID, "message": "eBay account connected successfully"})
}

// HandleDelete disconnects an account.
// @Summary Disconnect account
// @Description Soft-delete an eBay account so historic sync jobs keep their reference.
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} map[string]string "Deletion confirmation"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /api/accounts/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid account ID"})
	}

	if err := h.service.Delete(c.Context(), mw.UserID(c), uint(id)); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Account not found"})
		}
		l.Error("Account deletion failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete account"})
	}

	return c.JSON(fiber.Map{"message": "Account deleted"})
}
