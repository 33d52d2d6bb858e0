package auth

import (
	"errors"

	"dropsync/core/logger"
	mw "dropsync/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for authentication.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes registers the routes that must stay reachable
// without a token. Call it before the auth middleware is installed.
func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	group := app.Group("/api/auth")
	group.Post("/register", h.HandleRegister)
	group.Post("/login", h.HandleLogin)
}

// RegisterRoutes registers the token-protected routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/auth")
	group.Get("/me", h.HandleMe)
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// HandleRegister creates a new user account.
// @Summary Register
// @Description Create a free-trial user and return an access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "Registration data"
// @Success 200 {object} tokenResponse "Access token"
// @Failure 400 {object} map[string]string "Email already registered"
// @Router /api/auth/register [post]
func (h *Handler) HandleRegister(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
	}

	token, err := h.service.Register(c.Context(), RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email already registered"})
		}
		l.Error("Registration failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Registration failed"})
	}

	return c.JSON(tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// HandleLogin exchanges credentials for an access token.
// @Summary Login
// @Description Check credentials and return an access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} tokenResponse "Access token"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 403 {object} map[string]string "Account disabled"
// @Router /api/auth/login [post]
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	token, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		case errors.Is(err, ErrAccountDisabled):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Account disabled"})
		default:
			l.Error("Login failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Login failed"})
		}
	}

	return c.JSON(tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// HandleMe returns the authenticated user's profile.
// @Summary Current user
// @Description Return the profile and plan limits of the authenticated user.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{} "User profile"
// @Failure 401 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /api/auth/me [get]
func (h *Handler) HandleMe(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	user, err := h.service.User(c.Context(), mw.UserID(c))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
		}
		l.Error("Profile lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Profile lookup failed"})
	}

	return c.JSON(fiber.Map{
		"id":           user.ID,
		"email":        user.Email,
		"full_name":    user.FullName,
		"plan":         user.Plan,
		"max_accounts": user.MaxAccounts,
		"max_listings": user.MaxListings,
		"max_feeds":    user.MaxFeeds,
		"created_at":   user.CreatedAt,
	})
}
