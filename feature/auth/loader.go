package auth

import (
	"dropsync/core/security"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new auth feature.
func NewFeature(db *gorm.DB, tokens *security.TokenManager, logger *zap.Logger) *Feature {
	svc := NewService(db, tokens, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "auth"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// LoadPublic registers the register/login routes. It must run before the
// bearer-token middleware so those routes stay reachable without a token.
func (f *Feature) LoadPublic(app fiber.Router) {
	f.handler.RegisterPublicRoutes(app)
}

// RequireActiveUser returns the user gate middleware bound to this
// feature's service.
func (f *Feature) RequireActiveUser() fiber.Handler {
	return RequireActiveUser(f.service)
}

// Load registers the feature's protected routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
