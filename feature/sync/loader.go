package sync

import (
	"dropsync/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	runner  *Runner
	service *Service
	handler *Handler
}

// NewFeature creates a new sync feature.
func NewFeature(db *gorm.DB, archiver *storage.Archiver, logger *zap.Logger) *Feature {
	runner := NewRunner(db, archiver, logger)
	svc := NewService(db, runner, logger)
	h := NewHandler(svc)
	return &Feature{runner: runner, service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "sync"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Drain waits for in-flight sync runs. Called during shutdown.
func (f *Feature) Drain() {
	f.runner.Wait()
}
