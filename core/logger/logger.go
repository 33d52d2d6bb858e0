package logger

import (
	"fmt"

	"dropsync/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger from the configuration.
//
// Format "console" yields colored, human-readable output for terminals;
// everything else yields production JSON with ISO8601 timestamps. The
// configured level applies to both.
func New(cfg *Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var config zap.Config
	if cfg.Format == "console" {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.DisableStacktrace = true
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.MessageKey = "message"

	return config.Build()
}

// WithRayID attaches the request's ray ID to the logger so every line a
// handler writes can be correlated with the response's X-Ray-ID header.
// Outside a request (tests, background work) the logger passes through
// unchanged.
func WithRayID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	if rid, ok := c.Locals(rayid.LocalsKey).(string); ok && rid != "" {
		return l.With(zap.String("ray_id", rid))
	}
	return l
}
