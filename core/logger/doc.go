// Package logger builds the application's zap loggers.
//
// One constructor serves both deployment shapes: console output with
// colored levels for local terminals, JSON with ISO8601 timestamps for
// production log shipping. The level and format come from the log
// section of the configuration.
//
// # Request Correlation
//
// Every HTTP request carries a ray ID (see core/middleware/rayid). The
// WithRayID helper pulls it out of the Fiber context and attaches it as
// a structured field, so the lines a handler logs can be matched to the
// X-Ray-ID header the client received.
//
// # Usage
//
//	logg, err := logger.New(&cfg.Log)
//	zap.ReplaceGlobals(logg)
//
//	// In a request handler:
//	l := logger.WithRayID(logg, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
