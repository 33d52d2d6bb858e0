package server

import "strings"

// DefaultCORSOrigins covers the local dashboard dev servers.
const DefaultCORSOrigins = "http://localhost:3000,http://localhost:5173"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// CORSOrigins is a comma-separated list of allowed origins.
	CORSOrigins string `mapstructure:"cors_origins" default:"http://localhost:3000,http://localhost:5173"`
}

// Origins returns the configured CORS origins, falling back to the defaults
// when the list is empty.
func (c Config) Origins() string {
	origins := strings.TrimSpace(c.CORSOrigins)
	if origins == "" {
		return DefaultCORSOrigins
	}
	return origins
}
