// Package server holds the HTTP server configuration and constants.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structures for server settings, such as the listen
// port and the CORS origins allowed for the dashboard frontend.
//
// # Configuration
//
// The Config struct defines the HTTP port and a comma-separated CORS origin
// list. Origins() falls back to the local dev-server defaults when unset.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by the start command to configure the Fiber app.
package server
