// Package dashboard aggregates per-user stats for the overview screen.
//
// # Components
//
//   - Service: Counts active accounts and feeds and finds the latest sync job.
//   - Handler: Exposes the HTTP endpoint.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET /api/dashboard/stats : Aggregated counts and the latest sync outcome.
package dashboard
