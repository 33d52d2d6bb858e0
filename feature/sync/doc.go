// Package sync triggers engine runs and records their outcome.
//
// A trigger verifies ownership, responds immediately, and hands the run
// to a background Runner. The runner deduplicates runs per account with
// singleflight, inserts a running job row, executes core/engine, and
// persists the result together with account and feed bookkeeping. Job
// history is read back through the jobs endpoints.
//
// # Components
//
//   - Runner: Background execution, per-account dedupe, result persistence.
//   - Service: Trigger validation and job history reads.
//   - Handler: Exposes the HTTP endpoints and maps service errors to statuses.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST /api/sync/trigger  : Start a sync run for an account/feed pair.
//   - GET  /api/sync/jobs     : List the caller's sync jobs, newest first.
//   - GET  /api/sync/jobs/:id : Get one job with its log summary.
package sync
