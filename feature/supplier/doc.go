// Package supplier manages supplier stock feeds.
//
// A feed row points at a downloadable CSV (AzureGreen, diecast, or a
// custom column-mapped format) and carries the column mapping the sync
// engine uses to normalize it. When the snapshot archive is enabled the
// package also exposes the raw CSVs captured by past sync runs.
//
// # Components
//
//   - Service: Ownership-scoped listing, creation with plan limits, soft
//     delete, and snapshot archive access.
//   - Handler: Exposes the HTTP endpoints and maps service errors to statuses.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET    /api/feeds                     : List the caller's active feeds.
//   - POST   /api/feeds                     : Add a supplier feed.
//   - DELETE /api/feeds/:id                 : Remove a feed.
//   - GET    /api/feeds/:id/snapshots       : List archived feed snapshots.
//   - GET    /api/feeds/:id/snapshots/:name : Download one snapshot CSV.
//   - DELETE /api/feeds/:id/snapshots/:name : Delete one snapshot.
package supplier
