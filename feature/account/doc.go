// Package account manages connected eBay seller accounts.
//
// Each account row carries the owner's eBay Trading API credentials
// (app/dev/cert keys plus the user token) and the sync settings the
// runner reads when a job executes. Accounts are never hard-deleted:
// deletion flips is_active so historic sync jobs keep their reference.
//
// # Components
//
//   - Service: Ownership-scoped listing, creation with plan limits, soft delete.
//   - Handler: Exposes the HTTP endpoints and maps service errors to statuses.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET    /api/accounts     : List the caller's active accounts.
//   - POST   /api/accounts     : Connect a new eBay account.
//   - DELETE /api/accounts/:id : Disconnect an account.
package account
