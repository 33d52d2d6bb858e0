// Package auth implements user registration, login, and identity.
//
// Passwords are stored as bcrypt hashes and sessions are stateless JWTs
// issued by core/security. The register and login routes are public; the
// identity route sits behind the bearer-token middleware like the rest of
// the API.
//
// # Components
//
//   - Service: Registration, credential checks, and user lookup.
//   - Handler: Exposes the HTTP endpoints and maps service errors to statuses.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST /api/auth/register : Create a user and return an access token.
//   - POST /api/auth/login    : Exchange credentials for an access token.
//   - GET  /api/auth/me       : Return the authenticated user's profile.
package auth
