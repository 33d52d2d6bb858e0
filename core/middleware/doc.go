// Package middleware groups the HTTP middleware shared by every feature.
//
// Each concern lives in its own subpackage:
//
//   - auth validates JWT bearer tokens and places the authenticated user's
//     ID in the request locals, where handlers read it via auth.UserID.
//   - rayid assigns every request a unique ray ID, echoed in the response
//     headers and attached to log lines so a single request can be traced
//     across handler and service boundaries.
//
// The subpackages only depend on Fiber and the core security primitives,
// so they can be registered globally in cmd or per route group inside a
// feature.
package middleware
