// Package security provides password hashing and access token management.
//
// # Tokens
//
// The TokenManager issues HS256-signed JWTs carrying the user ID and validates
// incoming ones. Expired and otherwise invalid tokens map to the ErrExpiredToken
// and ErrInvalidToken sentinels so callers can pick response codes without
// inspecting library errors.
//
// # Passwords
//
// Passwords are hashed with bcrypt. Only the hash is ever stored; CheckPassword
// compares in constant time via bcrypt itself.
//
// # Usage
//
//	tokens := security.NewTokenManager(cfg.Auth)
//	token, err := tokens.Generate(user.ID)
//
//	claims, err := tokens.Validate(header)
//	if errors.Is(err, security.ErrExpiredToken) { ... }
package security
