package security

// Config holds configuration for authentication.
type Config struct {
	// JWTSecret signs access tokens. Override it outside local development.
	JWTSecret string `mapstructure:"jwt_secret" default:"dev-secret-change-me"`
	// TokenTTLHours is the access token lifetime in hours.
	TokenTTLHours int `mapstructure:"token_ttl_hours" default:"168"`
}
