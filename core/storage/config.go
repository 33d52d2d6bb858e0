package storage

import "strings"

// DefaultTimeoutSeconds bounds storage connections when the configured
// timeout is missing or nonsense.
const DefaultTimeoutSeconds = 30

// Config holds configuration for the storage provider.
type Config struct {
	// Enabled toggles the feed snapshot archive.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Endpoint is the storage service address, with or without a scheme.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL selects TLS for storage connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket to store feed snapshots in.
	Bucket string `mapstructure:"bucket" default:"dropsync-feeds"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Host returns the endpoint without a scheme. The MinIO client wants
// host:port and decides the scheme from UseSSL, but operators habitually
// paste full URLs into the config.
func (c Config) Host() string {
	host := strings.TrimPrefix(c.Endpoint, "http://")
	return strings.TrimPrefix(host, "https://")
}

// Timeout returns the configured timeout in seconds, defaulted when unset.
func (c Config) Timeout() int {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds
	}
	return c.TimeoutSeconds
}
