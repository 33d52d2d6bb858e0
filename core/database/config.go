package database

import (
	"fmt"
	"net/url"
)

// DefaultTimeoutSeconds bounds dial, read and write when the configured
// timeout is missing or nonsense.
const DefaultTimeoutSeconds = 30

// Config holds configuration for the database connection.
type Config struct {
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name.
	Name string `mapstructure:"name" default:"dropsync"`
	// TimeoutSeconds is the dial/read/write timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// AutoMigrate enables schema migration at startup.
	AutoMigrate bool `mapstructure:"auto_migrate" default:"true"`
}

// Timeout returns the configured timeout in seconds, defaulted when unset.
func (c Config) Timeout() int {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds
	}
	return c.TimeoutSeconds
}

// DSN builds the go-sql-driver connection string. The password is URL
// encoded (the driver requires it for special characters), parseTime
// maps DATETIME columns to time.Time, and the single timeout value
// covers dial, read and write.
func (c Config) DSN() string {
	credentials := url.UserPassword(c.User, c.Password).String()
	timeout := c.Timeout()

	return fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		credentials, c.Host, c.Port, c.Name, timeout, timeout, timeout)
}
