package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"dropsync/core/database"
	"dropsync/core/logger"
	"dropsync/core/security"
	"dropsync/core/server"
	"dropsync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config aggregates the configuration of every subsystem. Each section
// lives with the package it configures; this package only assembles them
// and feeds them from the environment.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the feed snapshot archive (S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Auth holds configuration for token signing and lifetimes.
	Auth security.Config `mapstructure:"auth"`
}

// LoadConfig reads the configuration from the environment, overlaid on
// the struct-tag defaults. A .env file in path, when present, is loaded
// into the environment first; its absence is not an error.
//
// Environment names follow the section nesting with underscores, so
// SERVER_PORT feeds server.port and DATABASE_TIMEOUT_SECONDS feeds
// database.timeout_seconds.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()
	registerDefaults(v, reflect.TypeOf(Config{}), "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return &config, nil
}

// registerDefaults walks the config struct and seeds viper with the
// `default` tag of every leaf field, keyed by its `mapstructure` path.
// Registering a key (even with an empty default) is what makes
// AutomaticEnv pick up its environment variable, so no field is skipped.
func registerDefaults(v *viper.Viper, t reflect.Type, prefix string) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			registerDefaults(v, field.Type, key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}
