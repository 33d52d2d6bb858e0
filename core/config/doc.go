// Package config assembles the application configuration.
//
// Settings come from environment variables, optionally overlaid by a
// .env file for local development, with defaults declared as struct
// tags on each section's Config type. Viper does the merging.
//
// # Sections
//
//   - Server: HTTP port and CORS origins
//   - Database: MySQL connection details
//   - Storage: S3/MinIO credentials and bucket for feed snapshots
//   - Auth: JWT signing secret and token lifetime
//   - Log: level and format
//
// Section structs live with the packages they configure (core/server,
// core/database, ...); this package only composes and loads them.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
