// Package database opens and pools the MySQL connection.
//
// Connect turns a Config into a ready *gorm.DB: DSN assembly with an
// URL-encoded password and explicit dial/read/write timeouts, pool
// limits, and a ping so a bad host fails at startup instead of on the
// first query. Schema migration stays with the caller; the server runs
// AutoMigrate over the feature models when the config enables it.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
