// Package database handles the run journal database connection and schema inspection.
//
// It provides a wrapper around GORM to configure either a SQLite file (the default,
// suitable for a single instance) or a MySQL server.
//
// # Connect
//
// Connect opens the database and verifies it with a ping bounded by TimeoutSeconds.
// The journal is optional: callers log the error and continue without it.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live table definition so the journal
// can warn when an existing table lacks columns it writes.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("Journal disabled", zap.Error(err))
//	}
package database
