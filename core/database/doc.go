// Package database opens the GORM connection used for manifest storage.
//
// MySQL and SQLite are supported; SQLite is the default so the toolkit runs
// without external services. Connect pings the database before returning.
//
// GetTableColumns reads a table's column list (SHOW COLUMNS on MySQL, PRAGMA
// table_info on SQLite) and backs the schema part of the integrity check.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Database unavailable", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "asset_manifest_entries")
package database
