// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to open the local mirror database with one of
// three drivers: sqlite (the default, a single file next to the binary), mysql, or
// postgres (through the pgx-backed GORM driver).
//
// # Connect
//
// Connect builds the DSN from Config, applies pool settings suited to the driver,
// and pings the database under a timeout so a misconfigured deployment fails at
// startup rather than in the middle of a sync run.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read a table's columns in a dialect-aware way.
// The catalog store uses them after migration to verify the mirror table carries
// every column the reconciliation writes.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "products", []string{"shop_id"})
package database
