package database

import (
	"database/sql"
	"fmt"
)

// Migrate creates the schema if it does not exist.
func Migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		lat        REAL NOT NULL,
		lng        REAL NOT NULL,
		label      TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (lat, lng)
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
