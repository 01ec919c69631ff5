package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DBPath returns the path to the single shared database
func DBPath() string {
	return filepath.Join("data", "e6b-terminal.db")
}

// EnsureUserSchema ensures that the user-specific tables (like aircraft_profiles) exist.
func EnsureUserSchema(dbPath string) error {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database to ensure schema: %w", err)
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS aircraft_profiles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			cruise_tas REAL NOT NULL,
			fuel_burn_gph REAL NOT NULL,
			fuel_type TEXT NOT NULL DEFAULT '100LL',
			usable_fuel_gal REAL NOT NULL DEFAULT 0,
			max_crosswind REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_aircraft_profiles_name ON aircraft_profiles(name);
	`)
	if err != nil {
		return fmt.Errorf("creating aircraft_profiles table: %w", err)
	}

	return nil
}
