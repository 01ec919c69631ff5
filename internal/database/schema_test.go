package database

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestEnsureUserSchema_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	// 1. Initialize schema (also creates the missing directory)
	if err := EnsureUserSchema(dbPath); err != nil {
		t.Fatalf("First EnsureUserSchema failed: %v", err)
	}

	// 2. Insert a record
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	_, err = db.Exec(`INSERT INTO aircraft_profiles (name, cruise_tas, fuel_burn_gph) VALUES ('Test C172', 110, 8.5)`)
	db.Close()
	if err != nil {
		t.Fatalf("Failed to insert record: %v", err)
	}

	// 3. Initialize schema again (should not drop table)
	if err := EnsureUserSchema(dbPath); err != nil {
		t.Fatalf("Second EnsureUserSchema failed: %v", err)
	}

	// 4. Verify record exists with column defaults applied
	db, err = sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	defer db.Close()

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM aircraft_profiles WHERE name = 'Test C172'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query record: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 record, got %d. Data was likely lost due to table drop.", count)
	}

	var fuelType string
	if err := db.QueryRow("SELECT fuel_type FROM aircraft_profiles WHERE name = 'Test C172'").Scan(&fuelType); err != nil {
		t.Fatalf("Failed to query fuel_type: %v", err)
	}
	if fuelType != "100LL" {
		t.Errorf("fuel_type default = %q, want 100LL", fuelType)
	}
}
