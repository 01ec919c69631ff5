// Package aircraft stores aircraft profiles and plans legs with them.
package aircraft

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ngmaloney/e6b-terminal/internal/database"
	"github.com/ngmaloney/e6b-terminal/internal/models"
	_ "modernc.org/sqlite"
)

// ErrProfileNotFound is returned when no profile has the requested name.
var ErrProfileNotFound = errors.New("aircraft profile not found")

// Repository handles persistence for aircraft profiles
type Repository struct {
	dbPath string
}

// NewRepository creates a profile repository backed by the database at dbPath
func NewRepository(dbPath string) *Repository {
	return &Repository{dbPath: dbPath}
}

func (r *Repository) open() (*sql.DB, error) {
	// Ensure schema exists (safe to call multiple times)
	if err := database.EnsureUserSchema(r.dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", r.dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// SaveProfile inserts a profile or updates the existing one with the same name
func (r *Repository) SaveProfile(p *models.AircraftProfile) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("saving profile: name is required")
	}

	db, err := r.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.FuelType == "" {
		p.FuelType = "100LL"
	}

	query := `
		INSERT INTO aircraft_profiles (name, cruise_tas, fuel_burn_gph, fuel_type, usable_fuel_gal, max_crosswind, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			cruise_tas = excluded.cruise_tas,
			fuel_burn_gph = excluded.fuel_burn_gph,
			fuel_type = excluded.fuel_type,
			usable_fuel_gal = excluded.usable_fuel_gal,
			max_crosswind = excluded.max_crosswind
		RETURNING id
	`

	err = db.QueryRow(query,
		p.Name,
		p.CruiseTAS,
		p.FuelBurnGPH,
		p.FuelType,
		p.UsableFuelGal,
		p.MaxCrosswind,
		p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	return nil
}

const selectProfile = `SELECT id, name, cruise_tas, fuel_burn_gph, fuel_type, usable_fuel_gal, max_crosswind, created_at FROM aircraft_profiles`

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(s scanner) (models.AircraftProfile, error) {
	var p models.AircraftProfile
	var createdAt sql.NullTime
	err := s.Scan(&p.ID, &p.Name, &p.CruiseTAS, &p.FuelBurnGPH, &p.FuelType, &p.UsableFuelGal, &p.MaxCrosswind, &createdAt)
	p.CreatedAt = createdAt.Time
	return p, err
}

// ListProfiles retrieves all saved profiles ordered by name
func (r *Repository) ListProfiles() ([]models.AircraftProfile, error) {
	db, err := r.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(selectProfile + " ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.AircraftProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

// GetProfile retrieves a profile by name
func (r *Repository) GetProfile(name string) (*models.AircraftProfile, error) {
	db, err := r.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	p, err := scanProfile(db.QueryRow(selectProfile+" WHERE name = ? COLLATE NOCASE", strings.TrimSpace(name)))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", name, ErrProfileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}

	return &p, nil
}

// DeleteProfile removes a profile by name
func (r *Repository) DeleteProfile(name string) error {
	db, err := r.open()
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.Exec("DELETE FROM aircraft_profiles WHERE name = ?", strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", name, ErrProfileNotFound)
	}

	return nil
}
