package models

import "time"

// AircraftProfile is a user-configured aircraft used for planning.
type AircraftProfile struct {
	ID            int64     `json:"id"`            // Database Primary Key (0 if not saved)
	Name          string    `json:"name"`          // e.g. "N12345 C172"
	CruiseTAS     float64   `json:"cruise_tas"`    // knots
	FuelBurnGPH   float64   `json:"fuel_burn_gph"` // US gallons per hour
	FuelType      string    `json:"fuel_type"`     // e.g. "100LL"
	UsableFuelGal float64   `json:"usable_fuel_gal"`
	MaxCrosswind  float64   `json:"max_crosswind"` // maximum demonstrated crosswind, knots
	CreatedAt     time.Time `json:"created_at"`
}
