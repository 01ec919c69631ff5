// Package runways provides the airport and runway reference database and
// runway wind analysis.
package runways

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ngmaloney/e6b-terminal/internal/geo"
	"github.com/ngmaloney/e6b-terminal/internal/models"
	_ "modernc.org/sqlite"
)

// ErrAirportNotFound is returned when an identifier matches no airport.
var ErrAirportNotFound = errors.New("airport not found")

var (
	db      *sql.DB
	once    sync.Once
	initErr error

	// GetDB is a function variable to allow mocking in tests
	GetDB = func(dbPath string) (*sql.DB, error) {
		once.Do(func() {
			// Provision database if it doesn't exist
			initErr = ProvisionDatabase(dbPath, nil)
			if initErr != nil {
				return
			}

			db, initErr = sql.Open("sqlite", dbPath)
			if initErr != nil {
				return
			}
			_, _ = db.Exec("PRAGMA journal_mode=WAL")
			_, _ = db.Exec("PRAGMA synchronous=NORMAL")
			_, _ = db.Exec("PRAGMA cache_size=10000")
		})
		return db, initErr
	}
)

// GetAirport looks up an airport by ICAO/local ident or IATA code.
func GetAirport(dbPath, ident string) (*models.Airport, error) {
	db, err := GetDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return getAirportFromDB(db, ident)
}

func getAirportFromDB(db *sql.DB, ident string) (*models.Airport, error) {
	ident = strings.ToUpper(strings.TrimSpace(ident))
	if ident == "" {
		return nil, fmt.Errorf("empty identifier: %w", ErrAirportNotFound)
	}

	var a models.Airport
	var elevation sql.NullInt64
	var typ, municipality, region sql.NullString
	err := db.QueryRow(`
		SELECT ident, type, name, latitude, longitude, elevation_ft, municipality, region
		FROM airports
		WHERE ident = ? OR iata = ?
		ORDER BY ident = ? DESC
		LIMIT 1`,
		ident, ident, ident,
	).Scan(&a.Ident, &typ, &a.Name, &a.Latitude, &a.Longitude, &elevation, &municipality, &region)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", ident, ErrAirportNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying airport %s: %w", ident, err)
	}

	a.Type = typ.String
	a.ElevationFt = int(elevation.Int64)
	a.Municipality = municipality.String
	a.Region = region.String
	return &a, nil
}

// GetRunways returns the open runways of an airport, longest first.
func GetRunways(dbPath, airportIdent string) ([]models.Runway, error) {
	db, err := GetDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return getRunwaysFromDB(db, airportIdent)
}

func getRunwaysFromDB(db *sql.DB, airportIdent string) ([]models.Runway, error) {
	rows, err := db.Query(`
		SELECT airport_ident, length_ft, width_ft, surface, lighted, closed,
		       le_ident, le_heading, le_latitude, le_longitude, le_elevation_ft,
		       he_ident, he_heading, he_latitude, he_longitude, he_elevation_ft
		FROM runways
		WHERE airport_ident = ? AND closed = 0
		ORDER BY length_ft DESC, le_ident`,
		strings.ToUpper(airportIdent))
	if err != nil {
		return nil, fmt.Errorf("querying runways: %w", err)
	}
	defer rows.Close()

	var runways []models.Runway
	for rows.Next() {
		var rw models.Runway
		var length, width, leElev, heElev sql.NullInt64
		var surface, heIdent sql.NullString
		var leHdg, leLat, leLon, heHdg, heLat, heLon sql.NullFloat64

		if err := rows.Scan(&rw.AirportIdent, &length, &width, &surface, &rw.Lighted, &rw.Closed,
			&rw.Low.Ident, &leHdg, &leLat, &leLon, &leElev,
			&heIdent, &heHdg, &heLat, &heLon, &heElev); err != nil {
			return nil, fmt.Errorf("scanning runway: %w", err)
		}

		rw.LengthFt = int(length.Int64)
		rw.WidthFt = int(width.Int64)
		rw.Surface = surface.String
		rw.Low.HeadingTrue = leHdg.Float64
		rw.Low.Latitude = leLat.Float64
		rw.Low.Longitude = leLon.Float64
		rw.Low.ElevationFt = int(leElev.Int64)
		rw.High.Ident = heIdent.String
		rw.High.HeadingTrue = heHdg.Float64
		rw.High.Latitude = heLat.Float64
		rw.High.Longitude = heLon.Float64
		rw.High.ElevationFt = int(heElev.Int64)
		runways = append(runways, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runways: %w", err)
	}

	return runways, nil
}

// FindNearbyAirports finds airports within maxNM nautical miles of a point,
// nearest first.
func FindNearbyAirports(dbPath string, lat, lon, maxNM float64) ([]models.Airport, error) {
	db, err := GetDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return findNearbyAirportsFromDB(db, lat, lon, maxNM)
}

func findNearbyAirportsFromDB(db *sql.DB, lat, lon, maxNM float64) ([]models.Airport, error) {
	// Bounding box with a 50% margin, then exact distance below
	dLat, dLon := geo.DegreesPerNM(lat)
	latDelta := maxNM * dLat * 1.5
	lonDelta := maxNM * dLon * 1.5

	rows, err := db.Query(`
		SELECT ident, type, name, latitude, longitude, elevation_ft, municipality, region
		FROM airports
		WHERE latitude BETWEEN ? AND ?
		  AND longitude BETWEEN ? AND ?`,
		lat-latDelta, lat+latDelta,
		lon-lonDelta, lon+lonDelta)
	if err != nil {
		return nil, fmt.Errorf("querying airports: %w", err)
	}
	defer rows.Close()

	var airports []models.Airport
	for rows.Next() {
		var a models.Airport
		var elevation sql.NullInt64
		var typ, municipality, region sql.NullString

		if err := rows.Scan(&a.Ident, &typ, &a.Name, &a.Latitude, &a.Longitude, &elevation, &municipality, &region); err != nil {
			continue
		}

		a.Distance = geo.HaversineNM(lat, lon, a.Latitude, a.Longitude)
		if a.Distance > maxNM {
			continue
		}
		a.Type = typ.String
		a.ElevationFt = int(elevation.Int64)
		a.Municipality = municipality.String
		a.Region = region.String
		airports = append(airports, a)
	}

	sort.Slice(airports, func(i, j int) bool {
		return airports[i].Distance < airports[j].Distance
	})

	return airports, nil
}
