package runways

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ngmaloney/e6b-terminal/internal/conversion"
	"github.com/ngmaloney/e6b-terminal/internal/geo"
	"github.com/ngmaloney/e6b-terminal/internal/models"
	_ "modernc.org/sqlite"
)

var (
	// OurAirports publishes nightly CSV dumps of airports and runways
	ourAirportsBaseURL = "https://davidmegginson.github.io/ourairports-data"
	provisionMu        sync.Mutex
)

const progressEvery = 5000

// magneticDeclination is a function variable to allow mocking in tests
var magneticDeclination = geo.MagneticDeclination

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS airports (
		ident TEXT PRIMARY KEY,
		type TEXT,
		name TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		elevation_ft INTEGER,
		municipality TEXT,
		region TEXT,
		iata TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_airports_coords ON airports(latitude, longitude);
	CREATE INDEX IF NOT EXISTS idx_airports_iata ON airports(iata);

	CREATE TABLE IF NOT EXISTS runways (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		airport_ident TEXT NOT NULL,
		length_ft INTEGER,
		width_ft INTEGER,
		surface TEXT,
		lighted INTEGER NOT NULL DEFAULT 0,
		closed INTEGER NOT NULL DEFAULT 0,
		le_ident TEXT NOT NULL,
		le_heading REAL,
		le_latitude REAL,
		le_longitude REAL,
		le_elevation_ft INTEGER,
		he_ident TEXT,
		he_heading REAL,
		he_latitude REAL,
		he_longitude REAL,
		he_elevation_ft INTEGER,
		UNIQUE(airport_ident, le_ident, he_ident)
	);
	CREATE INDEX IF NOT EXISTS idx_runways_airport ON runways(airport_ident);
`

// EnsureSchema creates the airports and runways tables if they are missing.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("creating reference tables: %w", err)
	}
	return nil
}

// NeedsProvisioning checks if the airports and runways tables need to be provisioned
func NeedsProvisioning(dbPath string) (bool, error) {
	// If file doesn't exist, we need to provision
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return true, nil
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return false, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('airports', 'runways')").Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking for reference tables: %w", err)
	}

	return count < 2, nil
}

// ProvisionDatabase downloads the OurAirports airport and runway lists and
// stores them in the SQLite database. Progress goes to progressChan when
// one is given, otherwise to the log.
func ProvisionDatabase(dbPath string, progressChan chan<- string) error {
	provisionMu.Lock()
	defer provisionMu.Unlock()

	needs, err := NeedsProvisioning(dbPath)
	if err != nil {
		return err
	}
	if !needs {
		return nil
	}

	sendProgress := func(msg string) {
		if progressChan != nil {
			progressChan <- msg
		} else {
			log.Println(msg)
		}
	}

	sendProgress("Airport reference tables not found, provisioning...")

	dataDir := filepath.Dir(dbPath)
	if err = os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database for building: %w", err)
	}
	defer db.Close()

	if err := EnsureSchema(db); err != nil {
		return err
	}

	for _, step := range []struct {
		file  string
		build func(*sql.DB, io.Reader, func(string)) (int, error)
	}{
		{"airports.csv", buildAirportsTable},
		{"runways.csv", buildRunwaysTable},
	} {
		url := fmt.Sprintf("%s/%s", ourAirportsBaseURL, step.file)
		csvPath := filepath.Join(dataDir, step.file)

		sendProgress(fmt.Sprintf("Downloading %s...", url))
		if err := downloadFile(csvPath, url); err != nil {
			return fmt.Errorf("downloading %s: %w", step.file, err)
		}

		f, err := os.Open(csvPath)
		if err != nil {
			os.Remove(csvPath)
			return fmt.Errorf("opening %s: %w", step.file, err)
		}
		count, err := step.build(db, f, sendProgress)
		f.Close()
		os.Remove(csvPath) // Clean up after import
		if err != nil {
			return fmt.Errorf("building from %s: %w", step.file, err)
		}
		sendProgress(fmt.Sprintf("Imported %d rows from %s", count, step.file))
	}

	sendProgress(fmt.Sprintf("Successfully provisioned airport database at %s", dbPath))
	return nil
}

// downloadFile downloads a file from a URL to a local path
func downloadFile(path string, url string) error {
	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

// csvRows reads a headed CSV and calls fn with a column accessor per row
func csvRows(r io.Reader, fn func(col func(name string) string) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading record: %w", err)
		}
		col := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		if err := fn(col); err != nil {
			return err
		}
	}
}

// buildAirportsTable inserts airports from an OurAirports airports.csv
func buildAirportsTable(db *sql.DB, r io.Reader, progress func(string)) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() // Rollback on error

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO airports
		(ident, type, name, latitude, longitude, elevation_ft, municipality, region, iata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	err = csvRows(r, func(col func(string) string) error {
		ident := strings.ToUpper(col("ident"))
		if ident == "" || col("type") == "closed" {
			return nil
		}
		_, err := stmt.Exec(ident, col("type"), col("name"),
			parseFloat(col("latitude_deg")), parseFloat(col("longitude_deg")),
			parseInt(col("elevation_ft")), col("municipality"), col("iso_region"),
			strings.ToUpper(col("iata_code")))
		if err != nil {
			log.Printf("Error inserting airport %s: %v", ident, err)
			return nil
		}
		count++
		if count%progressEvery == 0 && progress != nil {
			progress(fmt.Sprintf("Inserted %d airports...", count))
		}
		return nil
	})
	if err != nil {
		return count, err
	}

	if err := tx.Commit(); err != nil {
		return count, fmt.Errorf("committing transaction: %w", err)
	}
	return count, nil
}

// buildRunwaysTable inserts runways from an OurAirports runways.csv
func buildRunwaysTable(db *sql.DB, r io.Reader, progress func(string)) (int, error) {
	var runways []models.Runway
	err := csvRows(r, func(col func(string) string) error {
		rw := models.Runway{
			AirportIdent: strings.ToUpper(col("airport_ident")),
			LengthFt:     parseInt(col("length_ft")),
			WidthFt:      parseInt(col("width_ft")),
			Surface:      col("surface"),
			Lighted:      col("lighted") == "1",
			Closed:       col("closed") == "1",
			Low: models.RunwayEnd{
				Ident:       strings.ToUpper(col("le_ident")),
				HeadingTrue: parseFloat(col("le_heading_degT")),
				Latitude:    parseFloat(col("le_latitude_deg")),
				Longitude:   parseFloat(col("le_longitude_deg")),
				ElevationFt: parseInt(col("le_elevation_ft")),
			},
			High: models.RunwayEnd{
				Ident:       strings.ToUpper(col("he_ident")),
				HeadingTrue: parseFloat(col("he_heading_degT")),
				Latitude:    parseFloat(col("he_latitude_deg")),
				Longitude:   parseFloat(col("he_longitude_deg")),
				ElevationFt: parseInt(col("he_elevation_ft")),
			},
		}
		if rw.AirportIdent == "" || rw.Low.Ident == "" {
			return nil
		}
		runways = append(runways, rw)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return insertRunways(db, runways, progress)
}

// insertRunways stores runways, filling in missing headings first
func insertRunways(db *sql.DB, runways []models.Runway, progress func(string)) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO runways (
			airport_ident, length_ft, width_ft, surface, lighted, closed,
			le_ident, le_heading, le_latitude, le_longitude, le_elevation_ft,
			he_ident, he_heading, he_latitude, he_longitude, he_elevation_ft
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now()
	variations := make(map[string]float64)
	variationAt := func(ident string) func() float64 {
		return func() float64 {
			v, ok := variations[ident]
			if !ok {
				v = airportVariation(tx, ident, now)
				variations[ident] = v
			}
			return v
		}
	}

	count := 0
	for _, rw := range runways {
		resolveHeadings(&rw, variationAt(rw.AirportIdent))
		_, err := stmt.Exec(rw.AirportIdent, rw.LengthFt, rw.WidthFt, rw.Surface, rw.Lighted, rw.Closed,
			rw.Low.Ident, rw.Low.HeadingTrue, rw.Low.Latitude, rw.Low.Longitude, rw.Low.ElevationFt,
			rw.High.Ident, rw.High.HeadingTrue, rw.High.Latitude, rw.High.Longitude, rw.High.ElevationFt)
		if err != nil {
			log.Printf("Error inserting runway %s %s: %v", rw.AirportIdent, rw.Name(), err)
			continue
		}
		count++
		if count%progressEvery == 0 && progress != nil {
			progress(fmt.Sprintf("Inserted %d runways...", count))
		}
	}

	if err := tx.Commit(); err != nil {
		return count, fmt.Errorf("committing transaction: %w", err)
	}
	return count, nil
}

// resolveHeadings fills unknown true headings from the threshold
// positions, then from the opposite end, then from the designator.
// Designators are magnetic; variation returns the local declination
// and is only called when a designator is needed.
func resolveHeadings(rw *models.Runway, variation func() float64) {
	positioned := rw.Low.HasPosition() && rw.High.HasPosition()

	if rw.Low.HeadingTrue == 0 {
		switch {
		case positioned:
			rw.Low.HeadingTrue = geo.InitialBearing(rw.Low.Latitude, rw.Low.Longitude, rw.High.Latitude, rw.High.Longitude)
		case rw.High.HeadingTrue != 0:
			rw.Low.HeadingTrue = reciprocal(rw.High.HeadingTrue)
		default:
			rw.Low.HeadingTrue = designatorHeading(rw.Low.Ident, variation)
		}
	}

	if rw.High.Ident == "" || rw.High.HeadingTrue != 0 {
		return
	}
	switch {
	case positioned:
		rw.High.HeadingTrue = geo.InitialBearing(rw.High.Latitude, rw.High.Longitude, rw.Low.Latitude, rw.Low.Longitude)
	case rw.Low.HeadingTrue != 0:
		rw.High.HeadingTrue = reciprocal(rw.Low.HeadingTrue)
	default:
		rw.High.HeadingTrue = designatorHeading(rw.High.Ident, variation)
	}
}

// designatorHeading converts a designator's magnetic heading to true.
// North comes out as 360 since 0 marks an unknown heading.
func designatorHeading(ident string, variation func() float64) float64 {
	magnetic := models.HeadingFromDesignator(ident)
	if magnetic == 0 {
		return 0
	}
	h := math.Mod(magnetic+variation()+360, 360)
	if h == 0 {
		h = 360
	}
	return h
}

// airportVariation returns the magnetic declination at an airport, or 0
// when the airport is unknown or the magnetic model cannot be evaluated.
func airportVariation(tx *sql.Tx, ident string, at time.Time) float64 {
	var lat, lon float64
	var elevation sql.NullInt64
	err := tx.QueryRow("SELECT latitude, longitude, elevation_ft FROM airports WHERE ident = ?", ident).
		Scan(&lat, &lon, &elevation)
	if err != nil {
		return 0
	}

	d, err := magneticDeclination(lat, lon, float64(conversion.Feet(float64(elevation.Int64))), at)
	if err != nil {
		log.Printf("No magnetic variation for %s, using designator headings as true: %v", ident, err)
		return 0
	}
	return d
}

func reciprocal(h float64) float64 {
	r := h + 180
	if r >= 360 {
		r -= 360
	}
	return r
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return int(parseFloat(s))
	}
	return n
}
