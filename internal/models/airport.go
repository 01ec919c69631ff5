package models

import (
	"strconv"
	"strings"
	"unicode"
)

// Airport represents an aerodrome from the reference database.
type Airport struct {
	Ident        string  `json:"ident"` // ICAO or local identifier (e.g. "KBOS")
	Type         string  `json:"type"`  // e.g. "large_airport", "small_airport"
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	ElevationFt  int     `json:"elevation_ft"`
	Municipality string  `json:"municipality"`
	Region       string  `json:"region"` // ISO region (e.g. "US-MA")
	Distance     float64 `json:"-"`      // Nautical miles from a search point, 0 for direct lookups
}

// RunwayEnd is one landing direction of a runway.
type RunwayEnd struct {
	Ident       string  `json:"ident"`        // e.g. "04R"
	HeadingTrue float64 `json:"heading_true"` // degrees true
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	ElevationFt int     `json:"elevation_ft"`
}

// Heading returns the true heading rounded to a whole degree in [1, 360].
func (e RunwayEnd) Heading() int {
	h := int(e.HeadingTrue + 0.5)
	h %= 360
	if h <= 0 {
		h += 360
	}
	return h
}

// HasPosition reports whether the threshold coordinates are known.
func (e RunwayEnd) HasPosition() bool {
	return e.Latitude != 0 || e.Longitude != 0
}

// Runway is a strip with a low end and a high end.
type Runway struct {
	AirportIdent string    `json:"airport_ident"`
	LengthFt     int       `json:"length_ft"`
	WidthFt      int       `json:"width_ft"`
	Surface      string    `json:"surface"`
	Lighted      bool      `json:"lighted"`
	Closed       bool      `json:"closed"`
	Low          RunwayEnd `json:"le"`
	High         RunwayEnd `json:"he"`
}

// Name returns the conventional "04R/22L" designation.
func (r Runway) Name() string {
	if r.High.Ident == "" {
		return r.Low.Ident
	}
	return r.Low.Ident + "/" + r.High.Ident
}

// Ends returns both landing directions, skipping an unnamed high end.
func (r Runway) Ends() []RunwayEnd {
	if r.High.Ident == "" {
		return []RunwayEnd{r.Low}
	}
	return []RunwayEnd{r.Low, r.High}
}

// HeadingFromDesignator derives the magnetic heading from a runway
// designator such as "09L" or "36". It returns 0 for designators that
// carry no number (e.g. "N" or "H1").
func HeadingFromDesignator(ident string) float64 {
	digits := strings.TrimRightFunc(strings.TrimSpace(ident), unicode.IsLetter)
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || n > 36 {
		return 0
	}
	return float64(n * 10)
}
