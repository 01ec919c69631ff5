// Package fuel computes fuel volume, weight and endurance from a burn
// rate in US gallons per hour.
package fuel

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Type is a fuel grade.
type Type string

const (
	Avgas Type = "100LL"
	JetA  Type = "JET-A"
	Mogas Type = "MOGAS"
)

// VFR reserve durations.
const (
	DayReserve   = 30 * time.Minute
	NightReserve = 45 * time.Minute
)

// ErrInvalidRate is returned when a burn rate is zero or negative.
var ErrInvalidRate = errors.New("fuel burn rate must be positive")

// pounds per US gallon at standard temperature
var density = map[Type]float64{
	Avgas: 6.0,
	JetA:  6.7,
	Mogas: 6.0,
}

// ParseType accepts the common spellings of each grade.
func ParseType(s string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "100LL", "AVGAS":
		return Avgas, nil
	case "JET-A", "JETA", "JET A", "JET-A1":
		return JetA, nil
	case "MOGAS", "AUTO":
		return Mogas, nil
	}
	return "", fmt.Errorf("unknown fuel type %q", s)
}

func (t Type) String() string { return string(t) }

// Density returns pounds per gallon, falling back to avgas for unknown grades.
func (t Type) Density() float64 {
	if d, ok := density[t]; ok {
		return d
	}
	return density[Avgas]
}

// Volume returns the gallons burned at rateGPH over d.
func Volume(rateGPH float64, d time.Duration) float64 {
	return rateGPH * d.Hours()
}

// Weight returns the weight in pounds of gallons of fuel of type t.
func Weight(gallons float64, t Type) float64 {
	return gallons * t.Density()
}

// Reserve returns the gallons that must remain on landing.
func Reserve(rateGPH float64, d time.Duration) float64 {
	return Volume(rateGPH, d)
}

// Endurance returns how long gallons last at rateGPH.
func Endurance(gallons, rateGPH float64) (time.Duration, error) {
	if rateGPH <= 0 {
		return 0, ErrInvalidRate
	}
	return time.Duration(gallons / rateGPH * float64(time.Hour)), nil
}
