// Package airspeed models winds and airspeeds as polar vectors and
// resolves them against headings.
package airspeed

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidVector is returned for vectors with a negative or
	// non-finite speed, or text that does not describe a vector.
	ErrInvalidVector = errors.New("invalid vector")

	// ErrDegenerateComposition is returned by Compose when the two
	// vectors cancel out and the resultant has no direction.
	ErrDegenerateComposition = errors.New("degenerate composition")
)

// PolarVector is a direction in whole compass degrees plus a magnitude.
// Directions outside [0, 360) are accepted as-is.
type PolarVector struct {
	Direction int     // degrees
	Speed     float64 // knots, must not be negative
}

// NewPolarVector returns a PolarVector after checking that speed is a
// finite, non-negative number.
func NewPolarVector(direction int, speed float64) (PolarVector, error) {
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed < 0 {
		return PolarVector{}, fmt.Errorf("speed %v: %w", speed, ErrInvalidVector)
	}
	return PolarVector{Direction: direction, Speed: speed}, nil
}

// Normalized returns v with its direction wrapped into [0, 360).
func (v PolarVector) Normalized() PolarVector {
	d := v.Direction % 360
	if d < 0 {
		d += 360
	}
	return PolarVector{Direction: d, Speed: v.Speed}
}

func (v PolarVector) String() string {
	return fmt.Sprintf("%03d@%.2f", v.Direction, v.Speed)
}

var metarWindRe = regexp.MustCompile(`^(\d{3})(\d{2,3})(?:G\d{2,3})?KT$`)

// ParseVector parses "270@20", "270/20" or METAR style "27020KT".
func ParseVector(s string) (PolarVector, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return PolarVector{}, fmt.Errorf("empty vector: %w", ErrInvalidVector)
	}

	var dirText, speedText string
	if m := metarWindRe.FindStringSubmatch(s); m != nil {
		dirText, speedText = m[1], m[2]
	} else {
		parts := strings.FieldsFunc(s, func(r rune) bool { return r == '@' || r == '/' })
		if len(parts) != 2 {
			return PolarVector{}, fmt.Errorf("%q: expected DIRECTION@SPEED: %w", s, ErrInvalidVector)
		}
		dirText = strings.TrimSpace(parts[0])
		speedText = strings.TrimSuffix(strings.TrimSpace(parts[1]), "KT")
	}

	dir, err := strconv.Atoi(dirText)
	if err != nil {
		return PolarVector{}, fmt.Errorf("%q: bad direction: %w", s, ErrInvalidVector)
	}
	speed, err := strconv.ParseFloat(speedText, 64)
	if err != nil {
		return PolarVector{}, fmt.Errorf("%q: bad speed: %w", s, ErrInvalidVector)
	}
	return NewPolarVector(dir, speed)
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
