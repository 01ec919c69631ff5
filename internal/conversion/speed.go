package conversion

import "gonum.org/v1/gonum/unit"

const (
	Knot        = unit.Velocity(float64(NauticalMile) / float64(unit.Hour))
	MilePerHour = unit.Velocity(float64(StatuteMile) / float64(unit.Hour))
)

// Mph returns a speed given in statute miles per hour.
func Mph(s float64) unit.Velocity {
	return unit.Velocity(s) * MilePerHour
}

// Knots expresses v in knots.
func Knots(v unit.Velocity) float64 {
	return float64(v / Knot)
}

// MphToKnots converts statute miles per hour to knots.
func MphToKnots(s float64) float64 {
	return Knots(Mph(s))
}
