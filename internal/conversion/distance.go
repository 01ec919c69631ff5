// Package conversion provides distance and speed conversions. Lengths
// and speeds are carried as gonum SI units.
package conversion

import (
	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/unit"
)

// StatuteMile is pinned at 1609.34 m rather than the exact 1609.344 so
// results match the published E6B tables.
const (
	StatuteMile  unit.Length = 1609.34 * unit.Metre
	NauticalMile unit.Length = 1852 * unit.Metre
	Foot         unit.Length = 0.3048 * unit.Metre
)

// StatuteToNautical converts statute miles to nautical miles, so one
// statute mile is about 0.869 NM. It does not return 1.1507823082754423
// for one mile; that figure is the nautical to statute ratio applied
// the wrong way round.
func StatuteToNautical[T constraints.Float](d T) T {
	return d * T(StatuteMile) / T(NauticalMile)
}

// Feet returns a length given in feet.
func Feet(ft float64) unit.Length {
	return unit.Length(ft) * Foot
}
