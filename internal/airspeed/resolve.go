package airspeed

import (
	"fmt"
	"math"
)

// Decompose resolves v into the part along referenceHeading and the part
// across it. A positive along-track value is a headwind, a positive
// across-track value a right crosswind; exact zeros report as Tailwind
// and LeftCross.
func Decompose(v PolarVector, referenceHeading int) WindComponents {
	x := normalizeOffset(v.Direction - referenceHeading)
	y := 90 - x

	base := round2(v.Speed * math.Cos(radians(float64(x))))
	cross := round2(v.Speed * math.Cos(radians(float64(y))))

	var wc WindComponents
	if base > 0 {
		wc.Base = BaseComponent{Kind: Headwind, Magnitude: base}
	} else {
		wc.Base = BaseComponent{Kind: Tailwind, Magnitude: math.Abs(base)}
	}
	if cross > 0 {
		wc.Cross = CrossComponent{Kind: RightCross, Magnitude: cross}
	} else {
		wc.Cross = CrossComponent{Kind: LeftCross, Magnitude: math.Abs(cross)}
	}
	return wc
}

// normalizeOffset wraps an angle into (-180, 180].
func normalizeOffset(x int) int {
	x %= 360
	if x <= -180 {
		x += 360
	} else if x > 180 {
		x -= 360
	}
	return x
}

// Compose adds b to a with the law of cosines for the magnitude and the
// law of sines for the angular correction. The correction is truncated
// toward zero before it is applied to a's direction, and the result's
// direction is not wrapped into [0, 360).
//
// When the vectors cancel out, Compose returns the zero vector and an
// error wrapping ErrDegenerateComposition.
func Compose(a, b PolarVector) (PolarVector, error) {
	v1, v2 := a.Speed, b.Speed
	diff := a.Direction - b.Direction

	alpha := radians(math.Abs(180 - math.Abs(float64(diff))))

	sq := v1*v1 + v2*v2 - 2*v1*v2*math.Cos(alpha)
	if sq <= 0 || math.IsNaN(sq) {
		return PolarVector{}, fmt.Errorf("composing %s with %s: %w", a, b, ErrDegenerateComposition)
	}
	resultant := math.Sqrt(sq)

	ratio := v2 * math.Sin(alpha) / resultant
	ratio = math.Max(-1, math.Min(1, ratio))
	wca := math.Copysign(degrees(math.Asin(ratio)), float64(diff))

	return PolarVector{
		Direction: a.Direction + int(math.Trunc(wca)),
		Speed:     round2(resultant),
	}, nil
}
