package models

import (
	"time"

	"github.com/ngmaloney/e6b-terminal/internal/airspeed"
)

// Observation represents a decoded METAR surface observation
type Observation struct {
	StationID     string
	StationName   string
	ObservedAt    time.Time
	WindDirection int     // degrees true, 0 when variable or calm
	WindSpeed     float64 // knots
	WindGust      float64 // knots (0 if no gusts)
	HasGust       bool
	Variable      bool   // direction reported as VRB
	RawText       string // Original METAR
}

// IsCalm reports a calm wind (00000KT)
func (o *Observation) IsCalm() bool {
	return o.WindSpeed == 0 && !o.HasGust
}

// Wind returns the sustained wind as a polar vector
func (o *Observation) Wind() airspeed.PolarVector {
	return airspeed.PolarVector{Direction: o.WindDirection, Speed: o.WindSpeed}
}

// GustVector returns the gust as a polar vector, or the sustained wind
// when no gust was reported
func (o *Observation) GustVector() airspeed.PolarVector {
	if !o.HasGust {
		return o.Wind()
	}
	return airspeed.PolarVector{Direction: o.WindDirection, Speed: o.WindGust}
}

// Age returns how long ago the observation was taken
func (o *Observation) Age(now time.Time) time.Duration {
	return now.Sub(o.ObservedAt)
}

// IsStale reports an observation older than the usual hourly cycle plus slack
func (o *Observation) IsStale(now time.Time) bool {
	return o.Age(now) > 90*time.Minute
}
