// Package metar fetches surface weather observations.
package metar

import (
	"context"
	"errors"

	"github.com/ngmaloney/e6b-terminal/internal/models"
)

// ErrNoObservation is returned when a station has no current METAR.
var ErrNoObservation = errors.New("no observation available")

// ObservationClient defines the interface for fetching METAR observations
type ObservationClient interface {
	// GetObservation retrieves the latest observation for an ICAO station
	GetObservation(ctx context.Context, station string) (*models.Observation, error)
}
