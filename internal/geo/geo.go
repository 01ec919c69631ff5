// Package geo provides great-circle distance, bearing and magnetic
// variation helpers.
package geo

import (
	"math"
	"time"

	sgeo "github.com/skypies/geo"
	"github.com/westphae/geomag/pkg/egm96"
	"github.com/westphae/geomag/pkg/wmm"
)

// HaversineNM calculates distance in nautical miles between two lat/lon points
func HaversineNM(lat1, lon1, lat2, lon2 float64) float64 {
	return sgeo.Latlong{Lat: lat1, Long: lon1}.DistNM(sgeo.Latlong{Lat: lat2, Long: lon2})
}

// InitialBearing returns the true course in [0, 360) from the first
// point toward the second.
func InitialBearing(lat1, lon1, lat2, lon2 float64) float64 {
	deg := sgeo.Latlong{Lat: lat1, Long: lon1}.BearingTowards(sgeo.Latlong{Lat: lat2, Long: lon2})
	return math.Mod(math.Mod(deg, 360)+360, 360)
}

// DegreesPerNM returns rough latitude/longitude spans of one nautical
// mile at lat, for bounding-box prefilters.
func DegreesPerNM(lat float64) (dLat, dLon float64) {
	dLat = 1.0 / 60.0
	cos := math.Cos(lat * math.Pi / 180)
	if cos < 0.01 {
		cos = 0.01
	}
	dLon = dLat / cos
	return dLat, dLon
}

// MagneticDeclination returns the World Magnetic Model declination at a
// point, in degrees with east positive. Adding it to a magnetic heading
// gives the true heading.
func MagneticDeclination(lat, lon, altitudeMetres float64, at time.Time) (float64, error) {
	loc := egm96.NewLocationGeodetic(lat, lon, altitudeMetres)
	mag, err := wmm.CalculateWMMMagneticField(loc, at)
	if err != nil {
		return 0, err
	}
	return mag.D(), nil
}
