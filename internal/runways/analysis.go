package runways

import (
	"sort"

	"github.com/ngmaloney/e6b-terminal/internal/airspeed"
	"github.com/ngmaloney/e6b-terminal/internal/models"
)

// RunwayWind is the wind resolved against one landing direction.
type RunwayWind struct {
	Runway           models.Runway
	End              models.RunwayEnd
	Components       airspeed.WindComponents
	ExceedsCrosswind bool
	Tailwind         bool
}

// Usable reports an end with no tailwind and crosswind inside the limit.
func (rw RunwayWind) Usable() bool {
	return !rw.ExceedsCrosswind && !rw.Tailwind
}

// AnalyzeWind decomposes wind against every end of every runway. A
// maxCrosswind of zero or less disables the crosswind check. Results are
// ordered by headwind, strongest first, then by crosswind, weakest first.
func AnalyzeWind(runways []models.Runway, wind airspeed.PolarVector, maxCrosswind float64) []RunwayWind {
	var results []RunwayWind
	for _, rw := range runways {
		for _, end := range rw.Ends() {
			wc := airspeed.Decompose(wind, end.Heading())
			results = append(results, RunwayWind{
				Runway:           rw,
				End:              end,
				Components:       wc,
				ExceedsCrosswind: maxCrosswind > 0 && wc.Cross.Magnitude > maxCrosswind,
				Tailwind:         wc.Base.Kind == airspeed.Tailwind && wc.Base.Magnitude > 0,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		hi, hj := results[i].Components.Base.Signed(), results[j].Components.Base.Signed()
		if hi != hj {
			return hi > hj
		}
		ci, cj := results[i].Components.Cross.Magnitude, results[j].Components.Cross.Magnitude
		if ci != cj {
			return ci < cj
		}
		return results[i].End.Ident < results[j].End.Ident
	})

	return results
}

// BestRunway returns the first usable end of an AnalyzeWind result.
func BestRunway(analysis []RunwayWind) (RunwayWind, bool) {
	for _, rw := range analysis {
		if rw.Usable() {
			return rw, true
		}
	}
	return RunwayWind{}, false
}
