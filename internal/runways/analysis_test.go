package runways

import (
	"testing"

	"github.com/ngmaloney/e6b-terminal/internal/airspeed"
	"github.com/ngmaloney/e6b-terminal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRunways = []models.Runway{
	{
		AirportIdent: "KBOS",
		Low:          models.RunwayEnd{Ident: "04R", HeadingTrue: 35},
		High:         models.RunwayEnd{Ident: "22L", HeadingTrue: 215},
	},
	{
		AirportIdent: "KBOS",
		Low:          models.RunwayEnd{Ident: "15R", HeadingTrue: 150},
		High:         models.RunwayEnd{Ident: "33L", HeadingTrue: 330},
	},
}

func endIdents(analysis []RunwayWind) []string {
	var idents []string
	for _, rw := range analysis {
		idents = append(idents, rw.End.Ident)
	}
	return idents
}

func TestAnalyzeWind(t *testing.T) {
	analysis := AnalyzeWind(testRunways, airspeed.PolarVector{Direction: 40, Speed: 15}, 12)
	require.Len(t, analysis, 4)

	assert.Equal(t, []string{"04R", "33L", "15R", "22L"}, endIdents(analysis))

	byEnd := make(map[string]RunwayWind)
	for _, rw := range analysis {
		byEnd[rw.End.Ident] = rw
	}

	assert.Equal(t, airspeed.WindComponents{
		Base:  airspeed.BaseComponent{Kind: airspeed.Headwind, Magnitude: 14.94},
		Cross: airspeed.CrossComponent{Kind: airspeed.RightCross, Magnitude: 1.31},
	}, byEnd["04R"].Components)
	assert.True(t, byEnd["04R"].Usable())

	assert.Equal(t, airspeed.CrossComponent{Kind: airspeed.RightCross, Magnitude: 14.1}, byEnd["33L"].Components.Cross)
	assert.True(t, byEnd["33L"].ExceedsCrosswind)
	assert.False(t, byEnd["33L"].Tailwind)

	assert.True(t, byEnd["22L"].Tailwind)
	assert.False(t, byEnd["22L"].ExceedsCrosswind)
	assert.False(t, byEnd["22L"].Usable())

	best, ok := BestRunway(analysis)
	require.True(t, ok)
	assert.Equal(t, "04R", best.End.Ident)
	assert.Equal(t, "04R/22L", best.Runway.Name())
}

func TestAnalyzeWind_NoLimit(t *testing.T) {
	analysis := AnalyzeWind(testRunways, airspeed.PolarVector{Direction: 40, Speed: 15}, 0)
	for _, rw := range analysis {
		assert.False(t, rw.ExceedsCrosswind, rw.End.Ident)
	}
}

func TestAnalyzeWind_Calm(t *testing.T) {
	analysis := AnalyzeWind(testRunways, airspeed.PolarVector{}, 10)

	// Every end is equally good, so idents break the tie
	assert.Equal(t, []string{"04R", "15R", "22L", "33L"}, endIdents(analysis))
	for _, rw := range analysis {
		assert.True(t, rw.Usable(), rw.End.Ident)
	}
}

func TestBestRunway_NoneUsable(t *testing.T) {
	analysis := AnalyzeWind(testRunways[:1], airspeed.PolarVector{Direction: 130, Speed: 20}, 5)
	require.Len(t, analysis, 2)

	_, ok := BestRunway(analysis)
	assert.False(t, ok)

	_, ok = BestRunway(nil)
	assert.False(t, ok)
}

func TestAnalyzeWind_SingleEnded(t *testing.T) {
	helipad := []models.Runway{{AirportIdent: "3MA9", Low: models.RunwayEnd{Ident: "H1"}}}

	analysis := AnalyzeWind(helipad, airspeed.PolarVector{Direction: 360, Speed: 10}, 0)
	require.Len(t, analysis, 1)
	assert.Equal(t, "H1", analysis[0].End.Ident)
}
