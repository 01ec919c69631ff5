package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/ngmaloney/e6b-terminal/internal/airspeed"
	"github.com/ngmaloney/e6b-terminal/internal/runways"
)

// renderObservation renders the METAR summary
func (m Model) renderObservation() string {
	if m.observation == nil {
		if m.obsErr != nil {
			return mutedStyle.Render(fmt.Sprintf("No METAR available: %v", m.obsErr))
		}
		return mutedStyle.Render("No METAR available")
	}
	obs := m.observation

	var lines []string
	lines = append(lines, valueStyle.Render(obs.RawText))

	var wind string
	switch {
	case obs.IsCalm():
		wind = "Calm"
	case obs.Variable:
		wind = fmt.Sprintf("Variable at %.0f kt", obs.WindSpeed)
	default:
		wind = fmt.Sprintf("%03d° at %.0f kt", obs.WindDirection, obs.WindSpeed)
	}
	if obs.HasGust {
		wind += fmt.Sprintf(" gusting %.0f", obs.WindGust)
	}
	lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render("Wind:"), wind))

	age := obs.Age(time.Now()).Round(time.Minute)
	ageLine := fmt.Sprintf("Observed %s ago", age)
	if obs.IsStale(time.Now()) {
		lines = append(lines, warningStyle.Render(ageLine+" (stale)"))
	} else {
		lines = append(lines, mutedStyle.Render(ageLine))
	}

	return strings.Join(lines, "\n")
}

// renderRunwayTable renders every runway end against the current wind
func (m Model) renderRunwayTable() string {
	if len(m.airportRunways) == 0 {
		return mutedStyle.Render("No open runways on file")
	}
	if m.observation == nil {
		var names []string
		for _, rw := range m.airportRunways {
			names = append(names, rw.Name())
		}
		return strings.Join(names, "  ")
	}
	if m.observation.Variable {
		return warningStyle.Render("Wind direction variable, components not computed")
	}

	lines := []string{
		labelStyle.Render(fmt.Sprintf("%-6s %4s  %-16s %-22s %s", "RWY", "HDG", "HEAD/TAIL", "CROSS", "GUST X")),
	}

	gust := m.observation.GustVector()
	for _, rw := range m.analysis {
		gc := airspeed.Decompose(gust, rw.End.Heading())
		line := fmt.Sprintf("%-6s %03d   %-16s %-22s %5.1f",
			rw.End.Ident,
			rw.End.Heading(),
			rw.Components.Base,
			rw.Components.Cross,
			gc.Cross.Magnitude,
		)
		switch {
		case rw.ExceedsCrosswind:
			line = dangerStyle.Render(line)
		case rw.Tailwind:
			line = warningStyle.Render(line)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// renderBestRunway renders the recommended landing direction
func (m Model) renderBestRunway() string {
	if m.observation == nil || m.observation.Variable || len(m.analysis) == 0 {
		return ""
	}
	best, ok := runways.BestRunway(m.analysis)
	if !ok {
		return dangerStyle.Render("✗ No runway within limits")
	}
	return successStyle.Render(fmt.Sprintf("✓ Runway %s: %s, %s",
		best.End.Ident, best.Components.Base, best.Components.Cross))
}
