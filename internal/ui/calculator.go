package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/e6b-terminal/internal/aircraft"
	"github.com/ngmaloney/e6b-terminal/internal/airspeed"
	"github.com/ngmaloney/e6b-terminal/internal/models"
)

// Calculator fields, in tab order
const (
	fieldWind = iota
	fieldHeading
	fieldCourse
	fieldTAS
	fieldDistance
	calcFieldCount
)

var calcLabels = [calcFieldCount]string{"Wind", "Runway heading", "Course", "TAS (kt)", "Distance (NM)"}

var calcPlaceholders = [calcFieldCount]string{"270@20 or 27020G28KT", "300", "090", "120", "45"}

// calculator is the manual wind side of the flight computer
type calculator struct {
	inputs  []textinput.Model
	focus   int
	results []string
	err     error
}

func newCalculator() calculator {
	inputs := make([]textinput.Model, calcFieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = calcPlaceholders[i]
		ti.CharLimit = 24
		ti.Width = 26
		inputs[i] = ti
	}
	inputs[fieldWind].Focus()
	return calculator{inputs: inputs}
}

// move shifts focus by delta fields, wrapping around
func (c *calculator) move(delta int) {
	c.inputs[c.focus].Blur()
	c.focus = (c.focus + delta + calcFieldCount) % calcFieldCount
	c.inputs[c.focus].Focus()
}

func (c *calculator) setValue(field int, value string) {
	c.inputs[field].SetValue(value)
}

func (c calculator) value(field int) string {
	return strings.TrimSpace(c.inputs[field].Value())
}

func (c calculator) update(msg tea.Msg) (calculator, tea.Cmd) {
	var cmd tea.Cmd
	c.inputs[c.focus], cmd = c.inputs[c.focus].Update(msg)
	return c, cmd
}

// compute resolves the wind against the runway heading and, when a
// course is entered, solves the wind triangle for the leg.
func (c *calculator) compute(svc *aircraft.Service, profile *models.AircraftProfile) {
	c.results = nil
	c.err = nil

	wind, err := airspeed.ParseVector(c.value(fieldWind))
	if err != nil {
		c.err = err
		return
	}

	if c.value(fieldHeading) == "" && c.value(fieldCourse) == "" {
		c.err = fmt.Errorf("enter a runway heading or a course")
		return
	}

	if s := c.value(fieldHeading); s != "" {
		heading, err := strconv.Atoi(s)
		if err != nil {
			c.err = fmt.Errorf("invalid runway heading %q", s)
			return
		}
		wc := airspeed.Decompose(wind, heading)
		line := fmt.Sprintf("Runway %03d: %s", heading, wc)
		if profile != nil && !aircraft.CheckCrosswind(*profile, wc) {
			line = dangerStyle.Render(line + fmt.Sprintf(" (limit %.0f kt)", profile.MaxCrosswind))
		}
		c.results = append(c.results, line)
	}

	if s := c.value(fieldCourse); s != "" {
		course, err := strconv.Atoi(s)
		if err != nil {
			c.err = fmt.Errorf("invalid course %q", s)
			return
		}

		var p models.AircraftProfile
		if profile != nil {
			p = *profile
		}
		if t := c.value(fieldTAS); t != "" {
			tas, err := strconv.ParseFloat(t, 64)
			if err != nil {
				c.err = fmt.Errorf("invalid TAS %q", t)
				return
			}
			p.CruiseTAS = tas
		}
		var distance float64
		if d := c.value(fieldDistance); d != "" {
			distance, err = strconv.ParseFloat(d, 64)
			if err != nil {
				c.err = fmt.Errorf("invalid distance %q", d)
				return
			}
		}

		plan, err := svc.PlanLeg(p, course, distance, wind)
		if err != nil {
			c.err = err
			return
		}
		c.results = append(c.results, planLines(plan)...)
	}
}

// planLines formats a leg plan for display
func planLines(plan *aircraft.LegPlan) []string {
	lines := []string{
		fmt.Sprintf("Heading %03d (%+d), groundspeed %.2f kt", plan.HeadingDeg, plan.Correction, plan.GroundSpeed),
	}
	if plan.DistanceNM > 0 {
		lines = append(lines, fmt.Sprintf("ETE %s for %.1f NM", formatDuration(plan.ETE), plan.DistanceNM))
	}
	if plan.Profile.FuelBurnGPH > 0 && plan.DistanceNM > 0 {
		fuelLine := fmt.Sprintf("Fuel %.1f gal (%.0f lb), reserve %.1f gal", plan.FuelGal, plan.FuelLb, plan.ReserveGal)
		switch {
		case plan.Profile.UsableFuelGal <= 0:
			lines = append(lines, fuelLine)
		case plan.Sufficient:
			lines = append(lines, successStyle.Render(fuelLine))
		default:
			lines = append(lines, dangerStyle.Render(fuelLine+", insufficient"))
		}
	}
	return lines
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}

func (c calculator) view() string {
	var rows []string
	for i, input := range c.inputs {
		label := labelStyle
		if i == c.focus {
			label = focusedLabelStyle
		}
		rows = append(rows, fmt.Sprintf("%s %s", label.Width(16).Render(calcLabels[i]), input.View()))
	}

	var out []string
	switch {
	case c.err != nil:
		out = append(out, errorStyle.Render("✗ "+c.err.Error()))
	case len(c.results) > 0:
		out = append(out, c.results...)
	default:
		out = append(out, mutedStyle.Render("Press Enter to compute"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		paneStyle.Render(strings.Join(out, "\n")),
	)
}
