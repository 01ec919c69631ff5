package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/ngmaloney/e6b-terminal/internal/models"
)

// profileItem wraps an AircraftProfile for use in a list
type profileItem struct {
	profile models.AircraftProfile
}

// FilterValue implements list.Item
func (p profileItem) FilterValue() string {
	return p.profile.Name
}

// Title implements list.DefaultItem
func (p profileItem) Title() string {
	return p.profile.Name
}

// Description implements list.DefaultItem
func (p profileItem) Description() string {
	desc := fmt.Sprintf("%.0f kt TAS • %.1f gph %s • %.0f gal usable",
		p.profile.CruiseTAS, p.profile.FuelBurnGPH, p.profile.FuelType, p.profile.UsableFuelGal)
	if p.profile.MaxCrosswind > 0 {
		desc += fmt.Sprintf(" • %.0f kt crosswind", p.profile.MaxCrosswind)
	}
	return desc
}

// createProfileList creates a list.Model from profiles
func createProfileList(profiles []models.AircraftProfile, width, height int) list.Model {
	items := make([]list.Item, len(profiles))
	for i, profile := range profiles {
		items[i] = profileItem{profile: profile}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Select an Aircraft Profile"
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)

	return l
}
