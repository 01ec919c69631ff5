package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/e6b-terminal/internal/aircraft"
	"github.com/ngmaloney/e6b-terminal/internal/metar"
	"github.com/ngmaloney/e6b-terminal/internal/models"
	"github.com/ngmaloney/e6b-terminal/internal/runways"
)

// Message types for async operations

// errMsg is a message type for errors
type errMsg struct {
	err error
}

// provisioningStartedMsg carries the channels of a running provisioning job
type provisioningStartedMsg struct {
	progressChan chan string
	resultChan   chan error
}

// provisionStatusMsg is a progress line from provisioning
type provisionStatusMsg string

// provisionResultMsg is sent once provisioning finishes
type provisionResultMsg struct {
	err error
}

// airportLoadedMsg is sent when an airport and its runways are read
type airportLoadedMsg struct {
	airport *models.Airport
	runways []models.Runway
	err     error
}

// observationFetchedMsg is sent when a METAR has been fetched
type observationFetchedMsg struct {
	observation *models.Observation
	err         error
}

// profilesFetchedMsg is sent when saved aircraft profiles are loaded
type profilesFetchedMsg struct {
	profiles []models.AircraftProfile
	err      error
}

// initiateProvisioning starts building the reference tables in the background
func initiateProvisioning(dbPath string) tea.Cmd {
	return func() tea.Msg {
		progressChan := make(chan string, 10)
		resultChan := make(chan error, 1)

		go func() {
			err := runways.ProvisionDatabase(dbPath, progressChan)
			close(progressChan)
			resultChan <- err
		}()

		return provisioningStartedMsg{progressChan: progressChan, resultChan: resultChan}
	}
}

// waitForProvisionStatus waits for the next progress line
func waitForProvisionStatus(progressChan <-chan string) tea.Cmd {
	return func() tea.Msg {
		status, ok := <-progressChan
		if !ok {
			return nil
		}
		return provisionStatusMsg(status)
	}
}

// waitForProvisionResult waits for provisioning to finish
func waitForProvisionResult(resultChan <-chan error) tea.Cmd {
	return func() tea.Msg {
		return provisionResultMsg{err: <-resultChan}
	}
}

// loadAirport reads an airport and its open runways
func loadAirport(dbPath, ident string) tea.Cmd {
	return func() tea.Msg {
		airport, err := runways.GetAirport(dbPath, ident)
		if err != nil {
			return airportLoadedMsg{err: err}
		}
		rws, err := runways.GetRunways(dbPath, airport.Ident)
		return airportLoadedMsg{airport: airport, runways: rws, err: err}
	}
}

// fetchObservation fetches the latest METAR for a station
func fetchObservation(client metar.ObservationClient, station string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		obs, err := client.GetObservation(ctx, station)
		return observationFetchedMsg{observation: obs, err: err}
	}
}

// fetchProfiles loads saved aircraft profiles
func fetchProfiles(s *aircraft.Service) tea.Cmd {
	return func() tea.Msg {
		profiles, err := s.ListProfiles()
		return profilesFetchedMsg{profiles: profiles, err: err}
	}
}
