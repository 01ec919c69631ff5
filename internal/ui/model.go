package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/e6b-terminal/internal/aircraft"
	"github.com/ngmaloney/e6b-terminal/internal/database"
	"github.com/ngmaloney/e6b-terminal/internal/metar"
	"github.com/ngmaloney/e6b-terminal/internal/models"
	"github.com/ngmaloney/e6b-terminal/internal/runways"
)

// AppState represents the current state of the application
type AppState int

const (
	StateSearch       AppState = iota // Enter an airport identifier
	StateLoading                      // Loading airport and METAR
	StateDisplay                      // METAR and runway winds for the airport
	StateCalculator                   // Manual wind and leg calculations
	StateProfiles                     // Select an aircraft profile
	StateProvisioning                 // Initial data provisioning (downloading/building DB)
	StateError                        // Error state
)

// Options configures a new Model
type Options struct {
	DBPath      string                  // defaults to database.DBPath()
	Airport     string                  // loaded at startup when set
	Profile     string                  // selected at startup when set
	MetarClient metar.ObservationClient // defaults to aviationweather.gov
}

// Model represents the application's state
type Model struct {
	state     AppState
	prevState AppState // where the calculator and profile list return to
	width     int
	height    int
	err       error
	dbPath    string

	// Search
	searchInput    textinput.Model
	searchQuery    string
	initialAirport string

	// Services
	metarClient metar.ObservationClient
	aircraft    *aircraft.Service

	// Airport data
	airport        *models.Airport
	airportRunways []models.Runway
	observation    *models.Observation
	obsErr         error
	analysis       []runways.RunwayWind
	loadingWeather bool

	// Aircraft profiles
	profiles       []models.AircraftProfile
	profileList    list.Model
	profile        *models.AircraftProfile
	initialProfile string

	calc calculator

	// Provisioning
	spinner           spinner.Model
	provisionStatus   string
	provisionChannels *provisioningStartedMsg
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	if opts.DBPath == "" {
		opts.DBPath = database.DBPath()
	}
	if opts.MetarClient == nil {
		opts.MetarClient = metar.NewAviationWeatherClient()
	}

	ti := textinput.New()
	ti.Placeholder = "Enter an airport identifier (e.g. KBOS, BOS or 1B9)..."
	ti.Focus()
	ti.CharLimit = 10
	ti.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := Model{
		state:          StateSearch,
		dbPath:         opts.DBPath,
		searchInput:    ti,
		initialAirport: strings.ToUpper(strings.TrimSpace(opts.Airport)),
		initialProfile: strings.TrimSpace(opts.Profile),
		metarClient:    opts.MetarClient,
		aircraft:       aircraft.NewService(aircraft.NewRepository(opts.DBPath)),
		calc:           newCalculator(),
		spinner:        s,
	}
	if m.initialAirport != "" {
		m.state = StateLoading
		m.searchQuery = m.initialAirport
	}
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	needed, err := runways.NeedsProvisioning(m.dbPath)
	if err == nil && needed {
		return tea.Batch(m.spinner.Tick, initiateProvisioning(m.dbPath))
	}
	return m.startupCmds()
}

// startupCmds loads profiles and the startup airport once the database is ready
func (m Model) startupCmds() tea.Cmd {
	cmds := []tea.Cmd{fetchProfiles(m.aircraft), textinput.Blink}
	if m.initialAirport != "" {
		cmds = append(cmds, m.spinner.Tick, loadAirport(m.dbPath, m.initialAirport))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Handle window size
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		if m.state == StateProfiles {
			m.profileList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil
	}

	// Handle custom messages
	switch msg := msg.(type) {
	case errMsg:
		m.err = msg.err
		m.state = StateError
		return m, nil

	// Provisioning messages
	case provisioningStartedMsg:
		m.state = StateProvisioning
		m.provisionStatus = "Starting data provisioning..."
		m.provisionChannels = &msg
		return m, tea.Batch(
			waitForProvisionStatus(msg.progressChan),
			waitForProvisionResult(msg.resultChan),
		)

	case provisionStatusMsg:
		m.provisionStatus = string(msg)
		// Continue waiting for more status updates using stored channel
		if m.provisionChannels != nil {
			return m, waitForProvisionStatus(m.provisionChannels.progressChan)
		}
		return m, nil

	case provisionResultMsg:
		m.provisionChannels = nil
		if msg.err != nil {
			m.err = fmt.Errorf("provisioning failed: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		m.state = StateSearch
		if m.initialAirport != "" {
			m.state = StateLoading
		}
		m.searchInput.Focus()
		return m, m.startupCmds()

	case airportLoadedMsg:
		m.initialAirport = ""
		if msg.err != nil {
			m.err = fmt.Errorf("looking up %s: %w", m.searchQuery, msg.err)
			m.state = StateError
			return m, nil
		}
		m.airport = msg.airport
		m.airportRunways = msg.runways
		m.observation = nil
		m.obsErr = nil
		m.analysis = nil
		m.loadingWeather = true
		m.state = StateLoading
		return m, fetchObservation(m.metarClient, msg.airport.Ident)

	case observationFetchedMsg:
		m.loadingWeather = false
		if msg.err != nil {
			// Runways are still useful without a METAR
			m.obsErr = msg.err
		} else {
			m.observation = msg.observation
			m.obsErr = nil
		}
		m.refreshAnalysis()
		if m.state == StateLoading {
			m.state = StateDisplay
		}
		return m, nil

	case profilesFetchedMsg:
		if msg.err != nil {
			return m, nil
		}
		m.profiles = msg.profiles
		if m.initialProfile != "" {
			m.selectProfile(m.initialProfile)
			m.initialProfile = ""
		}
		if m.state == StateProfiles {
			m.profileList = createProfileList(m.profiles, m.width-4, m.height-8)
		}
		return m, nil
	}

	// Handle keyboard input
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Global keys
		if keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// State-specific handling
		switch m.state {
		case StateSearch:
			return m.handleSearchInput(keyMsg)

		case StateCalculator:
			return m.handleCalculator(keyMsg)

		case StateProfiles:
			return m.handleProfileList(msg)

		case StateDisplay:
			return m.handleDisplay(keyMsg)

		case StateError:
			if keyMsg.String() == "q" {
				return m, tea.Quit
			}
			// Any other key returns to search
			m.state = StateSearch
			m.err = nil
			m.searchInput.Focus()
			return m, textinput.Blink

		case StateLoading, StateProvisioning:
			if keyMsg.String() == "q" {
				return m, tea.Quit
			}
		}
	}

	// Update appropriate component based on state
	switch m.state {
	case StateProvisioning, StateLoading:
		m.spinner, cmd = m.spinner.Update(msg)
	case StateSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case StateCalculator:
		m.calc, cmd = m.calc.update(msg)
	case StateProfiles:
		m.profileList, cmd = m.profileList.Update(msg)
	}

	return m, cmd
}

// handleSearchInput handles keyboard input in search state
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "enter":
		query := strings.ToUpper(strings.TrimSpace(m.searchInput.Value()))
		if query == "" {
			return m, nil
		}
		m.searchQuery = query
		m.err = nil
		m.state = StateLoading
		return m, tea.Batch(m.spinner.Tick, loadAirport(m.dbPath, query))

	case "tab":
		return m.openCalculator()

	case "ctrl+p":
		return m.openProfiles()

	case "esc":
		if m.airport != nil {
			m.state = StateDisplay
			return m, nil
		}
	}

	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleDisplay handles keyboard input while showing an airport
func (m Model) handleDisplay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "s":
		m.state = StateSearch
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		m.airport = nil
		m.airportRunways = nil
		m.observation = nil
		m.obsErr = nil
		m.analysis = nil
		return m, textinput.Blink

	case "c":
		return m.openCalculator()

	case "p":
		return m.openProfiles()

	case "r":
		if m.airport == nil {
			return m, nil
		}
		m.loadingWeather = true
		m.state = StateLoading
		return m, tea.Batch(m.spinner.Tick, fetchObservation(m.metarClient, m.airport.Ident))
	}
	return m, nil
}

// openCalculator switches to the calculator, prefilling what is known
func (m Model) openCalculator() (tea.Model, tea.Cmd) {
	m.prevState = m.state
	m.state = StateCalculator

	if m.calc.value(fieldWind) == "" && m.observation != nil && !m.observation.Variable {
		m.calc.setValue(fieldWind, m.observation.Wind().String())
	}
	if m.calc.value(fieldTAS) == "" && m.profile != nil {
		m.calc.setValue(fieldTAS, fmt.Sprintf("%.0f", m.profile.CruiseTAS))
	}
	return m, textinput.Blink
}

// handleCalculator handles keyboard input in calculator state
func (m Model) handleCalculator(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "tab", "down":
		m.calc.move(1)
		return m, textinput.Blink
	case "shift+tab", "up":
		m.calc.move(-1)
		return m, textinput.Blink
	case "enter":
		m.calc.compute(m.aircraft, m.profile)
		return m, nil
	case "esc":
		m.state = m.prevState
		if m.state == StateSearch {
			m.searchInput.Focus()
		}
		return m, textinput.Blink
	}

	m.calc, cmd = m.calc.update(msg)
	return m, cmd
}

// openProfiles switches to the profile list and reloads it
func (m Model) openProfiles() (tea.Model, tea.Cmd) {
	m.prevState = m.state
	m.state = StateProfiles
	m.profileList = createProfileList(m.profiles, m.width-4, m.height-8)
	return m, fetchProfiles(m.aircraft)
}

// handleProfileList handles input in profile list state
func (m Model) handleProfileList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.profileList.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "enter":
			if item, ok := m.profileList.SelectedItem().(profileItem); ok {
				p := item.profile
				m.profile = &p
				m.refreshAnalysis()
			}
			m.state = m.prevState
			return m, nil
		case "esc":
			if m.profileList.FilterState() == list.FilterApplied {
				break
			}
			m.state = m.prevState
			return m, nil
		case "q":
			return m, tea.Quit
		}
	}

	m.profileList, cmd = m.profileList.Update(msg)
	return m, cmd
}

// selectProfile makes the named profile current if it exists
func (m *Model) selectProfile(name string) {
	for _, p := range m.profiles {
		if strings.EqualFold(p.Name, name) {
			selected := p
			m.profile = &selected
			m.refreshAnalysis()
			return
		}
	}
}

// refreshAnalysis recomputes runway winds from the current observation
func (m *Model) refreshAnalysis() {
	if m.observation == nil || m.observation.Variable {
		m.analysis = nil
		return
	}
	var maxCrosswind float64
	if m.profile != nil {
		maxCrosswind = m.profile.MaxCrosswind
	}
	m.analysis = runways.AnalyzeWind(m.airportRunways, m.observation.Wind(), maxCrosswind)
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case StateProvisioning:
		return m.viewProvisioning()
	case StateSearch:
		return m.viewSearch()
	case StateLoading:
		return m.viewLoading()
	case StateDisplay:
		return m.viewDisplay()
	case StateCalculator:
		return m.viewCalculator()
	case StateProfiles:
		return m.viewProfiles()
	case StateError:
		return m.viewError()
	}

	return ""
}

// viewProvisioning renders the initial setup screen
func (m Model) viewProvisioning() string {
	title := titleStyle.Render("✈ E6B Terminal Setup")

	status := mutedStyle.Render(m.provisionStatus)
	info := helpStyle.Render("One-time setup: downloading the OurAirports airport and runway lists...")

	return lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		title,
		"",
		fmt.Sprintf("%s %s", m.spinner.View(), status),
		"",
		info,
	)
}

// viewError renders the error view
func (m Model) viewError() string {
	title := errorStyle.Render("✗ Error")

	errorMsg := "An unknown error occurred"
	if m.err != nil {
		errorMsg = m.err.Error()
	}

	help := helpStyle.Render("Press any key to return to search • Q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", errorMsg, "", help)
}

// profileSummary is the one-line description of the selected profile
func (m Model) profileSummary() string {
	if m.profile == nil {
		return mutedStyle.Render("No aircraft profile selected")
	}
	return fmt.Sprintf("%s %s", labelStyle.Render("Aircraft:"), profileItem{profile: *m.profile}.Title())
}

// viewSearch renders the search view
func (m Model) viewSearch() string {
	title := titleStyle.Render("✈ E6B Terminal")
	subtitle := mutedStyle.Render("Runway winds, METARs and wind triangles")

	searchBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(64).
		Render(m.searchInput.View())

	help := helpStyle.Render("Enter: Look up airport • Tab: Calculator • Ctrl+P: Profiles • Ctrl+C: Quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		searchBox,
		"",
		m.profileSummary(),
		help,
	)
}

// viewLoading renders the loading view
func (m Model) viewLoading() string {
	s := fmt.Sprintf("%s Loading %s", m.spinner.View(), m.searchQuery)
	if m.airport != nil && m.loadingWeather {
		s = fmt.Sprintf("%s Fetching METAR for %s", m.spinner.View(), m.airport.Ident)
	}
	return s + "..."
}

// viewDisplay renders the airport, its METAR and the runway wind table
func (m Model) viewDisplay() string {
	if m.airport == nil {
		return "No airport selected"
	}
	a := m.airport

	header := titleStyle.Padding(0, 1).Render(fmt.Sprintf("✈ %s - %s", a.Ident, a.Name))
	location := mutedStyle.Render(fmt.Sprintf("%s, %s • elevation %d ft", a.Municipality, a.Region, a.ElevationFt))

	sections := []string{
		header,
		location,
		m.profileSummary(),
		sectionHeaderStyle.Render("METAR"),
		m.renderObservation(),
		sectionHeaderStyle.Render("RUNWAY WINDS"),
		m.renderRunwayTable(),
	}
	if best := m.renderBestRunway(); best != "" {
		sections = append(sections, "", best)
	}

	help := helpStyle.Render("S: New search • C: Calculator • P: Profiles • R: Refresh METAR • Q: Quit")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewCalculator renders the calculator
func (m Model) viewCalculator() string {
	title := titleStyle.Render("✈ Wind Calculator")
	help := helpStyle.Render("Tab/↑/↓: Next field • Enter: Compute • Esc: Back • Ctrl+C: Quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.profileSummary(),
		"",
		m.calc.view(),
		help,
	)
}

// viewProfiles renders the profile selection list
func (m Model) viewProfiles() string {
	if len(m.profiles) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("✈ Aircraft Profiles"),
			"",
			mutedStyle.Render("No saved profiles. Create one with the -save-profile flag."),
			helpStyle.Render("Esc: Back • Q: Quit"),
		)
	}

	help := helpStyle.Render("↑/↓: Navigate • Enter: Select • /: Filter • Esc: Back • Q: Quit")
	return lipgloss.JoinVertical(lipgloss.Left, m.profileList.View(), help)
}
