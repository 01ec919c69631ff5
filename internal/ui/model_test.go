package ui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/e6b-terminal/internal/models"
)

// mockObservationClient returns a canned observation
type mockObservationClient struct {
	observation *models.Observation
	err         error
	stations    []string
}

func (m *mockObservationClient) GetObservation(ctx context.Context, station string) (*models.Observation, error) {
	m.stations = append(m.stations, station)
	if m.err != nil {
		return nil, m.err
	}
	return m.observation, nil
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.DBPath == "" {
		opts.DBPath = filepath.Join(t.TempDir(), "test.db")
	}
	if opts.MetarClient == nil {
		opts.MetarClient = &mockObservationClient{}
	}
	return NewModel(opts)
}

func typeString(m Model, s string) Model {
	for _, char := range s {
		updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{char}})
		m = updatedModel.(Model)
	}
	return m
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t, Options{})

	if m.state != StateSearch {
		t.Errorf("NewModel() state = %v, want StateSearch", m.state)
	}
	if !m.searchInput.Focused() {
		t.Error("Expected search input to be focused initially")
	}
	if m.aircraft == nil {
		t.Error("NewModel() should create the aircraft service")
	}
}

func TestNewModel_Defaults(t *testing.T) {
	m := NewModel(Options{})

	if m.dbPath != filepath.Join("data", "e6b-terminal.db") {
		t.Errorf("dbPath = %s, want the default database path", m.dbPath)
	}
	if m.metarClient == nil {
		t.Error("NewModel() should default the METAR client")
	}
}

func TestNewModel_InitialAirport(t *testing.T) {
	m := newTestModel(t, Options{Airport: " kbos "})

	if m.state != StateLoading {
		t.Errorf("state = %v, want StateLoading", m.state)
	}
	if m.searchQuery != "KBOS" {
		t.Errorf("searchQuery = %q, want KBOS", m.searchQuery)
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	m := newTestModel(t, Options{})

	updatedModel, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updatedModel.(Model)

	if m.width != 120 {
		t.Errorf("After WindowSizeMsg, width = %d, want 120", m.width)
	}
	if m.height != 40 {
		t.Errorf("After WindowSizeMsg, height = %d, want 40", m.height)
	}
}

func TestModel_Update_ErrorMsg(t *testing.T) {
	m := newTestModel(t, Options{})

	updatedModel, _ := m.Update(errMsg{err: tea.ErrProgramKilled})
	m = updatedModel.(Model)

	if m.state != StateError {
		t.Errorf("After errMsg, state = %v, want StateError", m.state)
	}
	if m.err == nil {
		t.Error("After errMsg, err should not be nil")
	}
}

func TestModel_CtrlC_Quits(t *testing.T) {
	for _, state := range []AppState{StateSearch, StateDisplay, StateCalculator, StateLoading} {
		m := newTestModel(t, Options{})
		m.state = state

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		if cmd == nil {
			t.Fatalf("state %v: expected Ctrl+C to return quit command", state)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("state %v: Ctrl+C command did not quit", state)
		}
	}
}

func TestTextInputHandling(t *testing.T) {
	m := newTestModel(t, Options{})

	m = typeString(m, "kbos")
	if m.searchInput.Value() != "kbos" {
		t.Errorf("Expected search input to be 'kbos', got '%s'", m.searchInput.Value())
	}

	updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = updatedModel.(Model)
	if m.searchInput.Value() != "kbo" {
		t.Errorf("Expected search input to be 'kbo' after backspace, got '%s'", m.searchInput.Value())
	}

	// q is a letter while typing, not quit
	m = typeString(m, "q")
	if m.searchInput.Value() != "kboq" {
		t.Errorf("Expected search input to accept 'q', got '%s'", m.searchInput.Value())
	}
	if m.state != StateSearch {
		t.Errorf("state = %v, want StateSearch", m.state)
	}
}

func TestEnterKeyWithEmptyInput(t *testing.T) {
	m := newTestModel(t, Options{})

	updatedModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updatedModel.(Model)

	if m.state != StateSearch {
		t.Errorf("Expected to remain in StateSearch, got %v", m.state)
	}
	if cmd != nil {
		t.Error("Expected no command for empty search")
	}
}

func TestEnterKeyStartsLookup(t *testing.T) {
	m := newTestModel(t, Options{})
	m = typeString(m, " bos ")

	updatedModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updatedModel.(Model)

	if m.state != StateLoading {
		t.Errorf("state = %v, want StateLoading", m.state)
	}
	if m.searchQuery != "BOS" {
		t.Errorf("searchQuery = %q, want BOS", m.searchQuery)
	}
	if cmd == nil {
		t.Error("Expected a command to load the airport")
	}
}

func TestSearch_TabOpensCalculator(t *testing.T) {
	m := newTestModel(t, Options{})

	updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updatedModel.(Model)
	if m.state != StateCalculator {
		t.Fatalf("state = %v, want StateCalculator", m.state)
	}

	updatedModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updatedModel.(Model)
	if m.state != StateSearch {
		t.Errorf("state after Esc = %v, want StateSearch", m.state)
	}
	if !m.searchInput.Focused() {
		t.Error("search input should be focused after returning")
	}
}

func TestModel_View_States(t *testing.T) {
	tests := []struct {
		name  string
		state AppState
	}{
		{"search", StateSearch},
		{"loading", StateLoading},
		{"display", StateDisplay},
		{"calculator", StateCalculator},
		{"profiles", StateProfiles},
		{"provisioning", StateProvisioning},
		{"error", StateError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, Options{})
			m.state = tt.state
			m.width = 80
			m.height = 24

			if view := m.View(); view == "" {
				t.Errorf("View() returned empty string for state %v", tt.state)
			}
		})
	}
}

func TestModel_View_InitialLoading(t *testing.T) {
	m := newTestModel(t, Options{})

	if view := m.View(); view != "Loading..." {
		t.Errorf("View() before window size = %q, want 'Loading...'", view)
	}
}

func TestAppState_Constants(t *testing.T) {
	if StateSearch != 0 {
		t.Errorf("StateSearch = %d, want 0", StateSearch)
	}
	if StateLoading != 1 {
		t.Errorf("StateLoading = %d, want 1", StateLoading)
	}
	if StateDisplay != 2 {
		t.Errorf("StateDisplay = %d, want 2", StateDisplay)
	}
	if StateError != 6 {
		t.Errorf("StateError = %d, want 6", StateError)
	}
}
