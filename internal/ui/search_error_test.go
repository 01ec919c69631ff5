package ui

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/e6b-terminal/internal/runways"
)

// TestSearch_ErrorRecovery tests that users can recover from an unknown identifier
func TestSearch_ErrorRecovery(t *testing.T) {
	m := newTestModel(t, Options{})
	m = typeString(m, "ZZZZ")

	updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updatedModel.(Model)
	if m.state != StateLoading {
		t.Errorf("state = %v, want StateLoading", m.state)
	}

	// Simulate the lookup failing
	notFound := fmt.Errorf("ZZZZ: %w", runways.ErrAirportNotFound)
	updatedModel, _ = m.Update(airportLoadedMsg{err: notFound})
	m = updatedModel.(Model)

	if m.state != StateError {
		t.Errorf("state = %v, want StateError", m.state)
	}
	if !errors.Is(m.err, runways.ErrAirportNotFound) {
		t.Errorf("err = %v, want ErrAirportNotFound", m.err)
	}

	m.width = 80
	if view := m.View(); view == "" {
		t.Error("error view should not be empty")
	}

	// Any key returns to search
	updatedModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = updatedModel.(Model)
	if m.state != StateSearch {
		t.Errorf("state = %v, want StateSearch", m.state)
	}
	if m.err != nil {
		t.Error("Error should be cleared when returning to search")
	}

	// And a new search can be typed
	updatedModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	m = updatedModel.(Model)
	m = typeString(m, "KBOS")
	if m.searchInput.Value() != "KBOS" {
		t.Errorf("searchInput.Value() = %q, want KBOS", m.searchInput.Value())
	}
}

func TestSearch_ErrorState_QQuits(t *testing.T) {
	m := newTestModel(t, Options{})
	m.state = StateError
	m.err = fmt.Errorf("boom")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("Expected q to quit from the error screen")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q command did not quit")
	}
}
