package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		m.cards = msg.cards
		m.rebuildColumns()
		// Keep the detail screen in sync with the fresh snapshot.
		if m.currentScreen == screenDetail && m.selected != nil {
			found := false
			for i := range m.cards {
				if m.cards[i].Meta.ID == m.selected.Meta.ID {
					m.selected = &m.cards[i]
					found = true
					break
				}
			}
			if !found {
				m.selected = nil
				m.currentScreen = screenBoard
			}
		}
		return m, nil

	case statusMsgMsg:
		m.statusMsg = string(msg)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.currentScreen {
	case screenDetail:
		switch msg.String() {
		case "q", "esc", "enter":
			m.currentScreen = screenBoard
			m.selected = nil
		case "r":
			return m, m.refresh()
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	default: // screenBoard
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "left", "h":
			m.cursorCol--
			m.clampCursor()
		case "right", "l":
			m.cursorCol++
			m.clampCursor()
		case "up", "k":
			m.cursorRow--
			m.clampCursor()
		case "down", "j":
			m.cursorRow++
			m.clampCursor()

		case "enter":
			if c := m.selectedFromBoard(); c != nil {
				m.selected = c
				m.currentScreen = screenDetail
			}

		case "/":
			m.filtering = true
			m.filterInput.SetValue(m.activeFilter)
			m.filterInput.Focus()
			return m, textinput.Blink

		case "r":
			m.statusMsg = ""
			return m, m.refresh()
		}
		return m, nil
	}
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.activeFilter = m.filterInput.Value()
		m.filtering = false
		m.filterInput.Blur()
		m.rebuildColumns()
		return m, nil
	case "esc":
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}
