// Package tui is the interactive read-only board (mt ui): status columns
// of ticket cards, a detail panel, and a label filter. All mutation goes
// through the CLI commands; the TUI only ever reads snapshots.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muonworks/muontickets/internal/store"
	"github.com/muonworks/muontickets/internal/ticket"
)

// screen represents which view the TUI is in.
type screen int

const (
	screenBoard  screen = iota // status columns (main)
	screenDetail               // one ticket in full
)

const numColumns = 5

var columnStatuses = [numColumns]ticket.Status{
	ticket.StatusReady,
	ticket.StatusClaimed,
	ticket.StatusBlocked,
	ticket.StatusNeedsReview,
	ticket.StatusDone,
}

var columnLabels = [numColumns]string{
	"READY",
	"CLAIMED",
	"BLOCKED",
	"REVIEW",
	"DONE",
}

// card is one ticket on the board, with its body kept for the detail
// panel.
type card struct {
	Meta ticket.Meta
	Body string
}

// Model is the top-level bubbletea model.
type Model struct {
	store  *store.Store
	width  int
	height int

	currentScreen screen

	// Board state.
	columns   [numColumns][]card
	cursorCol int
	cursorRow int

	// Snapshot cache.
	cards []card

	// Label filter.
	filterInput  textinput.Model
	filtering    bool
	activeFilter string

	// Selected ticket for the detail screen.
	selected *card

	statusMsg string
	quitting  bool
}

// New creates a TUI model over a ticket store.
func New(s *store.Store) Model {
	fi := textinput.New()
	fi.Placeholder = "label filter..."
	fi.CharLimit = 60
	fi.Width = 30

	return Model{
		store:         s,
		currentScreen: screenBoard,
		filterInput:   fi,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.refresh()
}

type snapshotMsg struct {
	cards []card
}

type statusMsgMsg string

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.store.LoadAll()
		if err != nil {
			return statusMsgMsg("Error loading tickets: " + err.Error())
		}
		cards := make([]card, 0, len(entries))
		for _, e := range entries {
			if e.Err != nil {
				continue
			}
			cards = append(cards, card{Meta: ticket.Normalize(e.Meta), Body: e.Body})
		}
		return snapshotMsg{cards: cards}
	}
}

func (m *Model) rebuildColumns() {
	for i := range m.columns {
		m.columns[i] = nil
	}
	for _, c := range m.cards {
		if m.activeFilter != "" && !c.Meta.HasLabels([]string{m.activeFilter}) {
			continue
		}
		for i, status := range columnStatuses {
			if c.Meta.Status == status {
				m.columns[i] = append(m.columns[i], c)
				break
			}
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursorCol < 0 {
		m.cursorCol = 0
	}
	if m.cursorCol >= numColumns {
		m.cursorCol = numColumns - 1
	}
	col := m.columns[m.cursorCol]
	if m.cursorRow >= len(col) {
		m.cursorRow = len(col) - 1
	}
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
}

func (m *Model) selectedFromBoard() *card {
	col := m.columns[m.cursorCol]
	if m.cursorRow < len(col) {
		c := col[m.cursorRow]
		return &c
	}
	return nil
}
