// Package tui is the full-screen board: four status columns with
// keyboard drag and drop, a chat panel per role, ticket creation, and
// the role-gated workflow actions.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/deckhq/deck/internal/agent"
	"github.com/deckhq/deck/internal/board"
	"github.com/deckhq/deck/internal/session"
)

// screen represents which view the TUI is showing.
type screen int

const (
	screenBoard screen = iota
	screenChat
)

// popup overlays the current screen.
type popup int

const (
	popupNone popup = iota
	popupCreate
)

const numColumns = len(board.Columns)

// Model is the top-level bubbletea model.
type Model struct {
	sess   *session.Session
	width  int
	height int

	screen screen
	popup  popup

	// Board state.
	columns   [numColumns][]board.Ticket
	cursorCol int
	cursorRow int

	// Drag state: the grabbed ticket's id, empty when nothing is held.
	dragID string

	// Chat state.
	chatInput    textinput.Model
	chatViewport viewport.Model
	chatReady    bool

	// Create popup state.
	titleInput     textinput.Model
	createPriority board.Priority
	createAssignee board.Role
	createPoints   int

	// Round-trip indicator.
	spin spinner.Model
	busy bool

	statusMsg string
	statusErr bool

	quitting bool
}

// New creates the TUI model over a restored session.
func New(sess *session.Session) Model {
	ci := textinput.New()
	ci.Placeholder = "Message the " + string(sess.Role()) + " agent..."
	ci.CharLimit = 500
	ci.Width = 60

	ti := textinput.New()
	ti.Placeholder = "Ticket title..."
	ti.CharLimit = 120
	ti.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	d := sess.Defaults()
	m := Model{
		sess:           sess,
		chatInput:      ci,
		titleInput:     ti,
		createPriority: d.Priority,
		createAssignee: d.Assignee,
		createPoints:   d.StoryPoints,
		spin:           sp,
	}
	m.rebuildColumns()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// --- Messages ---

type agentReplyMsg struct {
	resp *agent.Response
	err  error
}

type extractDoneMsg struct {
	epic    board.Epic
	tickets []board.Ticket
	err     error
}

type advanceDoneMsg struct {
	ticketID string
	action   board.Action
	err      error
}

// --- Commands ---

func (m Model) sendChat(text string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.sess.Send(context.Background(), text)
		return agentReplyMsg{resp: resp, err: err}
	}
}

func (m Model) runExtract() tea.Cmd {
	return func() tea.Msg {
		epic, tickets, err := m.sess.Extract(context.Background())
		return extractDoneMsg{epic: epic, tickets: tickets, err: err}
	}
}

func (m Model) runAdvance(ticketID string) tea.Cmd {
	return func() tea.Msg {
		action, err := m.sess.Advance(context.Background(), ticketID)
		return advanceDoneMsg{ticketID: ticketID, action: action, err: err}
	}
}

// --- Board helpers ---

func (m *Model) rebuildColumns() {
	for i := range m.columns {
		m.columns[i] = nil
	}
	for _, t := range m.sess.Tickets() {
		for i, status := range board.Columns {
			if t.Status == status {
				m.columns[i] = append(m.columns[i], t)
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

// selectedTicket returns the ticket under the cursor, if any.
func (m *Model) selectedTicket() *board.Ticket {
	col := m.columns[m.cursorCol]
	if m.cursorRow < len(col) {
		t := col[m.cursorRow]
		return &t
	}
	return nil
}

// dropTarget resolves the cursor position to a drop target id: the
// ticket under the cursor, or the column itself when hovering empty
// space.
func (m *Model) dropTarget() string {
	if t := m.selectedTicket(); t != nil {
		return t.ID
	}
	return string(board.Columns[m.cursorCol])
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusErr = false
}

func (m *Model) setError(msg string) {
	m.statusMsg = msg
	m.statusErr = true
}
