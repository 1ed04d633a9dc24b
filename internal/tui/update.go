package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/deckhq/deck/internal/board"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.popup != popupNone {
			return m.handlePopupKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vw := m.width - 4
		vh := m.height - 8
		if vw < 20 {
			vw = 20
		}
		if vh < 4 {
			vh = 4
		}
		if !m.chatReady {
			m.chatViewport = newChatViewport(vw, vh)
			m.chatReady = true
		} else {
			m.chatViewport.Width = vw
			m.chatViewport.Height = vh
		}
		m.chatViewport.SetContent(m.renderConversation())
		m.chatViewport.GotoBottom()
		m.chatInput.Width = vw - 4
		return m, nil

	case agentReplyMsg:
		m.busy = false
		if msg.err != nil {
			m.setError("Agent unavailable: " + msg.err.Error())
		} else {
			m.setStatus("Reply received")
		}
		// Either way the log may have grown (the user turn survives a
		// failed round trip).
		if m.chatReady {
			m.chatViewport.SetContent(m.renderConversation())
			m.chatViewport.GotoBottom()
		}
		return m, nil

	case extractDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.setError("Extraction failed: " + msg.err.Error())
			return m, nil
		}
		m.rebuildColumns()
		m.setStatus(fmt.Sprintf("Created epic %q with %d tickets", msg.epic.Title, len(msg.tickets)))
		m.screen = screenBoard
		return m, nil

	case advanceDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.setError("Action failed, ticket unchanged: " + msg.err.Error())
			return m, nil
		}
		m.rebuildColumns()
		m.setStatus(fmt.Sprintf("%s: moved to %s", msg.action.Name, msg.action.To))
		return m, nil

	case spinner.TickMsg:
		// The spinner only animates while a round trip is outstanding.
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) startBusy() (Model, tea.Cmd) {
	m.busy = true
	return m, m.spin.Tick
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	switch m.screen {
	case screenBoard:
		return m.handleBoardKey(msg)
	case screenChat:
		return m.handleChatKey(msg)
	}
	return m, nil
}

// --- Board screen keys ---

func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	// Navigation.
	case "j", "down":
		m.cursorRow++
		m.clampCursor()
	case "k", "up":
		m.cursorRow--
		m.clampCursor()
	case "h", "left":
		m.cursorCol--
		m.clampCursor()
	case "l", "right":
		m.cursorCol++
		m.clampCursor()

	// Grab / drop.
	case " ", "enter":
		if m.dragID == "" {
			if t := m.selectedTicket(); t != nil {
				m.dragID = t.ID
				m.setStatus("Holding " + t.Title + ". Move to a column and press space to drop, esc to cancel.")
			}
			return m, nil
		}
		moved := m.sess.DropTicket(m.dragID, m.dropTarget())
		m.dragID = ""
		m.rebuildColumns()
		if moved {
			m.setStatus("Moved to " + string(board.Columns[m.cursorCol]))
		} else {
			m.setStatus("Drop ignored")
		}
		return m, nil

	case "esc":
		if m.dragID != "" {
			m.dragID = ""
			m.setStatus("Drag cancelled")
		}
		return m, nil

	// Role switching.
	case "r":
		m.cycleRole()
		return m, nil

	// Workflow action on the selected ticket.
	case "a":
		if m.busy {
			m.setError("A request is already outstanding")
			return m, nil
		}
		t := m.selectedTicket()
		if t == nil {
			return m, nil
		}
		if _, ok := board.ActionFor(m.sess.Role(), t.Status); !ok {
			m.setError(fmt.Sprintf("%s has no action for a %s ticket", m.sess.Role(), t.Status))
			return m, nil
		}
		var cmd tea.Cmd
		m, cmd = m.startBusy()
		return m, tea.Batch(cmd, m.runAdvance(t.ID))

	// Create ticket popup.
	case "c", "ctrl+n":
		m.popup = popupCreate
		m.titleInput.Reset()
		d := m.sess.Defaults()
		m.createPriority = d.Priority
		m.createAssignee = d.Assignee
		m.createPoints = d.StoryPoints
		m.titleInput.Focus()
		return m, textinput.Blink

	// Extraction over the accumulated conversation.
	case "x":
		if m.busy {
			m.setError("A request is already outstanding")
			return m, nil
		}
		var cmd tea.Cmd
		m, cmd = m.startBusy()
		return m, tea.Batch(cmd, m.runExtract())

	// Chat panel.
	case "tab", "t":
		m.screen = screenChat
		m.chatInput.Focus()
		if m.chatReady {
			m.chatViewport.SetContent(m.renderConversation())
			m.chatViewport.GotoBottom()
		}
		return m, textinput.Blink
	}

	return m, nil
}

func (m *Model) cycleRole() {
	current := m.sess.Role()
	for i, r := range board.Roles {
		if r == current {
			next := board.Roles[(i+1)%len(board.Roles)]
			m.sess.SetRole(next)
			m.chatInput.Placeholder = "Message the " + string(next) + " agent..."
			m.setStatus("Acting as " + string(next))
			return
		}
	}
}

// --- Chat screen keys ---

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenBoard
		m.chatInput.Blur()
		return m, nil

	case "tab":
		m.screen = screenBoard
		m.chatInput.Blur()
		return m, nil

	case "ctrl+r":
		m.cycleRole()
		return m, nil

	case "ctrl+x":
		if m.busy {
			m.setError("A request is already outstanding")
			return m, nil
		}
		var cmd tea.Cmd
		m, cmd = m.startBusy()
		return m, tea.Batch(cmd, m.runExtract())

	case "enter":
		text := m.chatInput.Value()
		if text == "" {
			return m, nil
		}
		if m.busy {
			m.setError("A request is already outstanding")
			return m, nil
		}
		m.chatInput.Reset()
		var cmd tea.Cmd
		m, cmd = m.startBusy()
		send := m.sendChat(text)
		return m, tea.Batch(cmd, send)
	}

	var inputCmd, vpCmd tea.Cmd
	m.chatInput, inputCmd = m.chatInput.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	return m, tea.Batch(inputCmd, vpCmd)
}

// --- Create popup keys ---

func (m Model) handlePopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.popup = popupNone
		return m, nil

	case "ctrl+p":
		for i, p := range board.Priorities {
			if p == m.createPriority {
				m.createPriority = board.Priorities[(i+1)%len(board.Priorities)]
				break
			}
		}
		return m, nil

	case "ctrl+a":
		for i, r := range board.Roles {
			if r == m.createAssignee {
				m.createAssignee = board.Roles[(i+1)%len(board.Roles)]
				break
			}
		}
		return m, nil

	case "ctrl+s":
		for i, n := range board.StoryPointScale {
			if n == m.createPoints {
				m.createPoints = board.StoryPointScale[(i+1)%len(board.StoryPointScale)]
				return m, nil
			}
		}
		m.createPoints = board.StoryPointScale[0]
		return m, nil

	case "enter":
		title := m.titleInput.Value()
		d := m.sess.Defaults()
		d.Priority = m.createPriority
		d.Assignee = m.createAssignee
		d.StoryPoints = m.createPoints
		m.sess.SetDefaults(d)

		_, ticket, err := m.sess.CreateTicket(title)
		if err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.popup = popupNone
		m.rebuildColumns()
		m.setStatus("Created " + ticket.Title)
		return m, nil
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}
