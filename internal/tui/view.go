package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/deckhq/deck/internal/board"
	"github.com/deckhq/deck/internal/chat"
)

// --- Color palette ---
var (
	clrSubtle    = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#666666"}
	clrHighlight = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"}
	clrGreen     = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	clrYellow    = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	clrRed       = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	clrBlue      = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	clrMagenta   = lipgloss.AdaptiveColor{Light: "#A21CAF", Dark: "#E879F9"}
	clrCyan      = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"}
	clrDim       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#555555"}
)

// --- Styles ---
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)
	dimStyle    = lipgloss.NewStyle().Foreground(clrDim)
	subtleStyle = lipgloss.NewStyle().Foreground(clrSubtle)

	columnHeaderStyle = lipgloss.NewStyle().Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(clrSubtle).
			Padding(0, 1)

	cardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(clrHighlight).
				Padding(0, 1).
				Bold(true)

	cardDraggedStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(clrYellow).
				Padding(0, 1).
				Bold(true)

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(clrHighlight).
			Padding(1, 2).
			Width(60)

	statusStyle = lipgloss.NewStyle().Foreground(clrGreen).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(clrRed).Bold(true)

	footerKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)
	footerDescStyle = lipgloss.NewStyle().Foreground(clrSubtle)

	userMsgStyle  = lipgloss.NewStyle().Foreground(clrYellow).Bold(true)
	agentMsgStyle = lipgloss.NewStyle().Foreground(clrCyan).Bold(true)
)

var columnColors = [numColumns]lipgloss.AdaptiveColor{
	clrSubtle, clrBlue, clrMagenta, clrGreen,
}

var columnLabels = [numColumns]string{
	"BACKLOG", "IN PROGRESS", "READY FOR TESTING", "DONE",
}

func newChatViewport(w, h int) viewport.Model {
	return viewport.New(w, h)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.screen {
	case screenBoard:
		content = m.viewBoard()
	case screenChat:
		content = m.viewChat()
	}

	if m.popup == popupCreate {
		content = m.viewCreatePopup()
	}

	return content
}

// --- Board screen ---

func (m Model) viewBoard() string {
	var b strings.Builder

	header := titleStyle.Render("deck")
	header += dimStyle.Render(fmt.Sprintf(" — acting as %s", m.sess.Role()))
	if m.busy {
		header += " " + m.spin.View()
	}
	b.WriteString(header + "\n\n")

	colWidth := 30
	if m.width > 0 {
		colWidth = (m.width - 2) / numColumns
		if colWidth < 22 {
			colWidth = 22
		}
	}

	// Column headers.
	var headers []string
	for i, label := range columnLabels {
		count := len(m.columns[i])
		style := columnHeaderStyle.Foreground(columnColors[i]).Width(colWidth)
		headers = append(headers, style.Render(fmt.Sprintf(" %s (%d)", label, count)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headers...) + "\n")

	// Cards, column by column, joined horizontally.
	maxRows := 0
	for i := range m.columns {
		if len(m.columns[i]) > maxRows {
			maxRows = len(m.columns[i])
		}
	}

	var rendered []string
	for i := range m.columns {
		var cards []string
		for j, t := range m.columns[i] {
			cards = append(cards, m.renderCard(t, i == m.cursorCol && j == m.cursorRow, colWidth-2))
		}
		if len(cards) == 0 {
			empty := dimStyle.Width(colWidth - 2).Render(" (empty)")
			if i == m.cursorCol && m.dragID != "" {
				empty = statusStyle.Width(colWidth - 2).Render(" drop here")
			}
			cards = append(cards, empty)
		}
		rendered = append(rendered, lipgloss.NewStyle().Width(colWidth).Render(
			lipgloss.JoinVertical(lipgloss.Left, cards...)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")

	b.WriteString(m.viewStatusLine())
	b.WriteString(m.viewBoardFooter())
	return b.String()
}

func (m Model) renderCard(t board.Ticket, selected bool, width int) string {
	style := cardStyle
	if selected {
		style = cardSelectedStyle
	}
	if t.ID == m.dragID {
		style = cardDraggedStyle
	}

	title := truncate(t.Title, width-4)
	meta := fmt.Sprintf("%s · %s · %dpt", t.Priority, t.Assignee, t.StoryPoints)
	body := title + "\n" + subtleStyle.Render(truncate(meta, width-4))

	if _, ok := board.ActionFor(m.sess.Role(), t.Status); ok && selected {
		body += "\n" + footerKeyStyle.Render("a") + footerDescStyle.Render(" to advance")
	}
	return style.Width(width).Render(body)
}

func (m Model) viewBoardFooter() string {
	keys := [][2]string{
		{"hjkl", "navigate"},
		{"space", "grab/drop"},
		{"a", "advance"},
		{"c", "new ticket"},
		{"x", "extract"},
		{"t", "chat"},
		{"r", "role"},
		{"q", "quit"},
	}
	var parts []string
	for _, k := range keys {
		parts = append(parts, footerKeyStyle.Render(k[0])+footerDescStyle.Render(" "+k[1]))
	}
	return "\n" + strings.Join(parts, dimStyle.Render("  ·  ")) + "\n"
}

// --- Chat screen ---

func (m Model) viewChat() string {
	var b strings.Builder

	header := titleStyle.Render("deck chat")
	header += dimStyle.Render(fmt.Sprintf(" — talking to the %s agent", m.sess.Role()))
	if m.busy {
		header += " " + m.spin.View()
	}
	b.WriteString(header + "\n\n")

	if m.chatReady {
		b.WriteString(m.chatViewport.View() + "\n")
	} else {
		b.WriteString(m.renderConversation() + "\n")
	}

	b.WriteString("\n" + m.chatInput.View() + "\n")
	b.WriteString(m.viewStatusLine())

	keys := [][2]string{
		{"enter", "send"},
		{"ctrl+x", "extract"},
		{"ctrl+r", "role"},
		{"esc", "board"},
	}
	var parts []string
	for _, k := range keys {
		parts = append(parts, footerKeyStyle.Render(k[0])+footerDescStyle.Render(" "+k[1]))
	}
	b.WriteString("\n" + strings.Join(parts, dimStyle.Render("  ·  ")) + "\n")
	return b.String()
}

func (m Model) renderConversation() string {
	messages := m.sess.Messages()
	if len(messages) == 0 {
		return dimStyle.Render("  No conversation yet. Describe what you want to build.")
	}

	var b strings.Builder
	for _, msg := range messages {
		label := userMsgStyle.Render("you")
		if msg.Sender == chat.SenderAgent {
			label = agentMsgStyle.Render("agent")
		}
		b.WriteString(fmt.Sprintf("%s %s  %s\n",
			dimStyle.Render(msg.Time.Format("15:04")), label, msg.Text))
	}
	return b.String()
}

// --- Create popup ---

func (m Model) viewCreatePopup() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("New ticket") + "\n\n")
	b.WriteString(m.titleInput.View() + "\n\n")
	b.WriteString(fmt.Sprintf("  Priority: %s  %s\n",
		statusStyle.Render(string(m.createPriority)), dimStyle.Render("(ctrl+p)")))
	b.WriteString(fmt.Sprintf("  Assignee: %s  %s\n",
		statusStyle.Render(string(m.createAssignee)), dimStyle.Render("(ctrl+a)")))
	b.WriteString(fmt.Sprintf("  Points:   %s  %s\n",
		statusStyle.Render(fmt.Sprintf("%d", m.createPoints)), dimStyle.Render("(ctrl+s)")))
	b.WriteString("\n" + footerKeyStyle.Render("enter") + footerDescStyle.Render(" create  ") +
		footerKeyStyle.Render("esc") + footerDescStyle.Render(" cancel"))

	popup := popupStyle.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, popup)
	}
	return popup
}

// --- Shared ---

func (m Model) viewStatusLine() string {
	if m.statusMsg == "" {
		return "\n"
	}
	style := statusStyle
	if m.statusErr {
		style = errorStyle
	}
	return "\n" + style.Render(m.statusMsg) + "\n"
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
