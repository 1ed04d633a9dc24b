package cli

import (
	"fmt"
	"strings"

	"github.com/deckhq/deck/internal/board"
	"github.com/spf13/cobra"
)

// ANSI color codes.
const (
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorDim     = "\033[2m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorWhite   = "\033[37m"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the board",
	RunE:  runBoard,
}

func runBoard(cmd *cobra.Command, args []string) error {
	st, err := mustStore()
	if err != nil {
		return err
	}
	defer st.Close()

	tickets, err := st.LoadTickets()
	if err != nil {
		return err
	}

	if len(tickets) == 0 {
		fmt.Printf("%sBoard is empty.%s Start a conversation: %sdeck chat \"what you want to build\"%s\n",
			colorDim, colorReset, colorCyan, colorReset)
		return nil
	}

	// Group tickets by column.
	columns := map[board.Status][]board.Ticket{}
	for _, t := range tickets {
		columns[t.Status] = append(columns[t.Status], t)
	}

	type col struct {
		status board.Status
		label  string
		color  string
	}
	order := []col{
		{board.StatusBacklog, "BACKLOG", colorWhite},
		{board.StatusInProgress, "IN PROGRESS", colorBlue},
		{board.StatusReadyForTesting, "READY FOR TESTING", colorMagenta},
		{board.StatusDone, "DONE", colorGreen},
	}

	// Print header.
	colWidth := 28
	headerLine := ""
	sepLine := ""
	for _, c := range order {
		count := len(columns[c.status])
		header := fmt.Sprintf(" %s%s%s (%d)", c.color+colorBold, c.label, colorReset, count)
		// Padding needs visible length, not byte length (ANSI codes add bytes).
		visibleLen := len(fmt.Sprintf(" %s (%d)", c.label, count))
		padding := colWidth - visibleLen
		if padding < 0 {
			padding = 0
		}
		headerLine += header + strings.Repeat(" ", padding)
		sepLine += strings.Repeat("─", colWidth)
	}
	fmt.Println(headerLine)
	fmt.Println(colorDim + sepLine + colorReset)

	// Find max rows.
	maxRows := 0
	for _, c := range order {
		if len(columns[c.status]) > maxRows {
			maxRows = len(columns[c.status])
		}
	}

	// Print rows: one title line and one detail line per card.
	for i := 0; i < maxRows; i++ {
		line := ""
		for _, c := range order {
			cards := columns[c.status]
			if i < len(cards) {
				t := cards[i]
				priColor := priorityColor(t.Priority)
				short := shortID(t.ID)
				titleStr := truncate(t.Title, colWidth-len(short)-3)
				card := fmt.Sprintf(" %s%s%s %s", priColor, short, colorReset, titleStr)
				visibleLen := len(fmt.Sprintf(" %s %s", short, titleStr))
				padding := colWidth - visibleLen
				if padding < 0 {
					padding = 0
				}
				line += card + strings.Repeat(" ", padding)
			} else {
				line += strings.Repeat(" ", colWidth)
			}
		}
		fmt.Println(line)

		detailLine := ""
		for _, c := range order {
			cards := columns[c.status]
			if i < len(cards) {
				t := cards[i]
				detail := fmt.Sprintf("    %s[%s] %dpt%s", colorCyan, t.Assignee, t.StoryPoints, colorReset)
				visibleDetail := fmt.Sprintf("    [%s] %dpt", t.Assignee, t.StoryPoints)
				padding := colWidth - len(visibleDetail)
				if padding < 0 {
					padding = 0
				}
				detailLine += detail + strings.Repeat(" ", padding)
			} else {
				detailLine += strings.Repeat(" ", colWidth)
			}
		}
		fmt.Println(detailLine)
		fmt.Println() // spacing between cards
	}

	// Summary line.
	total := len(tickets)
	doneCount := len(columns[board.StatusDone])
	inProgress := len(columns[board.StatusInProgress])
	inTesting := len(columns[board.StatusReadyForTesting])

	fmt.Printf("%s%d tickets%s", colorBold, total, colorReset)
	if doneCount > 0 {
		fmt.Printf("  %s✓ %d done%s", colorGreen, doneCount, colorReset)
	}
	if inProgress > 0 {
		fmt.Printf("  %s● %d in progress%s", colorBlue, inProgress, colorReset)
	}
	if inTesting > 0 {
		fmt.Printf("  %s◆ %d ready for testing%s", colorMagenta, inTesting, colorReset)
	}
	fmt.Println()

	return nil
}

func priorityColor(priority board.Priority) string {
	switch priority {
	case board.PriorityCritical:
		return colorRed + colorBold
	case board.PriorityHigh:
		return colorRed
	case board.PriorityMedium:
		return colorYellow
	case board.PriorityLow:
		return colorDim
	default:
		return ""
	}
}

// shortID trims the generated id down to a display tag.
func shortID(id string) string {
	parts := strings.Split(id, "-")
	if len(parts) < 2 {
		return id
	}
	prefix := "#"
	if parts[0] == "epic" {
		prefix = "E#"
	}
	return prefix + parts[len(parts)-2] + "." + parts[len(parts)-1]
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
