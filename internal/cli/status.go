package cli

import (
	"fmt"

	"github.com/deckhq/deck/internal/board"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Quick status overview",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	st, err := mustStore()
	if err != nil {
		return err
	}
	defer st.Close()

	tickets, err := st.LoadTickets()
	if err != nil {
		return err
	}
	epics, err := st.LoadEpics()
	if err != nil {
		return err
	}
	messages, err := st.LoadMessages()
	if err != nil {
		return err
	}

	if len(tickets) == 0 && len(messages) == 0 {
		fmt.Printf("Nothing yet. Run: %sdeck chat \"what you want to build\"%s\n", colorCyan, colorReset)
		return nil
	}

	counts := map[board.Status]int{}
	for _, t := range tickets {
		counts[t.Status]++
	}

	fmt.Printf("%sTickets: %d total across %d epics%s\n", colorBold, len(tickets), len(epics), colorReset)
	fmt.Printf("  %-19s %s%d%s\n", "backlog:", colorWhite, counts[board.StatusBacklog], colorReset)
	fmt.Printf("  %-19s %s%d%s\n", "in-progress:", colorBlue, counts[board.StatusInProgress], colorReset)
	fmt.Printf("  %-19s %s%d%s\n", "ready-for-testing:", colorMagenta, counts[board.StatusReadyForTesting], colorReset)
	fmt.Printf("  %-19s %s%d%s\n", "done:", colorGreen, counts[board.StatusDone], colorReset)

	fmt.Printf("\n%sConversation: %d messages%s\n", colorBold, len(messages), colorReset)

	// Actionable tickets per the workflow table.
	var actionable int
	for _, t := range tickets {
		for _, a := range board.Actions() {
			if t.Status == a.From {
				if actionable == 0 {
					fmt.Printf("\n%sReady for a workflow action:%s\n", colorBold, colorReset)
				}
				actionable++
				fmt.Printf("  %s: %sdeck advance %s --as %s%s\n", t.Title, colorCyan, t.ID, a.Role, colorReset)
				break
			}
		}
	}

	return nil
}
