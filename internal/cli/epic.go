package cli

import (
	"fmt"
	"strings"

	"github.com/deckhq/deck/internal/session"
	"github.com/spf13/cobra"
)

var epicDescription string

var epicCmd = &cobra.Command{
	Use:   "epic",
	Short: "Create or inspect epics",
}

var epicCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a standalone epic",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEpicCreate,
}

var epicListCmd = &cobra.Command{
	Use:   "list",
	Short: "List epics",
	RunE:  runEpicList,
}

var epicShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show an epic and its tickets",
	Args:  cobra.ExactArgs(1),
	RunE:  runEpicShow,
}

func init() {
	epicCreateCmd.Flags().StringVarP(&epicDescription, "desc", "d", "", "Epic description")

	epicCmd.AddCommand(epicCreateCmd)
	epicCmd.AddCommand(epicListCmd)
	epicCmd.AddCommand(epicShowCmd)
}

func runEpicCreate(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")

	return withSession(func(sess *session.Session) error {
		epic, err := sess.CreateEpic(title, epicDescription)
		if err != nil {
			return err
		}
		fmt.Printf("Created epic %s: %s\n", epic.ID, epic.Title)
		return nil
	})
}

func runEpicList(cmd *cobra.Command, args []string) error {
	st, err := mustStore()
	if err != nil {
		return err
	}
	defer st.Close()

	epics, err := st.LoadEpics()
	if err != nil {
		return err
	}
	if len(epics) == 0 {
		fmt.Println("No epics yet. Run: deck extract")
		return nil
	}

	tickets, err := st.LoadTickets()
	if err != nil {
		return err
	}
	counts := map[string]int{}
	for _, t := range tickets {
		counts[t.EpicID]++
	}

	for _, e := range epics {
		fmt.Printf("%-28s %2d tickets  %s\n", e.ID, counts[e.ID], e.Title)
	}
	return nil
}

func runEpicShow(cmd *cobra.Command, args []string) error {
	st, err := mustStore()
	if err != nil {
		return err
	}
	defer st.Close()

	epics, err := st.LoadEpics()
	if err != nil {
		return err
	}

	var found bool
	for _, e := range epics {
		if e.ID != args[0] {
			continue
		}
		found = true
		fmt.Printf("Epic %s\n", e.ID)
		fmt.Printf("  Title:   %s\n", e.Title)
		if e.Description != "" {
			fmt.Printf("  Desc:    %s\n", e.Description)
		}
		fmt.Printf("  Created: %s\n", e.CreatedAt.Format("2006-01-02 15:04"))
	}
	if !found {
		return fmt.Errorf("epic %s not found", args[0])
	}

	tickets, err := st.LoadTickets()
	if err != nil {
		return err
	}
	fmt.Println("\n  Tickets:")
	for _, t := range tickets {
		if t.EpicID == args[0] {
			fmt.Printf("    %-28s %-18s %s\n", t.ID, t.Status, t.Title)
		}
	}
	return nil
}
