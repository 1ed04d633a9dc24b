package cli

import (
	"fmt"
	"strings"

	"github.com/deckhq/deck/internal/board"
	"github.com/deckhq/deck/internal/session"
	"github.com/spf13/cobra"
)

var (
	ticketPriority string
	ticketAssignee string
	ticketPoints   int
)

var ticketCmd = &cobra.Command{
	Use:   "ticket",
	Short: "Create or manage tickets",
	Long:  "Create a new ticket or manage existing ones on the board.",
}

var ticketCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a ticket (with its backing epic) from a title",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTicketCreate,
}

var ticketListCmd = &cobra.Command{
	Use:   "list [status]",
	Short: "List tickets, optionally filtered by column",
	RunE:  runTicketList,
}

var ticketShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show ticket details",
	Args:  cobra.ExactArgs(1),
	RunE:  runTicketShow,
}

var ticketMoveCmd = &cobra.Command{
	Use:   "move [id] [status]",
	Short: "Move a ticket to another column",
	Args:  cobra.ExactArgs(2),
	RunE:  runTicketMove,
}

var ticketAssignCmd = &cobra.Command{
	Use:   "assign [id] [role]",
	Short: "Assign a ticket to a role",
	Args:  cobra.ExactArgs(2),
	RunE:  runTicketAssign,
}

func init() {
	ticketCreateCmd.Flags().StringVarP(&ticketPriority, "priority", "p", "", "Priority: low, medium, high, critical")
	ticketCreateCmd.Flags().StringVarP(&ticketAssignee, "assignee", "a", "", "Assignee role: analyst, pm, dev, qa")
	ticketCreateCmd.Flags().IntVar(&ticketPoints, "points", 0, "Story points: 1, 2, 3, 5, 8 or 13")

	ticketCmd.AddCommand(ticketCreateCmd)
	ticketCmd.AddCommand(ticketListCmd)
	ticketCmd.AddCommand(ticketShowCmd)
	ticketCmd.AddCommand(ticketMoveCmd)
	ticketCmd.AddCommand(ticketAssignCmd)
}

func runTicketCreate(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")

	return withSession(func(sess *session.Session) error {
		d := sess.Defaults()
		if ticketPriority != "" {
			if !board.ValidPriority(board.Priority(ticketPriority)) {
				return fmt.Errorf("unknown priority %q", ticketPriority)
			}
			d.Priority = board.Priority(ticketPriority)
		}
		if ticketAssignee != "" {
			if !board.ValidRole(board.Role(ticketAssignee)) {
				return fmt.Errorf("unknown role %q", ticketAssignee)
			}
			d.Assignee = board.Role(ticketAssignee)
		}
		if ticketPoints != 0 {
			d.StoryPoints = ticketPoints
		}
		sess.SetDefaults(d)

		epic, ticket, err := sess.CreateTicket(title)
		if err != nil {
			return err
		}
		fmt.Printf("Created ticket %s: %s [%s, %dpt]\n", ticket.ID, ticket.Title, ticket.Priority, ticket.StoryPoints)
		fmt.Printf("  Epic: %s\n", epic.ID)
		return nil
	})
}

func runTicketList(cmd *cobra.Command, args []string) error {
	st, err := mustStore()
	if err != nil {
		return err
	}
	defer st.Close()

	tickets, err := st.LoadTickets()
	if err != nil {
		return err
	}

	if len(args) > 0 {
		status := board.Status(args[0])
		if !board.ValidStatus(status) {
			return fmt.Errorf("unknown status %q", args[0])
		}
		filtered := tickets[:0:0]
		for _, t := range tickets {
			if t.Status == status {
				filtered = append(filtered, t)
			}
		}
		tickets = filtered
	}

	if len(tickets) == 0 {
		fmt.Println("No tickets found.")
		return nil
	}

	for _, t := range tickets {
		fmt.Printf("%-28s %-18s %-8s %-8s %2dpt  %s\n",
			t.ID, t.Status, t.Priority, t.Assignee, t.StoryPoints, t.Title)
	}
	return nil
}

func runTicketShow(cmd *cobra.Command, args []string) error {
	st, err := mustStore()
	if err != nil {
		return err
	}
	defer st.Close()

	tickets, err := st.LoadTickets()
	if err != nil {
		return err
	}
	ticket, err := findTicket(tickets, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Ticket %s\n", ticket.ID)
	fmt.Printf("  Title:    %s\n", ticket.Title)
	fmt.Printf("  Status:   %s\n", ticket.Status)
	fmt.Printf("  Priority: %s\n", ticket.Priority)
	fmt.Printf("  Assignee: %s\n", ticket.Assignee)
	fmt.Printf("  Points:   %d\n", ticket.StoryPoints)
	if ticket.Description != "" {
		fmt.Printf("  Desc:     %s\n", ticket.Description)
	}
	if ticket.EpicID != "" {
		fmt.Printf("  Epic:     %s\n", ticket.EpicID)
	}
	fmt.Printf("  Created:  %s\n", ticket.CreatedAt.Format("2006-01-02 15:04"))

	if action, ok := board.ActionFor(ticket.Assignee, ticket.Status); ok {
		fmt.Printf("\n  Next: %sdeck advance %s --as %s%s (%s → %s)\n",
			colorCyan, ticket.ID, action.Role, colorReset, action.From, action.To)
	}
	return nil
}

func runTicketMove(cmd *cobra.Command, args []string) error {
	status := board.Status(args[1])
	if !board.ValidStatus(status) {
		return fmt.Errorf("unknown status %q (backlog, in-progress, ready-for-testing, done)", args[1])
	}

	return withSession(func(sess *session.Session) error {
		if _, err := findTicket(sess.Tickets(), args[0]); err != nil {
			return err
		}
		sess.MoveTicket(args[0], status)
		fmt.Printf("Moved ticket %s to %s\n", args[0], status)
		return nil
	})
}

func runTicketAssign(cmd *cobra.Command, args []string) error {
	role := board.Role(args[1])
	if !board.ValidRole(role) {
		return fmt.Errorf("unknown role %q (analyst, pm, dev, qa)", args[1])
	}

	return withSession(func(sess *session.Session) error {
		if _, err := findTicket(sess.Tickets(), args[0]); err != nil {
			return err
		}
		sess.ReassignTicket(args[0], role)
		fmt.Printf("Assigned ticket %s to %s\n", args[0], role)
		return nil
	})
}
