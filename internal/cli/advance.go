package cli

import (
	"context"
	"fmt"

	"github.com/deckhq/deck/internal/board"
	"github.com/deckhq/deck/internal/session"
	"github.com/spf13/cobra"
)

var advanceRole string

var advanceCmd = &cobra.Command{
	Use:   "advance [ticket-id]",
	Short: "Run a role's workflow action on a ticket",
	Long: "Performs the acting role's gated transition after a round trip with its agent:\n" +
		"dev moves an in-progress ticket to ready-for-testing, qa signs off a\nready-for-testing ticket as done. If the agent is unreachable the ticket keeps\nits status and the action can be retried.",
	Args: cobra.ExactArgs(1),
	RunE: runAdvance,
}

func init() {
	advanceCmd.Flags().StringVar(&advanceRole, "as", string(board.RoleDev), "Acting role: dev or qa")
}

func runAdvance(cmd *cobra.Command, args []string) error {
	role := board.Role(advanceRole)
	if !board.ValidRole(role) {
		return fmt.Errorf("unknown role %q", advanceRole)
	}

	return withSession(func(sess *session.Session) error {
		sess.SetRole(role)
		action, err := sess.Advance(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s✓%s %s: ticket %s moved %s → %s\n",
			colorGreen, colorReset, action.Name, args[0], action.From, action.To)
		return nil
	})
}
