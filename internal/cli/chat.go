package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/deckhq/deck/internal/board"
	"github.com/deckhq/deck/internal/session"
	"github.com/spf13/cobra"
)

var chatRole string

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Send a message to a role agent",
	Long:  "Sends one message to the active role's agent and prints the reply.\nThe exchange is appended to the conversation log that deck extract reads.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatRole, "as", string(board.RoleAnalyst), "Role to talk to: analyst, pm, dev, qa")
}

func runChat(cmd *cobra.Command, args []string) error {
	role := board.Role(chatRole)
	if !board.ValidRole(role) {
		return fmt.Errorf("unknown role %q (analyst, pm, dev, qa)", chatRole)
	}
	text := strings.Join(args, " ")

	return withSession(func(sess *session.Session) error {
		sess.SetRole(role)
		resp, err := sess.Send(context.Background(), text)
		if err != nil {
			// The user message stays in the log; only the reply is missing.
			return fmt.Errorf("agent unavailable: %w", err)
		}

		fmt.Printf("%s[%s]%s %s\n", colorCyan, role, colorReset, resp.Response)
		for _, s := range resp.WorkflowSuggestions {
			fmt.Printf("  %s→ %s%s\n", colorDim, s, colorReset)
		}
		return nil
	})
}
