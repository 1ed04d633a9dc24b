package cli

import (
	"context"
	"fmt"

	"github.com/deckhq/deck/internal/session"
	"github.com/spf13/cobra"
)

var extractTitle string

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Turn the conversation into an epic with tickets",
	Long:  "Runs the two-pass extraction over the accumulated conversation:\nan epic summary from the analyst agent, then a story breakdown from the pm agent.\nNew tickets land in the backlog.",
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractTitle, "title", "", "Epic title to use when the agent response has none")
}

func runExtract(cmd *cobra.Command, args []string) error {
	return withSession(func(sess *session.Session) error {
		if extractTitle != "" {
			d := sess.Defaults()
			d.Title = extractTitle
			sess.SetDefaults(d)
		}
		epic, tickets, err := sess.Extract(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("Created epic %s: %s%s%s\n", epic.ID, colorBold, epic.Title, colorReset)
		for _, t := range tickets {
			fmt.Printf("  %s %s [%s, %dpt]\n", t.ID, t.Title, t.Priority, t.StoryPoints)
		}
		fmt.Printf("\n%d tickets added to the backlog. Run: deck board\n", len(tickets))
		return nil
	})
}
