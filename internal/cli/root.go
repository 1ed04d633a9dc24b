package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "deck",
	Short: "Interactive project board driven by AI agents",
	Long:  "deck — a project board where conversations with AI agents become epics and tickets.\nChat with role agents, extract structured work items, and move them across the board.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(ticketCmd)
	rootCmd.AddCommand(epicCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(advanceCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(statusCmd)
}
