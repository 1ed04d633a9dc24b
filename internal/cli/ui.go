package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/deckhq/deck/internal/tui"
	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive board",
	Long:  "Opens the full-screen board: keyboard drag and drop across columns, a chat\npanel per role, ticket creation, extraction, and workflow actions.",
	RunE:  runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	sess, st, err := loadSession()
	if err != nil {
		return err
	}
	defer st.Close()

	model := tui.New(sess)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	// Persist whatever the sitting produced.
	return st.SaveSnapshot(sess.Tickets(), sess.Epics(), sess.Messages())
}
