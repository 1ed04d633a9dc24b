package cli

import (
	"fmt"

	"github.com/deckhq/deck/internal/chat"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the conversation log",
	RunE:  runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	st, err := mustStore()
	if err != nil {
		return err
	}
	defer st.Close()

	messages, err := st.LoadMessages()
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		fmt.Println("No conversation yet. Run: deck chat \"your message\"")
		return nil
	}

	for _, m := range messages {
		color := colorCyan
		if m.Sender == chat.SenderUser {
			color = colorYellow
		}
		fmt.Printf("%s  %s%-5s%s  %s\n",
			m.Time.Format("2006-01-02 15:04:05"), color, m.Sender, colorReset, m.Text)
	}
	return nil
}
