package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/deckhq/deck/internal/agent"
	"github.com/deckhq/deck/internal/board"
	"github.com/deckhq/deck/internal/config"
	"github.com/deckhq/deck/internal/extract"
	"github.com/deckhq/deck/internal/session"
	"github.com/deckhq/deck/internal/store"
)

const deckDirName = ".deck"

// deckPath returns the path to a file inside .deck/.
func deckPath(parts ...string) string {
	elems := append([]string{deckDirName}, parts...)
	return filepath.Join(elems...)
}

// mustStore opens the store, returning an error if deck is not initialized.
func mustStore() (*store.Store, error) {
	dbPath := deckPath("deck.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("deck not initialized. Run: deck init")
	}
	return openStore(dbPath)
}

// openStore opens or creates the SQLite store at the given path.
func openStore(dbPath string) (*store.Store, error) {
	return store.New(dbPath)
}

// loadConfig reads .deck/config.yaml.
func loadConfig() (*config.Config, error) {
	return config.Load(deckPath("config.yaml"))
}

// loadSession opens the store and config, builds the agent router, and
// restores the persisted board into a fresh session. The caller owns the
// returned store.
func loadSession() (*session.Session, *store.Store, error) {
	st, err := mustStore()
	if err != nil {
		return nil, nil, err
	}

	cfg, err := loadConfig()
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	router, err := agent.NewRouter(cfg)
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	pri, assignee, points := cfg.FormDefaults()
	sess := session.New(router, extract.Defaults{
		Priority:    pri,
		Assignee:    assignee,
		StoryPoints: points,
	})

	tickets, err := st.LoadTickets()
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	epics, err := st.LoadEpics()
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	messages, err := st.LoadMessages()
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	sess.Restore(tickets, epics, messages)

	return sess, st, nil
}

// withSession runs fn against a restored session and persists the
// resulting snapshot. The snapshot is saved even when fn fails, because
// partial progress (a user message before a failed round trip, say)
// belongs in the log.
func withSession(fn func(sess *session.Session) error) error {
	sess, st, err := loadSession()
	if err != nil {
		return err
	}
	defer st.Close()

	fnErr := fn(sess)
	if err := st.SaveSnapshot(sess.Tickets(), sess.Epics(), sess.Messages()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return fnErr
}

// findTicket locates a ticket by id in a snapshot.
func findTicket(tickets []board.Ticket, id string) (board.Ticket, error) {
	idx := board.FindTicket(tickets, id)
	if idx < 0 {
		return board.Ticket{}, fmt.Errorf("ticket %s not found", id)
	}
	return tickets[idx], nil
}
