// Package store persists session snapshots (tickets, epics, and the
// conversation) in a local SQLite database so a board survives process
// restarts. The core stays in-memory; the store only loads a snapshot at
// startup and replaces it wholesale on save, mirroring the
// copy-on-write model of the session.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/deckhq/deck/internal/board"
	"github.com/deckhq/deck/internal/chat"
)

// Store provides access to the deck database.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at the given path.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent access.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS epics (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT DEFAULT '',
		created_at  DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tickets (
		id           TEXT PRIMARY KEY,
		epic_id      TEXT DEFAULT '',
		title        TEXT NOT NULL,
		description  TEXT DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'backlog',
		assignee     TEXT NOT NULL DEFAULT 'dev',
		priority     TEXT NOT NULL DEFAULT 'medium',
		story_points INTEGER NOT NULL DEFAULT 0,
		created_at   DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS messages (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		sender  TEXT NOT NULL,
		text    TEXT NOT NULL,
		sent_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveSnapshot replaces the persisted board with the given snapshots in
// one transaction, so a crash mid-save never leaves a partial board.
func (s *Store) SaveSnapshot(tickets []board.Ticket, epics []board.Epic, messages []chat.Message) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"tickets", "epics", "messages"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, e := range epics {
		_, err := tx.Exec(
			`INSERT INTO epics (id, title, description, created_at) VALUES (?, ?, ?, ?)`,
			e.ID, e.Title, e.Description, e.CreatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("insert epic %s: %w", e.ID, err)
		}
	}

	for _, t := range tickets {
		_, err := tx.Exec(
			`INSERT INTO tickets (id, epic_id, title, description, status, assignee, priority, story_points, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.EpicID, t.Title, t.Description, string(t.Status),
			string(t.Assignee), string(t.Priority), t.StoryPoints, t.CreatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("insert ticket %s: %w", t.ID, err)
		}
	}

	for _, m := range messages {
		_, err := tx.Exec(
			`INSERT INTO messages (sender, text, sent_at) VALUES (?, ?, ?)`,
			string(m.Sender), m.Text, m.Time.UTC(),
		)
		if err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
	}

	return tx.Commit()
}

// LoadTickets returns all persisted tickets in creation order.
func (s *Store) LoadTickets() ([]board.Ticket, error) {
	rows, err := s.db.Query(
		`SELECT id, epic_id, title, description, status, assignee, priority, story_points, created_at
		 FROM tickets ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query tickets: %w", err)
	}
	defer rows.Close()

	var tickets []board.Ticket
	for rows.Next() {
		var t board.Ticket
		var status, assignee, priority string
		if err := rows.Scan(&t.ID, &t.EpicID, &t.Title, &t.Description,
			&status, &assignee, &priority, &t.StoryPoints, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		t.Status = board.Status(status)
		t.Assignee = board.Role(assignee)
		t.Priority = board.Priority(priority)
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// LoadEpics returns all persisted epics in creation order.
func (s *Store) LoadEpics() ([]board.Epic, error) {
	rows, err := s.db.Query(
		`SELECT id, title, description, created_at FROM epics ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query epics: %w", err)
	}
	defer rows.Close()

	var epics []board.Epic
	for rows.Next() {
		var e board.Epic
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan epic: %w", err)
		}
		epics = append(epics, e)
	}
	return epics, rows.Err()
}

// LoadMessages returns the persisted conversation in order.
func (s *Store) LoadMessages() ([]chat.Message, error) {
	rows, err := s.db.Query(`SELECT sender, text, sent_at FROM messages ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var messages []chat.Message
	for rows.Next() {
		var m chat.Message
		var sender string
		var at time.Time
		if err := rows.Scan(&sender, &m.Text, &at); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Sender = chat.Sender(sender)
		m.Time = at
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
