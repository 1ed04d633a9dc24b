// Package session owns the authoritative board state for one sitting:
// the ticket and epic snapshots, the conversation log, the active role,
// and the staged manual-form defaults. Every mutation replaces whole
// collections, so a caller holding a previous snapshot is unaffected by
// later updates.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/deckhq/deck/internal/agent"
	"github.com/deckhq/deck/internal/board"
	"github.com/deckhq/deck/internal/chat"
	"github.com/deckhq/deck/internal/extract"
)

// ErrBusy is returned when a chat round trip is requested while another
// one is still outstanding. Exchanges are strictly serialized.
var ErrBusy = errors.New("a request is already outstanding")

// Session is the single-actor owner of the in-memory board.
type Session struct {
	mu       sync.Mutex
	tickets  []board.Ticket
	epics    []board.Epic
	log      chat.Log
	role     board.Role
	defaults extract.Defaults
	busy     bool

	runner   agent.Runner
	pipeline *extract.Pipeline

	// Presentation-layer hooks, invoked after the corresponding state
	// has been replaced. May be nil.
	OnTicketsChanged func([]board.Ticket)
	OnEpicsChanged   func([]board.Epic)
	OnRoleChanged    func(board.Role)

	now func() time.Time
}

// New creates a session talking to the given agent runner.
func New(runner agent.Runner, defaults extract.Defaults) *Session {
	return &Session{
		role:     board.RoleAnalyst,
		defaults: defaults,
		runner:   runner,
		pipeline: extract.New(runner),
		now:      time.Now,
	}
}

// Tickets returns a copy of the current ticket snapshot.
func (s *Session) Tickets() []board.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]board.Ticket, len(s.tickets))
	copy(out, s.tickets)
	return out
}

// Epics returns a copy of the current epic snapshot.
func (s *Session) Epics() []board.Epic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]board.Epic, len(s.epics))
	copy(out, s.epics)
	return out
}

// Messages returns a copy of the full conversation.
func (s *Session) Messages() []chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Messages()
}

// Role returns the active role.
func (s *Session) Role() board.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// SetRole switches the active role. Unknown roles are ignored.
func (s *Session) SetRole(r board.Role) {
	if !board.ValidRole(r) {
		return
	}
	s.mu.Lock()
	changed := s.role != r
	s.role = r
	hook := s.OnRoleChanged
	s.mu.Unlock()

	if changed && hook != nil {
		hook(r)
	}
}

// Defaults returns the staged manual-form defaults.
func (s *Session) Defaults() extract.Defaults {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaults
}

// SetDefaults replaces the staged manual-form defaults.
func (s *Session) SetDefaults(d extract.Defaults) {
	s.mu.Lock()
	s.defaults = d
	s.mu.Unlock()
}

// Busy reports whether a chat round trip is outstanding.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Send performs one chat exchange with the active role's agent. The user
// message is appended before the round trip and stays in the log even if
// the trip fails; the agent response is appended after its request,
// never interleaved with another exchange.
func (s *Session) Send(ctx context.Context, text string) (*agent.Response, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.busy = true
	s.log.Append(chat.SenderUser, text, s.now())
	role := s.role
	window := s.log.Context()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	resp, err := s.runner.Send(ctx, agent.Request{
		Role:    role,
		Message: text,
		Context: contextMap(window),
	})
	if err != nil {
		// The conversation history is not rolled back on failure.
		return nil, fmt.Errorf("send: %w", err)
	}

	s.mu.Lock()
	s.log.Append(chat.SenderAgent, resp.Response, s.now())
	s.mu.Unlock()

	return resp, nil
}

// contextMap flattens the bounded message window into the structured
// context field of an agent request.
func contextMap(window []chat.Message) map[string]string {
	if len(window) == 0 {
		return nil
	}
	m := make(map[string]string, len(window))
	for i, msg := range window {
		m[fmt.Sprintf("history_%02d_%s", i, msg.Sender)] = msg.Text
	}
	return m
}

// Extract runs the two-pass extraction pipeline over the accumulated
// user messages and appends the resulting epic and tickets atomically.
// On failure nothing is appended and the error is returned for display.
// Extraction shares the one-outstanding-round-trip rule with Send.
func (s *Session) Extract(ctx context.Context) (board.Epic, []board.Ticket, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return board.Epic{}, nil, ErrBusy
	}
	summary := s.log.UserSummary()
	defaults := s.defaults
	if summary == "" {
		s.mu.Unlock()
		return board.Epic{}, nil, errors.New("nothing to extract: no user messages yet")
	}
	s.busy = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	epic, tickets, err := s.pipeline.Run(ctx, summary, defaults)
	if err != nil {
		return board.Epic{}, nil, err
	}

	s.mu.Lock()
	s.epics = append(append([]board.Epic{}, s.epics...), epic)
	s.tickets = append(append([]board.Ticket{}, s.tickets...), tickets...)
	newEpics, newTickets := s.epics, s.tickets
	epicsHook, ticketsHook := s.OnEpicsChanged, s.OnTicketsChanged
	s.mu.Unlock()

	if epicsHook != nil {
		epicsHook(newEpics)
	}
	if ticketsHook != nil {
		ticketsHook(newTickets)
	}
	return epic, tickets, nil
}

// CreateTicket is the manual path: one epic/ticket pair from a single
// title, using the staged defaults. Empty titles are rejected and no
// partial entity is created.
func (s *Session) CreateTicket(title string) (board.Epic, board.Ticket, error) {
	s.mu.Lock()
	defaults := s.defaults
	s.mu.Unlock()

	epic, ticket, err := extract.ManualTicket(title, defaults, s.now())
	if err != nil {
		return board.Epic{}, board.Ticket{}, err
	}

	s.mu.Lock()
	s.epics = append(append([]board.Epic{}, s.epics...), epic)
	s.tickets = append(append([]board.Ticket{}, s.tickets...), ticket)
	newEpics, newTickets := s.epics, s.tickets
	epicsHook, ticketsHook := s.OnEpicsChanged, s.OnTicketsChanged
	s.mu.Unlock()

	if epicsHook != nil {
		epicsHook(newEpics)
	}
	if ticketsHook != nil {
		ticketsHook(newTickets)
	}
	return epic, ticket, nil
}

// CreateEpic appends a standalone epic, for grouping tickets created
// later. Empty titles are rejected.
func (s *Session) CreateEpic(title, description string) (board.Epic, error) {
	if strings.TrimSpace(title) == "" {
		return board.Epic{}, errors.New("epic title must not be empty")
	}

	batch := board.NewBatch(s.now())
	epic := board.Epic{
		ID:          batch.EpicID(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		CreatedAt:   batch.Instant(),
	}

	s.mu.Lock()
	s.epics = append(append([]board.Epic{}, s.epics...), epic)
	newEpics := s.epics
	hook := s.OnEpicsChanged
	s.mu.Unlock()

	if hook != nil {
		hook(newEpics)
	}
	return epic, nil
}

// DropTicket applies a drag gesture. It reports whether the board
// changed; stale or unknown gestures are silently ignored.
func (s *Session) DropTicket(activeID, overID string) bool {
	s.mu.Lock()
	target, ok := board.ResolveDrop(s.tickets, activeID, overID)
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.tickets = board.ApplyStatus(s.tickets, activeID, target)
	newTickets := s.tickets
	hook := s.OnTicketsChanged
	s.mu.Unlock()

	if hook != nil {
		hook(newTickets)
	}
	return true
}

// MoveTicket applies a direct status change (CLI path). Invalid targets
// are no-ops.
func (s *Session) MoveTicket(id string, status board.Status) {
	s.mu.Lock()
	s.tickets = board.ApplyStatus(s.tickets, id, status)
	newTickets := s.tickets
	hook := s.OnTicketsChanged
	s.mu.Unlock()

	if hook != nil {
		hook(newTickets)
	}
}

// ReassignTicket changes a ticket's assignee role.
func (s *Session) ReassignTicket(id string, assignee board.Role) {
	s.mu.Lock()
	s.tickets = board.Reassign(s.tickets, id, assignee)
	newTickets := s.tickets
	hook := s.OnTicketsChanged
	s.mu.Unlock()

	if hook != nil {
		hook(newTickets)
	}
}

// Advance performs the active role's gated action on a ticket: a round
// trip to the agent service with the ticket as context, then the status
// change, but only if the round trip succeeded. On failure the ticket keeps
// its prior status and the error is returned so the action can be
// retried.
func (s *Session) Advance(ctx context.Context, ticketID string) (board.Action, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return board.Action{}, ErrBusy
	}
	role := s.role
	idx := board.FindTicket(s.tickets, ticketID)
	if idx < 0 {
		s.mu.Unlock()
		return board.Action{}, fmt.Errorf("ticket %s not found", ticketID)
	}
	ticket := s.tickets[idx]
	action, ok := board.ActionFor(role, ticket.Status)
	if !ok {
		s.mu.Unlock()
		return board.Action{}, fmt.Errorf("role %s has no action for a %s ticket", role, ticket.Status)
	}
	s.busy = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	_, err := s.runner.Send(ctx, agent.Request{
		Role:    role,
		Message: fmt.Sprintf("Review ticket %q before it moves to %s.", ticket.Title, action.To),
		Context: map[string]string{
			"ticket_id":   ticket.ID,
			"title":       ticket.Title,
			"description": ticket.Description,
			"status":      string(ticket.Status),
		},
	})
	if err != nil {
		return board.Action{}, fmt.Errorf("%s action: %w", action.Name, err)
	}

	s.mu.Lock()
	// The board stayed interactive during the round trip. If the ticket
	// left the gating column in the meantime, the action no longer
	// applies; the later move wins.
	idx = board.FindTicket(s.tickets, ticketID)
	if idx < 0 || s.tickets[idx].Status != action.From {
		s.mu.Unlock()
		return board.Action{}, fmt.Errorf("ticket %s changed during the %s action; no transition applied", ticketID, action.Name)
	}
	s.tickets = board.ApplyStatus(s.tickets, ticketID, action.To)
	newTickets := s.tickets
	hook := s.OnTicketsChanged
	s.mu.Unlock()

	if hook != nil {
		hook(newTickets)
	}
	return action, nil
}

// AppendMessage records a conversation turn without a round trip, used
// when replaying a persisted session.
func (s *Session) AppendMessage(sender chat.Sender, text string, at time.Time) {
	s.mu.Lock()
	s.log.Append(sender, text, at)
	s.mu.Unlock()
}

// Restore replaces the session state wholesale from persisted snapshots.
func (s *Session) Restore(tickets []board.Ticket, epics []board.Epic, messages []chat.Message) {
	s.mu.Lock()
	s.tickets = append([]board.Ticket{}, tickets...)
	s.epics = append([]board.Epic{}, epics...)
	s.log.Restore(messages)
	s.mu.Unlock()
}
