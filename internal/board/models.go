// Package board defines the ticket/epic domain model and the pure
// operations on it: status transitions, drag placement resolution, and
// the role-gated action policy. Everything here works on value snapshots;
// mutations return new collections and never touch shared state.
package board

import "time"

// Status is the pipeline column a ticket sits in.
type Status string

const (
	StatusBacklog         Status = "backlog"
	StatusInProgress      Status = "in-progress"
	StatusReadyForTesting Status = "ready-for-testing"
	StatusDone            Status = "done"
)

// Columns is the fixed pipeline order. Column identifiers on the board
// are the status strings themselves.
var Columns = [4]Status{StatusBacklog, StatusInProgress, StatusReadyForTesting, StatusDone}

// ValidStatus reports whether s is one of the four pipeline statuses.
func ValidStatus(s Status) bool {
	for _, c := range Columns {
		if s == c {
			return true
		}
	}
	return false
}

// Role is one of the four fixed assignee/actor tags.
type Role string

const (
	RoleAnalyst Role = "analyst"
	RolePM      Role = "pm"
	RoleDev     Role = "dev"
	RoleQA      Role = "qa"
)

// Roles lists all roles in their workflow order.
var Roles = [4]Role{RoleAnalyst, RolePM, RoleDev, RoleQA}

// ValidRole reports whether r is a known role tag.
func ValidRole(r Role) bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Priority of a ticket.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities lists all priorities from lowest to highest.
var Priorities = [4]Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// ValidPriority reports whether p is a known priority.
func ValidPriority(p Priority) bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// StoryPointScale is the allowed estimate set for structured input.
// Extraction-derived estimates are only coerced to an integer and may
// fall outside this set.
var StoryPointScale = [6]int{1, 2, 3, 5, 8, 13}

// ValidStoryPoints reports whether n is on the structured-input scale.
func ValidStoryPoints(n int) bool {
	for _, v := range StoryPointScale {
		if n == v {
			return true
		}
	}
	return false
}

// Ticket is a single unit of work on the board. Its column is determined
// solely by Status. After creation only Status (via drag or role action)
// and Assignee (via reassignment) change.
type Ticket struct {
	ID          string    `json:"id"`
	EpicID      string    `json:"epic_id,omitempty"` // weak reference, lookup only
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	Assignee    Role      `json:"assignee"`
	Priority    Priority  `json:"priority"`
	StoryPoints int       `json:"story_points,omitempty"` // 0 = unset
	CreatedAt   time.Time `json:"created_at"`
}

// Epic is a named grouping of tickets. Epics are append-only: once
// created they are never mutated or deleted by the core.
type Epic struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FindTicket returns the index of the ticket with the given id, or -1.
func FindTicket(tickets []Ticket, id string) int {
	for i := range tickets {
		if tickets[i].ID == id {
			return i
		}
	}
	return -1
}

// FindEpic returns the index of the epic with the given id, or -1.
func FindEpic(epics []Epic, id string) int {
	for i := range epics {
		if epics[i].ID == id {
			return i
		}
	}
	return -1
}
