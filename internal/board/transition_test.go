package board

import (
	"reflect"
	"testing"
	"time"
)

func sampleTickets() []Ticket {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []Ticket{
		{ID: "ticket-1", Title: "Login form", Status: StatusBacklog, Assignee: RoleDev, Priority: PriorityHigh, CreatedAt: now},
		{ID: "ticket-2", Title: "Password reset", Status: StatusInProgress, Assignee: RoleDev, Priority: PriorityMedium, CreatedAt: now},
		{ID: "ticket-3", Title: "Session expiry", Status: StatusReadyForTesting, Assignee: RoleQA, Priority: PriorityLow, CreatedAt: now},
	}
}

func TestApplyStatus_MovesTicket(t *testing.T) {
	tickets := sampleTickets()

	got := ApplyStatus(tickets, "ticket-1", StatusInProgress)

	if got[0].Status != StatusInProgress {
		t.Errorf("expected in-progress, got %s", got[0].Status)
	}
	// Only the status changed.
	if got[0].Title != tickets[0].Title || got[0].Assignee != tickets[0].Assignee {
		t.Error("fields other than status were modified")
	}
	// Input snapshot untouched.
	if tickets[0].Status != StatusBacklog {
		t.Error("input collection was mutated")
	}
}

func TestApplyStatus_Idempotent(t *testing.T) {
	tickets := sampleTickets()

	got := ApplyStatus(tickets, "ticket-2", StatusInProgress)
	if !reflect.DeepEqual(got, tickets) {
		t.Error("re-applying current status should yield an equal collection")
	}
}

func TestApplyStatus_UnknownTicket(t *testing.T) {
	tickets := sampleTickets()

	got := ApplyStatus(tickets, "ticket-999", StatusDone)
	if !reflect.DeepEqual(got, tickets) {
		t.Error("unknown ticket id should be a no-op")
	}
}

func TestApplyStatus_InvalidStatus(t *testing.T) {
	tickets := sampleTickets()

	got := ApplyStatus(tickets, "ticket-1", Status("shipped"))
	if !reflect.DeepEqual(got, tickets) {
		t.Error("invalid status label should be a no-op")
	}
}

func TestApplyStatus_BackwardMove(t *testing.T) {
	tickets := sampleTickets()

	// Backward transitions are permitted.
	got := ApplyStatus(tickets, "ticket-3", StatusBacklog)
	if got[2].Status != StatusBacklog {
		t.Errorf("expected backlog, got %s", got[2].Status)
	}
}

func TestReassign(t *testing.T) {
	tickets := sampleTickets()

	got := Reassign(tickets, "ticket-1", RoleQA)
	if got[0].Assignee != RoleQA {
		t.Errorf("expected qa, got %s", got[0].Assignee)
	}
	if tickets[0].Assignee != RoleDev {
		t.Error("input collection was mutated")
	}

	same := Reassign(tickets, "ticket-1", Role("manager"))
	if !reflect.DeepEqual(same, tickets) {
		t.Error("invalid role should be a no-op")
	}
}
