package board

import (
	"reflect"
	"testing"
)

func TestResolveDrop_OntoColumn(t *testing.T) {
	tickets := sampleTickets()

	for _, col := range Columns {
		if col == StatusBacklog {
			continue // ticket-1 already there, covered below
		}
		status, ok := ResolveDrop(tickets, "ticket-1", string(col))
		if !ok {
			t.Fatalf("drop onto column %s declined", col)
		}
		if status != col {
			t.Errorf("drop onto %s resolved to %s", col, status)
		}
	}
}

func TestResolveDrop_OntoTicket(t *testing.T) {
	tickets := sampleTickets()

	// Dropping onto a card adopts that card's current column.
	status, ok := ResolveDrop(tickets, "ticket-1", "ticket-3")
	if !ok {
		t.Fatal("drop onto ticket declined")
	}
	if status != StatusReadyForTesting {
		t.Errorf("expected ready-for-testing, got %s", status)
	}
}

func TestResolveDrop_Declines(t *testing.T) {
	tickets := sampleTickets()

	cases := []struct {
		name     string
		activeID string
		overID   string
	}{
		{"unknown active ticket", "ticket-999", string(StatusDone)},
		{"cancelled mid-air", "ticket-1", ""},
		{"unknown target", "ticket-1", "nonsense"},
		{"same column", "ticket-1", string(StatusBacklog)},
		{"onto card in same column", "ticket-1", "ticket-1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := ResolveDrop(tickets, tc.activeID, tc.overID); ok {
				t.Error("expected gesture to decline")
			}
		})
	}
}

func TestDrop_AppliesResolvedStatus(t *testing.T) {
	tickets := sampleTickets()

	got := Drop(tickets, "ticket-1", string(StatusInProgress))
	if got[0].Status != StatusInProgress {
		t.Errorf("expected in-progress, got %s", got[0].Status)
	}

	// Dropping again on the same column is a no-op producing an identical
	// collection.
	again := Drop(got, "ticket-1", string(StatusInProgress))
	if !reflect.DeepEqual(again, got) {
		t.Error("second drop on same column should be a no-op")
	}
}

func TestDrop_DeclinedGestureReturnsInput(t *testing.T) {
	tickets := sampleTickets()

	got := Drop(tickets, "ticket-1", "")
	if !reflect.DeepEqual(got, tickets) {
		t.Error("declined gesture should leave the collection unchanged")
	}
}
