package board

// ApplyStatus returns a new collection identical to tickets except that
// the matching ticket has its status replaced. The input slice is never
// modified. Unknown ids and invalid status labels are no-ops: the input
// collection is returned unchanged. Requesting a ticket's current status
// again is also a no-op, so the operation is idempotent.
func ApplyStatus(tickets []Ticket, id string, status Status) []Ticket {
	if !ValidStatus(status) {
		return tickets
	}
	idx := FindTicket(tickets, id)
	if idx < 0 {
		return tickets
	}
	if tickets[idx].Status == status {
		return tickets
	}

	out := make([]Ticket, len(tickets))
	copy(out, tickets)
	out[idx].Status = status
	return out
}

// Reassign returns a new collection with the matching ticket's assignee
// replaced. Unknown ids and invalid roles leave the input unchanged.
func Reassign(tickets []Ticket, id string, assignee Role) []Ticket {
	if !ValidRole(assignee) {
		return tickets
	}
	idx := FindTicket(tickets, id)
	if idx < 0 || tickets[idx].Assignee == assignee {
		return tickets
	}

	out := make([]Ticket, len(tickets))
	copy(out, tickets)
	out[idx].Assignee = assignee
	return out
}
