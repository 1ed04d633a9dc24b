package board

// ResolveDrop maps a drag gesture to its target status.
//
// activeID is the dragged ticket, overID the drop target. The target may
// be a column identifier (one of the four status strings) or another
// ticket's id, in which case the result is that ticket's current column.
// Dropping on a card moves to its column, it does not reorder within one.
//
// The second return is false when the gesture should be ignored: the
// dragged ticket no longer exists, the gesture was cancelled mid-air
// (empty overID), the target matches nothing known, or the resolved
// status equals the ticket's current status.
func ResolveDrop(tickets []Ticket, activeID, overID string) (Status, bool) {
	active := FindTicket(tickets, activeID)
	if active < 0 {
		return "", false
	}
	if overID == "" {
		return "", false
	}

	var target Status
	if ValidStatus(Status(overID)) {
		target = Status(overID)
	} else if over := FindTicket(tickets, overID); over >= 0 {
		target = tickets[over].Status
	} else {
		return "", false
	}

	if tickets[active].Status == target {
		return "", false
	}
	return target, true
}

// Drop applies a drag gesture to the collection. Gestures that decline
// to act return the input unchanged.
func Drop(tickets []Ticket, activeID, overID string) []Ticket {
	target, ok := ResolveDrop(tickets, activeID, overID)
	if !ok {
		return tickets
	}
	return ApplyStatus(tickets, activeID, target)
}
