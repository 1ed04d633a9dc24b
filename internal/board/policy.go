package board

// Action is a role-gated workflow step: a role may advance a ticket from
// one status to the next only when the ticket currently sits in From.
// The policy lives in a table so it can be tested independently of any
// interface.
type Action struct {
	Name string
	Role Role
	From Status
	To   Status
}

var actions = []Action{
	{Name: "submit-for-testing", Role: RoleDev, From: StatusInProgress, To: StatusReadyForTesting},
	{Name: "sign-off", Role: RoleQA, From: StatusReadyForTesting, To: StatusDone},
}

// ActionFor returns the action the given role may perform on a ticket in
// the given status, if any.
func ActionFor(role Role, status Status) (Action, bool) {
	for _, a := range actions {
		if a.Role == role && a.From == status {
			return a, true
		}
	}
	return Action{}, false
}

// Actions returns a copy of the full policy table.
func Actions() []Action {
	out := make([]Action, len(actions))
	copy(out, actions)
	return out
}
