package ticket

import "fmt"

// allowedTransitions is the status state machine. Done is terminal;
// claimed -> ready allows unclaiming a ticket.
var allowedTransitions = map[Status]map[Status]bool{
	StatusReady:       {StatusClaimed: true, StatusBlocked: true},
	StatusClaimed:     {StatusNeedsReview: true, StatusBlocked: true, StatusReady: true},
	StatusBlocked:     {StatusReady: true, StatusClaimed: true},
	StatusNeedsReview: {StatusDone: true, StatusClaimed: true},
	StatusDone:        {},
}

// KnownStatus reports whether s is one of the recognized lifecycle states.
func KnownStatus(s Status) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// ValidateTransition reports whether old -> new is a legal status change.
// It returns nil for legal edges and a descriptive error naming the pair
// otherwise. Callers that force a transition bypass this check entirely;
// forcing is an explicit override, never a default.
func ValidateTransition(old, new Status) error {
	next, ok := allowedTransitions[old]
	if !ok {
		return fmt.Errorf("unknown old status %q", old)
	}
	if !KnownStatus(new) {
		return fmt.Errorf("unknown new status %q", new)
	}
	if !next[new] {
		return fmt.Errorf("invalid transition %q -> %q", old, new)
	}
	return nil
}
