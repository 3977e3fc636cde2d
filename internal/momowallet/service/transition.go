package service

import (
	"fmt"

	"momo-wallet/internal/momowallet/data"
)

// allowedTransitions is the whole withdrawal state machine: a withdrawal is
// created PROCESSING and moves to exactly one terminal status. Terminal
// statuses have no outgoing edges.
var allowedTransitions = map[data.Status]map[data.Status]bool{
	data.ProcessingStatus: {
		data.ProcessingStatus: true,
		data.CompletedStatus:  true,
		data.FailedStatus:     true,
	},
}

// Transition validates a status change against the state machine. It returns
// ErrTransitionRejected when current is terminal, which callers must treat
// as "already applied", not as a failure.
func Transition(current, next data.Status) (data.Status, error) {
	if current.Terminal() {
		return current, fmt.Errorf("%w: %s is terminal", ErrTransitionRejected, current)
	}
	if !allowedTransitions[current][next] {
		return current, fmt.Errorf("%w: %s -> %s", ErrTransitionRejected, current, next)
	}
	return next, nil
}
