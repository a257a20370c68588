package quoting

import (
	"fmt"
	"strings"
)

// Status is the quote lifecycle state. The string values match the rows the
// business tooling already stores, so they are part of the persisted format.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusRejected   Status = "Rejected"
	StatusCompleted  Status = "Completed"
)

// Event drives a lifecycle transition.
type Event string

const (
	EventApprove      Event = "approve-and-create-project"
	EventReject       Event = "reject"
	EventMarkComplete Event = "mark-complete"
)

type transitionKey struct {
	from  Status
	event Event
}

// transitions is the complete legal transition table. Anything absent is an
// invalid transition, including events on the terminal states Rejected and
// Completed.
var transitions = map[transitionKey]Status{
	{StatusPending, EventApprove}:         StatusInProgress,
	{StatusPending, EventReject}:          StatusRejected,
	{StatusInProgress, EventMarkComplete}: StatusCompleted,
}

func ParseEvent(raw string) (Event, error) {
	switch Event(strings.TrimSpace(raw)) {
	case EventApprove:
		return EventApprove, nil
	case EventReject:
		return EventReject, nil
	case EventMarkComplete:
		return EventMarkComplete, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEvent, raw)
	}
}

// NextStatus resolves the target state for an event, or ErrInvalidTransition
// when the table has no row for the (from, event) pair.
func NextStatus(from Status, event Event) (Status, error) {
	next, ok := transitions[transitionKey{from, event}]
	if !ok {
		return "", fmt.Errorf("%w: %q does not accept %q", ErrInvalidTransition, from, event)
	}
	return next, nil
}

// IsTerminal reports whether no event can move the quote further.
func IsTerminal(s Status) bool {
	return s == StatusRejected || s == StatusCompleted
}
