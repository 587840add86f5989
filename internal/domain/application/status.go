package application

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusApplied   Status = "applied"
	StatusReviewed  Status = "reviewed"
	StatusInterview Status = "interview"
	StatusRejected  Status = "rejected"
	StatusAccepted  Status = "accepted"
)

// allowedTransitions is the full lifecycle: rejected and accepted are
// terminal, and no status may transition to itself.
var allowedTransitions = map[Status][]Status{
	StatusApplied:   {StatusReviewed, StatusRejected},
	StatusReviewed:  {StatusInterview, StatusRejected},
	StatusInterview: {StatusAccepted, StatusRejected},
	StatusRejected:  {},
	StatusAccepted:  {},
}

type IllegalTransitionError struct {
	From Status
	To   Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot transition application status from %s to %s", e.From, e.To)
}

func NormalizeStatus(status Status) Status {
	return Status(strings.ToLower(strings.TrimSpace(string(status))))
}

func KnownStatus(status Status) bool {
	_, ok := allowedTransitions[status]
	return ok
}

func IsTerminal(status Status) bool {
	return status == StatusRejected || status == StatusAccepted
}

// Transition validates a status change. Requesting the current status again
// fails like any other transition outside the table.
func Transition(from, to Status) error {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return nil
		}
	}
	return &IllegalTransitionError{From: from, To: to}
}
