package order

import (
	"fmt"
	"slices"

	"visadesk/internal/pkg/errs"
)

// TransitionPolicy decides whether an order may move from one status to another.
// The target status has already passed Status.Validate when a policy is consulted.
type TransitionPolicy interface {
	CheckTransition(from, to Status) error
}

// AnyTransition accepts every status change, including leaving Canceled.
// It is the default policy.
type AnyTransition struct{}

// CheckTransition always succeeds.
func (AnyTransition) CheckTransition(_, _ Status) error {
	return nil
}

// Workflow restricts status changes to an explicit graph. Keeping the current
// status is always allowed.
type Workflow struct {
	allowed map[Status][]Status
}

// NewWorkflow builds a policy from an adjacency list.
func NewWorkflow(allowed map[Status][]Status) Workflow {
	return Workflow{allowed: allowed}
}

// DefaultWorkflow returns the documented order workflow:
//
//	Draft ──> New ──> InProgress ──> Completed
//	  │        │          │              │
//	  └────────┴──────────┴──────────────┴──> Canceled
func DefaultWorkflow() Workflow {
	return NewWorkflow(map[Status][]Status{
		Draft:      {New, Canceled},
		New:        {InProgress, Canceled},
		InProgress: {Completed, Canceled},
		Completed:  {Canceled},
	})
}

// CheckTransition returns a ValueIsInvalidError for edges missing from the graph.
func (w Workflow) CheckTransition(from, to Status) error {
	if from == to || slices.Contains(w.allowed[from], to) {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("transition from %s to %s is not allowed", from, to),
	)
}
