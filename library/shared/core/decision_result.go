package core

import (
	"fmt"
)

// Changes holds the entities a decision created or modified.
// Entities with Version 0 are new, all others are updates of what was loaded.
type Changes struct {
	Books   []Book
	Members []Member
	Loans   []Loan
	Fines   []Fine
}

// IsEmpty reports whether no entity was changed.
func (c Changes) IsEmpty() bool {
	return len(c.Books) == 0 && len(c.Members) == 0 && len(c.Loans) == 0 && len(c.Fines) == 0
}

// DecisionResult represents the outcome of a business decision in a Decide function.
//
// IMPORTANT: DecisionResult should only be constructed using the provided factory methods:
// IdempotentDecision(), SuccessDecision(event, changes), ErrorDecision(event, err)
// or RejectDecision(event, violation).
type DecisionResult struct {
	Outcome string      // "idempotent", "success", or "error"
	Event   DomainEvent // nil for idempotent decisions
	Changes Changes     // empty unless the outcome is "success"
	Err     error
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	errorOutcome      = "error"
)

// IdempotentDecision creates a DecisionResult indicating no state change is needed.
func IdempotentDecision() DecisionResult {
	return DecisionResult{
		Outcome: idempotentOutcome,
		Event:   nil,
	}
}

// SuccessDecision creates a DecisionResult with an event to journal and the changed entities to commit.
func SuccessDecision(event DomainEvent, changes Changes) DecisionResult {
	return DecisionResult{
		Outcome: successOutcome,
		Event:   event,
		Changes: changes,
	}
}

// ErrorDecision creates a DecisionResult indicating a business rule violation with an error event to journal.
func ErrorDecision(event DomainEvent, err error) DecisionResult {
	return DecisionResult{
		Outcome: errorOutcome,
		Event:   event,
		Err:     err,
	}
}

// RejectDecision is ErrorDecision for a violation returned by an entity operation.
// The error matches the violation's sentinel with errors.Is and names the failure event:
//
//	conflict: invalid state: LoanCreationFailed: book ... is LOANED, not AVAILABLE
func RejectDecision(event DomainEvent, violation error) DecisionResult {
	return ErrorDecision(
		event,
		fmt.Errorf("%w: %s: %s", sentinelOf(violation), event.IsEventType(), violation.Error()),
	)
}

// HasEventToAppend returns true if there is an event to append to the lending journal.
func (r DecisionResult) HasEventToAppend() bool {
	return r.Outcome != idempotentOutcome
}

// HasError returns the error if there is one, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}
