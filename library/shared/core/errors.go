package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced book, member, loan or fine does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an operation is not allowed in the current state.
	ErrConflict = errors.New("conflict")

	// ErrInvalidState is a Conflict caused by a state machine refusing a transition.
	ErrInvalidState = fmt.Errorf("%w: invalid state", ErrConflict)

	// ErrAlreadyExists is a Conflict caused by a uniqueness rule.
	ErrAlreadyExists = fmt.Errorf("%w: already exists", ErrConflict)

	// ErrValidation is returned for malformed input, before any state is read or written.
	ErrValidation = errors.New("validation failed")
)

// RuleViolation is the error an entity operation returns when a business rule forbids it.
// Error returns only the reason, Unwrap returns the sentinel.
type RuleViolation struct {
	Sentinel error
	Reason   string
}

// Violation builds a RuleViolation.
func Violation(sentinel error, reason string) error {
	return RuleViolation{Sentinel: sentinel, Reason: reason}
}

func (v RuleViolation) Error() string {
	return v.Reason
}

func (v RuleViolation) Unwrap() error {
	return v.Sentinel
}

// sentinelOf returns the sentinel of a RuleViolation, ErrConflict for any other error.
func sentinelOf(err error) error {
	var violation RuleViolation
	if errors.As(err, &violation) && violation.Sentinel != nil {
		return violation.Sentinel
	}

	return ErrConflict
}
