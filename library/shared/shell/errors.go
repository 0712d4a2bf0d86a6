package shell

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// IsCancellationError checks if an error is due to context cancellation.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsTimeoutError checks if an error is due to context deadline exceeded.
func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// IsConcurrencyConflictError checks if an error is due to optimistic concurrency control failure.
func IsConcurrencyConflictError(err error) bool {
	return errors.Is(err, lendingstore.ErrConcurrencyConflict)
}

// IsNotFoundError checks if an error reports a missing book, member, loan or fine.
func IsNotFoundError(err error) bool {
	return errors.Is(err, core.ErrNotFound)
}

// IsConflictError checks if an error reports an operation the current state does not allow.
func IsConflictError(err error) bool {
	return errors.Is(err, core.ErrConflict)
}

// IsValidationError checks if an error reports malformed input.
func IsValidationError(err error) bool {
	return errors.Is(err, core.ErrValidation)
}

// IsBusinessError checks if an error is a rejection by a business rule rather than a technical failure.
func IsBusinessError(err error) bool {
	return IsNotFoundError(err) || IsConflictError(err) || IsValidationError(err)
}
