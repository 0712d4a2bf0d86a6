package shell

import (
	"context"
	"time"
)

// HandlerResult represents the outcome of a command handler execution.
// It captures both business outcomes (idempotency, warnings) and execution metadata (retry information)
// without coupling the handler to specific observability implementations.
type HandlerResult struct {
	// Idempotent indicates whether the operation was idempotent (no state change needed).
	// This is a first-class business outcome, not an error condition.
	Idempotent bool

	// Warning reports a failed follow-up step that did not undo the operation itself,
	// e.g. a fine assessment that failed after the loan was closed.
	Warning string

	// Affected is the number of entities a bulk operation changed.
	Affected int

	// RetryAttempts is the total number of attempts made (1 for no retries, 2+ for retries).
	RetryAttempts int

	// TotalRetryDelay is the cumulative time spent in retry backoff delays.
	TotalRetryDelay time.Duration

	// LastErrorType describes the type of the final error encountered during retries.
	// Values: "none" (success), "concurrency_conflict", "context_canceled", "context_deadline_exceeded", "other"
	LastErrorType string

	// RetriesExhausted indicates whether max retry attempts were reached with a retryable error.
	RetriesExhausted bool
}

// NewSuccessResult creates a HandlerResult for successful operations (non-idempotent).
func NewSuccessResult(retryMetrics RetryMetrics) HandlerResult {
	return resultFrom(retryMetrics, false)
}

// NewIdempotentResult creates a HandlerResult for idempotent operations.
func NewIdempotentResult(retryMetrics RetryMetrics) HandlerResult {
	return resultFrom(retryMetrics, true)
}

// NewErrorResult creates a HandlerResult for failed operations.
// This is used when the handler returns an error but still wants to report retry metadata.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return resultFrom(retryMetrics, false)
}

// WithWarning returns a copy of the result carrying the warning.
func (r HandlerResult) WithWarning(warning string) HandlerResult {
	r.Warning = warning
	return r
}

// WithAffected returns a copy of the result carrying the number of changed entities.
func (r HandlerResult) WithAffected(affected int) HandlerResult {
	r.Affected = affected
	return r
}

// HasWarning reports whether a follow-up step failed.
func (r HandlerResult) HasWarning() bool {
	return r.Warning != ""
}

func resultFrom(retryMetrics RetryMetrics, idempotent bool) HandlerResult {
	return HandlerResult{
		Idempotent:       idempotent,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}

// ExecuteFunc runs one attempt of a command: load, decide, commit.
// It reports whether the decision was idempotent.
type ExecuteFunc func(ctx context.Context) (idempotent bool, err error)

// ExecuteCommand runs execute with exponential backoff retry on concurrency conflicts and
// builds the HandlerResult from the outcome and the retry metadata.
func ExecuteCommand(ctx context.Context, execute ExecuteFunc, options ...RetryOption) (HandlerResult, error) {
	var isIdempotent bool

	retryMetrics, err := RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		idempotent, execErr := execute(retryCtx)
		isIdempotent = idempotent

		return execErr
	}, options...)

	if isIdempotent {
		return NewIdempotentResult(retryMetrics), err
	}

	if err != nil {
		return NewErrorResult(retryMetrics), err
	}

	return NewSuccessResult(retryMetrics), nil
}

// RejectInvalid is the HandlerResult of a command that failed validation before any attempt.
func RejectInvalid(err error) (HandlerResult, error) {
	return HandlerResult{LastErrorType: errorTypeOther}, err
}
