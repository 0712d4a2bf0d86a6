package markalloverdue

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// Store defines what the CommandHandler needs from the storage engine.
type Store interface {
	shell.LoanFinder
	FindLoansByStatus(ctx context.Context, status string) ([]lendingstore.LoanRecord, error)
	shell.Committer
}

// CommandHandler sweeps all active loans. Every loan runs its own Load -> Decide -> Commit
// with retry on concurrency conflicts.
type CommandHandler struct {
	store        Store
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for each loan.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{store: store}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle marks every eligible loan overdue and reports their number as Affected.
// The result is idempotent when no loan changed. Failures of single loans are joined
// into the returned error, the loans that succeeded stay committed.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	if err := command.Validate(); err != nil {
		return shell.RejectInvalid(err)
	}

	candidates, err := h.store.FindLoansByStatus(
		lendingstore.WithStrongConsistency(ctx),
		lendingstore.LoanStatusActive)
	if err != nil {
		return shell.NewErrorResult(shell.RetryMetrics{Attempts: 1}), err
	}

	var (
		sweep    shell.RetryMetrics
		affected int
		failures []error
	)

	for _, candidate := range candidates {
		loanID, parseErr := uuid.Parse(candidate.ID)
		if parseErr != nil {
			failures = append(failures, parseErr)
			continue
		}

		result, loanErr := shell.ExecuteCommand(ctx, func(ctx context.Context) (bool, error) {
			return h.executeCommand(ctx, loanID, command)
		}, h.retryOptions...)

		sweep = accumulate(sweep, result)

		if loanErr != nil {
			if shell.IsCancellationError(loanErr) || shell.IsTimeoutError(loanErr) {
				return shell.NewErrorResult(sweep).WithAffected(affected), loanErr
			}

			failures = append(failures, fmt.Errorf("loan %s: %w", loanID, loanErr))

			continue
		}

		if !result.Idempotent {
			affected++
		}
	}

	if len(failures) > 0 {
		return shell.NewErrorResult(sweep).WithAffected(affected), errors.Join(failures...)
	}

	if affected == 0 {
		return shell.NewIdempotentResult(sweep), nil
	}

	return shell.NewSuccessResult(sweep).WithAffected(affected), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, loanID uuid.UUID, command Command) (bool, error) {
	ctx = lendingstore.WithStrongConsistency(ctx)

	loan, err := shell.LoadLoan(ctx, h.store, loanID)
	if err != nil {
		return false, err
	}

	result := Decide(State{Loan: loan}, command)

	if !result.HasEventToAppend() {
		return true, nil
	}

	_, err = shell.CommitDecision(ctx, h.store, CommandType, result)

	return false, err
}

// accumulate reports the attempts of the loan that needed the most of them.
func accumulate(sweep shell.RetryMetrics, result shell.HandlerResult) shell.RetryMetrics {
	sweep.Attempts = max(sweep.Attempts, result.RetryAttempts)
	sweep.TotalDelay += result.TotalRetryDelay
	sweep.LastErrorType = result.LastErrorType
	sweep.RetriesExhausted = sweep.RetriesExhausted || result.RetriesExhausted

	return sweep
}
