package createmanualfine

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// Store defines what the CommandHandler needs from the storage engine.
type Store interface {
	shell.LoanFinder
	shell.FineByLoanFinder
	shell.Committer
}

// CommandHandler runs Load -> Decide -> Commit with retry on concurrency conflicts.
type CommandHandler struct {
	store        Store
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
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

// Handle validates the command before anything is loaded and executes it with retry.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	if err := command.Validate(); err != nil {
		return shell.RejectInvalid(err)
	}

	return shell.ExecuteCommand(ctx, func(ctx context.Context) (bool, error) {
		return false, h.executeCommand(ctx, command)
	}, h.retryOptions...)
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) error {
	ctx = lendingstore.WithStrongConsistency(ctx)

	loan, err := shell.LoadLoan(ctx, h.store, command.LoanID)
	if err != nil {
		return err
	}

	fine, err := shell.LoadFineOfLoan(ctx, h.store, command.LoanID)
	if err != nil {
		return err
	}

	_, err = shell.CommitDecision(ctx, h.store, CommandType, Decide(State{Loan: loan, Fine: fine}, command))

	return err
}
