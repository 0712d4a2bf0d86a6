package createloan

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// Store defines what the CommandHandler needs from the storage engine.
type Store interface {
	shell.LoanFinder
	shell.BookFinder
	ExistsMemberByID(ctx context.Context, id string) (bool, error)
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

// Handle validates the command and executes it with retry.
// A concurrency conflict on the book reloads it, so a lost race ends as a Conflict.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	if err := command.Validate(); err != nil {
		return shell.RejectInvalid(err)
	}

	return shell.ExecuteCommand(ctx, func(ctx context.Context) (bool, error) {
		return h.executeCommand(ctx, command)
	}, h.retryOptions...)
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, error) {
	ctx = lendingstore.WithStrongConsistency(ctx)

	s, err := h.load(ctx, command)
	if err != nil {
		return false, err
	}

	result := Decide(s, command)

	if !result.HasEventToAppend() {
		return true, nil
	}

	_, err = shell.CommitDecision(ctx, h.store, CommandType, result)

	return false, err
}

func (h CommandHandler) load(ctx context.Context, command Command) (State, error) {
	loan, err := shell.LoadLoan(ctx, h.store, command.LoanID)
	if err != nil || loan != nil {
		return State{Loan: loan}, err
	}

	book, err := shell.LoadBook(ctx, h.store, command.BookID)
	if err != nil {
		return State{}, err
	}

	memberExists, err := h.store.ExistsMemberByID(ctx, command.MemberID.String())
	if err != nil {
		return State{}, err
	}

	return State{Book: book, MemberExists: memberExists}, nil
}
