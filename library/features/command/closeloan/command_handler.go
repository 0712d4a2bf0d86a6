package closeloan

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/assessfine"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// ErrNilFineAssessor is returned when the handler is created without a fine assessor.
var ErrNilFineAssessor = errors.New("fine assessor must not be nil")

// Store defines what the CommandHandler needs from the storage engine.
type Store interface {
	shell.LoanFinder
	shell.BookFinder
	shell.Committer
}

// FineAssessor runs the assessment of a closed loan.
// Usually the assessfine.CommandHandler, optionally wrapped for observability.
type FineAssessor = shell.CoreCommandHandler[assessfine.Command]

// CommandHandler closes the loan with retry on concurrency conflicts and then runs the
// fine assessment.
type CommandHandler struct {
	store        Store
	assessor     FineAssessor
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
func NewCommandHandler(store Store, assessor FineAssessor, opts ...Option) (CommandHandler, error) {
	if assessor == nil {
		return CommandHandler{}, ErrNilFineAssessor
	}

	handler := CommandHandler{store: store, assessor: assessor}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler, nil
}

// Handle closes the loan and then assesses its fine.
//
// An error is only returned when the closure itself failed. A failed assessment leaves the
// closure committed and is reported through HandlerResult.Warning.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	if err := command.Validate(); err != nil {
		return shell.RejectInvalid(err)
	}

	var closure shell.EventMetadata

	result, err := shell.ExecuteCommand(ctx, func(ctx context.Context) (bool, error) {
		metadata, execErr := h.executeCommand(ctx, command)
		closure = metadata

		return false, execErr
	}, h.retryOptions...)
	if err != nil {
		return result, err
	}

	assessCtx := shell.WithCause(ctx, closure)
	assessCommand := assessfine.BuildCommand(command.FineID, command.LoanID, command.OccurredAt)

	if _, assessErr := h.assessor.Handle(assessCtx, assessCommand); assessErr != nil {
		return result.WithWarning("fine assessment failed: " + assessErr.Error()), nil
	}

	return result, nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (shell.EventMetadata, error) {
	ctx = lendingstore.WithStrongConsistency(ctx)

	s := State{}

	loan, err := shell.LoadLoan(ctx, h.store, command.LoanID)
	if err != nil {
		return shell.EventMetadata{}, err
	}
	s.Loan = loan

	if loan != nil {
		if s.Book, err = shell.LoadBook(ctx, h.store, loan.BookID); err != nil {
			return shell.EventMetadata{}, err
		}
	}

	return shell.CommitDecision(ctx, h.store, CommandType, Decide(s, command))
}
