package loansbymember

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// Store defines what the QueryHandler needs from the storage engine.
type Store interface {
	FindLoansByMember(ctx context.Context, memberID string) ([]lendingstore.LoanRecord, error)
	CountActiveLoans(ctx context.Context, memberID string) (int, error)
}

// QueryHandler runs Load -> Project.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

func (h QueryHandler) Handle(ctx context.Context, query Query) (LoansByMember, error) {
	ctx = lendingstore.WithEventualConsistency(ctx)
	memberID := query.MemberID.String()

	records, err := h.store.FindLoansByMember(ctx, memberID)
	if err != nil {
		return LoansByMember{}, err
	}

	active, err := h.store.CountActiveLoans(ctx, memberID)
	if err != nil {
		return LoansByMember{}, err
	}

	loans, err := shell.LoansFromRecords(records)
	if err != nil {
		return LoansByMember{}, err
	}

	return ProjectLoansByMember(loans, active, query), nil
}
