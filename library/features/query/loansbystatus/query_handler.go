package loansbystatus

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// Store defines what the QueryHandler needs from the storage engine.
type Store interface {
	FindLoansByStatus(ctx context.Context, status string) ([]lendingstore.LoanRecord, error)
}

// QueryHandler runs Load -> Project.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

func (h QueryHandler) Handle(ctx context.Context, query Query) (Loans, error) {
	records, err := h.store.FindLoansByStatus(lendingstore.WithEventualConsistency(ctx), string(query.Status))
	if err != nil {
		return Loans{}, err
	}

	loans, err := shell.LoansFromRecords(records)
	if err != nil {
		return Loans{}, err
	}

	return ProjectLoans(loans, query), nil
}
