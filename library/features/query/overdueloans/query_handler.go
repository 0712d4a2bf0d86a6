package overdueloans

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// Store defines what the QueryHandler needs from the storage engine.
type Store interface {
	FindOverdueBefore(ctx context.Context, date time.Time) ([]lendingstore.LoanRecord, error)
}

// QueryHandler runs Load -> Project.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

func (h QueryHandler) Handle(ctx context.Context, query Query) (OverdueLoans, error) {
	records, err := h.store.FindOverdueBefore(lendingstore.WithEventualConsistency(ctx), Cutoff(query.AsOf))
	if err != nil {
		return OverdueLoans{}, err
	}

	loans, err := shell.LoansFromRecords(records)
	if err != nil {
		return OverdueLoans{}, err
	}

	return ProjectOverdueLoans(loans, query), nil
}
