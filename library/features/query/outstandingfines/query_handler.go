package outstandingfines

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// Store defines what the QueryHandler needs from the storage engine.
type Store interface {
	FindUnsettledFines(ctx context.Context) ([]lendingstore.FineRecord, error)
}

// QueryHandler runs Load -> Project. Wrap it with observable.NewQueryWrapper for
// metrics, tracing and logging.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

func (h QueryHandler) Handle(ctx context.Context, _ Query) (OutstandingFines, error) {
	records, err := h.store.FindUnsettledFines(lendingstore.WithEventualConsistency(ctx))
	if err != nil {
		return OutstandingFines{}, err
	}

	fines, err := shell.FinesFromRecords(records)
	if err != nil {
		return OutstandingFines{}, err
	}

	return ProjectOutstandingFines(fines), nil
}
