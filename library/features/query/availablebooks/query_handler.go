package availablebooks

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// Store defines what the QueryHandler needs from the storage engine.
type Store interface {
	FindBooksByStatus(ctx context.Context, status string) ([]lendingstore.BookRecord, error)
}

// QueryHandler runs Load -> Project.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

func (h QueryHandler) Handle(ctx context.Context, query Query) (AvailableBooks, error) {
	records, err := h.store.FindBooksByStatus(
		lendingstore.WithEventualConsistency(ctx),
		lendingstore.BookStatusAvailable)
	if err != nil {
		return AvailableBooks{}, err
	}

	books, err := shell.BooksFromRecords(records)
	if err != nil {
		return AvailableBooks{}, err
	}

	return ProjectAvailableBooks(books, query), nil
}
