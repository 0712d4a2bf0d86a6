package memberfines

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// Store defines what the QueryHandler needs from the storage engine.
type Store interface {
	FindUnsettledFinesByMember(ctx context.Context, memberID string) ([]lendingstore.FineRecord, error)
	SumUnsettledByMember(ctx context.Context, memberID string) (decimal.Decimal, error)
}

// QueryHandler runs Load -> Project.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns an empty result for an unknown member, not an error.
func (h QueryHandler) Handle(ctx context.Context, query Query) (MemberFines, error) {
	ctx = lendingstore.WithEventualConsistency(ctx)
	memberID := query.MemberID.String()

	records, err := h.store.FindUnsettledFinesByMember(ctx, memberID)
	if err != nil {
		return MemberFines{}, err
	}

	total, err := h.store.SumUnsettledByMember(ctx, memberID)
	if err != nil {
		return MemberFines{}, err
	}

	fines, err := shell.FinesFromRecords(records)
	if err != nil {
		return MemberFines{}, err
	}

	return ProjectMemberFines(fines, total, query), nil
}
