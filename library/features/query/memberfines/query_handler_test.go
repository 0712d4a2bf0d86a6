package memberfines_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/settlefine"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/memberfines"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

type lendingStore interface {
	memberfines.Store
	settlefine.Store
}

func Test_QueryHandler_Handle_SumsOnlyTheMembersUnsettledFines(t *testing.T) {
	for name, store := range map[string]lendingStore{
		"memory": GivenMemoryStore(t),
		"sqlite": GivenSQLiteStore(t),
	} {
		t.Run(name, func(t *testing.T) {
			// arrange
			ctx := context.Background()
			memberID := givenMember(t, store, 6001)
			otherID := givenMember(t, store, 6002)
			givenFineFor(t, store, memberID, "30.00")
			settled := givenFineFor(t, store, memberID, "50.00")
			givenFineFor(t, store, memberID, "12.50")
			givenFineFor(t, store, otherID, "500.00")
			_, err := settlefine.NewCommandHandler(store).Handle(ctx, settlefine.BuildCommand(settled, Date(2025, 3, 21)))
			require.NoError(t, err, "error in arranging test data")

			// act
			result, err := memberfines.NewQueryHandler(store).Handle(ctx, memberfines.BuildQuery(memberID))

			// assert
			require.NoError(t, err)
			assert.Len(t, result.Fines, 2)
			assert.Equal(t, "42.50", result.Total.StringFixed(2))
			assert.True(t, result.HasOutstanding)
		})
	}
}

func Test_QueryHandler_Handle_MemberWithoutFines_OwesNothing(t *testing.T) {
	// arrange
	store := GivenMemoryStore(t)
	memberID := givenMember(t, store, 6003)

	// act
	result, err := memberfines.NewQueryHandler(store).Handle(context.Background(), memberfines.BuildQuery(memberID))

	// assert
	require.NoError(t, err)
	assert.Empty(t, result.Fines)
	assert.True(t, result.Total.IsZero())
	assert.False(t, result.HasOutstanding)
}

func givenMember(t *testing.T, store shell.Committer, memberNumber int64) uuid.UUID {
	t.Helper()

	memberID := GivenUniqueID(t)
	GivenCommitted(t, store, lendingstore.ChangeSet{
		Members: []lendingstore.MemberRecord{FixtureMemberRecord(memberID, memberNumber)},
	})

	return memberID
}

func givenFineFor(t *testing.T, store shell.Committer, memberID uuid.UUID, amount string) uuid.UUID {
	t.Helper()

	bookID, loanID, fineID := GivenUniqueID(t), GivenUniqueID(t), GivenUniqueID(t)
	returned := Date(2025, 3, 20)

	GivenCommitted(t, store, lendingstore.ChangeSet{
		Books: []lendingstore.BookRecord{FixtureBookRecord(bookID, lendingstore.BookStatusAvailable)},
		Loans: []lendingstore.LoanRecord{FixtureClosedLoanRecord(loanID, bookID, memberID, Date(2025, 3, 1), returned, "LOST")},
		Fines: []lendingstore.FineRecord{FixtureFineRecord(fineID, loanID, amount, returned)},
	})

	return fineID
}
