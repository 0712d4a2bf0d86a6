package settlefine_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/settlefine"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_SettleTwice_SecondIsConflict(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenMemoryStore(t)
	fineID := givenFineRecord(t, store)
	handler := settlefine.NewCommandHandler(store)

	// act
	first, firstErr := handler.Handle(ctx, settlefine.BuildCommand(fineID, today))
	_, secondErr := handler.Handle(ctx, settlefine.BuildCommand(fineID, today))

	// assert
	require.NoError(t, firstErr)
	assert.False(t, first.Idempotent)
	assert.ErrorIs(t, secondErr, core.ErrConflict)

	fine, err := shell.LoadFine(ctx, store, fineID)
	require.NoError(t, err)
	require.NotNil(t, fine)
	assert.True(t, fine.Settled)
}

func Test_CommandHandler_Handle_UnknownFine_IsNotFound(t *testing.T) {
	// act
	_, err := settlefine.NewCommandHandler(GivenMemoryStore(t)).
		Handle(context.Background(), settlefine.BuildCommand(uuid.New(), today))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.True(t, shell.IsNotFoundError(err))
}

func Test_CommandHandler_Handle_OnSQLite_SettlesFine(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenSQLiteStore(t)
	fineID := givenFineRecord(t, store)

	// act
	_, err := settlefine.NewCommandHandler(store).Handle(ctx, settlefine.BuildCommand(fineID, today))

	// assert
	require.NoError(t, err)
	unsettled, err := store.FindUnsettledFines(ctx)
	require.NoError(t, err)
	assert.Empty(t, unsettled)
}

func givenFineRecord(t *testing.T, store shell.Committer) uuid.UUID {
	t.Helper()

	bookID, memberID, loanID, fineID := GivenUniqueID(t), GivenUniqueID(t), GivenUniqueID(t), GivenUniqueID(t)
	start := core.ToDate(today.AddDate(0, 0, -20))

	GivenCommitted(t, store, lendingstore.ChangeSet{
		Books:   []lendingstore.BookRecord{FixtureBookRecord(bookID, lendingstore.BookStatusAvailable)},
		Members: []lendingstore.MemberRecord{FixtureMemberRecord(memberID, 3001)},
		Loans:   []lendingstore.LoanRecord{FixtureClosedLoanRecord(loanID, bookID, memberID, start, core.ToDate(today), "")},
		Fines:   []lendingstore.FineRecord{FixtureFineRecord(fineID, loanID, "30.00", core.ToDate(today))},
	})

	return fineID
}
