package assessfine_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/assessfine"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_LateReturn_RecordsFine(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenMemoryStore(t)
	loanID := givenClosedLoanRecord(t, store, 20, "")
	command := givenCommand(loanID)

	// act
	result, err := assessfine.NewCommandHandler(store).Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	fine, err := shell.LoadFineOfLoan(ctx, store, loanID)
	require.NoError(t, err)
	require.NotNil(t, fine)
	assert.Equal(t, command.FineID, fine.ID)
	assert.True(t, decimal.RequireFromString("30.00").Equal(fine.Amount))
	assert.False(t, fine.Settled)
	loan, err := shell.LoadLoan(ctx, store, loanID)
	require.NoError(t, err)
	require.NotNil(t, loan.FineID)
	assert.Equal(t, command.FineID, *loan.FineID)
}

func Test_CommandHandler_Handle_NoFineDue_IsIdempotentAndRecordsNothing(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenMemoryStore(t)
	loanID := givenClosedLoanRecord(t, store, 0, "GOOD")

	// act
	result, err := assessfine.NewCommandHandler(store).Handle(ctx, givenCommand(loanID))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	fine, err := shell.LoadFineOfLoan(ctx, store, loanID)
	require.NoError(t, err)
	assert.Nil(t, fine)
}

func Test_CommandHandler_Handle_SecondAssessment_IsConflict(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenMemoryStore(t)
	loanID := givenClosedLoanRecord(t, store, 3, "LOST")
	handler := assessfine.NewCommandHandler(store)
	_, err := handler.Handle(ctx, givenCommand(loanID))
	require.NoError(t, err, "error in arranging test data")

	// act
	_, err = handler.Handle(ctx, givenCommand(loanID))

	// assert
	assert.ErrorIs(t, err, core.ErrConflict)
}

func givenClosedLoanRecord(t *testing.T, store shell.Committer, startedDaysAgo int, condition string) uuid.UUID {
	t.Helper()

	bookID, memberID, loanID := GivenUniqueID(t), GivenUniqueID(t), GivenUniqueID(t)
	start := core.ToDate(today.AddDate(0, 0, -startedDaysAgo))
	GivenCommitted(t, store, lendingstore.ChangeSet{
		Books:   []lendingstore.BookRecord{FixtureBookRecord(bookID, lendingstore.BookStatusAvailable)},
		Members: []lendingstore.MemberRecord{FixtureMemberRecord(memberID, 1001)},
		Loans:   []lendingstore.LoanRecord{FixtureClosedLoanRecord(loanID, bookID, memberID, start, core.ToDate(today), condition)},
	})

	return loanID
}
