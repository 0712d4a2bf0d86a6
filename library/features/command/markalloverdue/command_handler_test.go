package markalloverdue_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/markalloverdue"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_FlipsOnlyLoansPastDueDate(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenMemoryStore(t)
	late1 := givenActiveLoan(t, store, today.AddDate(0, 0, -16))
	late2 := givenActiveLoan(t, store, today.AddDate(0, 0, -30))
	onTime := givenActiveLoan(t, store, today.AddDate(0, 0, -3))
	handler := markalloverdue.NewCommandHandler(store)

	// act
	result, err := handler.Handle(ctx, markalloverdue.BuildCommand(today))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, 2, result.Affected)
	assert.Equal(t, core.LoanOverdue, givenLoadedStatus(t, store, late1))
	assert.Equal(t, core.LoanOverdue, givenLoadedStatus(t, store, late2))
	assert.Equal(t, core.LoanActive, givenLoadedStatus(t, store, onTime))

	entries, err := store.ReadJournal(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, core.LoanMarkedOverdueEventType, entry.EventType)
	}
}

func Test_CommandHandler_Handle_SecondSweep_IsIdempotent(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenMemoryStore(t)
	givenActiveLoan(t, store, today.AddDate(0, 0, -16))
	handler := markalloverdue.NewCommandHandler(store)
	_, err := handler.Handle(ctx, markalloverdue.BuildCommand(today))
	require.NoError(t, err, "error in arranging test data")

	// act
	result, err := handler.Handle(ctx, markalloverdue.BuildCommand(today))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Zero(t, result.Affected)
}

func Test_CommandHandler_Handle_NoActiveLoans_IsIdempotent(t *testing.T) {
	// act
	result, err := markalloverdue.NewCommandHandler(GivenMemoryStore(t)).
		Handle(context.Background(), markalloverdue.BuildCommand(today))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
}

func Test_CommandHandler_Handle_ZeroDate_IsValidationError(t *testing.T) {
	// act
	_, err := markalloverdue.NewCommandHandler(GivenMemoryStore(t)).
		Handle(context.Background(), markalloverdue.Command{})

	// assert
	assert.ErrorIs(t, err, core.ErrValidation)
}

func Test_CommandHandler_Handle_OnSQLite_FlipsLoans(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenSQLiteStore(t)
	late := givenActiveLoan(t, store, today.AddDate(0, 0, -20))
	handler := markalloverdue.NewCommandHandler(store)

	// act
	result, err := handler.Handle(ctx, markalloverdue.BuildCommand(today))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, result.Affected)
	assert.Equal(t, core.LoanOverdue, givenLoadedStatus(t, store, late))
}

var memberNumbers atomic.Int64

func givenActiveLoan(t *testing.T, store shell.Committer, start time.Time) uuid.UUID {
	t.Helper()

	bookID, memberID, loanID := GivenUniqueID(t), GivenUniqueID(t), GivenUniqueID(t)
	GivenCommitted(t, store, lendingstore.ChangeSet{
		Books:   []lendingstore.BookRecord{FixtureBookRecord(bookID, lendingstore.BookStatusLoaned)},
		Members: []lendingstore.MemberRecord{FixtureMemberRecord(memberID, memberNumbers.Add(1))},
		Loans:   []lendingstore.LoanRecord{FixtureLoanRecord(loanID, bookID, memberID, core.ToDate(start))},
	})

	return loanID
}

func givenLoadedStatus(t *testing.T, store shell.LoanFinder, loanID uuid.UUID) core.LoanStatus {
	t.Helper()

	loan, err := shell.LoadLoan(context.Background(), store, loanID)
	require.NoError(t, err)
	require.NotNil(t, loan)

	return loan.Status
}
