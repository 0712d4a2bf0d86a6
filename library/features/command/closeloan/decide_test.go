package closeloan_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/features/command/closeloan"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

var today = time.Date(2025, 3, 20, 14, 30, 0, 0, time.UTC)

func Test_Decide_ActiveLoan_ClosesAndReleasesBook(t *testing.T) {
	// arrange
	loan, book := givenOpenLoan(t, core.LoanActive)
	condition := core.ConditionMinorDamage

	// act
	result := closeloan.Decide(closeloan.State{Loan: &loan, Book: &book}, givenCommand(loan.ID, &condition))

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Changes.Loans, 1)
	closed := result.Changes.Loans[0]
	assert.Equal(t, core.LoanClosed, closed.Status)
	require.NotNil(t, closed.ReturnDate)
	assert.Equal(t, core.ToDate(today), *closed.ReturnDate)
	assert.True(t, closed.HasDamage)
	assert.Equal(t, "scratched cover", closed.ReturnNotes)
	require.Len(t, result.Changes.Books, 1)
	assert.Equal(t, core.BookAvailable, result.Changes.Books[0].Status)
	assert.Equal(t, core.LoanClosedEventType, result.Event.IsEventType())
}

func Test_Decide_OverdueLoan_Closes(t *testing.T) {
	// arrange
	loan, book := givenOpenLoan(t, core.LoanOverdue)

	// act
	result := closeloan.Decide(closeloan.State{Loan: &loan, Book: &book}, givenCommand(loan.ID, nil))

	// assert
	require.NoError(t, result.HasError())
	assert.Equal(t, core.LoanClosed, result.Changes.Loans[0].Status)
	assert.False(t, result.Changes.Loans[0].HasDamage)
}

func Test_Decide_ClosedLoan_IsConflict(t *testing.T) {
	// arrange
	loan, book := givenOpenLoan(t, core.LoanActive)
	closed, released, err := loan.Close(book, nil, "", today)
	require.NoError(t, err, "error in arranging test data")

	// act
	result := closeloan.Decide(closeloan.State{Loan: &closed, Book: &released}, givenCommand(loan.ID, nil))

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrConflict)
	assert.ErrorContains(t, result.HasError(), "LoanClosingFailed")
	assert.ErrorContains(t, result.HasError(), "already closed")
	assert.True(t, result.Changes.IsEmpty())
}

func Test_Decide_MissingLoan_IsNotFound(t *testing.T) {
	// act
	result := closeloan.Decide(closeloan.State{}, givenCommand(uuid.New(), nil))

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
}

func givenOpenLoan(t *testing.T, status core.LoanStatus) (core.Loan, core.Book) {
	t.Helper()

	book := core.NewBook(uuid.New(), "Dune", "Frank Herbert", "978-0441013593", "")
	loan, book, err := core.OpenLoan(uuid.New(), book, uuid.New(), today.AddDate(0, 0, -10), nil)
	require.NoError(t, err, "error in arranging test data")
	loan.Status = status

	return loan, book
}

func givenCommand(loanID uuid.UUID, condition *core.ReturnCondition) closeloan.Command {
	return closeloan.BuildCommand(loanID, uuid.New(), condition, "scratched cover", today)
}
