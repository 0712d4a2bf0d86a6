package createmanualfine_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/features/command/createmanualfine"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

var today = time.Date(2025, 3, 20, 14, 30, 0, 0, time.UTC)

func Test_Decide_ClosedLoanWithoutFine_CreatesManualFine(t *testing.T) {
	// arrange
	loan := givenLoan(core.LoanClosed)

	// act
	result := createmanualfine.Decide(createmanualfine.State{Loan: &loan}, givenCommand(loan.ID, "12.5"))

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Changes.Fines, 1)
	fine := result.Changes.Fines[0]
	assert.Equal(t, "lost dust jacket (manual fine)", fine.Reason)
	assert.Equal(t, "12.50", fine.Amount.StringFixed(2))
	assert.Equal(t, "reported at the desk", fine.Notes)
	assert.False(t, fine.Settled)
	assert.Equal(t, core.ManualFineCreatedEventType, result.Event.IsEventType())
	require.Len(t, result.Changes.Loans, 1)
	assert.Equal(t, &fine.ID, result.Changes.Loans[0].FineID)
}

func Test_Decide_Rejections(t *testing.T) {
	closed := givenLoan(core.LoanClosed)
	active := givenLoan(core.LoanActive)
	overdue := givenLoan(core.LoanOverdue)
	existing := core.Fine{ID: uuid.New(), LoanID: closed.ID, Amount: decimal.New(3000, -2)}
	referenced := closed.AttachFine(existing.ID)

	testCases := []struct {
		name     string
		state    createmanualfine.State
		sentinel error
		contains string
	}{
		{name: "missing loan", state: createmanualfine.State{}, sentinel: core.ErrNotFound, contains: "not found"},
		{name: "active loan", state: createmanualfine.State{Loan: &active}, sentinel: core.ErrConflict, contains: "open loan"},
		{name: "overdue loan", state: createmanualfine.State{Loan: &overdue}, sentinel: core.ErrConflict, contains: "open loan"},
		{
			name:     "already fined",
			state:    createmanualfine.State{Loan: &closed, Fine: &existing},
			sentinel: core.ErrAlreadyExists,
			contains: "fine already exists",
		},
		{
			name:     "loan references a fine",
			state:    createmanualfine.State{Loan: &referenced},
			sentinel: core.ErrAlreadyExists,
			contains: existing.ID.String(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := createmanualfine.Decide(tc.state, givenCommand(uuid.New(), "20"))

			// assert
			assert.ErrorIs(t, result.HasError(), tc.sentinel)
			assert.ErrorContains(t, result.HasError(), core.ManualFineCreationFailedEventType)
			assert.ErrorContains(t, result.HasError(), tc.contains)
			assert.True(t, result.Changes.IsEmpty())
		})
	}
}

func Test_Command_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		amount string
		motive string
	}{
		{name: "zero amount", amount: "0", motive: "torn page"},
		{name: "negative amount", amount: "-5", motive: "torn page"},
		{name: "blank motive", amount: "5", motive: "   "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := createmanualfine.BuildCommand(
				uuid.New(), uuid.New(), decimal.RequireFromString(tc.amount), tc.motive, "", today)

			// act
			err := command.Validate()

			// assert
			assert.ErrorIs(t, err, core.ErrValidation)
		})
	}
}

func givenLoan(status core.LoanStatus) core.Loan {
	loan := core.Loan{
		ID:        uuid.New(),
		BookID:    uuid.New(),
		MemberID:  uuid.New(),
		StartDate: core.ToDate(today.AddDate(0, 0, -5)),
		Status:    status,
		Version:   2,
	}

	if status == core.LoanClosed {
		returned := core.ToDate(today)
		loan.ReturnDate = &returned
	}

	return loan
}

func givenCommand(loanID uuid.UUID, amount string) createmanualfine.Command {
	return createmanualfine.BuildCommand(
		uuid.New(),
		loanID,
		decimal.RequireFromString(amount),
		"lost dust jacket",
		"reported at the desk",
		today)
}
