package shell_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

func Test_LoanToRecord_OpenLoanHasNoReturnFacts(t *testing.T) {
	// arrange
	loan, _, err := core.OpenLoan(uuid.New(), core.NewBook(uuid.New(), "t", "a", "i", "c"), uuid.New(), now, nil)
	require.NoError(t, err)

	// act
	record := shell.LoanToRecord(loan)

	// assert
	assert.Equal(t, lendingstore.LoanStatusActive, record.Status)
	assert.Empty(t, record.ReturnCondition)
	assert.Nil(t, record.DueDate)
	assert.Nil(t, record.ReturnDate)
	assert.True(t, record.IsNew())
}

func Test_LoanFromRecord_RestoresReturnCondition(t *testing.T) {
	// arrange
	start := core.ToDate(now)
	returned := start.AddDate(0, 0, 3)
	record := lendingstore.LoanRecord{
		ID:              uuid.NewString(),
		BookID:          uuid.NewString(),
		MemberID:        uuid.NewString(),
		StartDate:       start,
		ReturnDate:      &returned,
		Status:          lendingstore.LoanStatusClosed,
		ReturnCondition: "LOST",
		HasDamage:       true,
		Version:         2,
	}

	// act
	loan, err := shell.LoanFromRecord(record)

	// assert
	require.NoError(t, err)
	require.NotNil(t, loan.ReturnCondition)
	assert.Equal(t, core.ConditionLost, *loan.ReturnCondition)
	assert.Equal(t, core.LoanClosed, loan.Status)
	assert.Equal(t, int64(2), loan.Version)
	assert.Equal(t, record, shell.LoanToRecord(loan))
}

func Test_LoanFromRecord_RestoresFineReference(t *testing.T) {
	// arrange
	fineID := uuid.New()
	returned := core.ToDate(now)
	record := lendingstore.LoanRecord{
		ID:         uuid.NewString(),
		BookID:     uuid.NewString(),
		MemberID:   uuid.NewString(),
		StartDate:  returned.AddDate(0, 0, -20),
		ReturnDate: &returned,
		Status:     lendingstore.LoanStatusClosed,
		FineID:     fineID.String(),
		Version:    3,
	}

	// act
	loan, err := shell.LoanFromRecord(record)

	// assert
	require.NoError(t, err)
	require.NotNil(t, loan.FineID)
	assert.Equal(t, fineID, *loan.FineID)
	assert.Equal(t, record, shell.LoanToRecord(loan))
}

func Test_LoanFromRecord_MalformedFineIDFails(t *testing.T) {
	// act
	_, err := shell.LoanFromRecord(lendingstore.LoanRecord{
		ID:       uuid.NewString(),
		BookID:   uuid.NewString(),
		MemberID: uuid.NewString(),
		FineID:   "not-a-uuid",
	})

	// assert
	assert.ErrorIs(t, err, shell.ErrMappingFromRecordFailed)
}

func Test_FineFromRecord_MalformedIDFails(t *testing.T) {
	// act
	_, err := shell.FineFromRecord(lendingstore.FineRecord{ID: "not-a-uuid", LoanID: uuid.NewString(), Amount: decimal.NewFromInt(1)})

	// assert
	assert.ErrorIs(t, err, shell.ErrMappingFromRecordFailed)
}

func Test_LoadFineOfLoan_ReturnsNilWithoutFine(t *testing.T) {
	// arrange
	store := givenMemoryStore(t)

	// act
	fine, err := shell.LoadFineOfLoan(context.Background(), store, uuid.New())

	// assert
	assert.NoError(t, err)
	assert.Nil(t, fine)
}
