package outstandingfines_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/library/features/query/outstandingfines"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

func Test_ProjectOutstandingFines_SkipsSettledAndOrdersByIssueDate(t *testing.T) {
	// arrange
	newer := givenFine("30.00", time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), false)
	older := givenFine("50.00", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), false)
	settled := givenFine("500.00", time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), true)

	// act
	result := outstandingfines.ProjectOutstandingFines([]core.Fine{newer, settled, older})

	// assert
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 2, result.ResultCount())
	assert.Equal(t, older.ID.String(), result.Fines[0].FineID)
	assert.Equal(t, newer.ID.String(), result.Fines[1].FineID)
	assert.Equal(t, "80.00", result.Total.StringFixed(2))
}

func Test_ProjectOutstandingFines_Empty(t *testing.T) {
	// act
	result := outstandingfines.ProjectOutstandingFines(nil)

	// assert
	assert.Zero(t, result.Count)
	assert.NotNil(t, result.Fines)
	assert.True(t, result.Total.IsZero())
}

func givenFine(amount string, issuedOn time.Time, settled bool) core.Fine {
	return core.Fine{
		ID:       uuid.New(),
		LoanID:   uuid.New(),
		Amount:   decimal.RequireFromString(amount),
		Reason:   "fine for damage or loss of the book",
		Settled:  settled,
		IssuedOn: issuedOn,
		Version:  1,
	}
}
