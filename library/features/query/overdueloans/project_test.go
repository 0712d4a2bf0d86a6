package overdueloans_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/features/query/overdueloans"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

var today = time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

func Test_Cutoff_IsLoanPeriodBeforeAsOf(t *testing.T) {
	assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), overdueloans.Cutoff(today.Add(15*time.Hour)))
}

func Test_ProjectOverdueLoans_ComputesLateDaysAndSortsMostLateFirst(t *testing.T) {
	// arrange
	fiveLate := givenLoan(core.LoanActive, 20)
	tenLate := givenLoan(core.LoanOverdue, 25)
	notLate := givenLoan(core.LoanActive, 15)
	closed := givenLoan(core.LoanClosed, 40)

	// act
	result := overdueloans.ProjectOverdueLoans(
		[]core.Loan{fiveLate, notLate, tenLate, closed},
		overdueloans.BuildQuery(today))

	// assert
	require.Len(t, result.Loans, 2)
	assert.Equal(t, tenLate.ID.String(), result.Loans[0].LoanID)
	assert.Equal(t, 10, result.Loans[0].LateDays)
	assert.Equal(t, fiveLate.ID.String(), result.Loans[1].LoanID)
	assert.Equal(t, 5, result.Loans[1].LateDays)
}

func givenLoan(status core.LoanStatus, startedDaysAgo int) core.Loan {
	return core.Loan{
		ID:        uuid.New(),
		BookID:    uuid.New(),
		MemberID:  uuid.New(),
		StartDate: core.AddDays(today, -startedDaysAgo),
		Status:    status,
		Version:   1,
	}
}
