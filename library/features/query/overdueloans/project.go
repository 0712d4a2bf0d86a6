package overdueloans

import (
	"cmp"
	"slices"
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// Cutoff is the start date before which an open loan is late on asOf.
func Cutoff(asOf time.Time) time.Time {
	return core.AddDays(core.ToDate(asOf), -core.LoanPeriodDays)
}

// ProjectOverdueLoans computes the late days of each open loan and drops the ones that are not late.
//
// Query Logic:
//
//	GIVEN: the open loans that started before Cutoff(AsOf)
//	WHEN: OverdueLoans query is executed
//	THEN: each loan is listed with LateDays as of AsOf, most late first
//	EXCLUDES: closed loans and loans with zero late days
func ProjectOverdueLoans(loans []core.Loan, query Query) OverdueLoans {
	overdue := make([]OverdueLoan, 0, len(loans))
	for _, loan := range loans {
		if !loan.IsOpen() {
			continue
		}

		lateDays := loan.LateDays(query.AsOf)
		if lateDays == 0 {
			continue
		}

		overdue = append(overdue, OverdueLoan{
			LoanID:    loan.ID.String(),
			BookID:    loan.BookID.String(),
			MemberID:  loan.MemberID.String(),
			Status:    string(loan.Status),
			StartDate: loan.StartDate,
			DueDate:   loan.DueDate,
			LateDays:  lateDays,
		})
	}

	slices.SortStableFunc(overdue, func(a, b OverdueLoan) int {
		return cmp.Compare(b.LateDays, a.LateDays)
	})

	return OverdueLoans{AsOf: query.AsOf, Loans: overdue}
}
