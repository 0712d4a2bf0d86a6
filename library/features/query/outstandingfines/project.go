package outstandingfines

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// ProjectOutstandingFines builds the result from the current fines.
// It is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: the stored fines
//	WHEN: OutstandingFines query is executed
//	THEN: every unsettled fine is listed by issue date (oldest first), together with the total
//	EXCLUDES: settled fines
func ProjectOutstandingFines(fines []core.Fine) OutstandingFines {
	infos := make([]FineInfo, 0, len(fines))
	total := decimal.Zero

	for _, fine := range fines {
		if fine.Settled {
			continue
		}

		infos = append(infos, FineInfo{
			FineID:   fine.ID.String(),
			LoanID:   fine.LoanID.String(),
			Amount:   fine.Amount,
			Reason:   fine.Reason,
			Notes:    fine.Notes,
			IssuedOn: fine.IssuedOn,
		})
		total = total.Add(fine.Amount)
	}

	slices.SortStableFunc(infos, func(a, b FineInfo) int {
		return a.IssuedOn.Compare(b.IssuedOn)
	})

	return OutstandingFines{
		Fines: infos,
		Total: total.Round(2),
		Count: len(infos),
	}
}
