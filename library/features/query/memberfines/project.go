package memberfines

import (
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// ProjectMemberFines builds the result from the member's unsettled fines and the total
// the store summed for them.
//
// Query Logic:
//
//	GIVEN: a member with MemberID
//	WHEN: MemberFines query is executed
//	THEN: the unsettled fines, their total and HasOutstanding = total > 0 are returned
func ProjectMemberFines(fines []core.Fine, total decimal.Decimal, query Query) MemberFines {
	infos := make([]FineInfo, 0, len(fines))
	for _, fine := range fines {
		infos = append(infos, FineInfo{
			FineID:   fine.ID.String(),
			LoanID:   fine.LoanID.String(),
			Amount:   fine.Amount,
			Reason:   fine.Reason,
			IssuedOn: fine.IssuedOn,
		})
	}

	return MemberFines{
		MemberID:       query.MemberID.String(),
		Fines:          infos,
		Total:          total.Round(2),
		HasOutstanding: total.IsPositive(),
	}
}
