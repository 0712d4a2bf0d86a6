package loansbystatus

import (
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// ProjectLoans lists the loans that have the queried status.
func ProjectLoans(loans []core.Loan, query Query) Loans {
	infos := make([]LoanInfo, 0, len(loans))
	for _, loan := range loans {
		if loan.Status != query.Status {
			continue
		}

		info := LoanInfo{
			LoanID:     loan.ID.String(),
			BookID:     loan.BookID.String(),
			MemberID:   loan.MemberID.String(),
			StartDate:  loan.StartDate,
			DueDate:    loan.DueDate,
			ReturnDate: loan.ReturnDate,
		}
		if loan.ReturnCondition != nil {
			info.ReturnCondition = string(*loan.ReturnCondition)
		}

		infos = append(infos, info)
	}

	return Loans{Status: string(query.Status), Loans: infos}
}
