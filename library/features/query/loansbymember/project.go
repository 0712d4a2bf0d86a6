package loansbymember

import (
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// ProjectLoansByMember keeps the start date order of the store and takes ActiveCount as the store counted it.
func ProjectLoansByMember(loans []core.Loan, activeCount int, query Query) LoansByMember {
	infos := make([]LoanInfo, 0, len(loans))
	for _, loan := range loans {
		infos = append(infos, LoanInfo{
			LoanID:     loan.ID.String(),
			BookID:     loan.BookID.String(),
			Status:     string(loan.Status),
			StartDate:  loan.StartDate,
			DueDate:    loan.DueDate,
			ReturnDate: loan.ReturnDate,
		})
	}

	return LoansByMember{
		MemberID:    query.MemberID.String(),
		Loans:       infos,
		ActiveCount: activeCount,
	}
}
