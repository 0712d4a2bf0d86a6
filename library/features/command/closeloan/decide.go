package closeloan

import (
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// State holds the loan and its book.
type State struct {
	Loan *core.Loan
	Book *core.Book
}

// Decide determines whether the loan can be closed.
//
// Business Rules:
//
//	GIVEN: an ACTIVE or OVERDUE loan
//	WHEN: CloseLoan command is received
//	THEN: LoanClosed event is generated, the loan is CLOSED and its book AVAILABLE
//	ERROR: "loan ... not found" (NotFound)
//	ERROR: "loan ... is already closed" (Conflict), closing is never idempotent
func Decide(s State, command Command) core.DecisionResult {
	if s.Loan == nil {
		return reject(command, core.Violation(core.ErrNotFound, fmt.Sprintf("loan %s not found", command.LoanID)))
	}

	if s.Book == nil {
		return reject(command, core.Violation(
			core.ErrNotFound,
			fmt.Sprintf("book %s of loan %s not found", s.Loan.BookID, command.LoanID)))
	}

	loan, book, err := s.Loan.Close(*s.Book, command.ReturnCondition, command.Notes, command.OccurredAt)
	if err != nil {
		return reject(command, err)
	}

	return core.SuccessDecision(
		core.BuildLoanWasClosed(loan, command.OccurredAt),
		core.Changes{Books: []core.Book{book}, Loans: []core.Loan{loan}})
}

func reject(command Command, violation error) core.DecisionResult {
	return core.RejectDecision(
		core.BuildLoanClosingFailed(command.LoanID.String(), violation.Error(), command.OccurredAt),
		violation)
}
