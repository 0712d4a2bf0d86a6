package createloan

import (
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// State is what Decide needs to know about the loan, its book and its member.
type State struct {
	// Loan is the loan already stored under the command's id, if any.
	Loan         *core.Loan
	Book         *core.Book
	MemberExists bool
}

// Decide determines whether the book can be lent to the member.
//
// Business Rules:
//
//	GIVEN: an AVAILABLE book and a registered member
//	WHEN: CreateLoan command is received
//	THEN: LoanCreated event is generated, the loan is ACTIVE and the book LOANED
//	ERROR: "book ... not found" / "member ... not found" (NotFound)
//	ERROR: "book ... is LOANED, not AVAILABLE" if the book is loaned or under maintenance (Conflict)
//	ERROR: "loan ... already exists" if the loan id is used for another book or member (Conflict)
//	IDEMPOTENCY: If this loan was already created, no event generated (no-op)
func Decide(s State, command Command) core.DecisionResult {
	if s.Loan != nil {
		if s.Loan.BookID == command.BookID && s.Loan.MemberID == command.MemberID {
			return core.IdempotentDecision()
		}

		return reject(command, core.Violation(
			core.ErrAlreadyExists,
			fmt.Sprintf("loan %s already exists", command.LoanID)))
	}

	if s.Book == nil {
		return reject(command, core.Violation(core.ErrNotFound, fmt.Sprintf("book %s not found", command.BookID)))
	}

	if !s.MemberExists {
		return reject(command, core.Violation(core.ErrNotFound, fmt.Sprintf("member %s not found", command.MemberID)))
	}

	loan, book, err := core.OpenLoan(command.LoanID, *s.Book, command.MemberID, command.StartDate, command.DueDate)
	if err != nil {
		return reject(command, err)
	}

	return core.SuccessDecision(
		core.BuildLoanCreated(loan, command.OccurredAt),
		core.Changes{Books: []core.Book{book}, Loans: []core.Loan{loan}})
}

func reject(command Command, violation error) core.DecisionResult {
	return core.RejectDecision(
		core.BuildLoanCreationFailed(command.LoanID.String(), violation.Error(), command.OccurredAt),
		violation)
}
