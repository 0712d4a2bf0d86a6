package markalloverdue

import (
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// State holds one loan the sweep looks at.
type State struct {
	Loan *core.Loan
}

// Decide determines whether one loan is overdue.
//
// Business Rules:
//
//	GIVEN: an ACTIVE loan with a due date before the sweep date
//	WHEN: MarkAllOverdue command is received
//	THEN: LoanMarkedOverdue event is generated and the loan is OVERDUE
//	IDEMPOTENCY: any other loan, including a vanished one, is left alone (no-op, never an error)
func Decide(s State, command Command) core.DecisionResult {
	if s.Loan == nil {
		return core.IdempotentDecision()
	}

	loan, changed := s.Loan.MarkOverdue(command.AsOf)
	if !changed {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildLoanMarkedOverdue(loan, command.OccurredAt),
		core.Changes{Loans: []core.Loan{loan}})
}
