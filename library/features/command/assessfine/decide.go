package assessfine

import (
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// State holds the loan and the fine it may already have.
type State struct {
	Loan *core.Loan
	Fine *core.Fine
}

// Decide determines the fine of a closed loan.
//
// Business Rules:
//
//	GIVEN: a CLOSED loan without a fine
//	WHEN: AssessFine command is received
//	THEN: FineAssessed event is generated if the resolved policy yields an amount, the loan references the fine
//	ERROR: "loan ... not found" (NotFound)
//	ERROR: "cannot assess an open loan" (Conflict)
//	ERROR: "fine already exists for loan (fine ID ...)" (Conflict)
//	NO FINE: If the amount is zero nothing is recorded (no-op, not an error)
func Decide(s State, command Command) core.DecisionResult {
	if s.Loan == nil {
		return reject(command, core.Violation(core.ErrNotFound, fmt.Sprintf("loan %s not found", command.LoanID)))
	}

	fine, assessment, err := core.AssessFine(command.FineID, *s.Loan, s.Fine, command.OccurredAt)
	if err != nil {
		return reject(command, err)
	}

	if fine == nil {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildFineAssessed(*fine, assessment, command.OccurredAt),
		core.Changes{
			Loans: []core.Loan{s.Loan.AttachFine(fine.ID)},
			Fines: []core.Fine{*fine},
		})
}

func reject(command Command, violation error) core.DecisionResult {
	return core.RejectDecision(
		core.BuildFineAssessmentFailed(command.LoanID.String(), violation.Error(), command.OccurredAt),
		violation)
}
