package createmanualfine

import (
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// State holds the loan and the fine it may already have.
type State struct {
	Loan *core.Loan
	Fine *core.Fine
}

// Decide determines whether the manual fine can be recorded.
//
// Business Rules:
//
//	GIVEN: a CLOSED loan without a fine
//	WHEN: CreateManualFine command is received
//	THEN: ManualFineCreated event is generated, the fine's motive ends with " (manual fine)", the loan references the fine
//	ERROR: "loan ... not found" (NotFound)
//	ERROR: "fine already exists for loan" (Conflict), also when the same command is repeated
//	ERROR: "cannot create fine for an open loan" (Conflict)
func Decide(s State, command Command) core.DecisionResult {
	if s.Loan == nil {
		return reject(command, core.Violation(core.ErrNotFound, fmt.Sprintf("loan %s not found", command.LoanID)))
	}

	fine, err := core.CreateManualFine(
		command.FineID,
		*s.Loan,
		s.Fine,
		command.Amount,
		command.Motive,
		command.Notes,
		command.OccurredAt)
	if err != nil {
		return reject(command, err)
	}

	return core.SuccessDecision(
		core.BuildManualFineCreated(fine, command.OccurredAt),
		core.Changes{
			Loans: []core.Loan{s.Loan.AttachFine(fine.ID)},
			Fines: []core.Fine{fine},
		})
}

func reject(command Command, violation error) core.DecisionResult {
	return core.RejectDecision(
		core.BuildManualFineCreationFailed(command.LoanID.String(), violation.Error(), command.OccurredAt),
		violation)
}
