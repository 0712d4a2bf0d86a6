package settlefine

import (
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// State holds the fine to settle.
type State struct {
	Fine *core.Fine
}

// Decide determines whether the fine can be settled.
//
// Business Rules:
//
//	GIVEN: an unsettled fine
//	WHEN: SettleFine command is received
//	THEN: FineSettled event is generated and the fine is settled
//	ERROR: "fine ... not found" (NotFound)
//	ERROR: "fine already settled" (Conflict), settling is never idempotent
func Decide(s State, command Command) core.DecisionResult {
	if s.Fine == nil {
		return reject(command, core.Violation(core.ErrNotFound, fmt.Sprintf("fine %s not found", command.FineID)))
	}

	fine, err := s.Fine.Settle()
	if err != nil {
		return reject(command, err)
	}

	return core.SuccessDecision(
		core.BuildFineSettled(fine, command.OccurredAt),
		core.Changes{Fines: []core.Fine{fine}})
}

func reject(command Command, violation error) core.DecisionResult {
	return core.RejectDecision(
		core.BuildFineSettlementFailed(command.FineID.String(), violation.Error(), command.OccurredAt),
		violation)
}
