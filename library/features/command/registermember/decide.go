package registermember

import (
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// State is what Decide needs to know about registered members.
type State struct {
	Member         *core.Member
	IdentifierUsed bool
}

// Decide determines whether the member can be registered.
//
// Business Rules:
//
//	GIVEN: a new member id, member number and national ID
//	WHEN: RegisterMember command is received
//	THEN: MemberRegistered event is generated
//	ERROR: "member number ... or national ID ... is already registered" if either is used
//	IDEMPOTENCY: If the same member was already registered, no event generated (no-op)
func Decide(s State, command Command) core.DecisionResult {
	if s.Member != nil {
		if s.Member.MemberNumber == command.MemberNumber && s.Member.NationalID == command.NationalID {
			return core.IdempotentDecision()
		}

		return reject(command, core.Violation(
			core.ErrAlreadyExists,
			fmt.Sprintf("member %s is already registered with other identifiers", command.MemberID)))
	}

	if s.IdentifierUsed {
		return reject(command, core.Violation(
			core.ErrAlreadyExists,
			fmt.Sprintf("member number %d or national ID %s is already registered", command.MemberNumber, command.NationalID)))
	}

	member := core.NewMember(command.MemberID, command.Name, command.MemberNumber, command.NationalID)

	return core.SuccessDecision(
		core.BuildMemberRegistered(member, command.OccurredAt),
		core.Changes{Members: []core.Member{member}})
}

func reject(command Command, violation error) core.DecisionResult {
	return core.RejectDecision(
		core.BuildMemberRegistrationFailed(command.MemberID.String(), violation.Error(), command.OccurredAt),
		violation)
}
