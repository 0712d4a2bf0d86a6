package core

import (
	"time"
)

// Event type identifiers of the failure events.
const (
	BookAddingFailedEventType         = "BookAddingFailed"
	MemberRegistrationFailedEventType = "MemberRegistrationFailed"
	BookMaintenanceFailedEventType    = "BookMaintenanceFailed"
	LoanCreationFailedEventType       = "LoanCreationFailed"
	LoanClosingFailedEventType        = "LoanClosingFailed"
	FineAssessmentFailedEventType     = "FineAssessmentFailed"
	ManualFineCreationFailedEventType = "ManualFineCreationFailed"
	FineSettlementFailedEventType     = "FineSettlementFailed"
)

// OperationFailed represents a command rejected by a business rule.
// EntityID is the id of the entity the command was about, FailureInfo the reason.
type OperationFailed struct {
	EventType   EventTypeString
	EntityID    string
	FailureInfo string
	OccurredAt  OccurredAtTS
}

func buildOperationFailed(eventType string, entityID string, failureInfo string, occurredAt time.Time) OperationFailed {
	return OperationFailed{
		EventType:   eventType,
		EntityID:    entityID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// BuildBookAddingFailed creates a new BookAddingFailed event.
func BuildBookAddingFailed(bookID string, failureInfo string, occurredAt time.Time) OperationFailed {
	return buildOperationFailed(BookAddingFailedEventType, bookID, failureInfo, occurredAt)
}

// BuildMemberRegistrationFailed creates a new MemberRegistrationFailed event.
func BuildMemberRegistrationFailed(memberID string, failureInfo string, occurredAt time.Time) OperationFailed {
	return buildOperationFailed(MemberRegistrationFailedEventType, memberID, failureInfo, occurredAt)
}

// BuildBookMaintenanceFailed creates a new BookMaintenanceFailed event.
func BuildBookMaintenanceFailed(bookID string, failureInfo string, occurredAt time.Time) OperationFailed {
	return buildOperationFailed(BookMaintenanceFailedEventType, bookID, failureInfo, occurredAt)
}

// BuildLoanCreationFailed creates a new LoanCreationFailed event.
func BuildLoanCreationFailed(loanID string, failureInfo string, occurredAt time.Time) OperationFailed {
	return buildOperationFailed(LoanCreationFailedEventType, loanID, failureInfo, occurredAt)
}

// BuildLoanClosingFailed creates a new LoanClosingFailed event.
func BuildLoanClosingFailed(loanID string, failureInfo string, occurredAt time.Time) OperationFailed {
	return buildOperationFailed(LoanClosingFailedEventType, loanID, failureInfo, occurredAt)
}

// BuildFineAssessmentFailed creates a new FineAssessmentFailed event.
func BuildFineAssessmentFailed(loanID string, failureInfo string, occurredAt time.Time) OperationFailed {
	return buildOperationFailed(FineAssessmentFailedEventType, loanID, failureInfo, occurredAt)
}

// BuildManualFineCreationFailed creates a new ManualFineCreationFailed event.
func BuildManualFineCreationFailed(loanID string, failureInfo string, occurredAt time.Time) OperationFailed {
	return buildOperationFailed(ManualFineCreationFailedEventType, loanID, failureInfo, occurredAt)
}

// BuildFineSettlementFailed creates a new FineSettlementFailed event.
func BuildFineSettlementFailed(fineID string, failureInfo string, occurredAt time.Time) OperationFailed {
	return buildOperationFailed(FineSettlementFailedEventType, fineID, failureInfo, occurredAt)
}

// IsEventType returns the event type identifier.
func (e OperationFailed) IsEventType() string {
	return e.EventType
}

// HasOccurredAt returns when this event occurred.
func (e OperationFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e OperationFailed) IsErrorEvent() bool {
	return true
}
