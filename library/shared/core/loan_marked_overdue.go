package core

import (
	"time"
)

// LoanMarkedOverdueEventType is the event type identifier.
const LoanMarkedOverdueEventType = "LoanMarkedOverdue"

// LoanMarkedOverdue represents when the overdue sweep finds an active loan past its due date.
type LoanMarkedOverdue struct {
	EventType  EventTypeString
	LoanID     LoanIDString
	DueDate    DateString
	OccurredAt OccurredAtTS
}

// BuildLoanMarkedOverdue creates a new LoanMarkedOverdue event.
func BuildLoanMarkedOverdue(loan Loan, occurredAt time.Time) LoanMarkedOverdue {
	return LoanMarkedOverdue{
		EventType:  LoanMarkedOverdueEventType,
		LoanID:     loan.ID.String(),
		DueDate:    FormatOptionalDate(loan.DueDate),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e LoanMarkedOverdue) IsEventType() string {
	return LoanMarkedOverdueEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanMarkedOverdue) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e LoanMarkedOverdue) IsErrorEvent() bool {
	return false
}
