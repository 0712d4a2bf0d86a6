package core

import (
	"time"
)

// LoanCreatedEventType is the event type identifier.
const LoanCreatedEventType = "LoanCreated"

// LoanCreated represents when a member borrows an available book.
type LoanCreated struct {
	EventType  EventTypeString
	LoanID     LoanIDString
	BookID     BookIDString
	MemberID   MemberIDString
	StartDate  DateString
	DueDate    DateString
	OccurredAt OccurredAtTS
}

// BuildLoanCreated creates a new LoanCreated event.
func BuildLoanCreated(loan Loan, occurredAt time.Time) LoanCreated {
	return LoanCreated{
		EventType:  LoanCreatedEventType,
		LoanID:     loan.ID.String(),
		BookID:     loan.BookID.String(),
		MemberID:   loan.MemberID.String(),
		StartDate:  FormatDate(loan.StartDate),
		DueDate:    FormatOptionalDate(loan.DueDate),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e LoanCreated) IsEventType() string {
	return LoanCreatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanCreated) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e LoanCreated) IsErrorEvent() bool {
	return false
}
