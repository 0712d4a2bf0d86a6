package core

import (
	"time"
)

// LoanClosedEventType is the event type identifier.
const LoanClosedEventType = "LoanClosed"

// LoanWasClosed represents when a loaned book is returned.
// ReturnCondition is empty when none was reported.
type LoanWasClosed struct {
	EventType       EventTypeString
	LoanID          LoanIDString
	BookID          BookIDString
	ReturnDate      DateString
	ReturnCondition string
	ReturnNotes     string
	HasDamage       bool
	OccurredAt      OccurredAtTS
}

// BuildLoanWasClosed creates a new LoanWasClosed event.
func BuildLoanWasClosed(loan Loan, occurredAt time.Time) LoanWasClosed {
	event := LoanWasClosed{
		EventType:   LoanClosedEventType,
		LoanID:      loan.ID.String(),
		BookID:      loan.BookID.String(),
		ReturnDate:  FormatOptionalDate(loan.ReturnDate),
		ReturnNotes: loan.ReturnNotes,
		HasDamage:   loan.HasDamage,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	if loan.ReturnCondition != nil {
		event.ReturnCondition = string(*loan.ReturnCondition)
	}

	return event
}

// IsEventType returns the event type identifier.
func (e LoanWasClosed) IsEventType() string {
	return LoanClosedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanWasClosed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e LoanWasClosed) IsErrorEvent() bool {
	return false
}
