package core

import (
	"time"
)

// FineSettledEventType is the event type identifier.
const FineSettledEventType = "FineSettled"

// FineSettled represents when a member pays a fine.
type FineSettled struct {
	EventType  EventTypeString
	FineID     FineIDString
	LoanID     LoanIDString
	Amount     AmountString
	OccurredAt OccurredAtTS
}

// BuildFineSettled creates a new FineSettled event.
func BuildFineSettled(fine Fine, occurredAt time.Time) FineSettled {
	return FineSettled{
		EventType:  FineSettledEventType,
		FineID:     fine.ID.String(),
		LoanID:     fine.LoanID.String(),
		Amount:     fine.Amount.StringFixed(2),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e FineSettled) IsEventType() string {
	return FineSettledEventType
}

// HasOccurredAt returns when this event occurred.
func (e FineSettled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e FineSettled) IsErrorEvent() bool {
	return false
}
