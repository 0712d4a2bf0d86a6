package core

import (
	"time"
)

// ManualFineCreatedEventType is the event type identifier.
const ManualFineCreatedEventType = "ManualFineCreated"

// ManualFineCreated represents when a librarian enters a fine for a closed loan.
type ManualFineCreated struct {
	EventType  EventTypeString
	FineID     FineIDString
	LoanID     LoanIDString
	Amount     AmountString
	Motive     string
	Notes      string
	OccurredAt OccurredAtTS
}

// BuildManualFineCreated creates a new ManualFineCreated event.
func BuildManualFineCreated(fine Fine, occurredAt time.Time) ManualFineCreated {
	return ManualFineCreated{
		EventType:  ManualFineCreatedEventType,
		FineID:     fine.ID.String(),
		LoanID:     fine.LoanID.String(),
		Amount:     fine.Amount.StringFixed(2),
		Motive:     fine.Reason,
		Notes:      fine.Notes,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ManualFineCreated) IsEventType() string {
	return ManualFineCreatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ManualFineCreated) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e ManualFineCreated) IsErrorEvent() bool {
	return false
}
