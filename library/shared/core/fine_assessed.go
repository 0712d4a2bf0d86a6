package core

import (
	"time"
)

// FineAssessedEventType is the event type identifier.
const FineAssessedEventType = "FineAssessed"

// FineAssessed represents when the fine policy yields a fine for a closed loan.
type FineAssessed struct {
	EventType    EventTypeString
	FineID       FineIDString
	LoanID       LoanIDString
	Policy       string
	Amount       AmountString
	Motive       string
	LateDays     int
	BillableDays int
	OccurredAt   OccurredAtTS
}

// BuildFineAssessed creates a new FineAssessed event.
func BuildFineAssessed(fine Fine, assessment FineAssessment, occurredAt time.Time) FineAssessed {
	return FineAssessed{
		EventType:    FineAssessedEventType,
		FineID:       fine.ID.String(),
		LoanID:       fine.LoanID.String(),
		Policy:       string(assessment.Policy),
		Amount:       fine.Amount.StringFixed(2),
		Motive:       assessment.Motive,
		LateDays:     assessment.LateDays,
		BillableDays: assessment.BillableDays,
		OccurredAt:   ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e FineAssessed) IsEventType() string {
	return FineAssessedEventType
}

// HasOccurredAt returns when this event occurred.
func (e FineAssessed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e FineAssessed) IsErrorEvent() bool {
	return false
}
