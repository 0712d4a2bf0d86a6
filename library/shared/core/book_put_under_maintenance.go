package core

import (
	"time"

	"github.com/google/uuid"
)

// BookPutUnderMaintenanceEventType is the event type identifier.
const BookPutUnderMaintenanceEventType = "BookPutUnderMaintenance"

// BookPutUnderMaintenance represents when an available book is taken out of lending.
type BookPutUnderMaintenance struct {
	EventType  EventTypeString
	BookID     BookIDString
	OccurredAt OccurredAtTS
}

// BuildBookPutUnderMaintenance creates a new BookPutUnderMaintenance event.
func BuildBookPutUnderMaintenance(bookID uuid.UUID, occurredAt time.Time) BookPutUnderMaintenance {
	return BookPutUnderMaintenance{
		EventType:  BookPutUnderMaintenanceEventType,
		BookID:     bookID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookPutUnderMaintenance) IsEventType() string {
	return BookPutUnderMaintenanceEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookPutUnderMaintenance) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookPutUnderMaintenance) IsErrorEvent() bool {
	return false
}
