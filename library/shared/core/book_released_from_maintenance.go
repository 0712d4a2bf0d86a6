package core

import (
	"time"

	"github.com/google/uuid"
)

// BookReleasedFromMaintenanceEventType is the event type identifier.
const BookReleasedFromMaintenanceEventType = "BookReleasedFromMaintenance"

// BookReleasedFromMaintenance represents when a book under maintenance becomes lendable again.
type BookReleasedFromMaintenance struct {
	EventType  EventTypeString
	BookID     BookIDString
	OccurredAt OccurredAtTS
}

// BuildBookReleasedFromMaintenance creates a new BookReleasedFromMaintenance event.
func BuildBookReleasedFromMaintenance(bookID uuid.UUID, occurredAt time.Time) BookReleasedFromMaintenance {
	return BookReleasedFromMaintenance{
		EventType:  BookReleasedFromMaintenanceEventType,
		BookID:     bookID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookReleasedFromMaintenance) IsEventType() string {
	return BookReleasedFromMaintenanceEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReleasedFromMaintenance) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookReleasedFromMaintenance) IsErrorEvent() bool {
	return false
}
