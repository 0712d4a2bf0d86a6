package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

var (
	// ErrMappingToJournalEntryFailed is returned when a domain event or its metadata cannot be serialized.
	ErrMappingToJournalEntryFailed = errors.New("mapping to journal entry failed")

	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// JournalEntryFrom converts a DomainEvent and EventMetadata to a JournalEntry.
func JournalEntryFrom(event core.DomainEvent, metadata EventMetadata) (lendingstore.JournalEntry, error) {
	payloadJSON, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(event)
	if err != nil {
		return lendingstore.JournalEntry{}, errors.Join(ErrMappingToJournalEntryFailed, err)
	}

	metadataJSON, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(metadata)
	if err != nil {
		return lendingstore.JournalEntry{}, errors.Join(ErrMappingToJournalEntryFailed, err)
	}

	entry, err := lendingstore.BuildJournalEntry(event.IsEventType(), event.HasOccurredAt(), payloadJSON, metadataJSON)
	if err != nil {
		return lendingstore.JournalEntry{}, errors.Join(ErrMappingToJournalEntryFailed, err)
	}

	return entry, nil
}

// DomainEventFrom converts a JournalEntry back to its DomainEvent.
func DomainEventFrom(entry lendingstore.JournalEntry) (core.DomainEvent, error) {
	switch entry.EventType {
	case core.BookAddedToCatalogEventType:
		return unmarshalEvent[core.BookAddedToCatalog](entry.PayloadJSON)
	case core.BookPutUnderMaintenanceEventType:
		return unmarshalEvent[core.BookPutUnderMaintenance](entry.PayloadJSON)
	case core.BookReleasedFromMaintenanceEventType:
		return unmarshalEvent[core.BookReleasedFromMaintenance](entry.PayloadJSON)
	case core.MemberRegisteredEventType:
		return unmarshalEvent[core.MemberRegistered](entry.PayloadJSON)
	case core.LoanCreatedEventType:
		return unmarshalEvent[core.LoanCreated](entry.PayloadJSON)
	case core.LoanMarkedOverdueEventType:
		return unmarshalEvent[core.LoanMarkedOverdue](entry.PayloadJSON)
	case core.LoanClosedEventType:
		return unmarshalEvent[core.LoanWasClosed](entry.PayloadJSON)
	case core.FineAssessedEventType:
		return unmarshalEvent[core.FineAssessed](entry.PayloadJSON)
	case core.ManualFineCreatedEventType:
		return unmarshalEvent[core.ManualFineCreated](entry.PayloadJSON)
	case core.FineSettledEventType:
		return unmarshalEvent[core.FineSettled](entry.PayloadJSON)
	case core.BookAddingFailedEventType,
		core.MemberRegistrationFailedEventType,
		core.BookMaintenanceFailedEventType,
		core.LoanCreationFailedEventType,
		core.LoanClosingFailedEventType,
		core.FineAssessmentFailedEventType,
		core.ManualFineCreationFailedEventType,
		core.FineSettlementFailedEventType:
		return unmarshalEvent[core.OperationFailed](entry.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalEvent[E core.DomainEvent](payload []byte) (core.DomainEvent, error) {
	var event E

	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(payload, &event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}

// EventEnvelope combines a domain event with its metadata and journal position.
type EventEnvelope struct {
	SequenceNumber int64
	DomainEvent    core.DomainEvent
	EventMetadata  EventMetadata
}

// EventEnvelopesFrom converts journal entries to envelopes, keeping their order.
func EventEnvelopesFrom(entries lendingstore.JournalEntries) ([]EventEnvelope, error) {
	envelopes := make([]EventEnvelope, 0, len(entries))

	for _, entry := range entries {
		metadata, err := EventMetadataFrom(entry)
		if err != nil {
			return nil, err
		}

		event, err := DomainEventFrom(entry)
		if err != nil {
			return nil, err
		}

		envelopes = append(envelopes, EventEnvelope{
			SequenceNumber: entry.SequenceNumber,
			DomainEvent:    event,
			EventMetadata:  metadata,
		})
	}

	return envelopes, nil
}
