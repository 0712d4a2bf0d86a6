package shell

import (
	"context"
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
)

// ErrMappingToEventMetadataFailed is returned when metadata conversion fails.
var ErrMappingToEventMetadataFailed = errors.New("mapping to event metadata failed")

// MessageID represents a unique message identifier.
type MessageID = string

// CausationID represents the ID of the message that caused this event.
type CausationID = string

// CorrelationID represents the ID correlating related events.
type CorrelationID = string

// EventMetadata contains event tracking information.
type EventMetadata struct {
	MessageID     MessageID
	CausationID   CausationID
	CorrelationID CorrelationID
	CommandType   string
}

type causationKey struct{}

// BuildEventMetadata creates EventMetadata from UUID values.
func BuildEventMetadata(messageID uuid.UUID, causationID uuid.UUID, correlationID uuid.UUID, commandType string) EventMetadata {
	return EventMetadata{
		MessageID:     messageID.String(),
		CausationID:   causationID.String(),
		CorrelationID: correlationID.String(),
		CommandType:   commandType,
	}
}

// NewEventMetadata creates metadata for a new journal entry.
// Without a cause in ctx, the entry is its own cause and correlation.
func NewEventMetadata(ctx context.Context, commandType string) EventMetadata {
	messageID := uuid.New().String()

	metadata := EventMetadata{
		MessageID:     messageID,
		CausationID:   messageID,
		CorrelationID: messageID,
		CommandType:   commandType,
	}

	if cause, ok := ctx.Value(causationKey{}).(EventMetadata); ok {
		metadata.CausationID = cause.MessageID
		metadata.CorrelationID = cause.CorrelationID
	}

	return metadata
}

// WithCause returns a context in which new journal entries are caused by, and correlated with, cause.
func WithCause(ctx context.Context, cause EventMetadata) context.Context {
	return context.WithValue(ctx, causationKey{}, cause)
}

// EventMetadataFrom extracts EventMetadata from a JournalEntry.
func EventMetadataFrom(entry lendingstore.JournalEntry) (EventMetadata, error) {
	metadata := new(EventMetadata)

	err := jsoniter.ConfigFastest.Unmarshal(entry.MetadataJSON, metadata)
	if err != nil {
		return EventMetadata{}, errors.Join(ErrMappingToEventMetadataFailed, err)
	}

	return *metadata, nil
}
