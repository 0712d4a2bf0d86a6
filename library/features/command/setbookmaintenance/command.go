package setbookmaintenance

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// CommandType identifies the command in metrics, logs and the journal.
const CommandType = "SetBookMaintenance"

// Command sets whether a book is under maintenance.
type Command struct {
	BookID           uuid.UUID
	UnderMaintenance bool
	OccurredAt       core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, underMaintenance bool, occurredAt time.Time) Command {
	return Command{
		BookID:           bookID,
		UnderMaintenance: underMaintenance,
		OccurredAt:       core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return CommandType
}

func (c Command) Validate() error {
	if c.BookID == uuid.Nil {
		return fmt.Errorf("%w: book id is required", core.ErrValidation)
	}

	return nil
}
