package settlefine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// CommandType identifies the command in metrics, logs and the journal.
const CommandType = "SettleFine"

// Command represents the payment of a fine.
type Command struct {
	FineID     uuid.UUID
	OccurredAt core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(fineID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		FineID:     fineID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return CommandType
}

func (c Command) Validate() error {
	if c.FineID == uuid.Nil {
		return fmt.Errorf("%w: fine id is required", core.ErrValidation)
	}

	return nil
}
