package markalloverdue

import (
	"fmt"
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// CommandType identifies the command in metrics, logs and the journal.
const CommandType = "MarkAllOverdue"

// Command asks for all active loans whose due date lies before AsOf to be marked overdue.
type Command struct {
	AsOf       time.Time
	OccurredAt core.OccurredAtTS
}

// BuildCommand creates a new Command. The sweep date is the date of occurredAt.
func BuildCommand(occurredAt time.Time) Command {
	return Command{
		AsOf:       core.ToDate(occurredAt),
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return CommandType
}

func (c Command) Validate() error {
	if c.AsOf.IsZero() {
		return fmt.Errorf("%w: sweep date is required", core.ErrValidation)
	}

	return nil
}
