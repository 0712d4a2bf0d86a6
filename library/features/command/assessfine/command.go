package assessfine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// CommandType identifies the command in metrics, logs and the journal.
const CommandType = "AssessFine"

// Command represents the intent to assess the fine of a closed loan.
// FineID is used for the fine if the policy yields one.
type Command struct {
	FineID     uuid.UUID
	LoanID     uuid.UUID
	OccurredAt core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(fineID uuid.UUID, loanID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		FineID:     fineID,
		LoanID:     loanID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return CommandType
}

func (c Command) Validate() error {
	if c.FineID == uuid.Nil || c.LoanID == uuid.Nil {
		return fmt.Errorf("%w: fine id and loan id are required", core.ErrValidation)
	}

	return nil
}
