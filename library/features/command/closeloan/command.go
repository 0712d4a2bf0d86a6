package closeloan

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// CommandType identifies the command in metrics, logs and the journal.
const CommandType = "CloseLoan"

// Command represents the return of a loan's book.
// A nil ReturnCondition means no condition was reported. FineID is used if the follow-up
// assessment records a fine.
type Command struct {
	LoanID          uuid.UUID
	FineID          uuid.UUID
	ReturnCondition *core.ReturnCondition
	Notes           string
	OccurredAt      core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	loanID uuid.UUID,
	fineID uuid.UUID,
	returnCondition *core.ReturnCondition,
	notes string,
	occurredAt time.Time,
) Command {
	return Command{
		LoanID:          loanID,
		FineID:          fineID,
		ReturnCondition: returnCondition,
		Notes:           notes,
		OccurredAt:      core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return CommandType
}

func (c Command) Validate() error {
	if c.LoanID == uuid.Nil || c.FineID == uuid.Nil {
		return fmt.Errorf("%w: loan id and fine id are required", core.ErrValidation)
	}

	return nil
}
