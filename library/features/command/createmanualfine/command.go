package createmanualfine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// CommandType identifies the command in metrics, logs and the journal.
const CommandType = "CreateManualFine"

// Command represents a librarian-entered fine.
type Command struct {
	FineID     uuid.UUID
	LoanID     uuid.UUID
	Amount     decimal.Decimal
	Motive     string
	Notes      string
	OccurredAt core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	fineID uuid.UUID,
	loanID uuid.UUID,
	amount decimal.Decimal,
	motive string,
	notes string,
	occurredAt time.Time,
) Command {
	return Command{
		FineID:     fineID,
		LoanID:     loanID,
		Amount:     amount,
		Motive:     strings.TrimSpace(motive),
		Notes:      notes,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return CommandType
}

// Validate rejects a non-positive amount or an empty motive.
func (c Command) Validate() error {
	if c.FineID == uuid.Nil || c.LoanID == uuid.Nil {
		return fmt.Errorf("%w: fine id and loan id are required", core.ErrValidation)
	}

	if !c.Amount.IsPositive() {
		return fmt.Errorf("%w: fine amount must be positive, got %s", core.ErrValidation, c.Amount.String())
	}

	if c.Motive == "" {
		return fmt.Errorf("%w: motive must not be empty", core.ErrValidation)
	}

	return nil
}
