package createloan

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// CommandType identifies the command in metrics, logs and the journal.
const CommandType = "CreateLoan"

// Command represents the intent to lend a book to a member.
type Command struct {
	LoanID     uuid.UUID
	BookID     uuid.UUID
	MemberID   uuid.UUID
	StartDate  time.Time
	DueDate    *time.Time
	OccurredAt core.OccurredAtTS
}

// BuildCommand creates a new Command. Without a startDate the loan starts on the day the
// command occurred.
func BuildCommand(
	loanID uuid.UUID,
	bookID uuid.UUID,
	memberID uuid.UUID,
	startDate *time.Time,
	dueDate *time.Time,
	occurredAt time.Time,
) Command {
	start := core.ToDate(occurredAt)
	if startDate != nil {
		start = core.ToDate(*startDate)
	}

	var due *time.Time
	if dueDate != nil {
		d := core.ToDate(*dueDate)
		due = &d
	}

	return Command{
		LoanID:     loanID,
		BookID:     bookID,
		MemberID:   memberID,
		StartDate:  start,
		DueDate:    due,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return CommandType
}

// Validate rejects missing ids and a due date before the start date.
func (c Command) Validate() error {
	switch {
	case c.LoanID == uuid.Nil:
		return fmt.Errorf("%w: loan id is required", core.ErrValidation)
	case c.BookID == uuid.Nil:
		return fmt.Errorf("%w: book id is required", core.ErrValidation)
	case c.MemberID == uuid.Nil:
		return fmt.Errorf("%w: member id is required", core.ErrValidation)
	case c.DueDate != nil && c.DueDate.Before(c.StartDate):
		return fmt.Errorf(
			"%w: due date %s is before start date %s",
			core.ErrValidation, core.FormatDate(*c.DueDate), core.FormatDate(c.StartDate))
	}

	return nil
}
