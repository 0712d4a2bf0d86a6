package registermember

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// CommandType identifies the command in metrics, logs and the journal.
const CommandType = "RegisterMember"

// Command represents the intent to register a library member.
type Command struct {
	MemberID     uuid.UUID
	Name         string
	MemberNumber int64
	NationalID   string
	OccurredAt   core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(memberID uuid.UUID, name string, memberNumber int64, nationalID string, occurredAt time.Time) Command {
	return Command{
		MemberID:     memberID,
		Name:         strings.TrimSpace(name),
		MemberNumber: memberNumber,
		NationalID:   strings.TrimSpace(nationalID),
		OccurredAt:   core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return CommandType
}

func (c Command) Validate() error {
	switch {
	case c.MemberID == uuid.Nil:
		return fmt.Errorf("%w: member id is required", core.ErrValidation)
	case c.Name == "":
		return fmt.Errorf("%w: name is required", core.ErrValidation)
	case c.MemberNumber <= 0:
		return fmt.Errorf("%w: member number must be positive", core.ErrValidation)
	case c.NationalID == "":
		return fmt.Errorf("%w: national id is required", core.ErrValidation)
	}

	return nil
}
