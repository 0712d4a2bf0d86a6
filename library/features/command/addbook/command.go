package addbook

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// CommandType identifies the command in metrics, logs and the journal.
const CommandType = "AddBook"

// Command represents the intent to add a book to the catalog.
type Command struct {
	BookID     uuid.UUID
	Title      string
	Author     string
	ISBN       string
	Category   string
	OccurredAt core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, title string, author string, isbn string, category string, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		Title:      strings.TrimSpace(title),
		Author:     strings.TrimSpace(author),
		ISBN:       strings.TrimSpace(isbn),
		Category:   strings.TrimSpace(category),
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return CommandType
}

// Validate rejects a command without title or ISBN.
func (c Command) Validate() error {
	switch {
	case c.BookID == uuid.Nil:
		return fmt.Errorf("%w: book id is required", core.ErrValidation)
	case c.Title == "":
		return fmt.Errorf("%w: title is required", core.ErrValidation)
	case c.ISBN == "":
		return fmt.Errorf("%w: isbn is required", core.ErrValidation)
	}

	return nil
}
