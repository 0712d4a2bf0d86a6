package setbookmaintenance

import (
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// State holds the book.
type State struct {
	Book *core.Book
}

// Decide determines whether the book's maintenance flag can change.
//
// Business Rules:
//
//	GIVEN: an AVAILABLE book and UnderMaintenance = true
//	THEN: BookPutUnderMaintenance event is generated, the book is MAINTENANCE
//	GIVEN: a book under MAINTENANCE and UnderMaintenance = false
//	THEN: BookReleasedFromMaintenance event is generated, the book is AVAILABLE
//	ERROR: "book ... not found" (NotFound)
//	ERROR: "book ... is loaned ..." (Conflict)
//	IDEMPOTENCY: If the book already has the requested state, no event generated (no-op)
func Decide(s State, command Command) core.DecisionResult {
	if s.Book == nil {
		return reject(command, core.Violation(core.ErrNotFound, fmt.Sprintf("book %s not found", command.BookID)))
	}

	if command.UnderMaintenance {
		book, changed, err := s.Book.PutUnderMaintenance()
		return decided(command, book, changed, err, core.BuildBookPutUnderMaintenance(book.ID, command.OccurredAt))
	}

	book, changed, err := s.Book.ReleaseFromMaintenance()

	return decided(command, book, changed, err, core.BuildBookReleasedFromMaintenance(book.ID, command.OccurredAt))
}

func decided(command Command, book core.Book, changed bool, err error, event core.DomainEvent) core.DecisionResult {
	if err != nil {
		return reject(command, err)
	}

	if !changed {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(event, core.Changes{Books: []core.Book{book}})
}

func reject(command Command, violation error) core.DecisionResult {
	return core.RejectDecision(
		core.BuildBookMaintenanceFailed(command.BookID.String(), violation.Error(), command.OccurredAt),
		violation)
}
