package addbook

import (
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// State is what Decide needs to know about the catalog.
type State struct {
	// Book is the book already stored under the command's id, if any.
	Book *core.Book

	// ISBNTaken is true when another book has the command's ISBN.
	ISBNTaken bool
}

// Decide determines whether the book can be added.
//
// Business Rules:
//
//	GIVEN: a new book id and an ISBN
//	WHEN: AddBook command is received
//	THEN: BookAddedToCatalog event is generated, the book is AVAILABLE
//	ERROR: "book ... already exists with another ISBN" if the id is used by a different book
//	ERROR: "a book with ISBN ... already exists" if the ISBN is used by another book
//	IDEMPOTENCY: If the same book was already added, no event generated (no-op)
func Decide(s State, command Command) core.DecisionResult {
	if s.Book != nil {
		if s.Book.ISBN == command.ISBN {
			return core.IdempotentDecision()
		}

		return reject(command, core.Violation(
			core.ErrAlreadyExists,
			fmt.Sprintf("book %s already exists with another ISBN", command.BookID)))
	}

	if s.ISBNTaken {
		return reject(command, core.Violation(
			core.ErrAlreadyExists,
			fmt.Sprintf("a book with ISBN %s already exists", command.ISBN)))
	}

	book := core.NewBook(command.BookID, command.Title, command.Author, command.ISBN, command.Category)

	return core.SuccessDecision(
		core.BuildBookAddedToCatalog(book, command.OccurredAt),
		core.Changes{Books: []core.Book{book}})
}

func reject(command Command, violation error) core.DecisionResult {
	return core.RejectDecision(
		core.BuildBookAddingFailed(command.BookID.String(), violation.Error(), command.OccurredAt),
		violation)
}
