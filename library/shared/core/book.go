package core

import (
	"fmt"

	"github.com/google/uuid"
)

// BookStatus is the availability of a book.
type BookStatus string

const (
	BookAvailable   BookStatus = "AVAILABLE"
	BookLoaned      BookStatus = "LOANED"
	BookMaintenance BookStatus = "MAINTENANCE"
)

// Book is a lendable book of the catalog.
type Book struct {
	ID       uuid.UUID
	Title    string
	Author   string
	ISBN     string
	Category string
	Status   BookStatus
	Version  int64
}

// NewBook creates a new, available book.
func NewBook(id uuid.UUID, title string, author string, isbn string, category string) Book {
	return Book{
		ID:       id,
		Title:    title,
		Author:   author,
		ISBN:     isbn,
		Category: category,
		Status:   BookAvailable,
	}
}

// IsAvailable reports whether a loan can be created for the book.
func (b Book) IsAvailable() bool {
	return b.Status == BookAvailable
}

// Reserve marks an available book as loaned.
// It fails with ErrInvalidState for any other status, including a book under maintenance.
func (b Book) Reserve() (Book, error) {
	if !b.IsAvailable() {
		return b, Violation(ErrInvalidState, fmt.Sprintf("book %s is %s, not %s", b.ID, b.Status, BookAvailable))
	}

	b.Status = BookLoaned

	return b, nil
}

// Release makes the book available again. Releasing an available book changes nothing.
func (b Book) Release() Book {
	b.Status = BookAvailable

	return b
}

// PutUnderMaintenance takes an available book out of lending.
// The bool result is false when the book already was under maintenance.
func (b Book) PutUnderMaintenance() (Book, bool, error) {
	switch b.Status {
	case BookMaintenance:
		return b, false, nil
	case BookLoaned:
		return b, false, Violation(ErrInvalidState, fmt.Sprintf("book %s is loaned and cannot be put under maintenance", b.ID))
	default:
		b.Status = BookMaintenance
		return b, true, nil
	}
}

// ReleaseFromMaintenance makes a book under maintenance available again.
// The bool result is false when the book already was available.
func (b Book) ReleaseFromMaintenance() (Book, bool, error) {
	switch b.Status {
	case BookAvailable:
		return b, false, nil
	case BookLoaned:
		return b, false, Violation(ErrInvalidState, fmt.Sprintf("book %s is loaned, not under maintenance", b.ID))
	default:
		b.Status = BookAvailable
		return b, true, nil
	}
}
