package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LoanPeriodDays is the lending period counted from the start date.
// Lateness is measured against startDate + LoanPeriodDays, the due date only drives
// the overdue transition.
const LoanPeriodDays = 15

// LoanStatus is the state of a loan.
type LoanStatus string

const (
	LoanActive  LoanStatus = "ACTIVE"
	LoanOverdue LoanStatus = "OVERDUE"
	LoanClosed  LoanStatus = "CLOSED"
)

// ReturnCondition is the condition a book was returned in.
type ReturnCondition string

const (
	ConditionGood        ReturnCondition = "GOOD"
	ConditionMinorDamage ReturnCondition = "MINOR_DAMAGE"
	ConditionMajorDamage ReturnCondition = "MAJOR_DAMAGE"
	ConditionLost        ReturnCondition = "LOST"
)

// ImpliesFine reports whether returning a book in this condition is fined.
func (c ReturnCondition) ImpliesFine() bool {
	switch c {
	case ConditionMinorDamage, ConditionMajorDamage, ConditionLost:
		return true
	default:
		return false
	}
}

// ParseReturnCondition parses a condition name, case-insensitive.
// An empty string means no condition was reported and yields nil.
func ParseReturnCondition(s string) (*ReturnCondition, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil //nolint:nilnil // no condition is a valid outcome
	}

	c := ReturnCondition(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case ConditionGood, ConditionMinorDamage, ConditionMajorDamage, ConditionLost:
		return &c, nil
	default:
		return nil, fmt.Errorf("%w: unknown return condition %q", ErrValidation, s)
	}
}

// Loan is the lending of one book to one member.
// A loan is CLOSED exactly when ReturnDate is set. FineID references its fine, at most one.
type Loan struct {
	ID              uuid.UUID
	BookID          uuid.UUID
	MemberID        uuid.UUID
	StartDate       time.Time
	DueDate         *time.Time
	ReturnDate      *time.Time
	Status          LoanStatus
	ReturnCondition *ReturnCondition
	ReturnNotes     string
	HasDamage       bool
	FineID          *uuid.UUID
	Version         int64
}

// OpenLoan creates an ACTIVE loan and reserves the book for it.
// It fails with ErrInvalidState if the book is not available.
func OpenLoan(id uuid.UUID, book Book, memberID uuid.UUID, startDate time.Time, dueDate *time.Time) (Loan, Book, error) {
	reserved, err := book.Reserve()
	if err != nil {
		return Loan{}, book, err
	}

	loan := Loan{
		ID:        id,
		BookID:    book.ID,
		MemberID:  memberID,
		StartDate: ToDate(startDate),
		Status:    LoanActive,
	}

	if dueDate != nil {
		due := ToDate(*dueDate)
		loan.DueDate = &due
	}

	return loan, reserved, nil
}

// IsOpen reports whether the loan is ACTIVE or OVERDUE.
func (l Loan) IsOpen() bool {
	return l.Status == LoanActive || l.Status == LoanOverdue
}

// MarkOverdue flips an ACTIVE loan to OVERDUE once today is past its due date.
// It never fails, the bool result tells whether the loan changed.
func (l Loan) MarkOverdue(today time.Time) (Loan, bool) {
	if l.Status != LoanActive || l.DueDate == nil {
		return l, false
	}

	if !ToDate(today).After(*l.DueDate) {
		return l, false
	}

	l.Status = LoanOverdue

	return l, true
}

// Close records the return of the loan's book and releases the book.
// It fails with ErrInvalidState if the loan is already closed.
func (l Loan) Close(book Book, condition *ReturnCondition, notes string, returnDate time.Time) (Loan, Book, error) {
	if !l.IsOpen() {
		return l, book, Violation(ErrInvalidState, fmt.Sprintf("loan %s is already closed", l.ID))
	}

	returned := ToDate(returnDate)
	l.ReturnDate = &returned
	l.Status = LoanClosed
	l.ReturnCondition = condition
	l.ReturnNotes = notes
	l.HasDamage = condition != nil && condition.ImpliesFine()

	return l, book.Release(), nil
}

// AttachFine records the fine issued for this loan.
func (l Loan) AttachFine(fineID uuid.UUID) Loan {
	l.FineID = &fineID

	return l
}

// GraceWindowEnd is the last day the book can be returned without being late.
func (l Loan) GraceWindowEnd() time.Time {
	return AddDays(l.StartDate, LoanPeriodDays)
}

// LateDays returns the days past the grace window end, never negative.
// For a closed loan it is measured at the return date, otherwise at asOf.
func (l Loan) LateDays(asOf time.Time) int {
	reference := asOf
	if l.Status == LoanClosed && l.ReturnDate != nil {
		reference = *l.ReturnDate
	}

	days := DaysBetween(l.GraceWindowEnd(), reference)
	if days < 0 {
		return 0
	}

	return days
}
