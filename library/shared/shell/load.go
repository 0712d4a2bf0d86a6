package shell

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// BookFinder finds a book by id.
type BookFinder interface {
	FindBookByID(ctx context.Context, id string) (lendingstore.BookRecord, error)
}

// MemberFinder finds a member by id.
type MemberFinder interface {
	FindMemberByID(ctx context.Context, id string) (lendingstore.MemberRecord, error)
}

// LoanFinder finds a loan by id.
type LoanFinder interface {
	FindLoanByID(ctx context.Context, id string) (lendingstore.LoanRecord, error)
}

// FineFinder finds a fine by id.
type FineFinder interface {
	FindFineByID(ctx context.Context, id string) (lendingstore.FineRecord, error)
}

// FineByLoanFinder finds the fine of a loan.
type FineByLoanFinder interface {
	FindFineByLoan(ctx context.Context, loanID string) (lendingstore.FineRecord, error)
}

// LoadBook returns the book, or nil if it does not exist.
func LoadBook(ctx context.Context, store BookFinder, id uuid.UUID) (*core.Book, error) {
	return load(ctx, id.String(), store.FindBookByID, BookFromRecord)
}

// LoadMember returns the member, or nil if it does not exist.
func LoadMember(ctx context.Context, store MemberFinder, id uuid.UUID) (*core.Member, error) {
	return load(ctx, id.String(), store.FindMemberByID, MemberFromRecord)
}

// LoadLoan returns the loan, or nil if it does not exist.
func LoadLoan(ctx context.Context, store LoanFinder, id uuid.UUID) (*core.Loan, error) {
	return load(ctx, id.String(), store.FindLoanByID, LoanFromRecord)
}

// LoadFine returns the fine, or nil if it does not exist.
func LoadFine(ctx context.Context, store FineFinder, id uuid.UUID) (*core.Fine, error) {
	return load(ctx, id.String(), store.FindFineByID, FineFromRecord)
}

// LoadFineOfLoan returns the fine of the loan, or nil if the loan has none.
func LoadFineOfLoan(ctx context.Context, store FineByLoanFinder, loanID uuid.UUID) (*core.Fine, error) {
	return load(ctx, loanID.String(), store.FindFineByLoan, FineFromRecord)
}

func load[R any, E any](
	ctx context.Context,
	id string,
	find func(context.Context, string) (R, error),
	convert func(R) (E, error),
) (*E, error) {
	record, err := find(ctx, id)
	if errors.Is(err, lendingstore.ErrNotFound) {
		return nil, nil //nolint:nilnil // absence is decided on by the caller
	}

	if err != nil {
		return nil, err
	}

	entity, err := convert(record)
	if err != nil {
		return nil, err
	}

	return &entity, nil
}
