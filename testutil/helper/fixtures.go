package helper

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // driver registration

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/lendingstore/postgresengine"
)

// GivenUniqueID returns a fresh time-ordered (v7) id.
func GivenUniqueID(t testing.TB) uuid.UUID {
	t.Helper()

	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return id
}

// GivenSQLiteStore opens a fresh sqlite database in the test's temp dir and creates the schema.
func GivenSQLiteStore(t testing.TB, options ...postgresengine.Option) *postgresengine.Store {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "library.db")+"?_pragma=busy_timeout(5000)")
	require.NoError(t, err, "error in arranging test data")

	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	store, err := postgresengine.NewStoreFromSQLite(db, options...)
	require.NoError(t, err, "error in arranging test data")
	require.NoError(t, store.CreateSchema(t.Context()), "error in arranging test data")

	return store
}

// Date is the calendar day at midnight UTC, the form dates are persisted in.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FixtureBookRecord is a new book whose ISBN is derived from id, so fixtures never collide.
func FixtureBookRecord(id uuid.UUID, status string) lendingstore.BookRecord {
	return lendingstore.BookRecord{
		ID:       id.String(),
		Title:    "Learning Domain-Driven Design",
		Author:   "Vlad Khononov",
		ISBN:     "978-1-098-" + id.String()[24:],
		Category: "software",
		Status:   status,
	}
}

// FixtureMemberRecord is a new member whose national id is derived from id.
func FixtureMemberRecord(id uuid.UUID, memberNumber int64) lendingstore.MemberRecord {
	return lendingstore.MemberRecord{
		ID:           id.String(),
		Name:         "Ada Reader",
		MemberNumber: memberNumber,
		NationalID:   "NID-" + id.String()[24:],
	}
}

// FixtureLoanRecord is a new ACTIVE loan due 15 days after start.
func FixtureLoanRecord(id, bookID, memberID uuid.UUID, start time.Time) lendingstore.LoanRecord {
	due := start.AddDate(0, 0, 15)

	return lendingstore.LoanRecord{
		ID:        id.String(),
		BookID:    bookID.String(),
		MemberID:  memberID.String(),
		StartDate: start,
		DueDate:   &due,
		Status:    lendingstore.LoanStatusActive,
	}
}

// FixtureClosedLoanRecord is a loan returned on returned, in condition ("" for none reported).
func FixtureClosedLoanRecord(id, bookID, memberID uuid.UUID, start, returned time.Time, condition string) lendingstore.LoanRecord {
	record := FixtureLoanRecord(id, bookID, memberID, start)
	record.Status = lendingstore.LoanStatusClosed
	record.ReturnDate = &returned
	record.ReturnCondition = condition
	record.HasDamage = condition != "" && condition != "GOOD"

	return record
}

// FixtureFineRecord is a new unsettled fine of amount for the loan.
func FixtureFineRecord(id, loanID uuid.UUID, amount string, issuedOn time.Time) lendingstore.FineRecord {
	return lendingstore.FineRecord{
		ID:       id.String(),
		LoanID:   loanID.String(),
		Amount:   decimal.RequireFromString(amount),
		Reason:   "fine for damage or loss of the book",
		IssuedOn: issuedOn,
	}
}
