package memoryengine_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/lendingstore/memoryengine"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper"
)

func givenStore(t *testing.T) *memoryengine.Store {
	t.Helper()

	store, err := memoryengine.NewStore()
	require.NoError(t, err)

	return store
}

func Test_Store_Commit_InsertsWithVersionOne(t *testing.T) {
	ctx := t.Context()
	store := givenStore(t)
	bookID := GivenUniqueID(t)

	require.NoError(t, store.Commit(ctx, lendingstore.ChangeSet{
		Books: []lendingstore.BookRecord{FixtureBookRecord(bookID, lendingstore.BookStatusAvailable)},
	}))

	book, err := store.FindBookByID(ctx, bookID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), book.Version)
}

func Test_Store_Commit_StaleVersionRejectsWholeChangeSet(t *testing.T) {
	// arrange
	ctx := t.Context()
	store := givenStore(t)
	bookID, memberID, loanID := GivenUniqueID(t), GivenUniqueID(t), GivenUniqueID(t)
	require.NoError(t, store.Commit(ctx, lendingstore.ChangeSet{
		Books:   []lendingstore.BookRecord{FixtureBookRecord(bookID, lendingstore.BookStatusAvailable)},
		Members: []lendingstore.MemberRecord{FixtureMemberRecord(memberID, 1)},
	}))

	stale, err := store.FindBookByID(ctx, bookID.String())
	require.NoError(t, err)
	stale.Version = 3

	// act
	err = store.Commit(ctx, lendingstore.ChangeSet{
		Books: []lendingstore.BookRecord{stale},
		Loans: []lendingstore.LoanRecord{FixtureLoanRecord(loanID, bookID, memberID, Date(2025, time.May, 1))},
	})

	// assert
	assert.ErrorIs(t, err, lendingstore.ErrConcurrencyConflict)

	_, err = store.FindLoanByID(ctx, loanID.String())
	assert.ErrorIs(t, err, lendingstore.ErrNotFound)
}

func Test_Store_Commit_EnforcesUniqueKeys(t *testing.T) {
	ctx := t.Context()
	store := givenStore(t)
	loanID := GivenUniqueID(t)
	book := FixtureBookRecord(GivenUniqueID(t), lendingstore.BookStatusAvailable)
	member := FixtureMemberRecord(GivenUniqueID(t), 9)
	require.NoError(t, store.Commit(ctx, lendingstore.ChangeSet{
		Books:   []lendingstore.BookRecord{book},
		Members: []lendingstore.MemberRecord{member},
		Fines:   []lendingstore.FineRecord{FixtureFineRecord(GivenUniqueID(t), loanID, "50.00", Date(2025, time.May, 1))},
	}))

	sameISBN := FixtureBookRecord(GivenUniqueID(t), lendingstore.BookStatusAvailable)
	sameISBN.ISBN = book.ISBN
	assert.ErrorIs(t, store.Commit(ctx, lendingstore.ChangeSet{Books: []lendingstore.BookRecord{sameISBN}}), lendingstore.ErrConcurrencyConflict)

	sameNumber := FixtureMemberRecord(GivenUniqueID(t), 9)
	assert.ErrorIs(t, store.Commit(ctx, lendingstore.ChangeSet{Members: []lendingstore.MemberRecord{sameNumber}}), lendingstore.ErrConcurrencyConflict)

	secondFine := FixtureFineRecord(GivenUniqueID(t), loanID, "10.00", Date(2025, time.May, 1))
	assert.ErrorIs(t, store.Commit(ctx, lendingstore.ChangeSet{Fines: []lendingstore.FineRecord{secondFine}}), lendingstore.ErrConcurrencyConflict)
}

func Test_Store_Commit_ConcurrentWritersOfSameVersion_OnlyOneWins(t *testing.T) {
	// arrange
	ctx := t.Context()
	store := givenStore(t)
	bookID := GivenUniqueID(t)
	require.NoError(t, store.Commit(ctx, lendingstore.ChangeSet{
		Books: []lendingstore.BookRecord{FixtureBookRecord(bookID, lendingstore.BookStatusAvailable)},
	}))

	book, err := store.FindBookByID(ctx, bookID.String())
	require.NoError(t, err)
	book.Status = lendingstore.BookStatusLoaned

	// act
	const writers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := store.Commit(ctx, lendingstore.ChangeSet{Books: []lendingstore.BookRecord{book}})

			mu.Lock()
			defer mu.Unlock()

			if err == nil {
				successes++
			} else if assert.ErrorIs(t, err, lendingstore.ErrConcurrencyConflict) {
				conflicts++
			}
		}()
	}

	wg.Wait()

	// assert
	assert.Equal(t, 1, successes)
	assert.Equal(t, writers-1, conflicts)
}

func Test_Store_Queries(t *testing.T) {
	// arrange
	ctx := t.Context()
	store := givenStore(t)
	memberID, bookA, bookB := GivenUniqueID(t), GivenUniqueID(t), GivenUniqueID(t)
	oldLoan, newLoan := GivenUniqueID(t), GivenUniqueID(t)
	issued := Date(2025, time.April, 30)
	settled := FixtureFineRecord(GivenUniqueID(t), newLoan, "20.00", issued)
	settled.Settled = true

	require.NoError(t, store.Commit(ctx, lendingstore.ChangeSet{
		Books: []lendingstore.BookRecord{
			FixtureBookRecord(bookA, lendingstore.BookStatusLoaned),
			FixtureBookRecord(bookB, lendingstore.BookStatusAvailable),
		},
		Members: []lendingstore.MemberRecord{FixtureMemberRecord(memberID, 5)},
		Loans: []lendingstore.LoanRecord{
			FixtureLoanRecord(oldLoan, bookA, memberID, Date(2025, time.March, 1)),
			FixtureLoanRecord(newLoan, bookB, memberID, Date(2025, time.April, 20)),
		},
		Fines: []lendingstore.FineRecord{
			FixtureFineRecord(GivenUniqueID(t), oldLoan, "30.00", issued),
			settled,
		},
	}))

	// act + assert
	overdue, err := store.FindOverdueBefore(ctx, Date(2025, time.April, 1))
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, oldLoan.String(), overdue[0].ID)

	count, err := store.CountActiveLoans(ctx, memberID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	loans, err := store.FindLoansByMember(ctx, memberID.String())
	require.NoError(t, err)
	require.Len(t, loans, 2)
	assert.Equal(t, oldLoan.String(), loans[0].ID, "ordered by start date")

	sum, err := store.SumUnsettledByMember(ctx, memberID.String())
	require.NoError(t, err)
	assert.Equal(t, "30.00", sum.StringFixed(2))

	unsettled, err := store.FindUnsettledFines(ctx)
	require.NoError(t, err)
	assert.Len(t, unsettled, 1)
}

func Test_Store_ReadJournal_AssignsSequenceNumbers(t *testing.T) {
	ctx := t.Context()
	store := givenStore(t)

	for _, eventType := range []string{"A", "B", "C"} {
		entry, err := lendingstore.BuildJournalEntry(eventType, time.Now(), []byte(`{}`), []byte(`{}`))
		require.NoError(t, err)
		require.NoError(t, store.Commit(ctx, lendingstore.ChangeSet{Journal: lendingstore.JournalEntries{entry}}))
	}

	entries, err := store.ReadJournal(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, int64(3), entries[2].SequenceNumber)

	latest, err := store.ReadJournal(ctx, 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "C", latest[0].EventType)
}
