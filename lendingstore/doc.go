// Package lendingstore provides the storage abstractions for the lending library.
//
// It defines the persistence records for books, members, loans and fines, the
// ChangeSet that an engine commits atomically, the journal entry that records the
// domain event of a decision, and the sentinel errors shared by all engines.
//
// Engines never interpret domain rules. They persist records guarded by optimistic
// concurrency: every update carries the version that was read, and a mismatch (or a
// unique key violation on insert) surfaces as ErrConcurrencyConflict, which callers
// resolve by reloading and deciding again.
//
// Common usage pattern:
//
//	loan, err := store.FindLoanByID(ctx, loanID)
//	if err != nil {
//		// handle error
//	}
//
//	loan.Status = "CLOSED"
//	err = store.Commit(ctx, lendingstore.ChangeSet{
//		Loans:   []lendingstore.LoanRecord{loan},
//		Journal: []lendingstore.JournalEntry{entry},
//	})
//	if errors.Is(err, lendingstore.ErrConcurrencyConflict) {
//		// reload and retry
//	}
package lendingstore
