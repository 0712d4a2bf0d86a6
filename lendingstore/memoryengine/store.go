package memoryengine

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
)

const (
	logMsgChangesCommitted    = "lendingstore operation: changes committed"
	logMsgConcurrencyConflict = "lendingstore operation: concurrency conflict detected"
	logAttrRecordCount        = "record_count"
	logAttrJournalCount       = "journal_count"
	logAttrReason             = "reason"
)

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithLogger sets the logger for commits and conflicts.
func WithLogger(logger lendingstore.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// Store is an in-memory lending store, safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	books    map[string]lendingstore.BookRecord
	members  map[string]lendingstore.MemberRecord
	loans    map[string]lendingstore.LoanRecord
	fines    map[string]lendingstore.FineRecord
	journal  lendingstore.JournalEntries
	sequence int64
	logger   lendingstore.Logger
}

func NewStore(options ...Option) (*Store, error) {
	s := &Store{
		books:   make(map[string]lendingstore.BookRecord),
		members: make(map[string]lendingstore.MemberRecord),
		loans:   make(map[string]lendingstore.LoanRecord),
		fines:   make(map[string]lendingstore.FineRecord),
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Commit validates the whole change set before applying any of it.
func (s *Store) Commit(_ context.Context, changes lendingstore.ChangeSet) error {
	if changes.IsEmpty() {
		return lendingstore.ErrEmptyChangeSet
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if reason := s.conflictIn(changes); reason != "" {
		if s.logger != nil {
			s.logger.Info(logMsgConcurrencyConflict, logAttrReason, reason)
		}

		return lendingstore.ErrConcurrencyConflict
	}

	for _, b := range changes.Books {
		b.Version++
		s.books[b.ID] = b
	}

	for _, m := range changes.Members {
		m.Version++
		s.members[m.ID] = m
	}

	for _, l := range changes.Loans {
		l.Version++
		s.loans[l.ID] = cloneLoan(l)
	}

	for _, f := range changes.Fines {
		f.Version++
		s.fines[f.ID] = f
	}

	for _, entry := range changes.Journal {
		s.sequence++
		entry.SequenceNumber = s.sequence
		s.journal = append(s.journal, entry)
	}

	if s.logger != nil {
		s.logger.Info(
			logMsgChangesCommitted,
			logAttrRecordCount, len(changes.Books)+len(changes.Members)+len(changes.Loans)+len(changes.Fines),
			logAttrJournalCount, len(changes.Journal),
		)
	}

	return nil
}

// conflictIn returns why the change set cannot be applied, or "" if it can.
func (s *Store) conflictIn(changes lendingstore.ChangeSet) string {
	isbns := make(map[string]string)
	for _, b := range changes.Books {
		if !versionMatches(s.books, b.ID, b.Version, func(r lendingstore.BookRecord) int64 { return r.Version }) {
			return "book version"
		}

		for id, existing := range s.books {
			if id != b.ID && existing.ISBN == b.ISBN {
				return "book isbn"
			}
		}

		if other, seen := isbns[b.ISBN]; seen && other != b.ID {
			return "book isbn"
		}

		isbns[b.ISBN] = b.ID
	}

	for _, m := range changes.Members {
		if !versionMatches(s.members, m.ID, m.Version, func(r lendingstore.MemberRecord) int64 { return r.Version }) {
			return "member version"
		}

		for id, existing := range s.members {
			if id != m.ID && (existing.MemberNumber == m.MemberNumber || existing.NationalID == m.NationalID) {
				return "member number or national id"
			}
		}
	}

	for _, l := range changes.Loans {
		if !versionMatches(s.loans, l.ID, l.Version, func(r lendingstore.LoanRecord) int64 { return r.Version }) {
			return "loan version"
		}
	}

	loanIDs := make(map[string]string)
	for _, f := range changes.Fines {
		if !versionMatches(s.fines, f.ID, f.Version, func(r lendingstore.FineRecord) int64 { return r.Version }) {
			return "fine version"
		}

		for id, existing := range s.fines {
			if id != f.ID && existing.LoanID == f.LoanID {
				return "fine loan id"
			}
		}

		if other, seen := loanIDs[f.LoanID]; seen && other != f.ID {
			return "fine loan id"
		}

		loanIDs[f.LoanID] = f.ID
	}

	return ""
}

// versionMatches is the in-memory equivalent of an insert on a free key or a guarded update.
func versionMatches[R any](table map[string]R, id string, version int64, versionOf func(R) int64) bool {
	existing, found := table[id]
	if version == 0 {
		return !found
	}

	return found && versionOf(existing) == version
}

func cloneLoan(l lendingstore.LoanRecord) lendingstore.LoanRecord {
	if l.DueDate != nil {
		due := *l.DueDate
		l.DueDate = &due
	}

	if l.ReturnDate != nil {
		returned := *l.ReturnDate
		l.ReturnDate = &returned
	}

	return l
}

func (s *Store) FindBookByID(_ context.Context, id string) (lendingstore.BookRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.books[id]
	if !ok {
		return lendingstore.BookRecord{}, lendingstore.ErrNotFound
	}

	return b, nil
}

func (s *Store) ExistsBookByISBN(_ context.Context, isbn string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.books {
		if b.ISBN == isbn {
			return true, nil
		}
	}

	return false, nil
}

func (s *Store) FindBooksByStatus(_ context.Context, status string) ([]lendingstore.BookRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := collect(s.books, func(b lendingstore.BookRecord) bool { return b.Status == status }, func(b lendingstore.BookRecord) lendingstore.BookRecord { return b })
	slices.SortFunc(out, func(a, b lendingstore.BookRecord) int {
		return cmp.Or(cmp.Compare(a.Title, b.Title), cmp.Compare(a.ID, b.ID))
	})

	return out, nil
}

func (s *Store) FindMemberByID(_ context.Context, id string) (lendingstore.MemberRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[id]
	if !ok {
		return lendingstore.MemberRecord{}, lendingstore.ErrNotFound
	}

	return m, nil
}

func (s *Store) ExistsMemberByID(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.members[id]

	return ok, nil
}

func (s *Store) ExistsMemberByNumberOrNationalID(_ context.Context, memberNumber int64, nationalID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.members {
		if m.MemberNumber == memberNumber || m.NationalID == nationalID {
			return true, nil
		}
	}

	return false, nil
}

func (s *Store) CountActiveLoans(_ context.Context, memberID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, l := range s.loans {
		if l.MemberID == memberID && l.Status == lendingstore.LoanStatusActive {
			n++
		}
	}

	return n, nil
}

func (s *Store) FindLoanByID(_ context.Context, id string) (lendingstore.LoanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.loans[id]
	if !ok {
		return lendingstore.LoanRecord{}, lendingstore.ErrNotFound
	}

	return cloneLoan(l), nil
}

func (s *Store) FindLoansByStatus(_ context.Context, status string) ([]lendingstore.LoanRecord, error) {
	return s.findLoans(func(l lendingstore.LoanRecord) bool { return l.Status == status }), nil
}

func (s *Store) FindLoansByMember(_ context.Context, memberID string) ([]lendingstore.LoanRecord, error) {
	return s.findLoans(func(l lendingstore.LoanRecord) bool { return l.MemberID == memberID }), nil
}

// FindOverdueBefore returns open loans that started strictly before date.
func (s *Store) FindOverdueBefore(_ context.Context, date time.Time) ([]lendingstore.LoanRecord, error) {
	return s.findLoans(func(l lendingstore.LoanRecord) bool {
		open := l.Status == lendingstore.LoanStatusActive || l.Status == lendingstore.LoanStatusOverdue
		return open && l.StartDate.Before(date)
	}), nil
}

func (s *Store) findLoans(keep func(lendingstore.LoanRecord) bool) []lendingstore.LoanRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := collect(s.loans, keep, cloneLoan)
	slices.SortFunc(out, func(a, b lendingstore.LoanRecord) int {
		return cmp.Or(a.StartDate.Compare(b.StartDate), cmp.Compare(a.ID, b.ID))
	})

	return out
}

func (s *Store) FindFineByID(_ context.Context, id string) (lendingstore.FineRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.fines[id]
	if !ok {
		return lendingstore.FineRecord{}, lendingstore.ErrNotFound
	}

	return f, nil
}

func (s *Store) FindFineByLoan(_ context.Context, loanID string) (lendingstore.FineRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.fines {
		if f.LoanID == loanID {
			return f, nil
		}
	}

	return lendingstore.FineRecord{}, lendingstore.ErrNotFound
}

func (s *Store) FindUnsettledFines(_ context.Context) ([]lendingstore.FineRecord, error) {
	return s.findFines(func(f lendingstore.FineRecord) bool { return !f.Settled }), nil
}

func (s *Store) FindUnsettledFinesByMember(_ context.Context, memberID string) ([]lendingstore.FineRecord, error) {
	return s.findFines(func(f lendingstore.FineRecord) bool {
		return !f.Settled && s.loans[f.LoanID].MemberID == memberID
	}), nil
}

func (s *Store) SumUnsettledByMember(ctx context.Context, memberID string) (decimal.Decimal, error) {
	fines, _ := s.FindUnsettledFinesByMember(ctx, memberID)

	sum := decimal.Zero
	for _, f := range fines {
		sum = sum.Add(f.Amount)
	}

	return sum.Round(2), nil
}

func (s *Store) findFines(keep func(lendingstore.FineRecord) bool) []lendingstore.FineRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := collect(s.fines, keep, func(f lendingstore.FineRecord) lendingstore.FineRecord { return f })
	slices.SortFunc(out, func(a, b lendingstore.FineRecord) int {
		return cmp.Or(a.IssuedOn.Compare(b.IssuedOn), cmp.Compare(a.ID, b.ID))
	})

	return out
}

// ReadJournal returns the latest limit journal entries in the order they were written.
func (s *Store) ReadJournal(_ context.Context, limit uint) (lendingstore.JournalEntries, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	from := max(len(s.journal)-int(limit), 0)

	return slices.Clone(s.journal[from:]), nil
}

func collect[R any](table map[string]R, keep func(R) bool, copyOf func(R) R) []R {
	out := make([]R, 0)
	for _, r := range table {
		if keep(r) {
			out = append(out, copyOf(r))
		}
	}

	return out
}
