package postgresengine

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/lendingstore/postgresengine/internal/adapters"
)

// queryRecords runs a select and scans every row with scan.
func queryRecords[T any](
	ctx context.Context,
	s *Store,
	table string,
	sel *goqu.SelectDataset,
	scan func(adapters.DBRows) (T, error),
) ([]T, error) {

	observer, ctx := s.startQueryObserver(ctx, table)

	sqlQuery, _, err := sel.ToSQL()
	if err != nil {
		s.logError(ctx, logMsgBuildQueryFailed, err, logAttrTable, table)
		observer.finishError(errorTypeBuildQuery)

		return nil, errors.Join(lendingstore.ErrBuildingQueryFailed, err)
	}

	start := time.Now()

	rows, err := s.db.Query(ctx, sqlQuery)
	if err != nil {
		s.logError(ctx, logMsgDBQueryFailed, err, logAttrQuery, sqlQuery)
		observer.finishError(errorTypeDatabaseQuery)

		return nil, errors.Join(lendingstore.ErrQueryingFailed, err)
	}

	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logError(ctx, logMsgCloseRowsFailed, closeErr)
		}
	}()

	records := make([]T, 0)

	for rows.Next() {
		record, scanErr := scan(rows)
		if scanErr != nil {
			s.logError(ctx, logMsgScanRowFailed, scanErr, logAttrTable, table)
			observer.finishError(errorTypeRowScan)

			return nil, errors.Join(lendingstore.ErrScanningDBRowFailed, scanErr)
		}

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		s.logError(ctx, logMsgDBQueryFailed, err, logAttrQuery, sqlQuery)
		observer.finishError(errorTypeDatabaseQuery)

		return nil, errors.Join(lendingstore.ErrQueryingFailed, err)
	}

	duration := time.Since(start)
	s.logQueryWithDuration(ctx, sqlQuery, logActionQuery, duration)
	s.logDebug(ctx, logMsgQueryCompleted, logAttrTable, table, logAttrRecordCount, len(records), logAttrDurationMS, s.toMilliseconds(duration))
	observer.finishSuccess(len(records))

	return records, nil
}

func first[T any](records []T, err error) (T, error) {
	var zero T

	if err != nil {
		return zero, err
	}

	if len(records) == 0 {
		return zero, lendingstore.ErrNotFound
	}

	return records[0], nil
}

func (s *Store) count(ctx context.Context, table string, where ...exp.Expression) (int64, error) {
	sel := s.builder().From(s.table(table)).Select(goqu.COUNT(goqu.Star())).Where(where...)

	counts, err := queryRecords(ctx, s, table, sel, func(rows adapters.DBRows) (int64, error) {
		var n int64
		err := rows.Scan(&n)
		return n, err
	})
	if err != nil {
		return 0, err
	}

	if len(counts) == 0 {
		return 0, nil
	}

	return counts[0], nil
}

// --- books ---

func (s *Store) selectBooks() *goqu.SelectDataset {
	return s.builder().
		From(s.table(tableBooks)).
		Select(colID, colTitle, colAuthor, colISBN, colCategory, colStatus, colVersion)
}

func scanBook(rows adapters.DBRows) (lendingstore.BookRecord, error) {
	var b lendingstore.BookRecord
	err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Category, &b.Status, &b.Version)

	return b, err
}

// FindBookByID returns lendingstore.ErrNotFound when no book has the id.
func (s *Store) FindBookByID(ctx context.Context, id string) (lendingstore.BookRecord, error) {
	sel := s.selectBooks().Where(goqu.C(colID).Eq(id)).Limit(1)

	return first(queryRecords(ctx, s, tableBooks, sel, scanBook))
}

func (s *Store) ExistsBookByISBN(ctx context.Context, isbn string) (bool, error) {
	n, err := s.count(ctx, tableBooks, goqu.C(colISBN).Eq(isbn))
	return n > 0, err
}

// FindBooksByStatus returns the books in the status, ordered by title.
func (s *Store) FindBooksByStatus(ctx context.Context, status string) ([]lendingstore.BookRecord, error) {
	sel := s.selectBooks().
		Where(goqu.C(colStatus).Eq(status)).
		Order(goqu.C(colTitle).Asc(), goqu.C(colID).Asc())

	return queryRecords(ctx, s, tableBooks, sel, scanBook)
}

// --- members ---

func (s *Store) selectMembers() *goqu.SelectDataset {
	return s.builder().
		From(s.table(tableMembers)).
		Select(colID, colName, colMemberNumber, colNationalID, colVersion)
}

func scanMember(rows adapters.DBRows) (lendingstore.MemberRecord, error) {
	var m lendingstore.MemberRecord
	err := rows.Scan(&m.ID, &m.Name, &m.MemberNumber, &m.NationalID, &m.Version)

	return m, err
}

// FindMemberByID returns lendingstore.ErrNotFound when no member has the id.
func (s *Store) FindMemberByID(ctx context.Context, id string) (lendingstore.MemberRecord, error) {
	sel := s.selectMembers().Where(goqu.C(colID).Eq(id)).Limit(1)

	return first(queryRecords(ctx, s, tableMembers, sel, scanMember))
}

func (s *Store) ExistsMemberByID(ctx context.Context, id string) (bool, error) {
	n, err := s.count(ctx, tableMembers, goqu.C(colID).Eq(id))
	return n > 0, err
}

// ExistsMemberByNumberOrNationalID reports whether a member already holds either unique key.
func (s *Store) ExistsMemberByNumberOrNationalID(ctx context.Context, memberNumber int64, nationalID string) (bool, error) {
	n, err := s.count(ctx, tableMembers, goqu.Or(
		goqu.C(colMemberNumber).Eq(memberNumber),
		goqu.C(colNationalID).Eq(nationalID),
	))

	return n > 0, err
}

// CountActiveLoans counts the member's loans in status ACTIVE. Overdue loans are not counted.
func (s *Store) CountActiveLoans(ctx context.Context, memberID string) (int, error) {
	n, err := s.count(ctx, tableLoans,
		goqu.C(colMemberID).Eq(memberID),
		goqu.C(colStatus).Eq(lendingstore.LoanStatusActive),
	)

	return int(n), err
}

// --- loans ---

func (s *Store) selectLoans() *goqu.SelectDataset {
	return s.builder().
		From(s.table(tableLoans)).
		Select(
			colID, colBookID, colMemberID,
			colStartDate, colDueDate, colReturnDate,
			colStatus, colReturnCondition, colReturnNotes, colHasDamage,
			colFineID, colVersion,
		)
}

func scanLoan(rows adapters.DBRows) (lendingstore.LoanRecord, error) {
	var (
		l                      lendingstore.LoanRecord
		start, due, returnedOn sqlDate
	)

	err := rows.Scan(
		&l.ID, &l.BookID, &l.MemberID,
		&start, &due, &returnedOn,
		&l.Status, &l.ReturnCondition, &l.ReturnNotes, &l.HasDamage,
		&l.FineID, &l.Version,
	)
	if err != nil {
		return lendingstore.LoanRecord{}, err
	}

	l.StartDate = start.time
	l.DueDate = due.ptr()
	l.ReturnDate = returnedOn.ptr()

	return l, nil
}

func loanOrder() []exp.OrderedExpression {
	return []exp.OrderedExpression{goqu.C(colStartDate).Asc(), goqu.C(colID).Asc()}
}

// FindLoanByID returns lendingstore.ErrNotFound when no loan has the id.
func (s *Store) FindLoanByID(ctx context.Context, id string) (lendingstore.LoanRecord, error) {
	sel := s.selectLoans().Where(goqu.C(colID).Eq(id)).Limit(1)

	return first(queryRecords(ctx, s, tableLoans, sel, scanLoan))
}

func (s *Store) FindLoansByStatus(ctx context.Context, status string) ([]lendingstore.LoanRecord, error) {
	sel := s.selectLoans().Where(goqu.C(colStatus).Eq(status)).Order(loanOrder()...)

	return queryRecords(ctx, s, tableLoans, sel, scanLoan)
}

func (s *Store) FindLoansByMember(ctx context.Context, memberID string) ([]lendingstore.LoanRecord, error) {
	sel := s.selectLoans().Where(goqu.C(colMemberID).Eq(memberID)).Order(loanOrder()...)

	return queryRecords(ctx, s, tableLoans, sel, scanLoan)
}

// FindOverdueBefore returns open loans (ACTIVE or OVERDUE) that started strictly before date.
func (s *Store) FindOverdueBefore(ctx context.Context, date time.Time) ([]lendingstore.LoanRecord, error) {
	sel := s.selectLoans().
		Where(
			goqu.C(colStatus).In(lendingstore.LoanStatusActive, lendingstore.LoanStatusOverdue),
			goqu.C(colStartDate).Lt(sqlDateValue(date)),
		).
		Order(loanOrder()...)

	return queryRecords(ctx, s, tableLoans, sel, scanLoan)
}

// --- fines ---

func fineCol(name string) exp.IdentifierExpression {
	return goqu.T(aliasFine).Col(name)
}

func loanCol(name string) exp.IdentifierExpression {
	return goqu.T(aliasLoan).Col(name)
}

func (s *Store) selectFines() *goqu.SelectDataset {
	return s.builder().
		From(goqu.T(s.table(tableFines)).As(aliasFine)).
		Select(
			fineCol(colID), fineCol(colLoanID), fineCol(colAmount), fineCol(colReason),
			fineCol(colNotes), fineCol(colSettled), fineCol(colIssuedOn), fineCol(colVersion),
		)
}

func (s *Store) joinLoans(sel *goqu.SelectDataset) *goqu.SelectDataset {
	return sel.Join(
		goqu.T(s.table(tableLoans)).As(aliasLoan),
		goqu.On(loanCol(colID).Eq(fineCol(colLoanID))),
	)
}

func scanFine(rows adapters.DBRows) (lendingstore.FineRecord, error) {
	var (
		f      lendingstore.FineRecord
		issued sqlDate
	)

	err := rows.Scan(&f.ID, &f.LoanID, &f.Amount, &f.Reason, &f.Notes, &f.Settled, &issued, &f.Version)
	if err != nil {
		return lendingstore.FineRecord{}, err
	}

	f.Amount = f.Amount.Round(2)
	f.IssuedOn = issued.time

	return f, nil
}

func fineOrder() []exp.OrderedExpression {
	return []exp.OrderedExpression{fineCol(colIssuedOn).Asc(), fineCol(colID).Asc()}
}

// FindFineByID returns lendingstore.ErrNotFound when no fine has the id.
func (s *Store) FindFineByID(ctx context.Context, id string) (lendingstore.FineRecord, error) {
	sel := s.selectFines().Where(fineCol(colID).Eq(id)).Limit(1)

	return first(queryRecords(ctx, s, tableFines, sel, scanFine))
}

// FindFineByLoan returns the single fine of the loan, or lendingstore.ErrNotFound.
func (s *Store) FindFineByLoan(ctx context.Context, loanID string) (lendingstore.FineRecord, error) {
	sel := s.selectFines().Where(fineCol(colLoanID).Eq(loanID)).Limit(1)

	return first(queryRecords(ctx, s, tableFines, sel, scanFine))
}

// FindUnsettledFines returns all outstanding fines ordered by issue date.
func (s *Store) FindUnsettledFines(ctx context.Context) ([]lendingstore.FineRecord, error) {
	sel := s.selectFines().Where(fineCol(colSettled).Eq(false)).Order(fineOrder()...)

	return queryRecords(ctx, s, tableFines, sel, scanFine)
}

func (s *Store) FindUnsettledFinesByMember(ctx context.Context, memberID string) ([]lendingstore.FineRecord, error) {
	sel := s.joinLoans(s.selectFines()).
		Where(
			loanCol(colMemberID).Eq(memberID),
			fineCol(colSettled).Eq(false),
		).
		Order(fineOrder()...)

	return queryRecords(ctx, s, tableFines, sel, scanFine)
}

// SumUnsettledByMember totals the member's outstanding fines, zero when there are none.
func (s *Store) SumUnsettledByMember(ctx context.Context, memberID string) (decimal.Decimal, error) {
	sel := s.joinLoans(s.builder().From(goqu.T(s.table(tableFines)).As(aliasFine))).
		Select(goqu.COALESCE(goqu.SUM(fineCol(colAmount)), 0)).
		Where(
			loanCol(colMemberID).Eq(memberID),
			fineCol(colSettled).Eq(false),
		)

	sums, err := queryRecords(ctx, s, tableFines, sel, func(rows adapters.DBRows) (decimal.Decimal, error) {
		var sum decimal.Decimal
		err := rows.Scan(&sum)
		return sum, err
	})
	if err != nil {
		return decimal.Zero, err
	}

	if len(sums) == 0 {
		return decimal.Zero, nil
	}

	return sums[0].Round(2), nil
}

// --- journal ---

// ReadJournal returns the latest limit journal entries in the order they were written.
func (s *Store) ReadJournal(ctx context.Context, limit uint) (lendingstore.JournalEntries, error) {
	sel := s.builder().
		From(s.table(tableJournal)).
		Select(colSequenceNumber, colEventType, colOccurredAt, colPayload, colMetadata).
		Order(goqu.C(colSequenceNumber).Desc()).
		Limit(limit)

	entries, err := queryRecords(ctx, s, tableJournal, sel, func(rows adapters.DBRows) (lendingstore.JournalEntry, error) {
		var (
			entry      lendingstore.JournalEntry
			occurredAt sqlTimestamp
		)

		if err := rows.Scan(&entry.SequenceNumber, &entry.EventType, &occurredAt, &entry.PayloadJSON, &entry.MetadataJSON); err != nil {
			return lendingstore.JournalEntry{}, err
		}

		entry.OccurredAt = occurredAt.time

		return entry, nil
	})
	if err != nil {
		return nil, err
	}

	slices.Reverse(entries)

	return entries, nil
}
