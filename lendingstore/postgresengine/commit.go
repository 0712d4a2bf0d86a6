package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/lendingstore/postgresengine/internal/adapters"
)

// commitStatement is one write of a ChangeSet. Guarded statements are version-checked updates
// and must affect exactly one row.
type commitStatement struct {
	table   string
	sql     string
	guarded bool
}

// Commit atomically writes all records and journal entries of the change set.
//
// New records (Version 0) are inserted with version 1, all others are updated only where the stored
// version still matches. A guarded update affecting no row or a violated unique key rolls back the
// whole transaction and returns lendingstore.ErrConcurrencyConflict.
func (s *Store) Commit(ctx context.Context, changes lendingstore.ChangeSet) error {
	if changes.IsEmpty() {
		return lendingstore.ErrEmptyChangeSet
	}

	observer, ctx := s.startCommitObserver(ctx, changes)

	statements, err := s.buildCommitStatements(changes)
	if err != nil {
		s.logError(ctx, logMsgBuildQueryFailed, err)
		observer.finishError(errorTypeBuildQuery)

		return errors.Join(lendingstore.ErrBuildingQueryFailed, err)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		s.logError(ctx, logMsgBeginTxFailed, err)
		observer.finishError(errorTypeBeginTx)

		return errors.Join(lendingstore.ErrBeginningTxFailed, err)
	}

	for _, statement := range statements {
		if errorType, execErr := s.execCommitStatement(ctx, tx, statement); execErr != nil {
			s.rollback(ctx, tx)
			observer.finishError(errorType)

			return execErr
		}
	}

	if err = tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			s.logOperation(ctx, logMsgConcurrencyConflict, logAttrTable, "commit")
			observer.finishError(errorTypeConcurrencyConflict)

			return lendingstore.ErrConcurrencyConflict
		}

		s.logError(ctx, logMsgCommitTxFailed, err)
		observer.finishError(errorTypeCommitTx)

		return errors.Join(lendingstore.ErrCommittingTxFailed, err)
	}

	s.logOperation(
		ctx,
		logMsgChangesCommitted,
		logAttrRecordCount, recordCount(changes),
		logAttrJournalCount, len(changes.Journal),
		logAttrDurationMS, s.toMilliseconds(observer.elapsed()),
	)
	observer.finishSuccess(recordCount(changes) + len(changes.Journal))

	return nil
}

// execCommitStatement runs one statement inside the transaction and returns the error type for
// metrics along with the error.
func (s *Store) execCommitStatement(ctx context.Context, tx adapters.DBTx, statement commitStatement) (string, error) {
	start := time.Now()
	result, err := tx.Exec(ctx, statement.sql)
	s.logQueryWithDuration(ctx, statement.sql, logActionCommit, time.Since(start))

	if err != nil {
		if isUniqueViolation(err) {
			s.logOperation(ctx, logMsgConcurrencyConflict, logAttrTable, statement.table, logAttrError, err.Error())
			return errorTypeConcurrencyConflict, lendingstore.ErrConcurrencyConflict
		}

		s.logError(ctx, logMsgDBExecFailed, err, logAttrTable, statement.table, logAttrQuery, statement.sql)

		return errorTypeDatabaseExec, errors.Join(lendingstore.ErrWritingRecordFailed, err)
	}

	if !statement.guarded {
		return "", nil
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		s.logError(ctx, logMsgRowsAffectedFailed, err, logAttrTable, statement.table)
		return errorTypeRowsAffected, errors.Join(lendingstore.ErrGettingRowsAffectedFailed, err)
	}

	if rowsAffected < 1 {
		s.logOperation(ctx, logMsgConcurrencyConflict, logAttrTable, statement.table)
		return errorTypeConcurrencyConflict, lendingstore.ErrConcurrencyConflict
	}

	return "", nil
}

func (s *Store) rollback(ctx context.Context, tx adapters.DBTx) {
	// the failed statement's context may already be canceled, the rollback must still reach the DB
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil {
		s.logError(ctx, logMsgRollbackFailed, err)
	}
}

// buildCommitStatements orders writes so that referenced rows exist first: books and members,
// then loans, then fines, then the journal.
func (s *Store) buildCommitStatements(changes lendingstore.ChangeSet) ([]commitStatement, error) {
	statements := make([]commitStatement, 0, recordCount(changes)+len(changes.Journal))

	add := func(table string, record goqu.Record, id string, version int64) error {
		statement, err := s.buildWrite(table, record, id, version)
		if err != nil {
			return err
		}

		statements = append(statements, statement)

		return nil
	}

	for _, b := range changes.Books {
		if err := add(tableBooks, bookRow(b), b.ID, b.Version); err != nil {
			return nil, err
		}
	}

	for _, m := range changes.Members {
		if err := add(tableMembers, memberRow(m), m.ID, m.Version); err != nil {
			return nil, err
		}
	}

	for _, l := range changes.Loans {
		if err := add(tableLoans, loanRow(l), l.ID, l.Version); err != nil {
			return nil, err
		}
	}

	for _, f := range changes.Fines {
		if err := add(tableFines, fineRow(f), f.ID, f.Version); err != nil {
			return nil, err
		}
	}

	for _, entry := range changes.Journal {
		sqlQuery, _, err := s.builder().
			Insert(s.table(tableJournal)).
			Rows(goqu.Record{
				colEventType:  entry.EventType,
				colOccurredAt: sqlTimestampValue(entry.OccurredAt),
				colPayload:    string(entry.PayloadJSON),
				colMetadata:   string(entry.MetadataJSON),
			}).
			ToSQL()
		if err != nil {
			return nil, err
		}

		statements = append(statements, commitStatement{table: tableJournal, sql: sqlQuery})
	}

	return statements, nil
}

// buildWrite builds the insert (version 0) or the version-guarded update of one entity row.
func (s *Store) buildWrite(table string, record goqu.Record, id string, version int64) (commitStatement, error) {
	if version == 0 {
		record[colID] = id
		record[colVersion] = int64(1)

		sqlQuery, _, err := s.builder().Insert(s.table(table)).Rows(record).ToSQL()
		if err != nil {
			return commitStatement{}, err
		}

		return commitStatement{table: table, sql: sqlQuery}, nil
	}

	record[colVersion] = version + 1

	sqlQuery, _, err := s.builder().
		Update(s.table(table)).
		Set(record).
		Where(
			goqu.C(colID).Eq(id),
			goqu.C(colVersion).Eq(version),
		).
		ToSQL()
	if err != nil {
		return commitStatement{}, err
	}

	return commitStatement{table: table, sql: sqlQuery, guarded: true}, nil
}

func bookRow(b lendingstore.BookRecord) goqu.Record {
	return goqu.Record{
		colTitle:    b.Title,
		colAuthor:   b.Author,
		colISBN:     b.ISBN,
		colCategory: b.Category,
		colStatus:   b.Status,
	}
}

func memberRow(m lendingstore.MemberRecord) goqu.Record {
	return goqu.Record{
		colName:         m.Name,
		colMemberNumber: m.MemberNumber,
		colNationalID:   m.NationalID,
	}
}

func loanRow(l lendingstore.LoanRecord) goqu.Record {
	return goqu.Record{
		colBookID:          l.BookID,
		colMemberID:        l.MemberID,
		colStartDate:       sqlDateValue(l.StartDate),
		colDueDate:         sqlNullableDateValue(l.DueDate),
		colReturnDate:      sqlNullableDateValue(l.ReturnDate),
		colStatus:          l.Status,
		colReturnCondition: l.ReturnCondition,
		colReturnNotes:     l.ReturnNotes,
		colHasDamage:       l.HasDamage,
		colFineID:          l.FineID,
	}
}

func fineRow(f lendingstore.FineRecord) goqu.Record {
	return goqu.Record{
		colLoanID:   f.LoanID,
		colAmount:   f.Amount.StringFixed(2),
		colReason:   f.Reason,
		colNotes:    f.Notes,
		colSettled:  f.Settled,
		colIssuedOn: sqlDateValue(f.IssuedOn),
	}
}
