package postgresengine

import (
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/lendingstore/postgresengine/internal/adapters"
)

const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite3"

	tableBooks   = "books"
	tableMembers = "members"
	tableLoans   = "loans"
	tableFines   = "fines"
	tableJournal = "lending_journal"

	aliasFine = "f"
	aliasLoan = "l"

	colID              = "id"
	colVersion         = "version"
	colTitle           = "title"
	colAuthor          = "author"
	colISBN            = "isbn"
	colCategory        = "category"
	colStatus          = "status"
	colName            = "name"
	colMemberNumber    = "member_number"
	colNationalID      = "national_id"
	colBookID          = "book_id"
	colMemberID        = "member_id"
	colStartDate       = "start_date"
	colDueDate         = "due_date"
	colReturnDate      = "return_date"
	colReturnCondition = "return_condition"
	colReturnNotes     = "return_notes"
	colHasDamage       = "has_damage"
	colFineID          = "fine_id"
	colLoanID          = "loan_id"
	colAmount          = "amount"
	colReason          = "reason"
	colNotes           = "notes"
	colSettled         = "settled"
	colIssuedOn        = "issued_on"
	colSequenceNumber  = "sequence_number"
	colEventType       = "event_type"
	colOccurredAt      = "occurred_at"
	colPayload         = "payload"
	colMetadata        = "metadata"

	logMsgBuildQueryFailed    = "failed to build sql statement"
	logMsgDBQueryFailed       = "database query execution failed"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgBeginTxFailed       = "failed to begin transaction"
	logMsgDBExecFailed        = "database execution failed during commit"
	logMsgRowsAffectedFailed  = "failed to get rows affected count"
	logMsgRollbackFailed      = "failed to roll back transaction"
	logMsgCommitTxFailed      = "failed to commit transaction"
	logMsgQueryCompleted      = "query completed"
	logMsgChangesCommitted    = "changes committed"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logMsgSchemaCreated       = "schema created"
	logMsgSQLExecuted         = "executed sql for: "
	logMsgOperation           = "lendingstore operation: "
	logAttrError              = "error"
	logAttrQuery              = "query"
	logAttrTable              = "table"
	logAttrRecordCount        = "record_count"
	logAttrJournalCount       = "journal_count"
	logAttrDurationMS         = "duration_ms"
	logAttrDialect            = "dialect"
	logActionQuery            = "query"
	logActionCommit           = "commit"
	logActionSchema           = "schema"
)

// Store is the SQL lending store. It is safe for concurrent use.
type Store struct {
	db               adapters.DBAdapter
	dialect          string
	tablePrefix      string
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil {
		return nil, lendingstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), dialectPostgres, options)
}

// NewStoreFromPGXPoolAndReplica creates a new Store using a primary pool for writes and
// strongly consistent reads, and a replica pool for reads that carry
// lendingstore.WithEventualConsistency in their context.
func NewStoreFromPGXPoolAndReplica(primary *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*Store, error) {
	if primary == nil || replica == nil {
		return nil, lendingstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapterWithReplica(primary, replica), dialectPostgres, options)
}

// NewStoreFromSQLDB creates a new Store on PostgreSQL using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, lendingstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), dialectPostgres, options)
}

// NewStoreFromSQLX creates a new Store on PostgreSQL using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, lendingstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), dialectPostgres, options)
}

// NewStoreFromSQLite creates a new Store on SQLite using a sql.DB opened with the
// modernc.org/sqlite driver.
func NewStoreFromSQLite(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, lendingstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), dialectSQLite, options)
}

func newStore(db adapters.DBAdapter, dialect string, options []Option) (*Store, error) {
	s := &Store{
		db:      db,
		dialect: dialect,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Dialect returns the goqu dialect name the store builds its SQL in.
func (s *Store) Dialect() string {
	return s.dialect
}

func (s *Store) builder() goqu.DialectWrapper {
	return goqu.Dialect(s.dialect)
}

func (s *Store) table(name string) string {
	return s.tablePrefix + name
}
