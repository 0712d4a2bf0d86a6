// Package postgreswrapper opens a postgresengine.Store on a disposable PostgreSQL
// database through the client adapter named in LIBRARY_TEST_ADAPTER.
package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lendingstore/postgresengine"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell/config"
)

// AdapterEnv selects the client adapter: pgx (default), sql or sqlx.
const AdapterEnv = "LIBRARY_TEST_ADAPTER"

var tables = []string{"lending_journal", "fines", "loans", "members", "books"}

// Wrapper owns the database handle behind a Store.
type Wrapper interface {
	Store() *postgresengine.Store
	Exec(ctx context.Context, statement string) error
	QueryInt(ctx context.Context, query string) (int, error)
	Close()
}

// PGXPoolWrapper wraps a pgx pool.
type PGXPoolWrapper struct {
	pool  *pgxpool.Pool
	store *postgresengine.Store
}

func (w *PGXPoolWrapper) Store() *postgresengine.Store { return w.store }

func (w *PGXPoolWrapper) Exec(ctx context.Context, statement string) error {
	_, err := w.pool.Exec(ctx, statement)
	return err
}

func (w *PGXPoolWrapper) QueryInt(ctx context.Context, query string) (int, error) {
	var n int
	err := w.pool.QueryRow(ctx, query).Scan(&n)

	return n, err
}

func (w *PGXPoolWrapper) Close() { w.pool.Close() }

// SQLDBWrapper wraps a database/sql handle on lib/pq.
type SQLDBWrapper struct {
	db    *sql.DB
	store *postgresengine.Store
}

func (w *SQLDBWrapper) Store() *postgresengine.Store { return w.store }

func (w *SQLDBWrapper) Exec(ctx context.Context, statement string) error {
	_, err := w.db.ExecContext(ctx, statement)
	return err
}

func (w *SQLDBWrapper) QueryInt(ctx context.Context, query string) (int, error) {
	var n int
	err := w.db.QueryRowContext(ctx, query).Scan(&n)

	return n, err
}

func (w *SQLDBWrapper) Close() { _ = w.db.Close() }

// SQLXWrapper wraps a sqlx handle on lib/pq.
type SQLXWrapper struct {
	db    *sqlx.DB
	store *postgresengine.Store
}

func (w *SQLXWrapper) Store() *postgresengine.Store { return w.store }

func (w *SQLXWrapper) Exec(ctx context.Context, statement string) error {
	_, err := w.db.ExecContext(ctx, statement)
	return err
}

func (w *SQLXWrapper) QueryInt(ctx context.Context, query string) (int, error) {
	var n int
	err := w.db.GetContext(ctx, &n, query)

	return n, err
}

func (w *SQLXWrapper) Close() { _ = w.db.Close() }

// CreateWrapper connects to dsn with the adapter from AdapterEnv and creates the schema.
// The tables are dropped and the handle is closed when the test ends.
func CreateWrapper(t testing.TB, dsn string, tablePrefix string, options ...postgresengine.Option) Wrapper {
	t.Helper()

	ctx := context.Background()
	options = append(options, postgresengine.WithTablePrefix(tablePrefix))

	var wrapper Wrapper

	switch adapter := strings.ToLower(os.Getenv(AdapterEnv)); adapter {
	case config.AdapterPGX, "":
		poolConfig, err := config.PostgresPGXPoolConfig(dsn)
		require.NoError(t, err, "error in arranging test data")
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		require.NoError(t, err, "error connecting to DB pool in test setup")
		store, err := postgresengine.NewStoreFromPGXPool(pool, options...)
		require.NoError(t, err, "error in arranging test data")
		wrapper = &PGXPoolWrapper{pool: pool, store: store}

	case config.AdapterSQL:
		db, err := config.PostgresSQLDB(ctx, dsn)
		require.NoError(t, err, "error connecting to DB in test setup")
		store, err := postgresengine.NewStoreFromSQLDB(db, options...)
		require.NoError(t, err, "error in arranging test data")
		wrapper = &SQLDBWrapper{db: db, store: store}

	case config.AdapterSQLX:
		db, err := config.PostgresSQLX(ctx, dsn)
		require.NoError(t, err, "error connecting to DB in test setup")
		store, err := postgresengine.NewStoreFromSQLX(db, options...)
		require.NoError(t, err, "error in arranging test data")
		wrapper = &SQLXWrapper{db: db, store: store}

	default:
		t.Fatalf("unsupported %s: %q", AdapterEnv, adapter)
	}

	require.NoError(t, wrapper.Store().CreateSchema(ctx), "error in arranging test data")

	t.Cleanup(func() {
		DropTables(t, wrapper, tablePrefix)
		wrapper.Close()
	})

	return wrapper
}

// DropTables removes the tables created with tablePrefix.
func DropTables(t testing.TB, wrapper Wrapper, tablePrefix string) {
	t.Helper()

	for _, table := range tables {
		err := wrapper.Exec(context.Background(), fmt.Sprintf("DROP TABLE IF EXISTS %s%s", tablePrefix, table))
		require.NoError(t, err, "error cleaning up table %s%s", tablePrefix, table)
	}
}

// CountJournalEntries returns the number of rows in the lending journal.
func CountJournalEntries(t testing.TB, wrapper Wrapper, tablePrefix string) int {
	t.Helper()

	n, err := wrapper.QueryInt(context.Background(), fmt.Sprintf("SELECT count(*) FROM %slending_journal", tablePrefix))
	require.NoError(t, err, "error counting journal entries")

	return n
}
