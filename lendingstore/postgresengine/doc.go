// Package postgresengine provides the SQL implementation of the lending store.
//
// The same Store runs on PostgreSQL (through a pgx pool, a database/sql DB or a sqlx DB)
// and on SQLite (through a modernc.org/sqlite database/sql DB). Queries are built with goqu
// in the matching dialect.
//
// Key features:
//   - Multiple database adapter support (PGX, SQL, SQLX)
//   - Atomic commits of a ChangeSet inside one transaction, journal entries included
//   - Optimistic concurrency: guarded updates on the version column, unique keys on inserts
//   - Optional read replica for eventually consistent queries (pgx only)
//   - Configurable table prefix, logging, metrics and tracing
//
// Usage examples:
//
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewStoreFromPGXPool(db)
//	_ = store.CreateSchema(ctx)
//
//	// Embedded
//	sqliteDB, _ := sql.Open("sqlite", "library.db")
//	store, _ := postgresengine.NewStoreFromSQLite(
//		sqliteDB,
//		postgresengine.WithTablePrefix("lib_"),
//		postgresengine.WithLogger(logger),
//	)
//
//	loan, _ := store.FindLoanByID(ctx, loanID)
//	err := store.Commit(ctx, changes) // errors.Is(err, lendingstore.ErrConcurrencyConflict) on a lost race
package postgresengine
