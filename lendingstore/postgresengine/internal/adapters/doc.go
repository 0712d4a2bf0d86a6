// Package adapters provides the database adapter implementations for the lending store engine.
//
// The engine works with pgxpool.Pool, sql.DB and sqlx.DB. Each adapter exposes the same
// DBAdapter interface for plain reads and writes and hands out DBTx values so that one
// ChangeSet is committed inside a single transaction, whatever the connection type.
package adapters
