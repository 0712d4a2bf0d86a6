package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS {prefix}books (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		isbn TEXT NOT NULL UNIQUE,
		category TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		version BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS {prefix}members (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		member_number BIGINT NOT NULL UNIQUE,
		national_id TEXT NOT NULL UNIQUE,
		version BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS {prefix}loans (
		id UUID PRIMARY KEY,
		book_id UUID NOT NULL REFERENCES {prefix}books (id),
		member_id UUID NOT NULL REFERENCES {prefix}members (id),
		start_date DATE NOT NULL,
		due_date DATE NULL,
		return_date DATE NULL,
		status TEXT NOT NULL,
		return_condition TEXT NOT NULL DEFAULT '',
		return_notes TEXT NOT NULL DEFAULT '',
		has_damage BOOLEAN NOT NULL DEFAULT FALSE,
		fine_id TEXT NOT NULL DEFAULT '',
		version BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS {prefix}loans_member_idx ON {prefix}loans (member_id)`,
	`CREATE INDEX IF NOT EXISTS {prefix}loans_status_idx ON {prefix}loans (status, start_date)`,
	`CREATE TABLE IF NOT EXISTS {prefix}fines (
		id UUID PRIMARY KEY,
		loan_id UUID NOT NULL UNIQUE REFERENCES {prefix}loans (id),
		amount NUMERIC(12, 2) NOT NULL CHECK (amount > 0),
		reason TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		settled BOOLEAN NOT NULL DEFAULT FALSE,
		issued_on DATE NOT NULL,
		version BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS {prefix}fines_settled_idx ON {prefix}fines (settled, issued_on)`,
	`CREATE TABLE IF NOT EXISTS {prefix}lending_journal (
		sequence_number BIGSERIAL PRIMARY KEY,
		event_type TEXT NOT NULL,
		occurred_at TIMESTAMP WITH TIME ZONE NOT NULL,
		payload JSONB NOT NULL,
		metadata JSONB NOT NULL
	)`,
}

// sqlite stores dates, amounts and ids as TEXT so values round-trip exactly.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS {prefix}books (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		isbn TEXT NOT NULL UNIQUE,
		category TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		version INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS {prefix}members (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		member_number INTEGER NOT NULL UNIQUE,
		national_id TEXT NOT NULL UNIQUE,
		version INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS {prefix}loans (
		id TEXT PRIMARY KEY,
		book_id TEXT NOT NULL REFERENCES {prefix}books (id),
		member_id TEXT NOT NULL REFERENCES {prefix}members (id),
		start_date TEXT NOT NULL,
		due_date TEXT NULL,
		return_date TEXT NULL,
		status TEXT NOT NULL,
		return_condition TEXT NOT NULL DEFAULT '',
		return_notes TEXT NOT NULL DEFAULT '',
		has_damage INTEGER NOT NULL DEFAULT 0,
		fine_id TEXT NOT NULL DEFAULT '',
		version INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS {prefix}loans_member_idx ON {prefix}loans (member_id)`,
	`CREATE INDEX IF NOT EXISTS {prefix}loans_status_idx ON {prefix}loans (status, start_date)`,
	`CREATE TABLE IF NOT EXISTS {prefix}fines (
		id TEXT PRIMARY KEY,
		loan_id TEXT NOT NULL UNIQUE REFERENCES {prefix}loans (id),
		amount TEXT NOT NULL,
		reason TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		settled INTEGER NOT NULL DEFAULT 0,
		issued_on TEXT NOT NULL,
		version INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS {prefix}fines_settled_idx ON {prefix}fines (settled, issued_on)`,
	`CREATE TABLE IF NOT EXISTS {prefix}lending_journal (
		sequence_number INTEGER PRIMARY KEY AUTOINCREMENT,
		event_type TEXT NOT NULL,
		occurred_at TEXT NOT NULL,
		payload TEXT NOT NULL,
		metadata TEXT NOT NULL
	)`,
}

// CreateSchema creates all tables and indexes if they do not exist yet.
func (s *Store) CreateSchema(ctx context.Context) error {
	var statements []string

	switch s.dialect {
	case dialectPostgres:
		statements = postgresSchema
	case dialectSQLite:
		statements = sqliteSchema
	default:
		return fmt.Errorf("%w: %s", lendingstore.ErrUnsupportedDialect, s.dialect)
	}

	start := time.Now()

	for _, statement := range statements {
		ddl := strings.ReplaceAll(statement, "{prefix}", s.tablePrefix)

		if _, err := s.db.Exec(ctx, ddl); err != nil {
			s.logError(ctx, logMsgDBExecFailed, err, logAttrQuery, ddl)
			return errors.Join(lendingstore.ErrCreatingSchemaFailed, err)
		}
	}

	s.logOperation(ctx, logActionSchema, logAttrDialect, s.dialect, logAttrDurationMS, s.toMilliseconds(time.Since(start)))
	s.logDebug(ctx, logMsgSchemaCreated, logAttrDialect, s.dialect)

	return nil
}
