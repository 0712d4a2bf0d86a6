package postgresengine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	dateLayout = "2006-01-02"

	pgUniqueViolation = "23505"

	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
	sqliteUniqueMessage        = "UNIQUE constraint failed"
)

// sqlDateValue renders a calendar date as a literal both dialects accept for their date column.
func sqlDateValue(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// sqlNullableDateValue is sqlDateValue for optional dates, nil renders as NULL.
func sqlNullableDateValue(t *time.Time) any {
	if t == nil {
		return nil
	}

	return sqlDateValue(*t)
}

func sqlTimestampValue(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// sqlDate scans DATE columns from pgx and lib/pq (time.Time) and TEXT columns from sqlite.
type sqlDate struct {
	time  time.Time
	valid bool
}

func (d *sqlDate) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.time, d.valid = time.Time{}, false
		return nil
	case time.Time:
		d.time, d.valid = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC), true
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into a date", src)
	}
}

func (d *sqlDate) parse(value string) error {
	if len(value) > len(dateLayout) {
		value = value[:len(dateLayout)]
	}

	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return err
	}

	d.time, d.valid = parsed, true

	return nil
}

func (d *sqlDate) ptr() *time.Time {
	if !d.valid {
		return nil
	}

	t := d.time

	return &t
}

// sqlTimestamp scans TIMESTAMPTZ columns (time.Time) and RFC 3339 TEXT columns.
type sqlTimestamp struct {
	time time.Time
}

func (ts *sqlTimestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		ts.time = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into a timestamp", src)
	}
}

func (ts *sqlTimestamp) parse(value string) error {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return err
	}

	ts.time = parsed.UTC()

	return nil
}

// isUniqueViolation detects duplicate key errors from pgx, lib/pq and modernc sqlite.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}

	var sqliteErr interface{ Code() int }
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		if code == sqliteConstraintUnique || code == sqliteConstraintPrimaryKey {
			return true
		}
	}

	return strings.Contains(err.Error(), sqliteUniqueMessage)
}
