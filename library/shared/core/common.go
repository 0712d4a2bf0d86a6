package core

import (
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// BookIDString represents a book identifier
type BookIDString = string

// MemberIDString represents a member identifier
type MemberIDString = string

// LoanIDString represents a loan identifier
type LoanIDString = string

// FineIDString represents a fine identifier
type FineIDString = string

// EventTypeString represents the type of a domain event
type EventTypeString = string

// DateString represents a calendar date in the YYYY-MM-DD layout
type DateString = string

// AmountString represents a decimal amount with 2 fractional digits
type AmountString = string

// OccurredAtTS represents when an event occurred
type OccurredAtTS = time.Time

// DateLayout is the layout of DateString.
const DateLayout = "2006-01-02"

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}

// ToDate converts a time to the calendar date it falls on in UTC, at midnight.
func ToDate(t time.Time) time.Time {
	t = t.UTC()

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a DateString.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}

	return ToDate(t), nil
}

// FormatDate renders a date as DateString.
func FormatDate(t time.Time) DateString {
	return ToDate(t).Format(DateLayout)
}

// FormatOptionalDate renders a date as DateString, or "" for nil.
func FormatOptionalDate(t *time.Time) DateString {
	if t == nil {
		return ""
	}

	return FormatDate(*t)
}

// DaysBetween returns the number of calendar days from from to to, negative if to is earlier.
func DaysBetween(from time.Time, to time.Time) int {
	return int(ToDate(to).Sub(ToDate(from)).Hours() / 24)
}

// AddDays returns the date n calendar days after t.
func AddDays(t time.Time, n int) time.Time {
	return ToDate(t).AddDate(0, 0, n)
}
