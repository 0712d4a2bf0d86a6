package lendingstore

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

// Status vocabulary shared by engines and the domain mapping. Engines need it for the
// few queries that filter by status on their own (overdue candidates, active loan counts).
const (
	BookStatusAvailable   = "AVAILABLE"
	BookStatusLoaned      = "LOANED"
	BookStatusMaintenance = "MAINTENANCE"

	LoanStatusActive  = "ACTIVE"
	LoanStatusOverdue = "OVERDUE"
	LoanStatusClosed  = "CLOSED"
)

// BookRecord is the persisted form of a book.
type BookRecord struct {
	ID       string
	Title    string
	Author   string
	ISBN     string
	Category string
	Status   string
	Version  int64
}

// MemberRecord is the persisted form of a library member.
type MemberRecord struct {
	ID           string
	Name         string
	MemberNumber int64
	NationalID   string
	Version      int64
}

// LoanRecord is the persisted form of a loan.
// Dates are calendar dates at midnight UTC, nil when not set.
// ReturnCondition is empty when none was reported, FineID until a fine is recorded.
type LoanRecord struct {
	ID              string
	BookID          string
	MemberID        string
	StartDate       time.Time
	DueDate         *time.Time
	ReturnDate      *time.Time
	Status          string
	ReturnCondition string
	ReturnNotes     string
	HasDamage       bool
	FineID          string
	Version         int64
}

// FineRecord is the persisted form of a fine. LoanID is unique across all fines.
type FineRecord struct {
	ID       string
	LoanID   string
	Amount   decimal.Decimal
	Reason   string
	Notes    string
	Settled  bool
	IssuedOn time.Time
	Version  int64
}

// IsNew reports whether the record has never been committed.
func (r BookRecord) IsNew() bool { return r.Version == 0 }

// IsNew reports whether the record has never been committed.
func (r MemberRecord) IsNew() bool { return r.Version == 0 }

// IsNew reports whether the record has never been committed.
func (r LoanRecord) IsNew() bool { return r.Version == 0 }

// IsNew reports whether the record has never been committed.
func (r FineRecord) IsNew() bool { return r.Version == 0 }

// JournalEntry is a DTO for one row of the lending journal.
//
// It is built on scalars to stay agnostic of the domain event types of the client code.
// It should only be constructed with BuildJournalEntry.
type JournalEntry struct {
	SequenceNumber int64 // assigned by the engine, zero until read back
	EventType      string
	OccurredAt     time.Time
	PayloadJSON    []byte
	MetadataJSON   []byte
}

// JournalEntries is an alias type for a slice of JournalEntry.
type JournalEntries = []JournalEntry

// BuildJournalEntry is the factory for JournalEntry.
// It returns an error if payloadJSON or metadataJSON are not valid JSON.
func BuildJournalEntry(eventType string, occurredAt time.Time, payloadJSON []byte, metadataJSON []byte) (JournalEntry, error) {
	if !jsoniter.ConfigFastest.Valid(payloadJSON) {
		return JournalEntry{}, ErrInvalidPayloadJSON
	}

	if !jsoniter.ConfigFastest.Valid(metadataJSON) {
		return JournalEntry{}, ErrInvalidMetadataJSON
	}

	return JournalEntry{
		EventType:    eventType,
		OccurredAt:   occurredAt,
		PayloadJSON:  payloadJSON,
		MetadataJSON: metadataJSON,
	}, nil
}

// ChangeSet is everything one decision writes. Engines commit it atomically:
// either all records and journal entries are written, or none is.
//
// A record with Version 0 is inserted with version 1. Any other record is updated
// only if the stored version still equals Version, and the stored version is then
// incremented.
type ChangeSet struct {
	Books   []BookRecord
	Members []MemberRecord
	Loans   []LoanRecord
	Fines   []FineRecord
	Journal JournalEntries
}

// IsEmpty reports whether the change set contains neither records nor journal entries.
func (c ChangeSet) IsEmpty() bool {
	return len(c.Books) == 0 &&
		len(c.Members) == 0 &&
		len(c.Loans) == 0 &&
		len(c.Fines) == 0 &&
		len(c.Journal) == 0
}
