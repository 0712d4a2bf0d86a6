package shell

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// ErrMappingFromRecordFailed is returned when a persisted record holds a malformed id.
var ErrMappingFromRecordFailed = errors.New("mapping from record failed")

// BookFromRecord converts a BookRecord to a core.Book.
func BookFromRecord(record lendingstore.BookRecord) (core.Book, error) {
	id, err := parseID(record.ID)
	if err != nil {
		return core.Book{}, err
	}

	return core.Book{
		ID:       id,
		Title:    record.Title,
		Author:   record.Author,
		ISBN:     record.ISBN,
		Category: record.Category,
		Status:   core.BookStatus(record.Status),
		Version:  record.Version,
	}, nil
}

// BookToRecord converts a core.Book to a BookRecord.
func BookToRecord(book core.Book) lendingstore.BookRecord {
	return lendingstore.BookRecord{
		ID:       book.ID.String(),
		Title:    book.Title,
		Author:   book.Author,
		ISBN:     book.ISBN,
		Category: book.Category,
		Status:   string(book.Status),
		Version:  book.Version,
	}
}

// MemberFromRecord converts a MemberRecord to a core.Member.
func MemberFromRecord(record lendingstore.MemberRecord) (core.Member, error) {
	id, err := parseID(record.ID)
	if err != nil {
		return core.Member{}, err
	}

	return core.Member{
		ID:           id,
		Name:         record.Name,
		MemberNumber: record.MemberNumber,
		NationalID:   record.NationalID,
		Version:      record.Version,
	}, nil
}

// MemberToRecord converts a core.Member to a MemberRecord.
func MemberToRecord(member core.Member) lendingstore.MemberRecord {
	return lendingstore.MemberRecord{
		ID:           member.ID.String(),
		Name:         member.Name,
		MemberNumber: member.MemberNumber,
		NationalID:   member.NationalID,
		Version:      member.Version,
	}
}

// LoanFromRecord converts a LoanRecord to a core.Loan.
func LoanFromRecord(record lendingstore.LoanRecord) (core.Loan, error) {
	ids, err := parseIDs(record.ID, record.BookID, record.MemberID)
	if err != nil {
		return core.Loan{}, err
	}

	loan := core.Loan{
		ID:          ids[0],
		BookID:      ids[1],
		MemberID:    ids[2],
		StartDate:   core.ToDate(record.StartDate),
		DueDate:     optionalDate(record.DueDate),
		ReturnDate:  optionalDate(record.ReturnDate),
		Status:      core.LoanStatus(record.Status),
		ReturnNotes: record.ReturnNotes,
		HasDamage:   record.HasDamage,
		Version:     record.Version,
	}

	if record.ReturnCondition != "" {
		condition := core.ReturnCondition(record.ReturnCondition)
		loan.ReturnCondition = &condition
	}

	if record.FineID != "" {
		fineID, err := parseID(record.FineID)
		if err != nil {
			return core.Loan{}, err
		}

		loan.FineID = &fineID
	}

	return loan, nil
}

// LoanToRecord converts a core.Loan to a LoanRecord.
func LoanToRecord(loan core.Loan) lendingstore.LoanRecord {
	record := lendingstore.LoanRecord{
		ID:          loan.ID.String(),
		BookID:      loan.BookID.String(),
		MemberID:    loan.MemberID.String(),
		StartDate:   core.ToDate(loan.StartDate),
		DueDate:     optionalDate(loan.DueDate),
		ReturnDate:  optionalDate(loan.ReturnDate),
		Status:      string(loan.Status),
		ReturnNotes: loan.ReturnNotes,
		HasDamage:   loan.HasDamage,
		Version:     loan.Version,
	}

	if loan.ReturnCondition != nil {
		record.ReturnCondition = string(*loan.ReturnCondition)
	}

	if loan.FineID != nil {
		record.FineID = loan.FineID.String()
	}

	return record
}

// FineFromRecord converts a FineRecord to a core.Fine.
func FineFromRecord(record lendingstore.FineRecord) (core.Fine, error) {
	ids, err := parseIDs(record.ID, record.LoanID)
	if err != nil {
		return core.Fine{}, err
	}

	return core.Fine{
		ID:       ids[0],
		LoanID:   ids[1],
		Amount:   record.Amount.Round(2),
		Reason:   record.Reason,
		Notes:    record.Notes,
		Settled:  record.Settled,
		IssuedOn: core.ToDate(record.IssuedOn),
		Version:  record.Version,
	}, nil
}

// FineToRecord converts a core.Fine to a FineRecord.
func FineToRecord(fine core.Fine) lendingstore.FineRecord {
	return lendingstore.FineRecord{
		ID:       fine.ID.String(),
		LoanID:   fine.LoanID.String(),
		Amount:   fine.Amount.Round(2),
		Reason:   fine.Reason,
		Notes:    fine.Notes,
		Settled:  fine.Settled,
		IssuedOn: core.ToDate(fine.IssuedOn),
		Version:  fine.Version,
	}
}

// LoansFromRecords converts LoanRecords, keeping their order.
func LoansFromRecords(records []lendingstore.LoanRecord) ([]core.Loan, error) {
	return mapRecords(records, LoanFromRecord)
}

// FinesFromRecords converts FineRecords, keeping their order.
func FinesFromRecords(records []lendingstore.FineRecord) ([]core.Fine, error) {
	return mapRecords(records, FineFromRecord)
}

// BooksFromRecords converts BookRecords, keeping their order.
func BooksFromRecords(records []lendingstore.BookRecord) ([]core.Book, error) {
	return mapRecords(records, BookFromRecord)
}

// ChangeSetFrom converts the changes and the event of a decision into one ChangeSet.
func ChangeSetFrom(result core.DecisionResult, metadata EventMetadata) (lendingstore.ChangeSet, error) {
	changes := lendingstore.ChangeSet{}

	for _, book := range result.Changes.Books {
		changes.Books = append(changes.Books, BookToRecord(book))
	}

	for _, member := range result.Changes.Members {
		changes.Members = append(changes.Members, MemberToRecord(member))
	}

	for _, loan := range result.Changes.Loans {
		changes.Loans = append(changes.Loans, LoanToRecord(loan))
	}

	for _, fine := range result.Changes.Fines {
		changes.Fines = append(changes.Fines, FineToRecord(fine))
	}

	if result.Event != nil {
		entry, err := JournalEntryFrom(result.Event, metadata)
		if err != nil {
			return lendingstore.ChangeSet{}, err
		}

		changes.Journal = append(changes.Journal, entry)
	}

	return changes, nil
}

func mapRecords[R any, E any](records []R, convert func(R) (E, error)) ([]E, error) {
	entities := make([]E, 0, len(records))

	for _, record := range records {
		entity, err := convert(record)
		if err != nil {
			return nil, err
		}

		entities = append(entities, entity)
	}

	return entities, nil
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, errors.Join(ErrMappingFromRecordFailed, err)
	}

	return parsed, nil
}

func parseIDs(ids ...string) ([]uuid.UUID, error) {
	parsed := make([]uuid.UUID, 0, len(ids))

	for _, id := range ids {
		p, err := parseID(id)
		if err != nil {
			return nil, err
		}

		parsed = append(parsed, p)
	}

	return parsed, nil
}

func optionalDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	date := core.ToDate(*t)

	return &date
}
