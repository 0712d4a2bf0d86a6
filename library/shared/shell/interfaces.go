package shell

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
)

// BookStore loads books. Saving goes through Committer.
type BookStore interface {
	FindBookByID(ctx context.Context, id string) (lendingstore.BookRecord, error)
	ExistsBookByISBN(ctx context.Context, isbn string) (bool, error)
	FindBooksByStatus(ctx context.Context, status string) ([]lendingstore.BookRecord, error)
}

// MemberStore loads members and counts their active loans.
type MemberStore interface {
	FindMemberByID(ctx context.Context, id string) (lendingstore.MemberRecord, error)
	ExistsMemberByID(ctx context.Context, id string) (bool, error)
	ExistsMemberByNumberOrNationalID(ctx context.Context, memberNumber int64, nationalID string) (bool, error)
	CountActiveLoans(ctx context.Context, memberID string) (int, error)
}

// LoanStore loads loans.
type LoanStore interface {
	FindLoanByID(ctx context.Context, id string) (lendingstore.LoanRecord, error)
	FindLoansByStatus(ctx context.Context, status string) ([]lendingstore.LoanRecord, error)
	FindLoansByMember(ctx context.Context, memberID string) ([]lendingstore.LoanRecord, error)
	FindOverdueBefore(ctx context.Context, date time.Time) ([]lendingstore.LoanRecord, error)
}

// FineStore loads fines and sums what members owe.
type FineStore interface {
	FindFineByID(ctx context.Context, id string) (lendingstore.FineRecord, error)
	FindFineByLoan(ctx context.Context, loanID string) (lendingstore.FineRecord, error)
	FindUnsettledFines(ctx context.Context) ([]lendingstore.FineRecord, error)
	FindUnsettledFinesByMember(ctx context.Context, memberID string) ([]lendingstore.FineRecord, error)
	SumUnsettledByMember(ctx context.Context, memberID string) (decimal.Decimal, error)
}

// Committer atomically writes the records and journal entries of one decision.
type Committer interface {
	Commit(ctx context.Context, changes lendingstore.ChangeSet) error
}

// JournalReader reads the most recent entries of the lending journal, oldest first.
type JournalReader interface {
	ReadJournal(ctx context.Context, limit uint) (lendingstore.JournalEntries, error)
}

// LendingStore is everything an engine offers. Handlers declare narrower subsets.
type LendingStore interface {
	BookStore
	MemberStore
	LoanStore
	FineStore
	Committer
	JournalReader
}

// Command represents the contract for all command types.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CoreCommandHandler defines the contract for components that process commands with pure business logic.
// Handlers orchestrate the complete command workflow: loading records, deciding, and committing.
// Implementations should focus purely on business logic without observability concerns.
// Handlers return HandlerResult containing business outcomes and execution metadata (retry info).
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// Query represents the contract for all query types.
type Query interface {
	QueryType() string
}

// QueryResult represents the contract for all query result types.
// ResultCount is the number of items for logging.
type QueryResult interface {
	ResultCount() int
}

// CoreQueryHandler defines the contract for components that process queries.
// The generic parameters Q and R ensure type safety between queries and their corresponding results.
type CoreQueryHandler[Q Query, R QueryResult] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
