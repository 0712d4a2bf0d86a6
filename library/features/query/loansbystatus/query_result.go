package loansbystatus

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// LoanInfo describes one loan.
type LoanInfo struct {
	LoanID          core.LoanIDString   `json:"loanId"`
	BookID          core.BookIDString   `json:"bookId"`
	MemberID        core.MemberIDString `json:"memberId"`
	StartDate       time.Time           `json:"startDate"`
	DueDate         *time.Time          `json:"dueDate,omitempty"`
	ReturnDate      *time.Time          `json:"returnDate,omitempty"`
	ReturnCondition string              `json:"returnCondition,omitempty"`
}

// Loans represents the query result.
type Loans struct {
	Status string     `json:"status"`
	Loans  []LoanInfo `json:"loans"`
}

// ResultCount returns the number of loans for logging.
func (r Loans) ResultCount() int {
	return len(r.Loans)
}
