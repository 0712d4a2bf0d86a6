package loansbymember

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// LoanInfo describes one loan of the member.
type LoanInfo struct {
	LoanID     core.LoanIDString `json:"loanId"`
	BookID     core.BookIDString `json:"bookId"`
	Status     string            `json:"status"`
	StartDate  time.Time         `json:"startDate"`
	DueDate    *time.Time        `json:"dueDate,omitempty"`
	ReturnDate *time.Time        `json:"returnDate,omitempty"`
}

// LoansByMember represents the query result.
type LoansByMember struct {
	MemberID    core.MemberIDString `json:"memberId"`
	Loans       []LoanInfo          `json:"loans"`
	ActiveCount int                 `json:"activeCount"`
}

// ResultCount returns the number of loans for logging.
func (r LoansByMember) ResultCount() int {
	return len(r.Loans)
}
