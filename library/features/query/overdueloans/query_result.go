package overdueloans

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// OverdueLoan describes one late loan.
type OverdueLoan struct {
	LoanID    core.LoanIDString   `json:"loanId"`
	BookID    core.BookIDString   `json:"bookId"`
	MemberID  core.MemberIDString `json:"memberId"`
	Status    string              `json:"status"`
	StartDate time.Time           `json:"startDate"`
	DueDate   *time.Time          `json:"dueDate,omitempty"`
	LateDays  int                 `json:"lateDays"`
}

// OverdueLoans represents the query result, most late first.
type OverdueLoans struct {
	AsOf  time.Time     `json:"asOf"`
	Loans []OverdueLoan `json:"loans"`
}

// ResultCount returns the number of loans for logging.
func (r OverdueLoans) ResultCount() int {
	return len(r.Loans)
}
