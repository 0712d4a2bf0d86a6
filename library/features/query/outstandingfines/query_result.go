package outstandingfines

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// FineInfo describes one unsettled fine.
type FineInfo struct {
	FineID   core.FineIDString `json:"fineId"`
	LoanID   core.LoanIDString `json:"loanId"`
	Amount   decimal.Decimal   `json:"amount"`
	Reason   string            `json:"reason"`
	Notes    string            `json:"notes,omitempty"`
	IssuedOn time.Time         `json:"issuedOn"`
}

// OutstandingFines represents the query result.
type OutstandingFines struct {
	Fines []FineInfo      `json:"fines"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// ResultCount returns the number of fines for logging.
func (r OutstandingFines) ResultCount() int {
	return r.Count
}
