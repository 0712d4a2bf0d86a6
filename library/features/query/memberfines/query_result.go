package memberfines

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// FineInfo describes one unsettled fine of the member.
type FineInfo struct {
	FineID   core.FineIDString `json:"fineId"`
	LoanID   core.LoanIDString `json:"loanId"`
	Amount   decimal.Decimal   `json:"amount"`
	Reason   string            `json:"reason"`
	IssuedOn time.Time         `json:"issuedOn"`
}

// MemberFines represents the query result. Total is zero when nothing is owed.
type MemberFines struct {
	MemberID       core.MemberIDString `json:"memberId"`
	Fines          []FineInfo          `json:"fines"`
	Total          decimal.Decimal     `json:"total"`
	HasOutstanding bool                `json:"hasOutstanding"`
}

// ResultCount returns the number of fines for logging.
func (r MemberFines) ResultCount() int {
	return len(r.Fines)
}
