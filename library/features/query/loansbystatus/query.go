package loansbystatus

import (
	"fmt"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

const (
	queryType = "LoansByStatus"
)

// Query represents the intent to list all loans in one status.
type Query struct {
	Status core.LoanStatus
}

// BuildQuery creates a new Query. It fails with a validation error for an unknown status.
func BuildQuery(status string) (Query, error) {
	switch loanStatus := core.LoanStatus(status); loanStatus {
	case core.LoanActive, core.LoanOverdue, core.LoanClosed:
		return Query{Status: loanStatus}, nil
	default:
		return Query{}, fmt.Errorf("%w: unknown loan status %q", core.ErrValidation, status)
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
