package overdueloans

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

const (
	queryType = "OverdueLoans"
)

// Query represents the intent to list loans that are late as of AsOf.
type Query struct {
	AsOf time.Time
}

// BuildQuery creates a new Query for the date of asOf.
func BuildQuery(asOf time.Time) Query {
	return Query{
		AsOf: core.ToDate(asOf),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
