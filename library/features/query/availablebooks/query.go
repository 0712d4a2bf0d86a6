package availablebooks

const (
	queryType = "AvailableBooks"
)

// Query represents the intent to list the lendable books.
// An empty Category lists all of them.
type Query struct {
	Category string
}

// BuildQuery creates a new Query.
func BuildQuery(category string) Query {
	return Query{Category: category}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
