package availablebooks

import (
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// BookInfo describes one available book.
type BookInfo struct {
	BookID   core.BookIDString `json:"bookId"`
	Title    string            `json:"title"`
	Author   string            `json:"author"`
	ISBN     string            `json:"isbn"`
	Category string            `json:"category,omitempty"`
}

// AvailableBooks represents the query result.
type AvailableBooks struct {
	Books []BookInfo `json:"books"`
	Count int        `json:"count"`
}

// ResultCount returns the number of books for logging.
func (r AvailableBooks) ResultCount() int {
	return r.Count
}
