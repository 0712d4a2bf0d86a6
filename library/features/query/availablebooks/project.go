package availablebooks

import (
	"cmp"
	"slices"
	"strings"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// ProjectAvailableBooks lists the available books of the queried category by title.
func ProjectAvailableBooks(books []core.Book, query Query) AvailableBooks {
	infos := make([]BookInfo, 0, len(books))
	for _, book := range books {
		if !book.IsAvailable() {
			continue
		}

		if query.Category != "" && !strings.EqualFold(book.Category, query.Category) {
			continue
		}

		infos = append(infos, BookInfo{
			BookID:   book.ID.String(),
			Title:    book.Title,
			Author:   book.Author,
			ISBN:     book.ISBN,
			Category: book.Category,
		})
	}

	slices.SortFunc(infos, func(a, b BookInfo) int {
		return cmp.Or(strings.Compare(a.Title, b.Title), strings.Compare(a.BookID, b.BookID))
	})

	return AvailableBooks{Books: infos, Count: len(infos)}
}
