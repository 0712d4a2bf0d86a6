// Package availablebooks implements the Available Books query, the books a loan can be
// created for right now, ordered by title.
package availablebooks
