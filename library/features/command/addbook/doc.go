// Package addbook implements the AddBook command: a new book joins the catalog as AVAILABLE.
// The ISBN must not be used by another book.
package addbook
