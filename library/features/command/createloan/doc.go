// Package createloan implements the CreateLoan command: a member borrows an AVAILABLE book.
//
// The book is reserved (AVAILABLE -> LOANED) and the ACTIVE loan is inserted in the same
// commit. Of two concurrent loans for one book only one commits, the other is retried,
// sees the book LOANED and is rejected with a Conflict.
package createloan
