// Package closeloan implements the CloseLoan command: the return of a loaned book.
//
// The loan is CLOSED and its book released in one commit. The fine assessment runs right
// after, as a separate command caused by the closure. If it fails the closure stays
// committed and the failure is reported as the result's warning.
package closeloan
