// Package outstandingfines implements the Outstanding Fines query: all fines that are
// not settled yet, oldest first, with their total.
//
// This is a read-only operation. It reads with eventual consistency, so it may be served
// by a replica and lag behind the latest commits.
package outstandingfines
