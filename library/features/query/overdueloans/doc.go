// Package overdueloans implements the Overdue Loans query. It lists the open loans whose
// loan period is over, each with the days it is late as of the query date.
//
// Lateness counts from the start date plus the fixed loan period, not from the due date.
// The due date only drives the overdue sweep.
package overdueloans
