// Package markalloverdue implements the MarkAllOverdue command, the periodic sweep that
// flips every ACTIVE loan past its due date to OVERDUE. Each loan is decided and committed
// on its own, so one failing loan never blocks the others.
package markalloverdue
