// Package loansbystatus implements the Loans By Status query.
package loansbystatus
