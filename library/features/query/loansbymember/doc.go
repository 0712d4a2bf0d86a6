// Package loansbymember implements the Loans By Member query. It returns every loan of a
// member, open and closed, plus the number of loans that are still ACTIVE.
package loansbymember
