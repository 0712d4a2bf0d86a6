// Package createmanualfine implements the CreateManualFine command: a librarian enters a
// fine for a closed loan, bypassing the fine policy.
package createmanualfine
