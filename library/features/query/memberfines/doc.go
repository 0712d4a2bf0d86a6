// Package memberfines implements the Member Fines query: the unsettled fines of one
// member, what they owe in total and whether they owe anything at all.
package memberfines
