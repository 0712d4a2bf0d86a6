// Package registermember implements the RegisterMember command.
// Member number and national ID must both be unused.
package registermember
