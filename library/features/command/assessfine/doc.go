// Package assessfine implements the AssessFine command. It resolves the fine policy for a
// closed loan (damage, then late, then none) and records a fine when the policy yields an
// amount. A loan gets at most one fine.
package assessfine
