// Package acceptance holds the behaviour scenarios of the lending library as Gherkin
// features in features/, executed with godog against the command and query handlers on
// the memory and the sqlite engine.
package acceptance
