// Package shell connects the functional core of the lending library to storage and observability.
//
// It maps core entities to lendingstore records and back, turns decisions into change sets with
// a journal entry, retries commits on optimistic concurrency conflicts and provides the metric,
// tracing and logging helpers used by the command and query handler wrappers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
