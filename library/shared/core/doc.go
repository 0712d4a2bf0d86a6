// Package core contains the domain of a lending library: books, members, loans and fines.
//
// Entities are plain values. Their operations (Book.Reserve, Loan.Close, Fine.Settle, ...)
// return changed copies and never touch storage. The fine policy resolver decides for a
// closed loan which of the ordered policies (damage, late, none) applies.
//
// Every decision of a command is expressed as a DecisionResult that carries one domain
// event for the lending journal and the entities the decision changed. Business rule
// violations are also journaled, as ...Failed events.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
