package lendingstore

import "context"

// ConsistencyLevel tells an engine which database a read may be served from.
type ConsistencyLevel int

const (
	// StrongConsistency reads from the primary. Command handlers load the records they
	// are about to change with it, so the versions they commit against are current.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows reads from a replica. Query handlers use it, they
	// tolerate slightly stale lists of loans and fines.
	EventualConsistency
)

type contextKey string

// ConsistencyLevelKey is the context key under which the consistency level is stored.
const ConsistencyLevelKey contextKey = "lendingstore.consistency_level"

// WithStrongConsistency marks ctx so that reads go to the primary database.
//
//	ctx = lendingstore.WithStrongConsistency(ctx)
//	book, err := store.FindBookByID(ctx, bookID)
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency marks ctx so that reads may go to a replica database.
//
//	ctx = lendingstore.WithEventualConsistency(ctx)
//	fines, err := store.FindUnsettledFines(ctx)
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel returns the level stored in ctx, StrongConsistency if none is set.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
