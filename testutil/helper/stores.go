package helper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/lendingstore/memoryengine"
)

// GivenMemoryStore creates an empty in-process store.
func GivenMemoryStore(t testing.TB, options ...memoryengine.Option) *memoryengine.Store {
	t.Helper()

	store, err := memoryengine.NewStore(options...)
	require.NoError(t, err, "error in arranging test data")

	return store
}

// GivenCommitted writes records straight into a store, bypassing the command handlers.
func GivenCommitted(
	t testing.TB,
	store interface {
		Commit(ctx context.Context, changes lendingstore.ChangeSet) error
	},
	changes lendingstore.ChangeSet,
) {
	t.Helper()

	require.NoError(t, store.Commit(context.Background(), changes), "error in arranging test data")
}
