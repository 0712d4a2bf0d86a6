package lendingstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
)

func Test_BuildJournalEntry_WithValidJSON(t *testing.T) {
	// arrange
	occurredAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	// act
	entry, err := lendingstore.BuildJournalEntry("LoanCreated", occurredAt, []byte(`{"LoanID":"1"}`), []byte(`{}`))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, "LoanCreated", entry.EventType)
	assert.Equal(t, occurredAt, entry.OccurredAt)
}

func Test_BuildJournalEntry_WithInvalidPayload(t *testing.T) {
	// act
	_, err := lendingstore.BuildJournalEntry("LoanCreated", time.Now(), []byte(`{broken`), []byte(`{}`))

	// assert
	assert.ErrorIs(t, err, lendingstore.ErrInvalidPayloadJSON)
}

func Test_BuildJournalEntry_WithInvalidMetadata(t *testing.T) {
	// act
	_, err := lendingstore.BuildJournalEntry("LoanCreated", time.Now(), []byte(`{}`), []byte(`nope`))

	// assert
	assert.ErrorIs(t, err, lendingstore.ErrInvalidMetadataJSON)
}

func Test_ChangeSet_IsEmpty(t *testing.T) {
	assert.True(t, lendingstore.ChangeSet{}.IsEmpty())
	assert.False(t, lendingstore.ChangeSet{Loans: []lendingstore.LoanRecord{{ID: "l"}}}.IsEmpty())
}

func Test_GetConsistencyLevel_DefaultsToStrong(t *testing.T) {
	// arrange
	ctx := t.Context()

	// act
	level := lendingstore.GetConsistencyLevel(ctx)
	eventual := lendingstore.GetConsistencyLevel(lendingstore.WithEventualConsistency(ctx))

	// assert
	assert.Equal(t, lendingstore.StrongConsistency, level)
	assert.Equal(t, lendingstore.EventualConsistency, eventual)
	assert.Equal(t, "eventual", eventual.String())
}
