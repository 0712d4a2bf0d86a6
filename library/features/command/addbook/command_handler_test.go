package addbook_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenMemoryStore(t)
	handler := addbook.NewCommandHandler(store)
	command := givenCommand(uuid.New(), "978-0441013593")

	// act
	result, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	book, err := shell.LoadBook(ctx, store, command.BookID)
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, core.BookAvailable, book.Status)
	assert.Equal(t, "Dune", book.Title)
}

func Test_CommandHandler_Handle_Idempotent(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenMemoryStore(t)
	handler := addbook.NewCommandHandler(store)
	command := givenCommand(uuid.New(), "978-0441013593")
	_, err := handler.Handle(ctx, command)
	require.NoError(t, err, "error in arranging test data")

	// act
	result, err := handler.Handle(ctx, command)

	// assert
	assert.NoError(t, err)
	assert.True(t, result.Idempotent)
}

func Test_CommandHandler_Handle_DuplicateISBN_IsConflictAndJournaled(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenMemoryStore(t)
	handler := addbook.NewCommandHandler(store)
	_, err := handler.Handle(ctx, givenCommand(uuid.New(), "978-0441013593"))
	require.NoError(t, err, "error in arranging test data")

	// act
	_, err = handler.Handle(ctx, givenCommand(uuid.New(), "978-0441013593"))

	// assert
	assert.ErrorIs(t, err, core.ErrAlreadyExists)
	entries, readErr := store.ReadJournal(ctx, 10)
	require.NoError(t, readErr)
	require.Len(t, entries, 2)
	assert.Equal(t, core.BookAddingFailedEventType, entries[1].EventType)
}

func Test_CommandHandler_Handle_InvalidCommand_TouchesNothing(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenMemoryStore(t)
	handler := addbook.NewCommandHandler(store)

	// act
	_, err := handler.Handle(ctx, givenCommand(uuid.New(), ""))

	// assert
	assert.ErrorIs(t, err, core.ErrValidation)
	entries, readErr := store.ReadJournal(ctx, 10)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}
