package registermember_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/features/command/registermember"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenMemoryStore(t)
	handler := registermember.NewCommandHandler(store)
	command := registermember.BuildCommand(uuid.New(), "Ada Reader", 1001, "NID-1", now)

	// act
	result, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	member, err := shell.LoadMember(ctx, store, command.MemberID)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, "Ada Reader", member.Name)
}

func Test_CommandHandler_Handle_DuplicateNationalID_IsConflict(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenMemoryStore(t)
	handler := registermember.NewCommandHandler(store)
	_, err := handler.Handle(ctx, registermember.BuildCommand(uuid.New(), "Ada", 1001, "NID-1", now))
	require.NoError(t, err, "error in arranging test data")

	// act
	_, err = handler.Handle(ctx, registermember.BuildCommand(uuid.New(), "Bob", 1002, "NID-1", now))

	// assert
	assert.ErrorIs(t, err, core.ErrConflict)
}

func Test_CommandHandler_Handle_Idempotent(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenMemoryStore(t)
	handler := registermember.NewCommandHandler(store)
	command := registermember.BuildCommand(uuid.New(), "Ada", 1001, "NID-1", now)
	_, err := handler.Handle(ctx, command)
	require.NoError(t, err, "error in arranging test data")

	// act
	result, err := handler.Handle(ctx, command)

	// assert
	assert.NoError(t, err)
	assert.True(t, result.Idempotent)
}
