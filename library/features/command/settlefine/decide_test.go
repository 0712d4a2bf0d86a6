package settlefine_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/features/command/settlefine"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

var today = time.Date(2025, 3, 20, 14, 30, 0, 0, time.UTC)

func Test_Decide_UnsettledFine_IsSettled(t *testing.T) {
	// arrange
	fine := givenFine(false)

	// act
	result := settlefine.Decide(settlefine.State{Fine: &fine}, settlefine.BuildCommand(fine.ID, today))

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Changes.Fines, 1)
	assert.True(t, result.Changes.Fines[0].Settled)
	assert.True(t, fine.Amount.Equal(result.Changes.Fines[0].Amount))
	event, ok := result.Event.(core.FineSettled)
	require.True(t, ok)
	assert.Equal(t, "30.00", event.Amount)
}

func Test_Decide_SettledFine_IsConflict(t *testing.T) {
	// arrange
	fine := givenFine(true)

	// act
	result := settlefine.Decide(settlefine.State{Fine: &fine}, settlefine.BuildCommand(fine.ID, today))

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrConflict)
	assert.ErrorContains(t, result.HasError(), "FineSettlementFailed: fine already settled")
}

func Test_Decide_MissingFine_IsNotFound(t *testing.T) {
	// act
	result := settlefine.Decide(settlefine.State{}, settlefine.BuildCommand(uuid.New(), today))

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
}

func givenFine(settled bool) core.Fine {
	return core.Fine{
		ID:       uuid.New(),
		LoanID:   uuid.New(),
		Amount:   decimal.RequireFromString("30.00"),
		Reason:   "late return: 5 days late (3 billable days)",
		Settled:  settled,
		IssuedOn: core.ToDate(today),
		Version:  1,
	}
}
