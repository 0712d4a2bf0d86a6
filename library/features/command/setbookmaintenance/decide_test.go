package setbookmaintenance_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/features/command/setbookmaintenance"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

var today = time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)

func Test_Decide_Transitions(t *testing.T) {
	testCases := []struct {
		name             string
		status           core.BookStatus
		underMaintenance bool
		wantStatus       core.BookStatus
		wantEvent        string
	}{
		{
			name:             "available to maintenance",
			status:           core.BookAvailable,
			underMaintenance: true,
			wantStatus:       core.BookMaintenance,
			wantEvent:        core.BookPutUnderMaintenanceEventType,
		},
		{
			name:             "maintenance to available",
			status:           core.BookMaintenance,
			underMaintenance: false,
			wantStatus:       core.BookAvailable,
			wantEvent:        core.BookReleasedFromMaintenanceEventType,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			book := givenBook(tc.status)

			// act
			result := setbookmaintenance.Decide(
				setbookmaintenance.State{Book: &book},
				setbookmaintenance.BuildCommand(book.ID, tc.underMaintenance, today))

			// assert
			require.NoError(t, result.HasError())
			require.Len(t, result.Changes.Books, 1)
			assert.Equal(t, tc.wantStatus, result.Changes.Books[0].Status)
			assert.Equal(t, tc.wantEvent, result.Event.IsEventType())
		})
	}
}

func Test_Decide_UnchangedState_IsIdempotent(t *testing.T) {
	for _, underMaintenance := range []bool{true, false} {
		// arrange
		status := core.BookAvailable
		if underMaintenance {
			status = core.BookMaintenance
		}
		book := givenBook(status)

		// act
		result := setbookmaintenance.Decide(
			setbookmaintenance.State{Book: &book},
			setbookmaintenance.BuildCommand(book.ID, underMaintenance, today))

		// assert
		assert.NoError(t, result.HasError())
		assert.False(t, result.HasEventToAppend())
	}
}

func Test_Decide_LoanedBook_IsConflict(t *testing.T) {
	for _, underMaintenance := range []bool{true, false} {
		// arrange
		book := givenBook(core.BookLoaned)

		// act
		result := setbookmaintenance.Decide(
			setbookmaintenance.State{Book: &book},
			setbookmaintenance.BuildCommand(book.ID, underMaintenance, today))

		// assert
		assert.ErrorIs(t, result.HasError(), core.ErrConflict)
		assert.ErrorContains(t, result.HasError(), core.BookMaintenanceFailedEventType)
	}
}

func Test_Decide_MissingBook_IsNotFound(t *testing.T) {
	// act
	result := setbookmaintenance.Decide(setbookmaintenance.State{}, setbookmaintenance.BuildCommand(uuid.New(), true, today))

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
}

func givenBook(status core.BookStatus) core.Book {
	book := core.NewBook(uuid.New(), "Refactoring", "Martin Fowler", "978-0134757599", "software")
	book.Status = status
	book.Version = 3

	return book
}
