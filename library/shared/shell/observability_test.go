package shell_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_ErrorStatus(t *testing.T) {
	testCases := []struct {
		err  error
		want string
	}{
		{err: context.Canceled, want: shell.StatusCanceled},
		{err: context.DeadlineExceeded, want: shell.StatusTimeout},
		{err: errors.Join(lendingstore.ErrConcurrencyConflict, errors.New("driver")), want: shell.StatusConcurrencyConflict},
		{err: fmt.Errorf("%w: LoanCreationFailed: book not found", core.ErrNotFound), want: shell.StatusRejected},
		{err: core.ErrInvalidState, want: shell.StatusRejected},
		{err: core.ErrValidation, want: shell.StatusRejected},
		{err: errors.New("disk on fire"), want: shell.StatusError},
	}

	for _, tc := range testCases {
		t.Run(tc.want+"/"+tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, shell.ErrorStatus(tc.err))
		})
	}
}

func Test_RecordCommandMetrics_RejectedCommandIncrementsRejectedCounter(t *testing.T) {
	// arrange
	metricsCollector := NewMetricsCollectorSpy(true)

	// act
	shell.RecordCommandMetrics(context.Background(), metricsCollector, "SettleFine", shell.StatusRejected, time.Millisecond)

	// assert
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).
		WithLabel("command_type", "SettleFine").
		WithStatus(shell.StatusRejected).
		Assert())
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerRejectedMetric).Assert())
	assert.True(t, metricsCollector.HasDurationRecordForMetric(shell.CommandHandlerDurationMetric).Assert())
}

func Test_LogCommandSuccess_WarningIsLoggedAtWarnLevel(t *testing.T) {
	// arrange
	logger := NewContextualLoggerSpy(true)
	result := shell.HandlerResult{}.WithWarning("fine assessment failed")

	// act
	shell.LogCommandSuccess(context.Background(), nil, logger, "CloseLoan", shell.StatusSuccess, result, time.Millisecond)

	// assert
	assert.True(t, logger.HasWarnLog(shell.LogMsgCommandCompletedWithWarning))
	assert.False(t, logger.HasInfoLog(shell.LogMsgCommandCompleted))
}

func Test_LogCommandError_BusinessErrorsAreNotLoggedAsErrors(t *testing.T) {
	// arrange
	logger := NewContextualLoggerSpy(true)

	// act
	shell.LogCommandError(context.Background(), nil, logger, "CreateLoan", core.ErrInvalidState)
	shell.LogCommandError(context.Background(), nil, logger, "CreateLoan", errors.New("connection reset"))

	// assert
	assert.True(t, logger.HasInfoLog(shell.LogMsgCommandRejected))
	assert.True(t, logger.HasErrorLog(shell.LogMsgCommandFailed))
}
