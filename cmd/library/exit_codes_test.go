package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell/blob"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell/config"
)

func Test_ExitCodeFor(t *testing.T) {
	testCases := []struct {
		description string
		err         error
		expected    int
	}{
		{"no error", nil, exitOK},
		{"validation", fmt.Errorf("%w: amount must be positive", core.ErrValidation), exitValidation},
		{"usage", fmt.Errorf("%w: accepts 1 arg(s)", errUsage), exitValidation},
		{"bad config", fmt.Errorf("%w: unknown engine", config.ErrInvalidConfigValue), exitValidation},
		{"not found", fmt.Errorf("%w: loan not found", core.ErrNotFound), exitNotFound},
		{"missing report", blob.ErrNotFound, exitNotFound},
		{"invalid state", fmt.Errorf("%w: loan already closed", core.ErrInvalidState), exitConflict},
		{"already exists", fmt.Errorf("%w: isbn taken", core.ErrAlreadyExists), exitConflict},
		{"unexpected", errors.New("connection reset"), exitFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, exitCodeFor(tc.err))
		})
	}
}
