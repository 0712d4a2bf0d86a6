package main

import (
	"errors"

	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell/blob"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell/config"
)

// Process exit codes.
const (
	exitOK         = 0
	exitFailure    = 1
	exitValidation = 2
	exitNotFound   = 3
	exitConflict   = 4
)

// errUsage marks malformed command lines, which exit like validation errors.
var errUsage = errors.New("usage error")

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitOK
	case shell.IsValidationError(err), errors.Is(err, errUsage), errors.Is(err, config.ErrInvalidConfigValue):
		return exitValidation
	case shell.IsNotFoundError(err), errors.Is(err, blob.ErrNotFound):
		return exitNotFound
	case shell.IsConflictError(err):
		return exitConflict
	default:
		return exitFailure
	}
}
