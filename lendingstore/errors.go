package lendingstore

import (
	"errors"
)

var ErrConcurrencyConflict = errors.New("concurrency error, no rows were affected")
var ErrNotFound = errors.New("record not found")
var ErrNilDatabaseConnection = errors.New("database connection must not be nil")
var ErrEmptyTablePrefix = errors.New("empty table prefix supplied")
var ErrUnsupportedDialect = errors.New("unsupported sql dialect")
var ErrEmptyChangeSet = errors.New("change set contains nothing to commit")

var ErrBuildingQueryFailed = errors.New("building sql query failed")
var ErrQueryingFailed = errors.New("querying records failed")
var ErrScanningDBRowFailed = errors.New("scanning db row failed")
var ErrBeginningTxFailed = errors.New("beginning transaction failed")
var ErrCommittingTxFailed = errors.New("committing transaction failed")
var ErrWritingRecordFailed = errors.New("writing record failed")
var ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
var ErrCreatingSchemaFailed = errors.New("creating schema failed")

var ErrInvalidPayloadJSON = errors.New("payload json is not valid")
var ErrInvalidMetadataJSON = errors.New("metadata json is not valid")
