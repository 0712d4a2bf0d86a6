package config

import "errors"

// ErrInvalidDSN is returned when a database DSN cannot be parsed.
var ErrInvalidDSN = errors.New("invalid database DSN")

// ErrOpeningDatabaseFailed is returned when a database handle cannot be opened or pinged.
var ErrOpeningDatabaseFailed = errors.New("opening database failed")

// ErrReadingConfigFileFailed is returned when the YAML config file cannot be read or parsed.
var ErrReadingConfigFileFailed = errors.New("reading config file failed")

// ErrInvalidConfigValue is returned when a config value or env override is malformed.
var ErrInvalidConfigValue = errors.New("invalid config value")

// ErrCreatingObservabilityProvidersFailed is returned when an OTLP exporter cannot be created.
var ErrCreatingObservabilityProvidersFailed = errors.New("creating observability providers failed")
