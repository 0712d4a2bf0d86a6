package postgresengine

import (
	"github.com/AntonStoeckl/library-lending-go/lendingstore"
)

// Logger is the engine's plain logger.
type Logger = lendingstore.Logger

// ContextualLogger is the engine's context-aware logger.
type ContextualLogger = lendingstore.ContextualLogger

// MetricsCollector receives the engine's metrics.
type MetricsCollector = lendingstore.MetricsCollector

// TracingCollector receives the engine's spans.
type TracingCollector = lendingstore.TracingCollector

// SpanContext is an active span.
type SpanContext = lendingstore.SpanContext

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithTablePrefix prefixes all table names, e.g. "lib_" gives lib_books, lib_loans, ...
func WithTablePrefix(prefix string) Option {
	return func(s *Store) error {
		if prefix == "" {
			return lendingstore.ErrEmptyTablePrefix
		}

		s.tablePrefix = prefix

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing
// Info level: record counts, durations, concurrency conflicts
// Error level: failures that make an operation fail.
func WithLogger(logger Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger. When set, it is used instead of the
// plain logger so records carry trace correlation.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
func WithMetrics(collector MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store.
func WithTracing(collector TracingCollector) Option {
	return func(s *Store) error {
		s.tracingCollector = collector
		return nil
	}
}
