// Package oteladapters implements the lendingstore observability interfaces on top of OpenTelemetry.
//
// MetricsCollector maps durations to histograms, increments to counters and values to gauges.
// TracingCollector creates spans, and the loggers emit through the slog bridge or the OTel log API
// so that log records carry trace and span ids.
package oteladapters
