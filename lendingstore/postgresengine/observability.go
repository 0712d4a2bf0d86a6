package postgresengine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
)

const (
	metricQueryDuration        = "lendingstore_query_duration_seconds"
	metricCommitDuration       = "lendingstore_commit_duration_seconds"
	metricRecordsQueried       = "lendingstore_records_queried"
	metricRecordsCommitted     = "lendingstore_records_committed"
	metricConcurrencyConflicts = "lendingstore_concurrency_conflicts_total"
	metricDatabaseErrors       = "lendingstore_database_errors_total"

	spanNameQuery  = "lendingstore.query"
	spanNameCommit = "lendingstore.commit"

	spanAttrOperation    = "operation"
	spanAttrTable        = "table"
	spanAttrRecordCount  = "record_count"
	spanAttrJournalCount = "journal_count"
	spanAttrErrorType    = "error_type"
	spanAttrDurationMS   = "duration_ms"

	labelStatus       = "status"
	labelConflictType = "conflict_type"

	operationQuery  = "query"
	operationCommit = "commit"

	statusSuccess = "success"
	statusError   = "error"

	errorTypeBuildQuery          = "build_query"
	errorTypeDatabaseQuery       = "database_query"
	errorTypeRowScan             = "row_scan"
	errorTypeBeginTx             = "begin_tx"
	errorTypeDatabaseExec        = "database_exec"
	errorTypeRowsAffected        = "rows_affected"
	errorTypeCommitTx            = "commit_tx"
	errorTypeConcurrencyConflict = "concurrency_conflict"
)

func (s *Store) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	s.logDebug(ctx, logMsgSQLExecuted+action, logAttrDurationMS, s.toMilliseconds(duration), logAttrQuery, sqlQuery)
}

func (s *Store) logDebug(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, msg, args...)
		return
	}

	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

// logOperation logs operational information at info level.
func (s *Store) logOperation(ctx context.Context, action string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

func (s *Store) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, message, allArgs...)
		return
	}

	if s.logger != nil {
		s.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (s *Store) toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func (s *Store) recordDurationMetrics(ctx context.Context, metric string, duration time.Duration, operation, status string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, labelStatus: status}

	if contextual, ok := s.metricsCollector.(lendingstore.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	s.metricsCollector.RecordDuration(metric, duration, labels)
}

func (s *Store) recordValueMetrics(ctx context.Context, metric string, value float64, operation, status string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, labelStatus: status}

	if contextual, ok := s.metricsCollector.(lendingstore.ContextualMetricsCollector); ok {
		contextual.RecordValueContext(ctx, metric, value, labels)
		return
	}

	s.metricsCollector.RecordValue(metric, value, labels)
}

func (s *Store) recordErrorMetrics(ctx context.Context, operation, errorType string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, labelStatus: statusError, spanAttrErrorType: errorType}

	if contextual, ok := s.metricsCollector.(lendingstore.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
}

func (s *Store) recordConcurrencyConflictMetrics(ctx context.Context) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operationCommit, labelConflictType: "concurrency"}

	if contextual, ok := s.metricsCollector.(lendingstore.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metricConcurrencyConflicts, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metricConcurrencyConflicts, labels)
}

// === Observers ===
// An observer bundles the span and metrics of one query or commit.

type operationObserver struct {
	s         *Store
	ctx       context.Context
	span      SpanContext
	operation string
	metric    string
	countName string
	start     time.Time
}

func (s *Store) startQueryObserver(ctx context.Context, table string) (*operationObserver, context.Context) {
	return s.startObserver(ctx, spanNameQuery, operationQuery, metricQueryDuration, metricRecordsQueried, map[string]string{
		spanAttrOperation: operationQuery,
		spanAttrTable:     table,
	})
}

func (s *Store) startCommitObserver(ctx context.Context, changes lendingstore.ChangeSet) (*operationObserver, context.Context) {
	return s.startObserver(ctx, spanNameCommit, operationCommit, metricCommitDuration, metricRecordsCommitted, map[string]string{
		spanAttrOperation:    operationCommit,
		spanAttrRecordCount:  fmt.Sprintf("%d", recordCount(changes)),
		spanAttrJournalCount: fmt.Sprintf("%d", len(changes.Journal)),
	})
}

func (s *Store) startObserver(
	ctx context.Context,
	spanName, operation, metric, countName string,
	attrs map[string]string,
) (*operationObserver, context.Context) {
	var span SpanContext
	if s.tracingCollector != nil {
		ctx, span = s.tracingCollector.StartSpan(ctx, spanName, attrs)
	}

	return &operationObserver{
		s:         s,
		ctx:       ctx,
		span:      span,
		operation: operation,
		metric:    metric,
		countName: countName,
		start:     time.Now(),
	}, ctx
}

func (o *operationObserver) elapsed() time.Duration {
	return time.Since(o.start)
}

func (o *operationObserver) finishSuccess(count int) {
	duration := o.elapsed()

	o.s.recordDurationMetrics(o.ctx, o.metric, duration, o.operation, statusSuccess)
	o.s.recordValueMetrics(o.ctx, o.countName, float64(count), o.operation, statusSuccess)

	if o.span == nil || o.s.tracingCollector == nil {
		return
	}

	o.span.SetStatus(statusSuccess)
	o.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", o.s.toMilliseconds(duration)))
	o.s.tracingCollector.FinishSpan(o.span, statusSuccess, map[string]string{
		spanAttrRecordCount: fmt.Sprintf("%d", count),
	})
}

func (o *operationObserver) finishError(errorType string) {
	duration := o.elapsed()

	o.s.recordDurationMetrics(o.ctx, o.metric, duration, o.operation, statusError)

	if errorType == errorTypeConcurrencyConflict {
		o.s.recordConcurrencyConflictMetrics(o.ctx)
	} else {
		o.s.recordErrorMetrics(o.ctx, o.operation, errorType)
	}

	if o.span == nil || o.s.tracingCollector == nil {
		return
	}

	o.span.SetStatus(statusError)
	o.span.AddAttribute(spanAttrErrorType, errorType)
	o.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", o.s.toMilliseconds(duration)))
	o.s.tracingCollector.FinishSpan(o.span, statusError, map[string]string{spanAttrErrorType: errorType})
}

func recordCount(changes lendingstore.ChangeSet) int {
	return len(changes.Books) + len(changes.Members) + len(changes.Loans) + len(changes.Fines)
}
