package zapadapters_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/AntonStoeckl/library-lending-go/lendingstore/zapadapters"
)

func Test_Logger_WritesKeyValueArgsAsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zapadapters.NewLogger(zap.New(core))

	logger.Info("lendingstore operation: changes committed", "record_count", 2, "duration_ms", 1.5)

	entries := logs.FilterMessage("lendingstore operation: changes committed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.EqualValues(t, 2, entries[0].ContextMap()["record_count"])
	assert.Equal(t, 1.5, entries[0].ContextMap()["duration_ms"])
}

func Test_Logger_ContextVariantAddsTraceIDs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zapadapters.NewLogger(zap.New(core))
	ctx, span := sdktrace.NewTracerProvider().Tracer("test").Start(t.Context(), "command")
	defer span.End()

	logger.WarnContext(ctx, "fine assessment failed after loan closure", "loan_id", "l-1")

	entries := logs.FilterMessage("fine assessment failed after loan closure").All()
	require.Len(t, entries, 1)
	assert.Equal(t, span.SpanContext().TraceID().String(), entries[0].ContextMap()["trace_id"])
	assert.Equal(t, "l-1", entries[0].ContextMap()["loan_id"])
}

func Test_Logger_ContextVariantWithoutSpan_HasNoTraceID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zapadapters.NewLogger(zap.New(core))

	logger.DebugContext(t.Context(), "plain")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].ContextMap(), "trace_id")
}

func Test_NewProductionLogger_RejectsUnknownLevel(t *testing.T) {
	_, err := zapadapters.NewProductionLogger("chatty")

	assert.Error(t, err)
}
