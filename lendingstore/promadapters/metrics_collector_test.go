package promadapters_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lendingstore/promadapters"
)

func Test_MetricsCollector_IncrementCounter(t *testing.T) {
	collector := promadapters.NewMetricsCollectorWithRegistry(prometheus.NewRegistry())
	labels := map[string]string{"operation": "commit", "conflict_type": "concurrency"}

	collector.IncrementCounter("lendingstore_concurrency_conflicts_total", labels)
	collector.IncrementCounterContext(t.Context(), "lendingstore_concurrency_conflicts_total", labels)

	expected := `
# HELP lendingstore_concurrency_conflicts_total Count of lending events.
# TYPE lendingstore_concurrency_conflicts_total counter
lendingstore_concurrency_conflicts_total{conflict_type="concurrency",operation="commit"} 2
`
	err := testutil.GatherAndCompare(collector.Registry(), strings.NewReader(expected), "lendingstore_concurrency_conflicts_total")
	assert.NoError(t, err)
}

func Test_MetricsCollector_RecordValue_MapsDifferingLabelSets(t *testing.T) {
	collector := promadapters.NewMetricsCollectorWithRegistry(prometheus.NewRegistry())

	collector.RecordValue("lendingstore_records_queried", 3, map[string]string{"operation": "query", "status": "success"})
	collector.RecordValue("lendingstore_records_queried", 5, map[string]string{"operation": "query", "unknown": "x"})

	expected := `
# HELP lendingstore_records_queried Last observed lending value.
# TYPE lendingstore_records_queried gauge
lendingstore_records_queried{operation="query",status=""} 5
lendingstore_records_queried{operation="query",status="success"} 3
`
	err := testutil.GatherAndCompare(collector.Registry(), strings.NewReader(expected), "lendingstore_records_queried")
	assert.NoError(t, err)
}

func Test_MetricsCollector_RecordDuration_ObservesHistogram(t *testing.T) {
	collector := promadapters.NewMetricsCollectorWithRegistry(prometheus.NewRegistry())

	collector.RecordDuration("commandhandler_duration_seconds", 20*time.Millisecond, map[string]string{"command_type": "CreateLoan"})
	collector.RecordDurationContext(t.Context(), "commandhandler_duration_seconds", 40*time.Millisecond, map[string]string{"command_type": "CreateLoan"})

	count, err := testutil.GatherAndCount(collector.Registry(), "commandhandler_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "one series")
}

func Test_MetricsCollector_Handler_ServesExposition(t *testing.T) {
	collector := promadapters.NewMetricsCollector()
	collector.IncrementCounter("commandhandler_requests_total", map[string]string{"command_type": "SettleFine"})

	recorder := httptest.NewRecorder()
	collector.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `commandhandler_requests_total{command_type="SettleFine"} 1`)
	assert.Contains(t, recorder.Body.String(), "go_goroutines")
}
