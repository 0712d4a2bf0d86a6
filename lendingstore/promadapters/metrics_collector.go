// Package promadapters implements lendingstore.MetricsCollector with the Prometheus client.
//
// Vectors are created on first use. Their label names are taken from the first observation,
// later observations are mapped onto those names (missing labels become "", unknown ones are dropped).
package promadapters

import (
	"context"
	"errors"
	"maps"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AntonStoeckl/library-lending-go/lendingstore"
)

// MetricsCollector records into its own registry.
type MetricsCollector struct {
	registry   *prometheus.Registry
	mu         sync.Mutex
	histograms map[string]*prometheus.HistogramVec
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	labelNames map[string][]string
}

// NewMetricsCollector creates a collector with a fresh registry that also carries the Go runtime
// and process collectors.
func NewMetricsCollector() *MetricsCollector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return NewMetricsCollectorWithRegistry(registry)
}

func NewMetricsCollectorWithRegistry(registry *prometheus.Registry) *MetricsCollector {
	return &MetricsCollector{
		registry:   registry,
		histograms: make(map[string]*prometheus.HistogramVec),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		labelNames: make(map[string][]string),
	}
}

func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *MetricsCollector) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	vec := m.histogram(metric, labels)
	if vec == nil {
		return
	}

	if observer, err := vec.GetMetricWith(m.normalize(metric, labels)); err == nil {
		observer.Observe(duration.Seconds())
	}
}

func (m *MetricsCollector) IncrementCounter(metric string, labels map[string]string) {
	vec := m.counter(metric, labels)
	if vec == nil {
		return
	}

	if counter, err := vec.GetMetricWith(m.normalize(metric, labels)); err == nil {
		counter.Inc()
	}
}

func (m *MetricsCollector) RecordValue(metric string, value float64, labels map[string]string) {
	vec := m.gauge(metric, labels)
	if vec == nil {
		return
	}

	if gauge, err := vec.GetMetricWith(m.normalize(metric, labels)); err == nil {
		gauge.Set(value)
	}
}

// Prometheus has no use for the context, the variants exist to satisfy ContextualMetricsCollector.

func (m *MetricsCollector) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	m.RecordDuration(metric, duration, labels)
}

func (m *MetricsCollector) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	m.IncrementCounter(metric, labels)
}

func (m *MetricsCollector) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	m.RecordValue(metric, value, labels)
}

func (m *MetricsCollector) histogram(name string, labels map[string]string) *prometheus.HistogramVec {
	m.mu.Lock()
	defer m.mu.Unlock()

	if vec, ok := m.histograms[name]; ok {
		return vec
	}

	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    name,
		Help:    "Duration of lending operations in seconds.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 16),
	}, m.rememberLabelNames(name, labels))

	if registered := register(m.registry, vec); registered != nil {
		vec, _ = registered.(*prometheus.HistogramVec)
	}

	m.histograms[name] = vec

	return vec
}

func (m *MetricsCollector) counter(name string, labels map[string]string) *prometheus.CounterVec {
	m.mu.Lock()
	defer m.mu.Unlock()

	if vec, ok := m.counters[name]; ok {
		return vec
	}

	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: "Count of lending events.",
	}, m.rememberLabelNames(name, labels))

	if registered := register(m.registry, vec); registered != nil {
		vec, _ = registered.(*prometheus.CounterVec)
	}

	m.counters[name] = vec

	return vec
}

func (m *MetricsCollector) gauge(name string, labels map[string]string) *prometheus.GaugeVec {
	m.mu.Lock()
	defer m.mu.Unlock()

	if vec, ok := m.gauges[name]; ok {
		return vec
	}

	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: name,
		Help: "Last observed lending value.",
	}, m.rememberLabelNames(name, labels))

	if registered := register(m.registry, vec); registered != nil {
		vec, _ = registered.(*prometheus.GaugeVec)
	}

	m.gauges[name] = vec

	return vec
}

// register returns the already registered collector when the name is taken, nil otherwise.
func register(registry *prometheus.Registry, collector prometheus.Collector) prometheus.Collector {
	err := registry.Register(collector)
	if err == nil {
		return nil
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		return already.ExistingCollector
	}

	return nil
}

func (m *MetricsCollector) rememberLabelNames(metric string, labels map[string]string) []string {
	names := slices.Sorted(maps.Keys(labels))
	m.labelNames[metric] = names

	return names
}

func (m *MetricsCollector) normalize(metric string, labels map[string]string) prometheus.Labels {
	m.mu.Lock()
	names := m.labelNames[metric]
	m.mu.Unlock()

	normalized := make(prometheus.Labels, len(names))
	for _, name := range names {
		normalized[name] = labels[name]
	}

	return normalized
}

var _ lendingstore.ContextualMetricsCollector = (*MetricsCollector)(nil)
