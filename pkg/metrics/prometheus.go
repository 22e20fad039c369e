// Package metrics provides Prometheus metrics for the ticket resale advisor.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultNamespace = "tixroi"
	defaultSubsystem = "advisor"
)

// Manager manages all Prometheus metrics for the advisor.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Recommendation engine
	recommendations       *prometheus.CounterVec
	recommendationErrors  *prometheus.CounterVec
	recommendationLatency prometheus.Histogram

	// Catalog state
	catalogEvents  prometheus.Gauge
	catalogReloads *prometheus.CounterVec
	modelTrained   prometheus.Gauge

	// Ranking runs
	rankingRuns     prometheus.Counter
	rankingDuration prometheus.Histogram
	boardEntries    prometheus.Gauge

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueueErrors *prometheus.CounterVec

	// Workers
	workerCount             prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		subsystem:        defaultSubsystem,
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of metric definitions
	registry := m.registry
	if len(m.constLabels) > 0 {
		registry = prometheus.WrapRegistererWith(m.constLabels, registry)
	}
	auto := promauto.With(registry)

	m.recommendations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_total",
		Help:      "Recommendations produced, by label and strategy",
	}, []string{"recommendation", "strategy"})

	m.recommendationErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendation_errors_total",
		Help:      "Recommendation requests that ended in an error, by kind",
	}, []string{"kind"})

	m.recommendationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendation_latency_milliseconds",
		Help:      "Time spent computing one recommendation",
		Buckets:   m.histogramBuckets,
	})

	m.catalogEvents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_events",
		Help:      "Number of events in the active catalog snapshot",
	})

	m.catalogReloads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_reloads_total",
		Help:      "Catalog reload attempts, by outcome",
	}, []string{"outcome"})

	m.modelTrained = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "model_trained",
		Help:      "1 when the active snapshot carries a trained regression model",
	})

	m.rankingRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_runs_total",
		Help:      "Completed opportunity ranking runs",
	})

	m.rankingDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_duration_milliseconds",
		Help:      "Wall time of a full ranking run",
		Buckets:   m.histogramBuckets,
	})

	m.boardEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "board_entries",
		Help:      "Entries on the most recent opportunity board",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Score jobs waiting in the queue",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Capacity of the score job queue",
	})

	m.queueEnqueueErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueue_errors_total",
		Help:      "Rejected enqueue attempts, by reason",
	}, []string{"reason"})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Workers in the current ranking pool",
	})

	m.workerProcessingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_processing_latency_milliseconds",
		Help:      "Time a worker spends on one score job",
		Buckets:   m.histogramBuckets,
	})

	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_errors_total",
		Help:      "Score jobs a worker could not complete",
	})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_component_total",
		Help:      "Errors by component and type",
	}, []string{"component", "error_type"})
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// RecordRecommendation counts a produced recommendation.
func RecordRecommendation(label, strategy string) {
	globalManager.recommendations.WithLabelValues(label, strategy).Inc()
}

// RecordRecommendationError counts a failed recommendation request.
func RecordRecommendationError(kind string) {
	globalManager.recommendationErrors.WithLabelValues(kind).Inc()
}

// RecordRecommendationLatency observes the time spent on one recommendation.
func RecordRecommendationLatency(d time.Duration) {
	globalManager.recommendationLatency.Observe(ms(d))
}

// UpdateCatalogEvents sets the active catalog size.
func UpdateCatalogEvents(count int) {
	globalManager.catalogEvents.Set(float64(count))
}

// RecordCatalogReload counts a reload attempt; outcome is "ok" or "rejected".
func RecordCatalogReload(outcome string) {
	globalManager.catalogReloads.WithLabelValues(outcome).Inc()
}

// UpdateModelTrained reflects the regression model state of the active snapshot.
func UpdateModelTrained(trained bool) {
	if trained {
		globalManager.modelTrained.Set(1)
		return
	}
	globalManager.modelTrained.Set(0)
}

// RecordRankingRun observes a finished ranking run and the size of its board.
func RecordRankingRun(d time.Duration, entries int) {
	globalManager.rankingRuns.Inc()
	globalManager.rankingDuration.Observe(ms(d))
	globalManager.boardEntries.Set(float64(entries))
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueueError counts a rejected enqueue.
func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(d time.Duration) {
	globalManager.workerProcessingLatency.Observe(ms(d))
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile dumps the registry in the Prometheus text exposition format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
