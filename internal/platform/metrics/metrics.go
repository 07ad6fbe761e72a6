// Package metrics defines the Prometheus business metrics scraped from /-/metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ritual"

// Outcome label values.
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeDuplicate = "duplicate"
	OutcomeIgnored   = "ignored"
	OutcomeHit       = "hit"
	OutcomeMiss      = "miss"
)

// Metrics holds the service's business instruments.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	checkoutsCreated   prometheus.Counter
	webhookEvents      *prometheus.CounterVec
	fulfilments        *prometheus.CounterVec
	fulfilmentDuration prometheus.Histogram
	generationDuration prometheus.Histogram
	imagesDegraded     *prometheus.CounterVec
	cacheLookups       *prometheus.CounterVec
	operationFailures  *prometheus.CounterVec
	queueDepth         prometheus.Gauge
}

// New registers the instruments with reg.
// Pass prometheus.DefaultRegisterer to expose them on the default /-/metrics handler.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		checkoutsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_created_total",
			Help:      "Checkout sessions created.",
		}),
		webhookEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_events_total",
			Help:      "Payment webhook events by type and outcome.",
		}, []string{"type", "outcome"}),
		fulfilments: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fulfilments_total",
			Help:      "Order fulfilment attempts by outcome.",
		}, []string{"outcome"}),
		fulfilmentDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fulfilment_duration_seconds",
			Help:      "Wall time of one order fulfilment.",
			Buckets:   []float64{5, 10, 20, 30, 45, 60, 90, 120, 180},
		}),
		generationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Wall time of ritual text and image generation.",
			Buckets:   []float64{1, 2, 5, 10, 20, 30, 60, 90},
		}),
		imagesDegraded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "images_degraded_total",
			Help:      "Image generations that failed and were left blank.",
		}, []string{"kind"}),
		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by cache name and result.",
		}, []string{"cache", "result"}),
		operationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Executor failures by operation and pipeline step.",
		}, []string{"operation", "step"}),
		queueDepth: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fulfilment_queue_depth",
			Help:      "Orders waiting for a fulfilment worker.",
		}),
	}
}

// CheckoutCreated counts a created checkout session.
func (m *Metrics) CheckoutCreated() {
	if m == nil {
		return
	}

	m.checkoutsCreated.Inc()
}

// WebhookEvent counts a received payment event.
func (m *Metrics) WebhookEvent(eventType, outcome string) {
	if m == nil {
		return
	}

	m.webhookEvents.WithLabelValues(eventType, outcome).Inc()
}

// Fulfilment records one fulfilment attempt.
func (m *Metrics) Fulfilment(outcome string, d time.Duration) {
	if m == nil {
		return
	}

	m.fulfilments.WithLabelValues(outcome).Inc()
	m.fulfilmentDuration.Observe(d.Seconds())
}

// Generation records the duration of one generation run.
func (m *Metrics) Generation(d time.Duration) {
	if m == nil {
		return
	}

	m.generationDuration.Observe(d.Seconds())
}

// ImageDegraded counts an image left blank after a generation failure.
func (m *Metrics) ImageDegraded(kind string) {
	if m == nil {
		return
	}

	m.imagesDegraded.WithLabelValues(kind).Inc()
}

// CacheLookup counts a cache hit or miss.
func (m *Metrics) CacheLookup(cache string, hit bool) {
	if m == nil {
		return
	}

	result := OutcomeMiss
	if hit {
		result = OutcomeHit
	}

	m.cacheLookups.WithLabelValues(cache, result).Inc()
}

// OperationFailed counts an executor pipeline failure.
func (m *Metrics) OperationFailed(operation, step string) {
	if m == nil {
		return
	}

	m.operationFailures.WithLabelValues(operation, step).Inc()
}

// QueueDepth sets the current fulfilment backlog.
func (m *Metrics) QueueDepth(n int) {
	if m == nil {
		return
	}

	m.queueDepth.Set(float64(n))
}
