package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector exposes prometheus metrics for recipe generation and
// the document stores.
type MetricsCollector struct {
	registry *prometheus.Registry

	generations     *prometheus.CounterVec
	llmLatency      *prometheus.HistogramVec
	storeSaveErrors *prometheus.CounterVec
	pantryExpiring  prometheus.Gauge
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector() *MetricsCollector {
	registry := prometheus.NewRegistry()

	generations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_generations_total",
			Help: "Number of recipe generation requests",
		},
		[]string{"outcome"},
	)

	llmLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Latency of LLM requests",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		},
		[]string{"operation"},
	)

	storeSaveErrors := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_save_errors_total",
			Help: "Number of failed document store writes",
		},
		[]string{"store"},
	)

	pantryExpiring := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pantry_items_expiring",
			Help: "Items expiring within the alert window",
		},
	)

	registry.MustRegister(generations, llmLatency, storeSaveErrors, pantryExpiring)

	return &MetricsCollector{
		registry:        registry,
		generations:     generations,
		llmLatency:      llmLatency,
		storeSaveErrors: storeSaveErrors,
		pantryExpiring:  pantryExpiring,
	}
}

// RecordGeneration records a recipe generation and its outcome
// ("ok" or "degraded").
func (c *MetricsCollector) RecordGeneration(outcome string, duration time.Duration) {
	c.generations.WithLabelValues(outcome).Inc()
	c.llmLatency.WithLabelValues("recipe").Observe(duration.Seconds())
}

// RecordLLMRequest records the latency of a non-recipe LLM operation.
func (c *MetricsCollector) RecordLLMRequest(operation string, duration time.Duration) {
	c.llmLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordStoreSaveError counts a failed document write for a store.
func (c *MetricsCollector) RecordStoreSaveError(store string) {
	c.storeSaveErrors.WithLabelValues(store).Inc()
}

// SetPantryExpiring updates the expiring-items gauge.
func (c *MetricsCollector) SetPantryExpiring(count int) {
	c.pantryExpiring.Set(float64(count))
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (c *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
