package monitoring

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonitorRecordAndGet(t *testing.T) {
	monitor := NewMonitor()

	monitor.RecordMetric("last_provider", "openai")
	value, exists := monitor.GetMetric("last_provider")
	assert.True(t, exists)
	assert.Equal(t, "openai", value)

	_, exists = monitor.GetMetric("missing")
	assert.False(t, exists)
}

func TestMonitorIncrCounter(t *testing.T) {
	monitor := NewMonitor()

	monitor.IncrCounter("recipes_generated")
	monitor.IncrCounter("recipes_generated")

	value, exists := monitor.GetMetric("recipes_generated")
	assert.True(t, exists)
	assert.Equal(t, int64(2), value)
}

func TestMonitorGetMetricsIncludesUptime(t *testing.T) {
	monitor := NewMonitor()
	metrics := monitor.GetMetrics()

	uptime, ok := metrics["uptime_seconds"].(float64)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, uptime, 0.0)
}

func TestMonitorReset(t *testing.T) {
	monitor := NewMonitor()
	monitor.RecordMetric("a", 1)
	monitor.Reset()

	_, exists := monitor.GetMetric("a")
	assert.False(t, exists)
}

func TestMetricsCollectorServesMetrics(t *testing.T) {
	collector := NewMetricsCollector()
	collector.RecordGeneration("ok", 1500*time.Millisecond)
	collector.RecordStoreSaveError("preferences")
	collector.SetPantryExpiring(3)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/metrics", nil)
	collector.Handler().ServeHTTP(recorder, request)

	assert.Equal(t, 200, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, "recipe_generations_total")
	assert.Contains(t, body, "store_save_errors_total")
	assert.Contains(t, body, "pantry_items_expiring")
}
