package promadapter_test

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/journal/promadapter"
)

func Test_MetricsCollector_IncrementCounter(t *testing.T) {
	// arrange
	registry := prometheus.NewRegistry()
	collector := promadapter.NewMetricsCollector(registry)
	labels := map[string]string{"command_type": "ReserveBook", "status": "success"}

	// act
	collector.IncrementCounter("library_command_calls_total", labels)
	collector.IncrementCounter("library_command_calls_total", labels)
	collector.IncrementCounter("library_command_calls_total", map[string]string{"command_type": "ReserveBook", "status": "rejected"})

	// assert
	expected := `
# HELP library_command_calls_total library command calls total
# TYPE library_command_calls_total counter
library_command_calls_total{command_type="ReserveBook",status="rejected"} 1
library_command_calls_total{command_type="ReserveBook",status="success"} 2
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "library_command_calls_total"))
}

func Test_MetricsCollector_RecordValue(t *testing.T) {
	// arrange
	registry := prometheus.NewRegistry()
	collector := promadapter.NewMetricsCollector(registry)

	// act
	collector.RecordValue("journal_events", 2, nil)
	collector.RecordValue("journal_events", 7, nil)

	// assert
	expected := `
# HELP journal_events journal events
# TYPE journal_events gauge
journal_events 7
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "journal_events"))
}

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// arrange
	registry := prometheus.NewRegistry()
	collector := promadapter.NewMetricsCollector(registry, promadapter.WithBuckets([]float64{0.3, 1}))
	labels := map[string]string{"command_type": "CheckoutBook", "status": "success"}

	// act
	collector.RecordDuration("library_command_duration_seconds", 250*time.Millisecond, labels)
	collector.RecordDuration("library_command_duration_seconds", 500*time.Millisecond, labels)

	// assert
	expected := `
# HELP library_command_duration_seconds library command duration seconds
# TYPE library_command_duration_seconds histogram
library_command_duration_seconds_bucket{command_type="CheckoutBook",status="success",le="0.3"} 1
library_command_duration_seconds_bucket{command_type="CheckoutBook",status="success",le="1"} 2
library_command_duration_seconds_bucket{command_type="CheckoutBook",status="success",le="+Inf"} 2
library_command_duration_seconds_sum{command_type="CheckoutBook",status="success"} 0.75
library_command_duration_seconds_count{command_type="CheckoutBook",status="success"} 2
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "library_command_duration_seconds"))
}

func Test_MetricsCollector_DropsRecordingsWithOtherLabelNames(t *testing.T) {
	// arrange
	registry := prometheus.NewRegistry()
	collector := promadapter.NewMetricsCollector(registry)

	// act
	collector.IncrementCounter("library_command_rejections_total", map[string]string{"command_type": "ReturnBook"})
	collector.IncrementCounter("library_command_rejections_total", map[string]string{"unexpected": "label"})

	// assert
	count, err := testutil.GatherAndCount(registry, "library_command_rejections_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func Test_MetricsCollector_ReusesVectorRegisteredByAnotherCollector(t *testing.T) {
	// arrange
	registry := prometheus.NewRegistry()
	first := promadapter.NewMetricsCollector(registry)
	second := promadapter.NewMetricsCollector(registry)
	labels := map[string]string{"status": "success"}

	// act
	first.IncrementCounter("library_command_calls_total", labels)
	second.IncrementCounter("library_command_calls_total", labels)

	// assert
	expected := `
# HELP library_command_calls_total library command calls total
# TYPE library_command_calls_total counter
library_command_calls_total{status="success"} 2
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "library_command_calls_total"))
}
