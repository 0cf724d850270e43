// Package promadapter implements the journal MetricsCollector interface with Prometheus vectors.
package promadapter

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AntonStoeckl/library-catalog-go/journal"
)

// MetricsCollector creates one Prometheus vector per metric name on first use and registers it:
//   - RecordDuration -> HistogramVec in seconds
//   - IncrementCounter -> CounterVec
//   - RecordValue -> GaugeVec
//
// The label names of a metric are fixed by its first recording. Later recordings with
// other label names are dropped, as Prometheus would reject them.
type MetricsCollector struct {
	registerer prometheus.Registerer
	buckets    []float64

	mu         sync.Mutex
	histograms map[string]*prometheus.HistogramVec
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
}

// Option configures a MetricsCollector.
type Option func(*MetricsCollector)

// WithBuckets replaces prometheus.DefBuckets for duration histograms.
func WithBuckets(buckets []float64) Option {
	return func(m *MetricsCollector) {
		m.buckets = buckets
	}
}

// NewMetricsCollector creates a collector registering its vectors with registerer.
func NewMetricsCollector(registerer prometheus.Registerer, opts ...Option) *MetricsCollector {
	m := &MetricsCollector{
		registerer: registerer,
		buckets:    prometheus.DefBuckets,
		histograms: make(map[string]*prometheus.HistogramVec),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *MetricsCollector) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	vec, ok := vector(m, m.histograms, metric, labels, func(opts prometheus.Opts, names []string) *prometheus.HistogramVec {
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    opts.Name,
			Help:    opts.Help,
			Buckets: m.buckets,
		}, names)
	})
	if !ok {
		return
	}

	if observer, err := vec.GetMetricWith(labels); err == nil {
		observer.Observe(duration.Seconds())
	}
}

func (m *MetricsCollector) IncrementCounter(metric string, labels map[string]string) {
	vec, ok := vector(m, m.counters, metric, labels, func(opts prometheus.Opts, names []string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts(opts), names)
	})
	if !ok {
		return
	}

	if counter, err := vec.GetMetricWith(labels); err == nil {
		counter.Inc()
	}
}

func (m *MetricsCollector) RecordValue(metric string, value float64, labels map[string]string) {
	vec, ok := vector(m, m.gauges, metric, labels, func(opts prometheus.Opts, names []string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts(opts), names)
	})
	if !ok {
		return
	}

	if gauge, err := vec.GetMetricWith(labels); err == nil {
		gauge.Set(value)
	}
}

// vector returns the registered vector for metric, creating and registering it on first use.
// A vector registered earlier by someone else under the same name is reused.
func vector[V prometheus.Collector](
	m *MetricsCollector,
	cache map[string]V,
	metric string,
	labels map[string]string,
	create func(prometheus.Opts, []string) V,
) (V, bool) {

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := cache[metric]; ok {
		return existing, true
	}

	vec := create(prometheus.Opts{Name: metric, Help: help(metric)}, slices.Sorted(maps.Keys(labels)))

	if err := m.registerer.Register(vec); err != nil {
		are := prometheus.AlreadyRegisteredError{}
		if !errors.As(err, &are) {
			var zero V
			return zero, false
		}

		existing, ok := are.ExistingCollector.(V)
		if !ok {
			var zero V
			return zero, false
		}

		vec = existing
	}

	cache[metric] = vec

	return vec, true
}

func help(metric string) string {
	return strings.ReplaceAll(metric, "_", " ")
}

var _ journal.MetricsCollector = (*MetricsCollector)(nil)
