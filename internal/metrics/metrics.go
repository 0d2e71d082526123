// Package metrics exposes registry counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the registry collectors and the registry they live in.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	records    prometheus.Gauge
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "registrar",
			Name:      "operations_total",
			Help:      "Registry operations by outcome.",
		}, []string{"operation", "outcome"}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "registrar",
			Name:      "records",
			Help:      "Number of stored records at the last load or write.",
		}),
	}
	m.registry.MustRegister(
		m.operations,
		m.records,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe counts one operation with its outcome.
func (m *Metrics) Observe(operation, outcome string) {
	m.operations.WithLabelValues(operation, outcome).Inc()
}

// SetRecords records the current collection size.
func (m *Metrics) SetRecords(n int) {
	m.records.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
