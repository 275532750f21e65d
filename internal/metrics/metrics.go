// Package metrics exposes Prometheus counters for the garden.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes recorded for people mutations.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Metrics owns a private registry so tests can build as many as they like.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry     *prometheus.Registry
	mutations    *prometheus.CounterVec
	listDuration *prometheus.HistogramVec
}

// New registers the garden collectors plus Go runtime and process
// collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zombies",
			Name:      "people_mutations_total",
			Help:      "People created, eaten or deleted, by outcome.",
		}, []string{"operation", "outcome"}),
		listDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "zombies",
			Name:      "list_duration_seconds",
			Help:      "Time spent loading a listing from the database.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource"}),
	}

	registry.MustRegister(
		m.mutations,
		m.listDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Mutation counts one create/eaten/delete attempt.
func (m *Metrics) Mutation(operation, outcome string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(operation, outcome).Inc()
}

// ListDuration records how long a listing query took.
func (m *Metrics) ListDuration(resource string, d time.Duration) {
	if m == nil {
		return
	}
	m.listDuration.WithLabelValues(resource).Observe(d.Seconds())
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
