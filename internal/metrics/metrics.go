// internal/metrics/metrics.go

// Package metrics aggregates invocation and cache counters on an explicit
// prometheus registry. A Metrics value is created once at startup and passed
// by reference to the components that report into it; there is no implicit
// package-level state, and tests create their own instances.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	Invocations        *prometheus.CounterVec
	InvocationDuration *prometheus.HistogramVec
	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
	ValidationFailures prometheus.Counter
}

// New creates a Metrics aggregator with a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry: reg,
		Invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "logic_invocations_total",
			Help: "External prover invocations by binary and outcome status.",
		}, []string{"binary", "status"}),
		InvocationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "logic_invocation_duration_seconds",
			Help:    "Wall time of external prover invocations.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"binary"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logic_result_cache_hits_total",
			Help: "Proof requests answered from the result cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logic_result_cache_misses_total",
			Help: "Proof requests that required an external invocation.",
		}),
		ValidationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logic_validation_failures_total",
			Help: "Requests rejected by the formula validator.",
		}),
	}

	reg.MustRegister(m.Invocations, m.InvocationDuration, m.CacheHits, m.CacheMisses, m.ValidationFailures)
	return m
}

// ObserveInvocation records one finished external invocation. Success is
// tracked by explicit status, never inferred from durations.
func (m *Metrics) ObserveInvocation(binary, status string, seconds float64) {
	m.Invocations.WithLabelValues(binary, status).Inc()
	m.InvocationDuration.WithLabelValues(binary).Observe(seconds)
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
