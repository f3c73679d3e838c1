// Package metrics exposes gateway activity as Prometheus metrics.
// Collectors are fed through domain.Hooks, so nothing else in the gateway imports Prometheus.
package metrics

import (
	"context"
	"net/http"

	"github.com/aretw0/typo3docs/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const MetricPrefix = "typo3docs_"

// UnknownOperation labels invocations of names that are not registered.
// Caller-supplied names never become label values.
const UnknownOperation = "unknown"

// Remote call outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the gateway collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	invocations    *prometheus.CounterVec
	fallbacks      *prometheus.CounterVec
	remoteRequests *prometheus.CounterVec
	duration       *prometheus.HistogramVec
}

// New creates and registers the collectors.
// Process and Go runtime collectors are included when withRuntime is set.
func New(withRuntime bool) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricPrefix + "invocations_total",
				Help: "Total number of operation invocations",
			},
			[]string{"operation", "kind"},
		),
		fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricPrefix + "fallbacks_total",
				Help: "Total number of times an operation answered from curated content",
			},
			[]string{"operation"},
		),
		remoteRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricPrefix + "remote_requests_total",
				Help: "Total number of outbound requests",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricPrefix + "invocation_duration_seconds",
				Help:    "Duration of operation invocations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
	m.registry.MustRegister(m.invocations, m.fallbacks, m.remoteRequests, m.duration)
	if withRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collected metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns the callbacks that record metrics.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnResult: func(_ context.Context, e *domain.ResultEvent) {
			op := e.Operation
			if e.Unknown {
				op = UnknownOperation
			}
			m.invocations.WithLabelValues(op, string(e.Kind)).Inc()
			m.duration.WithLabelValues(op).Observe(e.Duration.Seconds())
		},
		OnRemote: func(_ context.Context, e *domain.RemoteEvent) {
			outcome := OutcomeOK
			if e.Err != nil {
				outcome = OutcomeError
			}
			m.remoteRequests.WithLabelValues(outcome).Inc()
		},
		OnFallback: func(_ context.Context, e *domain.FallbackEvent) {
			m.fallbacks.WithLabelValues(e.Operation).Inc()
		},
	}
}
