// Package metrics exposes drill activity to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors the drill service updates
type Metrics struct {
	SessionsStarted prometheus.Counter
	SessionsActive  prometheus.Gauge
	SessionsExpired prometheus.Counter
	Answers         *prometheus.CounterVec
	PoolSize        prometheus.Gauge
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers the drill collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registers the drill collectors on reg and serves them from g
func NewWithRegistry(reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	m := &Metrics{
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "derdiedas",
			Name:      "sessions_started_total",
			Help:      "Drill sessions started.",
		}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "derdiedas",
			Name:      "sessions_active",
			Help:      "Drill sessions currently held in memory.",
		}),
		SessionsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "derdiedas",
			Name:      "sessions_expired_total",
			Help:      "Drill sessions evicted after the idle timeout.",
		}),
		Answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "derdiedas",
			Name:      "answers_total",
			Help:      "Evaluated answers by kind (guess, quiz) and result.",
		}, []string{"kind", "result"}),
		PoolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "derdiedas",
			Name:      "word_pool_size",
			Help:      "Nouns in the most recently loaded pool.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "derdiedas",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "derdiedas",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		gatherer: g,
	}

	reg.MustRegister(
		m.SessionsStarted,
		m.SessionsActive,
		m.SessionsExpired,
		m.Answers,
		m.PoolSize,
		m.HTTPRequests,
		m.HTTPDuration,
	)
	return m
}

// ObserveAnswer counts one evaluated answer
func (m *Metrics) ObserveAnswer(kind string, correct bool) {
	result := "incorrect"
	if correct {
		result = "correct"
	}
	m.Answers.WithLabelValues(kind, result).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
