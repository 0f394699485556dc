// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "aspiro"

// Outcome labels.
const (
	OutcomeOK        = "ok"
	OutcomeCached    = "cached"
	OutcomeEmpty     = "empty"
	OutcomeError     = "error"
	OutcomeDuplicate = "duplicate"
)

// Manager owns a private registry so tests can build as many as they need.
type Manager struct {
	registry *prometheus.Registry

	extractions         *prometheus.CounterVec
	extractionDuration  prometheus.Histogram
	skillsPerExtraction prometheus.Histogram
	usersCreated        *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
}

func New() *Manager {
	reg := prometheus.NewRegistry()
	m := &Manager{
		registry: reg,
		extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "skills",
			Name:      "extractions_total",
			Help:      "Skill extraction calls by outcome.",
		}, []string{"outcome"}),
		extractionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "skills",
			Name:      "extraction_duration_seconds",
			Help:      "Time spent extracting skills, tagger call included.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		skillsPerExtraction: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "skills",
			Name:      "skills_per_extraction",
			Help:      "Number of unique skills returned per extraction.",
			Buckets:   prometheus.LinearBuckets(0, 5, 10),
		}),
		usersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "users",
			Name:      "create_total",
			Help:      "User creation attempts by outcome.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.extractions,
		m.extractionDuration,
		m.skillsPerExtraction,
		m.usersCreated,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

func (m *Manager) ObserveExtraction(outcome string, skills int, d time.Duration) {
	if m == nil {
		return
	}
	m.extractions.WithLabelValues(outcome).Inc()
	if outcome == OutcomeError {
		return
	}
	m.extractionDuration.Observe(d.Seconds())
	m.skillsPerExtraction.Observe(float64(skills))
}

func (m *Manager) ObserveUserCreate(outcome string) {
	if m == nil {
		return
	}
	m.usersCreated.WithLabelValues(outcome).Inc()
}

func (m *Manager) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
