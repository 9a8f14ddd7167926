// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "parish"

// Claim outcomes recorded by ObserveClaim.
const (
	ClaimOutcomeSuccess        = "success"
	ClaimOutcomeInvalid        = "invalid_code"
	ClaimOutcomeExpired        = "expired"
	ClaimOutcomeAlreadyLinked  = "already_linked"
	ClaimOutcomeDuplicateEmail = "duplicate_email"
	ClaimOutcomeError          = "error"
)

// Metrics owns a private registry so tests can build as many instances as
// they need.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	claims          *prometheus.CounterVec
	claimCodes      prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		claims: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "claim",
			Name:      "attempts_total",
			Help:      "Claim code redemptions by outcome.",
		}, []string{"outcome"}),
		claimCodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "claim",
			Name:      "codes_issued_total",
			Help:      "Claim codes issued to members.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.claims,
		m.claimCodes,
	)

	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveClaim(outcome string) {
	if m == nil {
		return
	}
	m.claims.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveClaimCodeIssued() {
	if m == nil {
		return
	}
	m.claimCodes.Inc()
}
