// Package metrics holds the Prometheus collectors shared by the generate
// action and the HTTP shell.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "reviewqr"

// Outcome label values for Generations.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	Generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "generations_total", Help: "Generate actions by outcome."},
		[]string{"outcome"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)

// NewRegistry returns a registry with every collector of this package
// registered.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(Generations, HTTPRequests, HTTPLatency)
	return reg
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveGeneration(err error) {
	if err != nil {
		Generations.WithLabelValues(OutcomeError).Inc()
		return
	}
	Generations.WithLabelValues(OutcomeOK).Inc()
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}
