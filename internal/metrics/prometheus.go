// Package metrics exposes Prometheus collectors for HTTP traffic, query
// latency and the loaded record store.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vytor/chessdash/internal/errors"
)

// Manager owns every collector and the registry they are exported from.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	queryDuration *prometheus.HistogramVec
	queryErrors   *prometheus.CounterVec

	storeRecords   prometheus.Gauge
	storeMalformed prometheus.Gauge
}

// New creates a Manager on a private registry that also carries the Go
// runtime and process collectors.
func New(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "chessdash",
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route pattern and status code",
	}, []string{"method", "route", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern",
		Buckets:   m.histogramBuckets,
	}, []string{"method", "route"})

	m.queryDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "query",
		Name:      "duration_seconds",
		Help:      "Query evaluation latency by query name",
		Buckets:   m.histogramBuckets,
	}, []string{"query"})

	m.queryErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "query",
		Name:      "errors_total",
		Help:      "Rejected or failed queries by query name and error code",
	}, []string{"query", "code"})

	m.storeRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "records",
		Help:      "Number of game records loaded",
	})

	m.storeMalformed = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "malformed_records",
		Help:      "Loaded records whose result was not recognized",
	})

	return m
}

// Registry returns the registry the collectors live on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveQuery records a query's latency, and its error code when it failed.
func (m *Manager) ObserveQuery(name string, d time.Duration, err error) {
	m.queryDuration.WithLabelValues(name).Observe(d.Seconds())
	if err != nil {
		m.queryErrors.WithLabelValues(name, errors.FromDomain(err).Code).Inc()
	}
}

// SetStoreSize publishes the size of the loaded store.
func (m *Manager) SetStoreSize(records, malformed int) {
	m.storeRecords.Set(float64(records))
	m.storeMalformed.Set(float64(malformed))
}

// ObserveRequest records one completed HTTP request.
func (m *Manager) ObserveRequest(method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware times every request, labelling it with the matched chi route
// pattern so path parameters do not explode label cardinality.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		m.ObserveRequest(r.Method, route, rec.status, time.Since(start))
	})
}
