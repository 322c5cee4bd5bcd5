package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private Prometheus registry so several servers can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	commandsTotal       *prometheus.CounterVec
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	wsConnections       prometheus.Gauge
}

// NewMetrics registers the collectors. liveSessions backs the session gauge.
func NewMetrics(liveSessions func() int64) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gitgud_commands_total",
				Help: "Total number of terminal commands by command and whether it exists",
			},
			[]string{"command", "found"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gitgud_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gitgud_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		wsConnections: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "gitgud_websocket_connections",
				Help: "Number of open terminal WebSocket connections",
			},
		),
	}

	m.registry.MustRegister(
		m.commandsTotal,
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.wsConnections,
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "gitgud_sessions_active",
				Help: "Number of live terminal sessions",
			},
			func() float64 { return float64(liveSessions()) },
		),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveCommand counts one dispatched command. Unknown commands are folded into one label value.
func (m *Metrics) ObserveCommand(command string, found bool) {
	if !found {
		command = "unknown"
	}
	m.commandsTotal.WithLabelValues(command, strconv.FormatBool(found)).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request count and latency by route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		// Unrouted paths share one label so arbitrary 404s cannot grow the series set
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		m.httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()
		m.httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
