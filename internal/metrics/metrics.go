package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jcooky/go-din"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private Prometheus registry so tests and multiple
// containers never collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	generationsTotal *prometheus.CounterVec
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	mcpCallsTotal    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,

		generationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalrank_generations_total",
			Help: "Total number of artifact generations.",
		}, []string{"type", "status"}),

		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalrank_http_requests_total",
			Help: "Total number of HTTP requests served.",
		}, []string{"route", "method", "status"}),

		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "signalrank_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),

		mcpCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalrank_mcp_tool_calls_total",
			Help: "Total number of MCP tool calls.",
		}, []string{"tool", "status"}),
	}

	reg.MustRegister(
		m.generationsTotal,
		m.requestsTotal,
		m.requestDuration,
		m.mcpCallsTotal,
	)

	return m
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// RecordGeneration counts one artifact generation of the given type.
func (m *Metrics) RecordGeneration(artifactType string, success bool) {
	m.generationsTotal.WithLabelValues(artifactType, outcome(success)).Inc()
}

// RecordRequest counts a served HTTP request and observes its duration.
// route is the mux path template, not the raw path, to bound cardinality.
func (m *Metrics) RecordRequest(route, method string, status int, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func (m *Metrics) RecordMCPCall(tool string, success bool) {
	m.mcpCallsTotal.WithLabelValues(tool, outcome(success)).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func init() {
	din.RegisterT(func(c *din.Container) (*Metrics, error) {
		return NewMetrics(), nil
	})
}
