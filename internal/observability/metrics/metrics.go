package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes application-level instruments.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	billsSubmitted prometheus.Counter
	rendersTotal   *prometheus.CounterVec
	renderPages    prometheus.Histogram
}

// New configures the instruments and registers them on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "billdesk_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "billdesk_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		billsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "billdesk_bills_submitted_total",
			Help: "Bills accepted and persisted.",
		}),
		rendersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "billdesk_invoice_renders_total",
			Help: "Invoice PDF renders by outcome.",
		}, []string{"outcome"}),
		renderPages: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "billdesk_invoice_render_pages",
			Help:    "Pages emitted per rendered invoice.",
			Buckets: []float64{1, 2, 3, 5, 8, 13},
		}),
	}

	registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.billsSubmitted,
		m.rendersTotal,
		m.renderPages,
	)

	return m
}

// Registry returns the registry backing the /metrics endpoint.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// BillSubmitted counts one persisted bill.
func (m *Metrics) BillSubmitted() { m.billsSubmitted.Inc() }

// RenderCompleted counts one finished render and its page count.
func (m *Metrics) RenderCompleted(pages int) {
	m.rendersTotal.WithLabelValues("ok").Inc()
	m.renderPages.Observe(float64(pages))
}

// RenderFailed counts one failed render.
func (m *Metrics) RenderFailed() {
	m.rendersTotal.WithLabelValues("error").Inc()
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		m.httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
