package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var durationBuckets = []float64{
	25, 50, 75, 100, 150, 200, 300, 400, 500,
	750, 1000, 1500, 2000, 3000, 5000, 10000, 30000,
}

// Metrics bundles the service's prometheus collectors: HTTP request metrics
// plus webhook event outcome counters partitioned by gateway event type.
type Metrics struct {
	reqCnt *prometheus.CounterVec
	reqDur *prometheus.HistogramVec

	eventsReceived *prometheus.CounterVec
	eventsHandled  *prometheus.CounterVec
	eventsFailed   *prometheus.CounterVec
	eventsIgnored  *prometheus.CounterVec

	registry *prometheus.Registry
	log      *zap.SugaredLogger
}

func New(log *zap.SugaredLogger) *Metrics {
	m := &Metrics{
		reqCnt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests processed, partitioned by status code, method and route.",
		}, []string{"code", "method", "route"}),
		reqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "HTTP request latencies in milliseconds.",
			Buckets: durationBuckets,
		}, []string{"code", "method", "route"}),
		eventsReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "webhook_events_received_total",
			Help: "Verified webhook events received, by gateway event type.",
		}, []string{"type"}),
		eventsHandled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "webhook_events_handled_total",
			Help: "Webhook events handled successfully, by gateway event type.",
		}, []string{"type"}),
		eventsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "webhook_events_failed_total",
			Help: "Webhook events whose handler returned an error, by gateway event type.",
		}, []string{"type"}),
		eventsIgnored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "webhook_events_ignored_total",
			Help: "Webhook events acknowledged without a registered handler, by gateway event type.",
		}, []string{"type"}),
		registry: prometheus.NewRegistry(),
		log:      log,
	}

	for _, c := range []prometheus.Collector{
		m.reqCnt, m.reqDur,
		m.eventsReceived, m.eventsHandled, m.eventsFailed, m.eventsIgnored,
	} {
		if err := m.registry.Register(c); err != nil {
			log.Errorf("failed to register collector: %v", err)
		}
	}

	return m
}

func (m *Metrics) EventReceived(eventType string) { m.eventsReceived.WithLabelValues(eventType).Inc() }
func (m *Metrics) EventHandled(eventType string)  { m.eventsHandled.WithLabelValues(eventType).Inc() }
func (m *Metrics) EventFailed(eventType string)   { m.eventsFailed.WithLabelValues(eventType).Inc() }
func (m *Metrics) EventIgnored(eventType string)  { m.eventsIgnored.WithLabelValues(eventType).Inc() }

// HandlerFunc returns a gin middleware recording request count and latency.
func (m *Metrics) HandlerFunc() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		code := strconv.Itoa(c.Writer.Status())
		elapsed := float64(time.Since(start).Milliseconds())

		m.reqCnt.WithLabelValues(code, c.Request.Method, route).Inc()
		m.reqDur.WithLabelValues(code, c.Request.Method, route).Observe(elapsed)
	}
}

// Serve exposes /metrics on its own listener so scrapes stay out of the
// service access log.
func (m *Metrics) Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			m.log.Errorf("metrics listener error: %v", err)
		}
	}()
}
