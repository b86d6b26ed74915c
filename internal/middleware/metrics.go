package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RequestMetrics holds the Prometheus collectors for the HTTP surface.
type RequestMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRequestMetrics registers the request collectors on the given registerer.
func NewRequestMetrics(reg prometheus.Registerer) *RequestMetrics {
	factory := promauto.With(reg)
	return &RequestMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sheetlog_http_requests_total",
			Help: "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sheetlog_http_request_duration_seconds",
			Help:    "HTTP request duration by method and path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

// Middleware records one observation per request.
func (m *RequestMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}

		next.ServeHTTP(sw, r)

		if sw.status == 0 {
			sw.status = http.StatusOK
		}
		m.requests.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(sw.status)).Inc()
		m.duration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}
