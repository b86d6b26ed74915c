package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetlog/internal/infrastructure"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestIDGeneratesUUID(t *testing.T) {
	var traceID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = infrastructure.GetTraceID(r.Context())
	})

	w := httptest.NewRecorder()
	RequestID(inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, traceID)
	assert.Equal(t, traceID, w.Header().Get("X-Request-ID"))
}

func TestRequestIDHonoursIncomingHeader(t *testing.T) {
	var traceID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = infrastructure.GetTraceID(r.Context())
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-ID", "client-supplied")
	RequestID(inner).ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "client-supplied", traceID)
}

func TestRecoverer(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		Recoverer(logger)(panicking).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRateLimit(t *testing.T) {
	handler := RateLimit(1, 1)(okHandler())

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	// Burst exhausted; the immediate second request is rejected.
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRequestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewRequestMetrics(reg)

	handler := metrics.Middleware(okHandler())
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	count := testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, "/api/dashboard", "200"))
	assert.Equal(t, float64(2), count)
}

func TestStructuredLoggerPassesThrough(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := httptest.NewRecorder()
	StructuredLogger(logger)(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
