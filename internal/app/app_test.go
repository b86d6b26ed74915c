package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetlog/internal/config"
)

func newTestApp(t *testing.T) *Application {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.WorkbooksDir = t.TempDir()
	cfg.Paths.ReportsDir = t.TempDir()
	cfg.Logging.Output = "console"

	a, err := NewApplicationWithConfig(&cfg)
	require.NoError(t, err)
	return a
}

func TestRouterServesHealthz(t *testing.T) {
	a := newTestApp(t)

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestRouterServesMetrics(t *testing.T) {
	a := newTestApp(t)

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterServesWorkbooks(t *testing.T) {
	a := newTestApp(t)

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/workbooks", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":0`)
}

func TestRouterRejectsUnknownWorkbook(t *testing.T) {
	a := newTestApp(t)

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard?workbook=absent.xlsx", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
