package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessdash/internal/errors"
)

func newTestManager() *Manager {
	return New(WithRegistry(prometheus.NewRegistry()), WithNamespace("test"))
}

func TestObserveQuery(t *testing.T) {
	m := newTestManager()

	m.ObserveQuery("rank", 3*time.Millisecond, nil)
	m.ObserveQuery("rank", 5*time.Millisecond, nil)
	m.ObserveQuery("head_to_head", time.Millisecond, &errors.UnknownPlayerError{Player: "x"})

	assert.Equal(t, 2, promtest.CollectAndCount(m.queryDuration))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.queryErrors.WithLabelValues("head_to_head", errors.ErrCodeNotFound)))
	assert.Equal(t, 0.0, promtest.ToFloat64(m.queryErrors.WithLabelValues("rank", errors.ErrCodeNotFound)))
}

func TestSetStoreSize(t *testing.T) {
	m := newTestManager()
	m.SetStoreSize(20058, 12)

	assert.Equal(t, 20058.0, promtest.ToFloat64(m.storeRecords))
	assert.Equal(t, 12.0, promtest.ToFloat64(m.storeMalformed))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := newTestManager()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/fields/{field}/values", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, field := range []string{"opening", "white", "black"} {
		req := httptest.NewRequest(http.MethodGet, "/api/fields/"+field+"/values", nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	got := promtest.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "/api/fields/{field}/values", "418"))
	assert.Equal(t, 3.0, got)
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := newTestManager()
	m.SetStoreSize(3, 0)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "test_store_records 3"))
}
