package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"association-site-api/internal/cache"
	"association-site-api/internal/datasource"
	"association-site-api/internal/handlers"
	"association-site-api/internal/metrics"
	"association-site-api/internal/realtime"
	"association-site-api/internal/testutil"
	"association-site-api/internal/visibility"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*gin.Engine, *metrics.Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	c := cache.NewSimpleCache(cache.Options{ConcurrencySafe: true})
	m := metrics.New("association_site", c.Len)
	tracker := visibility.NewTracker()
	sources := datasource.New(db, c, tracker, datasource.Options{Metrics: m})
	t.Cleanup(sources.Close)

	h := handlers.New(db, sources, realtime.NewHub(), tracker)
	return SetupRoutes(h, m), m
}

func TestHealth(t *testing.T) {
	r, _ := setup(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsExposeCacheCounters(t *testing.T) {
	r, _ := setup(t)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/media", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.True(t, strings.Contains(body, `association_site_cache_hits_total{key="media_items"} 1`), body)
	require.True(t, strings.Contains(body, `association_site_cache_misses_total{key="media_items"} 1`), body)
	require.True(t, strings.Contains(body, "association_site_cache_entries 1"), body)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r, _ := setup(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	r, _ := setup(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/media", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
