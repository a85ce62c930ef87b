package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"association-site-api/internal/auth"
	"association-site-api/internal/cache"
	"association-site-api/internal/datasource"
	"association-site-api/internal/middleware"
	"association-site-api/internal/realtime"
	"association-site-api/internal/testutil"
	"association-site-api/internal/visibility"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router  *gin.Engine
	handler *Handler
	token   string
}

// newTestServer wires a Handler on an in-memory database without mounting
// the sources, so every test starts with an empty cache.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	c := cache.NewSimpleCache(cache.Options{ConcurrencySafe: true})
	tracker := visibility.NewTracker()
	sources := datasource.New(db, c, tracker, datasource.Options{})
	t.Cleanup(sources.Close)

	h := New(db, sources, realtime.NewHub(), tracker)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/login", h.Login)
	api.GET("/media", h.ListMedia)
	api.GET("/newsletters", h.ListPublishedNewsletters)
	api.POST("/newsletter/subscribe", h.Subscribe)
	api.POST("/newsletter/unsubscribe", h.Unsubscribe)
	api.POST("/contact", h.CreateContactMessage)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth())
	admin.POST("/media", h.CreateMedia)
	admin.PUT("/media/:id", h.UpdateMedia)
	admin.DELETE("/media/:id", h.DeleteMedia)
	admin.GET("/subscribers", h.ListSubscribers)
	admin.DELETE("/subscribers/:id", h.DeleteSubscriber)
	admin.GET("/newsletters", h.ListNewsletters)
	admin.POST("/newsletters", h.CreateNewsletter)
	admin.PUT("/newsletters/:id", h.UpdateNewsletter)
	admin.POST("/newsletters/:id/send", h.SendNewsletter)
	admin.DELETE("/newsletters/:id", h.DeleteNewsletter)
	admin.GET("/messages", h.ListContactMessages)
	admin.PATCH("/messages/:id/read", h.MarkContactMessageRead)
	admin.GET("/stats", h.GetDashboardStats)
	admin.GET("/live", h.Live)
	admin.GET("/cache", h.GetCacheInfo)
	admin.POST("/cache/invalidate", h.InvalidateCache)
	admin.POST("/cache/purge", h.PurgeExpired)
	admin.DELETE("/cache", h.ClearCache)

	token, err := auth.GenerateToken("admin-1", "alice")
	require.NoError(t, err)

	return &testServer{router: r, handler: h, token: token}
}

// do sends a request; body may be nil. Admin requests carry the bearer token.
func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// viewBody is the decoded read contract with a raw data payload.
type viewBody struct {
	Data        json.RawMessage `json:"data"`
	Loading     bool            `json:"loading"`
	Error       *string         `json:"error"`
	LastUpdated *string         `json:"lastUpdated"`
	IsFromCache bool            `json:"isFromCache"`
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) viewBody {
	t.Helper()
	var v viewBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}
