package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"association-site-api/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AdminAuth())
	r.GET("/protected", func(c *gin.Context) {
		c.String(http.StatusOK, AdminID(c))
	})
	return r
}

func TestAdminAuth_BearerHeader(t *testing.T) {
	r := newProtectedRouter()
	token, err := auth.GenerateToken("admin-1", "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "admin-1", w.Body.String())
}

func TestAdminAuth_QueryToken(t *testing.T) {
	r := newProtectedRouter()
	token, err := auth.GenerateToken("admin-2", "bob")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "admin-2", w.Body.String())
}

func TestAdminAuth_Rejects(t *testing.T) {
	r := newProtectedRouter()

	for name, header := range map[string]string{
		"missing":   "",
		"empty":     "Bearer ",
		"malformed": "Bearer not-a-jwt",
		"scheme":    "Basic YWxpY2U6cHc=",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
