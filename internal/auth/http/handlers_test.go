package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsite/site-api/internal/auth/middleware"
	"github.com/clubsite/site-api/internal/auth/service"
	"github.com/clubsite/site-api/internal/logging"
)

func setup(t *testing.T, burst int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions, err := service.NewSessionService(service.Options{
		Username: "admin", Password: "hunter2", Secret: []byte("secret"), TTL: 8 * time.Hour,
	})
	require.NoError(t, err)
	h := New(sessions, middleware.NewLoginLimiter(0, burst), CookieOptions{Name: "auth_token"}, logging.Discard())

	r := gin.New()
	api := r.Group("/api")
	h.Register(api)
	api.GET("/private", h.RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func send(r http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "auth_token" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestLoginFlow(t *testing.T) {
	r := setup(t, 10)

	w := send(r, http.MethodGet, "/api/check-auth", "")
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	w = send(r, http.MethodPost, "/api/login", `{"username":"admin","password":"hunter2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	ck := sessionCookie(t, w)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, ck.SameSite)
	assert.Equal(t, int((8 * time.Hour).Seconds()), ck.MaxAge)

	w = send(r, http.MethodGet, "/api/check-auth", "", ck)
	assert.JSONEq(t, `{"authenticated":true}`, w.Body.String())
	assert.Equal(t, http.StatusNoContent, send(r, http.MethodGet, "/api/private", "", ck).Code)

	w = send(r, http.MethodPost, "/api/logout", "", ck)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := sessionCookie(t, w)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r := setup(t, 10)

	w := send(r, http.MethodPost, "/api/login", `{"username":"admin","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, strings.Contains(w.Header().Get("Set-Cookie"), "auth_token"))

	w = send(r, http.MethodPost, "/api/login", `{"username":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginIsRateLimited(t *testing.T) {
	r := setup(t, 2)
	body := `{"username":"admin","password":"nope"}`
	assert.Equal(t, http.StatusUnauthorized, send(r, http.MethodPost, "/api/login", body).Code)
	assert.Equal(t, http.StatusUnauthorized, send(r, http.MethodPost, "/api/login", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, send(r, http.MethodPost, "/api/login", body).Code)
}

func TestPrivateRouteWithoutSession(t *testing.T) {
	r := setup(t, 10)
	assert.Equal(t, http.StatusUnauthorized, send(r, http.MethodGet, "/api/private", "").Code)
}
