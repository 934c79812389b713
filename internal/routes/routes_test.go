package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"transientmap/internal/models"
	"transientmap/internal/ratelimit"
	"transientmap/internal/session"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return SetupRoutes(Config{
		Users:    models.NewDirectory(),
		Sessions: session.NewStore(1000),
		Limiter:  ratelimit.New(5, 1000),
	})
}

func TestHealth(t *testing.T) {
	r := testRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterLoginMeFlow(t *testing.T) {
	r := testRouter(t)

	post := func(path string, payload any, token string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	creds := map[string]string{"username": "alice", "password": "hunter2hunter2"}

	w := post("/api/register", creds, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = post("/api/login", creds, "")
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	me := httptest.NewRecorder()
	r.ServeHTTP(me, req)
	require.Equal(t, http.StatusOK, me.Code)

	w = post("/api/logout", nil, login.Token)
	require.Equal(t, http.StatusOK, w.Code)

	// The session is gone; the still-valid JWT no longer opens the door.
	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	after := httptest.NewRecorder()
	r.ServeHTTP(after, req)
	require.Equal(t, http.StatusUnauthorized, after.Code)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	r := testRouter(t)
	for _, path := range []string{"/api/me", "/api/sessions"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
